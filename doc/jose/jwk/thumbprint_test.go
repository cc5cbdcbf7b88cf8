/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package jwk

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sealcrypt/jose-go/doc/jose/jwa"
)

// Modulus of the example key in RFC 7638 section 3.1.
const rfc7638Modulus = "0vx7agoebGcQSuuPiLJXZptN9nndrQmbXEps2aiAFbWhM78LhWx4cbbfAAtVT86zwu1RK7aPFFxuhDR1" +
	"L6tSoc_BJECPebWKRXjBZCiFV4n3oknjhMstn64tZ_2W-5JsGY4Hc5n9yBXArwl93lqt7_RN5w6Cf0h4QyQ5v-65YGjQR0_FDW2QvzqY368Q" +
	"QMicAtaSqzs8KJZgnYb9c7d0zgdAZHzu6qMQvRL5hajrn1n91CbOpbISD08qNLyrdkt-bFTWhAI4vMQFh6WeZu0fM4lFd2NcRwr3XPksINHa" +
	"Q-G_xBniIqbw0Ls1jF44-csFCur-kEgU8awapJzKnqDKgw"

func TestThumbprint_RFC7638Vector(t *testing.T) {
	nBytes, err := base64.RawURLEncoding.DecodeString(rfc7638Modulus)
	require.NoError(t, err)

	pub := &rsa.PublicKey{
		N: new(big.Int).SetBytes(nBytes),
		E: 65537,
	}

	key, err := NewPublic(pub)
	require.NoError(t, err)

	thumbprint, err := key.Thumbprint(jwa.SHA256)
	require.NoError(t, err)

	require.Equal(t, "NzbLsXh8uDCcd-6MNwXF4W_7noWXFZAfHkxZsRGC9Xs",
		base64.RawURLEncoding.EncodeToString(thumbprint))
}

func TestThumbprint_Deterministic(t *testing.T) {
	privKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	privHandle, err := NewPrivate(privKey)
	require.NoError(t, err)

	pubHandle, err := NewPublic(&privKey.PublicKey)
	require.NoError(t, err)

	tpPriv, err := privHandle.Thumbprint(jwa.SHA256)
	require.NoError(t, err)

	tpPub, err := pubHandle.Thumbprint(jwa.SHA256)
	require.NoError(t, err)

	// Private and public handles of the same key digest identically.
	require.Equal(t, tpPriv, tpPub)
	require.Len(t, tpPriv, 32)

	tp512, err := pubHandle.Thumbprint(jwa.SHA512)
	require.NoError(t, err)
	require.Len(t, tp512, 64)
	require.NotEqual(t, tpPriv, tp512[:32])
}

func TestThumbprint_Symmetric(t *testing.T) {
	key, err := NewSymmetric(make([]byte, 32))
	require.NoError(t, err)

	_, err = key.Thumbprint(jwa.SHA256)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrThumbprint))

	var tpErr *ThumbprintError

	require.ErrorAs(t, err, &tpErr)
	require.Equal(t, jwa.SHA256.Name, tpErr.Hash.Name)
}

func TestCanonicalJWK_MemberOrder(t *testing.T) {
	privKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	key, err := NewPrivate(privKey)
	require.NoError(t, err)

	j, err := key.PublicJWK()
	require.NoError(t, err)

	canonical := string(canonicalJWK(j))
	require.Equal(t, `{"crv":"P-256","kty":"EC","x":"`+j.X+`","y":"`+j.Y+`"}`, canonical)
}
