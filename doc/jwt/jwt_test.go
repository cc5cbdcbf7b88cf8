/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package jwt

import (
	"crypto/ed25519"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sealcrypt/jose-go/doc/jose"
	"github.com/sealcrypt/jose-go/doc/jose/jwa"
	"github.com/sealcrypt/jose-go/doc/jose/jwk"
)

func TestSignedJWTRoundTrip(t *testing.T) {
	key, err := jwk.NewSymmetric(make([]byte, 32))
	require.NoError(t, err)

	claims := Claims{
		"sub": "alice",
		"iss": "https://issuer.example.com",
	}

	serialized, err := NewSigned(claims, jose.Headers{jose.HeaderAlgorithm: jwa.HS256}, key)
	require.NoError(t, err)

	parsedClaims, headers, err := ParseSigned(serialized, key)
	require.NoError(t, err)
	require.Equal(t, "alice", parsedClaims["sub"])
	require.Equal(t, "https://issuer.example.com", parsedClaims["iss"])

	typ, ok := headers.Type()
	require.True(t, ok)
	require.Equal(t, TypeJWT, typ)
}

func TestSignedJWT_EdDSA(t *testing.T) {
	_, privKey, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	key, err := jwk.NewPrivate(privKey)
	require.NoError(t, err)

	serialized, err := NewSigned(Claims{"sub": "bob"}, jose.Headers{jose.HeaderAlgorithm: jwa.EdDSA}, key)
	require.NoError(t, err)

	claims, _, err := ParseSigned(serialized, key)
	require.NoError(t, err)
	require.Equal(t, "bob", claims["sub"])
}

func TestSignedJWT_TypeOverride(t *testing.T) {
	key, err := jwk.NewSymmetric(make([]byte, 32))
	require.NoError(t, err)

	serialized, err := NewSigned(Claims{"sub": "alice"}, jose.Headers{
		jose.HeaderAlgorithm: jwa.HS256,
		jose.HeaderType:      "secevent+jwt",
	}, key)
	require.NoError(t, err)

	_, headers, err := ParseSigned(serialized, key)
	require.NoError(t, err)

	typ, ok := headers.Type()
	require.True(t, ok)
	require.Equal(t, "secevent+jwt", typ)
}

func TestParseSigned_Errors(t *testing.T) {
	key, err := jwk.NewSymmetric(make([]byte, 32))
	require.NoError(t, err)

	otherKey, err := jwk.NewSymmetric(append(make([]byte, 31), 1))
	require.NoError(t, err)

	serialized, err := NewSigned(Claims{"sub": "alice"}, jose.Headers{jose.HeaderAlgorithm: jwa.HS256}, key)
	require.NoError(t, err)

	_, _, err = ParseSigned(serialized, otherKey)
	require.ErrorIs(t, err, jose.ErrSignatureVerification)

	_, _, err = ParseSigned("not.a", key)
	require.ErrorIs(t, err, jose.ErrInvalidCompactForm)
}
