/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package jwk

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sealcrypt/jose-go/doc/jose/jwa"
)

func TestNewSymmetric(t *testing.T) {
	secret := make([]byte, 32)

	key, err := NewSymmetric(secret)
	require.NoError(t, err)
	require.Equal(t, jwa.KeyTypeOctet, key.KeyType())
	require.Equal(t, secret, key.Secret())
	require.Nil(t, key.Public())
	require.Nil(t, key.Private())

	for _, c := range []Capability{CapabilitySign, CapabilityVerify, CapabilityEncrypt, CapabilityDecrypt} {
		require.True(t, key.Has(c))
	}

	_, err = NewSymmetric(nil)
	require.Error(t, err)
}

func TestNewPrivate(t *testing.T) {
	t.Run("RSA", func(t *testing.T) {
		privKey, err := rsa.GenerateKey(rand.Reader, 2048)
		require.NoError(t, err)

		key, err := NewPrivate(privKey)
		require.NoError(t, err)
		require.Equal(t, jwa.KeyTypeRSA, key.KeyType())
		require.Equal(t, &privKey.PublicKey, key.Public())
		require.True(t, key.Has(CapabilitySign))
		require.True(t, key.Has(CapabilityDecrypt))
	})

	t.Run("EC", func(t *testing.T) {
		privKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
		require.NoError(t, err)

		key, err := NewPrivate(privKey)
		require.NoError(t, err)
		require.Equal(t, jwa.KeyTypeEC, key.KeyType())
		require.Equal(t, &privKey.PublicKey, key.Public())
	})

	t.Run("OKP", func(t *testing.T) {
		pubKey, privKey, err := ed25519.GenerateKey(rand.Reader)
		require.NoError(t, err)

		key, err := NewPrivate(privKey)
		require.NoError(t, err)
		require.Equal(t, jwa.KeyTypeOKP, key.KeyType())
		require.Equal(t, pubKey, key.Public())
	})

	t.Run("unsupported type", func(t *testing.T) {
		_, err := NewPrivate("not a key")
		require.Error(t, err)
	})
}

func TestNewPublic(t *testing.T) {
	privKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	key, err := NewPublic(&privKey.PublicKey)
	require.NoError(t, err)
	require.Equal(t, jwa.KeyTypeEC, key.KeyType())
	require.Nil(t, key.Private())

	// A public key cannot sign or decrypt.
	require.True(t, key.Has(CapabilityVerify))
	require.True(t, key.Has(CapabilityEncrypt))
	require.False(t, key.Has(CapabilitySign))
	require.False(t, key.Has(CapabilityDecrypt))

	_, err = NewPublic([]byte("not a key"))
	require.Error(t, err)
}

func TestPublicJWKRoundTrip(t *testing.T) {
	t.Run("EC", func(t *testing.T) {
		privKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
		require.NoError(t, err)

		key, err := NewPrivate(privKey)
		require.NoError(t, err)

		j, err := key.PublicJWK()
		require.NoError(t, err)
		require.Equal(t, "EC", j.Kty)
		require.Equal(t, CurveP256, j.Crv)

		parsed, err := j.PublicKey()
		require.NoError(t, err)
		require.Equal(t, key.Public(), parsed.Public())
	})

	t.Run("OKP", func(t *testing.T) {
		pubKey, _, err := ed25519.GenerateKey(rand.Reader)
		require.NoError(t, err)

		key, err := NewPublic(pubKey)
		require.NoError(t, err)

		j, err := key.PublicJWK()
		require.NoError(t, err)
		require.Equal(t, "OKP", j.Kty)
		require.Equal(t, CurveEd25519, j.Crv)

		parsed, err := j.PublicKey()
		require.NoError(t, err)
		require.Equal(t, pubKey, parsed.Public())
	})

	t.Run("symmetric has no public form", func(t *testing.T) {
		key, err := NewSymmetric(make([]byte, 32))
		require.NoError(t, err)

		_, err = key.PublicJWK()
		require.Error(t, err)
	})
}

func TestParseJWK_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"bad JSON", `{`},
		{"unsupported kty", `{"kty":"oct"}`},
		{"unsupported curve", `{"kty":"EC","crv":"P-111","x":"AA","y":"AA"}`},
		{"bad coordinate encoding", `{"kty":"EC","crv":"P-256","x":"!!!","y":"AA"}`},
		{"point not on curve", `{"kty":"EC","crv":"P-256",` +
			`"x":"AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA",` +
			`"y":"AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"}`},
		{"bad Ed25519 size", `{"kty":"OKP","crv":"Ed25519","x":"AAAA"}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseJWK([]byte(tc.data))
			require.Error(t, err)
		})
	}
}
