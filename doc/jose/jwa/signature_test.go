/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package jwa

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"testing"

	"github.com/btcsuite/btcd/btcec"
	"github.com/stretchr/testify/require"
)

func TestHMACSignVerify(t *testing.T) {
	secret := make([]byte, 32)
	signingInput := []byte("eyJhbGciOiJIUzI1NiJ9.aGVsbG8")

	for _, alg := range []string{HS256, HS384, HS512} {
		t.Run(alg, func(t *testing.T) {
			a, err := ResolveSignature(alg)
			require.NoError(t, err)

			sig, err := a.Sign(secret, signingInput)
			require.NoError(t, err)
			require.Equal(t, a.Hash.Size(), len(sig))

			require.NoError(t, a.Verify(secret, signingInput, sig))

			// Same input, different key.
			otherSecret := make([]byte, 32)
			otherSecret[0] = 1
			require.Error(t, a.Verify(otherSecret, signingInput, sig))

			// Tampered input.
			tampered := append([]byte{}, signingInput...)
			tampered[0] ^= 0x01
			require.Error(t, a.Verify(secret, tampered, sig))
		})
	}
}

func TestHMACSign_InvalidKey(t *testing.T) {
	a, err := ResolveSignature(HS256)
	require.NoError(t, err)

	_, err = a.Sign(nil, []byte("data"))
	require.Error(t, err)

	rsaKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	_, err = a.Sign(rsaKey, []byte("data"))
	require.Error(t, err)
}

func TestRSASignVerify(t *testing.T) {
	privKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	signingInput := []byte("eyJhbGciOiJSUzI1NiJ9.aGVsbG8")

	for _, alg := range []string{RS256, RS384, RS512, PS256, PS384, PS512} {
		t.Run(alg, func(t *testing.T) {
			a, err := ResolveSignature(alg)
			require.NoError(t, err)

			sig, err := a.Sign(privKey, signingInput)
			require.NoError(t, err)
			require.Equal(t, 256, len(sig))

			require.NoError(t, a.Verify(&privKey.PublicKey, signingInput, sig))

			sig[10] ^= 0x01
			require.Error(t, a.Verify(&privKey.PublicKey, signingInput, sig))
		})
	}
}

func TestRSASign_RejectsShortModulus(t *testing.T) {
	privKey, err := rsa.GenerateKey(rand.Reader, 1024)
	require.NoError(t, err)

	a, err := ResolveSignature(RS256)
	require.NoError(t, err)

	_, err = a.Sign(privKey, []byte("data"))
	require.Error(t, err)

	require.Error(t, a.Verify(&privKey.PublicKey, []byte("data"), make([]byte, 128)))
}

func TestECDSASignVerify(t *testing.T) {
	tests := []struct {
		alg     string
		sigSize int
	}{
		{ES256, 64},
		{ES384, 96},
		{ES512, 132},
		{ES256K, 64},
	}

	signingInput := []byte("eyJhbGciOiJFUzI1NiJ9.aGVsbG8")

	for _, tc := range tests {
		t.Run(tc.alg, func(t *testing.T) {
			a, err := ResolveSignature(tc.alg)
			require.NoError(t, err)

			privKey, err := ecdsa.GenerateKey(a.Curve, rand.Reader)
			require.NoError(t, err)

			sig, err := a.Sign(privKey, signingInput)
			require.NoError(t, err)
			require.Equal(t, tc.sigSize, len(sig))

			require.NoError(t, a.Verify(&privKey.PublicKey, signingInput, sig))

			sig[0] ^= 0x01
			require.Error(t, a.Verify(&privKey.PublicKey, signingInput, sig))
		})
	}
}

func TestECDSASign_CurveMismatch(t *testing.T) {
	a, err := ResolveSignature(ES256)
	require.NoError(t, err)

	p384Key, err := ecdsa.GenerateKey(resolveCurve(t, ES384), rand.Reader)
	require.NoError(t, err)

	_, err = a.Sign(p384Key, []byte("data"))
	require.Error(t, err)

	require.Error(t, a.Verify(&p384Key.PublicKey, []byte("data"), make([]byte, 64)))

	k256Key, err := ecdsa.GenerateKey(btcec.S256(), rand.Reader)
	require.NoError(t, err)

	_, err = a.Sign(k256Key, []byte("data"))
	require.Error(t, err)
}

func TestECDSAVerify_InvalidSignatureSize(t *testing.T) {
	a, err := ResolveSignature(ES256)
	require.NoError(t, err)

	privKey, err := ecdsa.GenerateKey(a.Curve, rand.Reader)
	require.NoError(t, err)

	require.Error(t, a.Verify(&privKey.PublicKey, []byte("data"), make([]byte, 63)))
	require.Error(t, a.Verify(&privKey.PublicKey, []byte("data"), nil))
}

func TestEd25519SignVerify(t *testing.T) {
	pubKey, privKey, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	a, err := ResolveSignature(EdDSA)
	require.NoError(t, err)
	require.Equal(t, crypto.Hash(0), a.Hash)

	signingInput := []byte("eyJhbGciOiJFZERTQSJ9.aGVsbG8")

	sig, err := a.Sign(privKey, signingInput)
	require.NoError(t, err)
	require.Equal(t, ed25519.SignatureSize, len(sig))

	require.NoError(t, a.Verify(pubKey, signingInput, sig))

	sig[0] ^= 0x01
	require.Error(t, a.Verify(pubKey, signingInput, sig))
}

func TestEd25519Sign_InvalidKey(t *testing.T) {
	a, err := ResolveSignature(EdDSA)
	require.NoError(t, err)

	_, err = a.Sign([]byte("not an ed25519 key"), []byte("data"))
	require.Error(t, err)

	require.Error(t, a.Verify([]byte("short"), []byte("data"), make([]byte, ed25519.SignatureSize)))
}

func resolveCurve(t *testing.T, alg string) elliptic.Curve {
	t.Helper()

	a, err := ResolveSignature(alg)
	require.NoError(t, err)

	return a.Curve
}
