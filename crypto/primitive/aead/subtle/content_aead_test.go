/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package subtle

import (
	"testing"

	"github.com/google/tink/go/subtle/random"
	"github.com/stretchr/testify/require"
)

func TestAESGCM(t *testing.T) {
	for _, keySize := range []int{16, 24, 32} {
		cea, err := NewAESGCM(random.GetRandomBytes(uint32(keySize)))
		require.NoError(t, err)
		require.Equal(t, 12, cea.NonceSize())
		require.Equal(t, AESGCMTagSize, cea.TagSize())

		roundTrip(t, cea)
	}
}

func TestAESGCM_InvalidKeySize(t *testing.T) {
	for _, keySize := range []int{0, 15, 31, 33, 64} {
		_, err := NewAESGCM(make([]byte, keySize))
		require.Error(t, err)
	}
}

func TestAESCBCHMAC(t *testing.T) {
	tests := []struct {
		keySize int
		tagSize int
	}{
		{32, 16},
		{48, 24},
		{64, 32},
	}

	for _, tc := range tests {
		cea, err := NewAESCBCHMAC(random.GetRandomBytes(uint32(tc.keySize)))
		require.NoError(t, err)
		require.Equal(t, 16, cea.NonceSize())
		require.Equal(t, tc.tagSize, cea.TagSize())

		roundTrip(t, cea)
	}
}

func TestAESCBCHMAC_InvalidKeySize(t *testing.T) {
	for _, keySize := range []int{16, 24, 31, 65} {
		_, err := NewAESCBCHMAC(make([]byte, keySize))
		require.Error(t, err)
	}
}

func TestXChaCha20Poly1305(t *testing.T) {
	cea, err := NewXChaCha20Poly1305(random.GetRandomBytes(32))
	require.NoError(t, err)
	require.Equal(t, 24, cea.NonceSize())
	require.Equal(t, 16, cea.TagSize())

	roundTrip(t, cea)

	_, err = NewXChaCha20Poly1305(make([]byte, 16))
	require.Error(t, err)
}

func TestDecrypt_Tampered(t *testing.T) {
	cea, err := NewAESGCM(random.GetRandomBytes(32))
	require.NoError(t, err)

	plaintext := []byte("protected content")
	aad := []byte("protected header segment")
	iv := random.GetRandomBytes(uint32(cea.NonceSize()))

	ciphertext, tag, err := cea.Encrypt(plaintext, iv, aad)
	require.NoError(t, err)

	flip := func(b []byte, i int) []byte {
		mutated := append([]byte{}, b...)
		mutated[i] ^= 0x01

		return mutated
	}

	_, err = cea.Decrypt(flip(ciphertext, 0), tag, iv, aad)
	require.Error(t, err)

	_, err = cea.Decrypt(ciphertext, flip(tag, 0), iv, aad)
	require.Error(t, err)

	_, err = cea.Decrypt(ciphertext, tag, flip(iv, 0), aad)
	require.Error(t, err)

	_, err = cea.Decrypt(ciphertext, tag, iv, []byte("different aad"))
	require.Error(t, err)

	_, err = cea.Decrypt(ciphertext, tag[:15], iv, aad)
	require.Error(t, err)

	_, err = cea.Decrypt(ciphertext, tag, iv[:11], aad)
	require.Error(t, err)
}

func roundTrip(t *testing.T, cea *ContentAEAD) {
	t.Helper()

	plaintext := []byte("the true vault key")
	aad := []byte("eyJhbGciOiJkaXIiLCJlbmMiOiJBMjU2R0NNIn0")
	iv := random.GetRandomBytes(uint32(cea.NonceSize()))

	ciphertext, tag, err := cea.Encrypt(plaintext, iv, aad)
	require.NoError(t, err)
	require.NotEmpty(t, ciphertext)
	require.Len(t, tag, cea.TagSize())

	decrypted, err := cea.Decrypt(ciphertext, tag, iv, aad)
	require.NoError(t, err)
	require.Equal(t, plaintext, decrypted)
}
