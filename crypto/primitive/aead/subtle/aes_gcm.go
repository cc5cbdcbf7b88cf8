/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package subtle

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
)

// AESGCMTagSize is the authentication tag size used by A128GCM, A192GCM and
// A256GCM (RFC 7518 section 5.3).
const AESGCMTagSize = 16

// NewAESGCM returns a ContentAEAD for AES-GCM. The key must be 16, 24 or
// 32 bytes to select AES-128, AES-192 or AES-256.
func NewAESGCM(key []byte) (*ContentAEAD, error) {
	switch len(key) {
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("aes_gcm: invalid key size %d", len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("aes_gcm: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("aes_gcm: %w", err)
	}

	return &ContentAEAD{aead: gcm, tagSize: AESGCMTagSize}, nil
}
