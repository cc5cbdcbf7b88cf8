/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package subtle

import (
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

// NewXChaCha20Poly1305 returns a ContentAEAD for the XC20P content
// encryption algorithm (draft-amringer-jose-chacha). The key must be
// 32 bytes; the IV is 24 bytes.
func NewXChaCha20Poly1305(key []byte) (*ContentAEAD, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("xchacha20poly1305: %w", err)
	}

	return &ContentAEAD{aead: aead, tagSize: chacha20poly1305.Overhead}, nil
}
