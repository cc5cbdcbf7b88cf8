/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package subtle provides the content encryption primitives behind the JWE
// "enc" algorithms. Unlike general-purpose AEAD wrappers, these take the IV
// from the caller and return the authentication tag separately, since JWE
// compact serialization carries IV, ciphertext and tag as distinct segments.
package subtle

import (
	"crypto/cipher"
	"errors"
	"fmt"
)

// ContentAEAD performs authenticated encryption with a caller-supplied IV
// and a detached tag.
type ContentAEAD struct {
	aead    cipher.AEAD
	tagSize int
}

// NonceSize returns the IV size in bytes.
func (c *ContentAEAD) NonceSize() int {
	return c.aead.NonceSize()
}

// TagSize returns the authentication tag size in bytes.
func (c *ContentAEAD) TagSize() int {
	return c.tagSize
}

// Encrypt seals plaintext under iv, authenticating additionalData, and
// returns ciphertext and tag separately.
func (c *ContentAEAD) Encrypt(plaintext, iv, additionalData []byte) (ciphertext, tag []byte, err error) {
	if len(iv) != c.aead.NonceSize() {
		return nil, nil, fmt.Errorf("content_aead: invalid IV size %d", len(iv))
	}

	sealed := c.aead.Seal(nil, iv, plaintext, additionalData)
	boundary := len(sealed) - c.tagSize

	return sealed[:boundary], sealed[boundary:], nil
}

// Decrypt opens ciphertext+tag under iv. Failures are not distinguished.
func (c *ContentAEAD) Decrypt(ciphertext, tag, iv, additionalData []byte) ([]byte, error) {
	if len(iv) != c.aead.NonceSize() || len(tag) != c.tagSize {
		return nil, errors.New("content_aead: decryption failed")
	}

	sealed := make([]byte, 0, len(ciphertext)+len(tag))
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)

	plaintext, err := c.aead.Open(nil, iv, sealed, additionalData)
	if err != nil {
		return nil, errors.New("content_aead: decryption failed")
	}

	return plaintext, nil
}
