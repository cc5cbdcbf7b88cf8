/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package subtle

import (
	"crypto/aes"
	"fmt"

	josecipher "github.com/go-jose/go-jose/v3/cipher"
)

// NewAESCBCHMAC returns a ContentAEAD for the AES_CBC_HMAC_SHA2 composites
// of RFC 7518 section 5.2. The key is the full composite key: the first half
// keys the HMAC, the second half keys AES-CBC, so 32, 48 or 64 bytes select
// AES-128+HS256, AES-192+HS384 or AES-256+HS512.
func NewAESCBCHMAC(key []byte) (*ContentAEAD, error) {
	switch len(key) {
	case 32, 48, 64:
	default:
		return nil, fmt.Errorf("aes_cbc_hmac: invalid key size %d", len(key))
	}

	cbcHMAC, err := josecipher.NewCBCHMAC(key, aes.NewCipher)
	if err != nil {
		return nil, fmt.Errorf("aes_cbc_hmac: %w", err)
	}

	// The composite truncates the MAC to half the composite key size.
	return &ContentAEAD{aead: cbcHMAC, tagSize: len(key) / 2}, nil
}
