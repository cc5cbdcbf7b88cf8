/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package jwk

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/sealcrypt/jose-go/doc/jose/jwa"
)

// ErrThumbprint is returned when a key has no canonical public representation
// to digest, or the requested hash is not usable for thumbprints.
var ErrThumbprint = errors.New("thumbprint cannot be computed")

// ThumbprintError carries the hash that was requested when thumbprint
// computation failed.
type ThumbprintError struct {
	Hash jwa.Hash
	Err  error
}

func (e *ThumbprintError) Error() string {
	return fmt.Sprintf("thumbprint with %s: %v", e.Hash.Name, e.Err)
}

func (e *ThumbprintError) Unwrap() error {
	return ErrThumbprint
}

// Thumbprint computes the RFC 7638 thumbprint of the key's public
// representation: the digest of the canonical JWK containing only the
// required members, ordered lexicographically, with no whitespace. The
// result is deterministic for a given key and hash, suitable as a "kid".
// Symmetric secrets have no public form and fail.
func (k *Key) Thumbprint(h jwa.Hash) ([]byte, error) {
	if !h.Hash.Available() {
		return nil, &ThumbprintError{Hash: h, Err: errors.New("hash is not available")}
	}

	pub, err := k.PublicJWK()
	if err != nil {
		return nil, &ThumbprintError{Hash: h, Err: err}
	}

	hasher := h.Hash.New()
	hasher.Write(canonicalJWK(pub))

	return hasher.Sum(nil), nil
}

// canonicalJWK renders the required members in lexicographic member-name
// order. encoding/json cannot be used here: member order must be exact.
func canonicalJWK(j *JWK) []byte {
	var b bytes.Buffer

	b.WriteByte('{')

	ordered := []struct{ name, value string }{
		{"crv", j.Crv},
		{"e", j.E},
		{"kty", j.Kty},
		{"n", j.N},
		{"x", j.X},
		{"y", j.Y},
	}

	first := true

	for _, member := range ordered {
		if member.value == "" {
			continue
		}

		if !first {
			b.WriteByte(',')
		}

		first = false

		fmt.Fprintf(&b, "%q:%q", member.name, member.value)
	}

	b.WriteByte('}')

	return b.Bytes()
}
