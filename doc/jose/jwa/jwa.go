/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package jwa holds the closed registry of JSON Web Algorithms (RFC 7518)
// supported by this module. Identifiers are resolved per role (signature,
// key management, content encryption) since the identifier namespaces are
// role-scoped. The registry is a set of static tables built at init time
// and is safe for concurrent reads.
package jwa

import (
	"crypto"
	"errors"
	"fmt"

	// Link the digest implementations the registry hands out. SHA-1 is used
	// by RSA-OAEP only.
	_ "crypto/sha1"
	_ "crypto/sha256"
	_ "crypto/sha512"
)

// ErrUnsupportedAlgorithm is returned when an algorithm identifier is not in
// the registry for the requested role. The literal "none" identifier resolves
// to this error as well: unsecured JWS handling is opt-in on the verifier side.
var ErrUnsupportedAlgorithm = errors.New("unsupported algorithm")

// UnsupportedAlgorithmError reports the identifier that failed to resolve.
type UnsupportedAlgorithmError struct {
	Alg string
}

func (e *UnsupportedAlgorithmError) Error() string {
	return fmt.Sprintf("unsupported algorithm: %q", e.Alg)
}

func (e *UnsupportedAlgorithmError) Unwrap() error {
	return ErrUnsupportedAlgorithm
}

// None is the "none" JWS algorithm identifier (RFC 7518 section 3.6). It is
// never resolvable through the registry.
const None = "none"

// KeyType is the JWK "kty" family a JOSE algorithm operates on.
type KeyType string

// Key types defined in RFC 7518 section 6.1 and RFC 8037.
const (
	KeyTypeOctet KeyType = "oct"
	KeyTypeRSA   KeyType = "RSA"
	KeyTypeEC    KeyType = "EC"
	KeyTypeOKP   KeyType = "OKP"
)

// Hash identifies a digest function usable independently of any signature
// scheme, eg for JWK thumbprints.
type Hash struct {
	Name string
	Hash crypto.Hash
}

// Supported digest functions.
var (
	SHA256 = Hash{Name: "SHA-256", Hash: crypto.SHA256}
	SHA384 = Hash{Name: "SHA-384", Hash: crypto.SHA384}
	SHA512 = Hash{Name: "SHA-512", Hash: crypto.SHA512}
)

var hashes = map[string]Hash{
	SHA256.Name: SHA256,
	SHA384.Name: SHA384,
	SHA512.Name: SHA512,
}

// ResolveHash looks up a digest function by name.
func ResolveHash(name string) (Hash, error) {
	h, ok := hashes[name]
	if !ok {
		return Hash{}, &UnsupportedAlgorithmError{Alg: name}
	}

	return h, nil
}
