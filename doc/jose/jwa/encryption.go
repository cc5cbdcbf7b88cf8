/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package jwa

import "crypto"

// KeyManagementMode is the CEK establishment mode of a JWE "alg" value
// (RFC 7516 section 2).
type KeyManagementMode int

// Supported key management modes.
const (
	// ModeDirect uses the shared symmetric key as the CEK.
	ModeDirect KeyManagementMode = iota
	// ModeKeyWrap wraps a random CEK with AES Key Wrap (RFC 3394).
	ModeKeyWrap
	// ModeKeyEncryption encrypts a random CEK with RSAES-OAEP.
	ModeKeyEncryption
	// ModeDirectKeyAgreement derives the CEK with ECDH-ES Concat KDF.
	ModeDirectKeyAgreement
	// ModeKeyAgreementWithKeyWrap derives a key wrapping key with ECDH-ES,
	// then wraps a random CEK with it.
	ModeKeyAgreementWithKeyWrap
)

// KeyManagementAlgorithm describes one entry of the JWE "alg" registry
// (RFC 7518 section 4.1). KeySize is the AES key wrapping key size for the
// key wrap modes and zero otherwise. OAEPHash is set for RSA-OAEP variants.
type KeyManagementAlgorithm struct {
	Name     string
	Mode     KeyManagementMode
	KeyType  KeyType
	KeySize  int
	OAEPHash crypto.Hash
}

// JWE key management algorithm identifiers.
const (
	Direct = "dir"

	A128KW = "A128KW"
	A192KW = "A192KW"
	A256KW = "A256KW"

	RSAOAEP    = "RSA-OAEP"
	RSAOAEP256 = "RSA-OAEP-256"

	ECDHES       = "ECDH-ES"
	ECDHESA128KW = "ECDH-ES+A128KW"
	ECDHESA192KW = "ECDH-ES+A192KW"
	ECDHESA256KW = "ECDH-ES+A256KW"
)

var keyManagementAlgorithms = map[string]*KeyManagementAlgorithm{
	Direct: {Name: Direct, Mode: ModeDirect, KeyType: KeyTypeOctet},

	A128KW: {Name: A128KW, Mode: ModeKeyWrap, KeyType: KeyTypeOctet, KeySize: 16},
	A192KW: {Name: A192KW, Mode: ModeKeyWrap, KeyType: KeyTypeOctet, KeySize: 24},
	A256KW: {Name: A256KW, Mode: ModeKeyWrap, KeyType: KeyTypeOctet, KeySize: 32},

	RSAOAEP:    {Name: RSAOAEP, Mode: ModeKeyEncryption, KeyType: KeyTypeRSA, OAEPHash: crypto.SHA1},
	RSAOAEP256: {Name: RSAOAEP256, Mode: ModeKeyEncryption, KeyType: KeyTypeRSA, OAEPHash: crypto.SHA256},

	ECDHES:       {Name: ECDHES, Mode: ModeDirectKeyAgreement, KeyType: KeyTypeEC},
	ECDHESA128KW: {Name: ECDHESA128KW, Mode: ModeKeyAgreementWithKeyWrap, KeyType: KeyTypeEC, KeySize: 16},
	ECDHESA192KW: {Name: ECDHESA192KW, Mode: ModeKeyAgreementWithKeyWrap, KeyType: KeyTypeEC, KeySize: 24},
	ECDHESA256KW: {Name: ECDHESA256KW, Mode: ModeKeyAgreementWithKeyWrap, KeyType: KeyTypeEC, KeySize: 32},
}

// ResolveKeyManagement looks up a JWE key management algorithm by identifier.
func ResolveKeyManagement(alg string) (*KeyManagementAlgorithm, error) {
	a, ok := keyManagementAlgorithms[alg]
	if !ok {
		return nil, &UnsupportedAlgorithmError{Alg: alg}
	}

	return a, nil
}

// ContentEncryption describes one entry of the JWE "enc" registry
// (RFC 7518 section 5.1) plus XC20P. All sizes are in bytes. For the
// AES-CBC-HMAC composites KeySize covers both the MAC and the AES halves.
type ContentEncryption struct {
	Name    string
	KeySize int
	IVSize  int
	TagSize int
}

// JWE content encryption algorithm identifiers. XC20P (XChaCha20-Poly1305)
// is carried from draft-amringer-jose-chacha alongside the RFC 7518 set.
const (
	A128GCM = "A128GCM"
	A192GCM = "A192GCM"
	A256GCM = "A256GCM"

	A128CBCHS256 = "A128CBC-HS256"
	A192CBCHS384 = "A192CBC-HS384"
	A256CBCHS512 = "A256CBC-HS512"

	XC20P = "XC20P"
)

var contentEncryptionAlgorithms = map[string]*ContentEncryption{
	A128GCM: {Name: A128GCM, KeySize: 16, IVSize: 12, TagSize: 16},
	A192GCM: {Name: A192GCM, KeySize: 24, IVSize: 12, TagSize: 16},
	A256GCM: {Name: A256GCM, KeySize: 32, IVSize: 12, TagSize: 16},

	A128CBCHS256: {Name: A128CBCHS256, KeySize: 32, IVSize: 16, TagSize: 16},
	A192CBCHS384: {Name: A192CBCHS384, KeySize: 48, IVSize: 16, TagSize: 24},
	A256CBCHS512: {Name: A256CBCHS512, KeySize: 64, IVSize: 16, TagSize: 32},

	XC20P: {Name: XC20P, KeySize: 32, IVSize: 24, TagSize: 16},
}

// ResolveContentEncryption looks up a JWE content encryption algorithm by
// identifier.
func ResolveContentEncryption(enc string) (*ContentEncryption, error) {
	a, ok := contentEncryptionAlgorithms[enc]
	if !ok {
		return nil, &UnsupportedAlgorithmError{Alg: enc}
	}

	return a, nil
}
