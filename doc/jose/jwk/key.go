/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package jwk wraps caller-supplied key material behind a capability-tagged
// handle. A Key is immutable after construction and safe for shared
// read-only use; the envelope engines never retain one past a call.
package jwk

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	"errors"
	"fmt"

	"github.com/sealcrypt/jose-go/doc/jose/jwa"
)

// Capability is one operation a key may be used for. The names follow the
// JWK "key_ops" values (RFC 7517 section 4.3).
type Capability string

// Capabilities a Key can carry.
const (
	CapabilitySign    Capability = "sign"
	CapabilityVerify  Capability = "verify"
	CapabilityEncrypt Capability = "encrypt"
	CapabilityDecrypt Capability = "decrypt"
)

// Key is a capability-tagged union over a symmetric secret, a public key, or
// a private key. The zero value is not usable; construct with NewSymmetric,
// NewPublic or NewPrivate.
type Key struct {
	kty     jwa.KeyType
	secret  []byte
	public  crypto.PublicKey
	private crypto.PrivateKey
}

// NewSymmetric wraps a shared secret. The secret is used directly: callers
// keep ownership and must not mutate it while the Key is in use.
func NewSymmetric(secret []byte) (*Key, error) {
	if len(secret) == 0 {
		return nil, errors.New("jwk: empty symmetric secret")
	}

	return &Key{kty: jwa.KeyTypeOctet, secret: secret}, nil
}

// NewPublic wraps the public half of an asymmetric key pair. Supported types
// are *rsa.PublicKey, *ecdsa.PublicKey and ed25519.PublicKey.
func NewPublic(pub crypto.PublicKey) (*Key, error) {
	kty, err := asymmetricKeyType(pub)
	if err != nil {
		return nil, err
	}

	return &Key{kty: kty, public: pub}, nil
}

// NewPrivate wraps an asymmetric private key and derives its public half.
// Supported types are *rsa.PrivateKey, *ecdsa.PrivateKey and
// ed25519.PrivateKey.
func NewPrivate(priv crypto.PrivateKey) (*Key, error) {
	switch k := priv.(type) {
	case *rsa.PrivateKey:
		return &Key{kty: jwa.KeyTypeRSA, private: k, public: &k.PublicKey}, nil
	case *ecdsa.PrivateKey:
		return &Key{kty: jwa.KeyTypeEC, private: k, public: &k.PublicKey}, nil
	case ed25519.PrivateKey:
		return &Key{kty: jwa.KeyTypeOKP, private: k, public: k.Public()}, nil
	default:
		return nil, fmt.Errorf("jwk: unsupported private key type %T", priv)
	}
}

func asymmetricKeyType(pub crypto.PublicKey) (jwa.KeyType, error) {
	switch pub.(type) {
	case *rsa.PublicKey:
		return jwa.KeyTypeRSA, nil
	case *ecdsa.PublicKey:
		return jwa.KeyTypeEC, nil
	case ed25519.PublicKey:
		return jwa.KeyTypeOKP, nil
	default:
		return "", fmt.Errorf("jwk: unsupported public key type %T", pub)
	}
}

// KeyType returns the JWK key family of the wrapped material.
func (k *Key) KeyType() jwa.KeyType {
	return k.kty
}

// Capabilities returns the operations this key may perform. A symmetric
// secret can do everything its algorithms allow; a public key can only
// verify and encrypt; a private key implies its public half.
func (k *Key) Capabilities() []Capability {
	switch {
	case k.secret != nil:
		return []Capability{CapabilitySign, CapabilityVerify, CapabilityEncrypt, CapabilityDecrypt}
	case k.private != nil:
		return []Capability{CapabilitySign, CapabilityVerify, CapabilityEncrypt, CapabilityDecrypt}
	case k.public != nil:
		return []Capability{CapabilityVerify, CapabilityEncrypt}
	default:
		return nil
	}
}

// Has reports whether the key carries the given capability.
func (k *Key) Has(c Capability) bool {
	for _, kc := range k.Capabilities() {
		if kc == c {
			return true
		}
	}

	return false
}

// Secret returns the symmetric secret, or nil for asymmetric keys.
func (k *Key) Secret() []byte {
	return k.secret
}

// Public returns the public key, or nil for symmetric keys.
func (k *Key) Public() crypto.PublicKey {
	return k.public
}

// Private returns the private key if present.
func (k *Key) Private() crypto.PrivateKey {
	return k.private
}
