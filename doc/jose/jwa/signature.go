/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package jwa

import (
	"crypto"
	"crypto/elliptic"

	"github.com/btcsuite/btcd/btcec"
)

// SignatureAlgorithm describes one entry of the JWS algorithm registry
// (RFC 7518 section 3.1). Hash is zero for schemes with no separable digest
// choice (EdDSA). Curve is set for the ECDSA family only.
type SignatureAlgorithm struct {
	Name    string
	Hash    crypto.Hash
	KeyType KeyType
	Curve   elliptic.Curve

	sign   func(a *SignatureAlgorithm, key crypto.PrivateKey, signingInput []byte) ([]byte, error)
	verify func(a *SignatureAlgorithm, key crypto.PublicKey, signingInput, signature []byte) error
}

// Sign computes the JWS signature of signingInput with the given key. The key
// must match the algorithm family: []byte for HMAC, *rsa.PrivateKey for
// RS*/PS*, *ecdsa.PrivateKey for ES*, ed25519.PrivateKey for EdDSA.
func (a *SignatureAlgorithm) Sign(key crypto.PrivateKey, signingInput []byte) ([]byte, error) {
	return a.sign(a, key, signingInput)
}

// Verify checks a JWS signature over signingInput. Callers must not surface
// the returned error detail to untrusted peers.
func (a *SignatureAlgorithm) Verify(key crypto.PublicKey, signingInput, signature []byte) error {
	return a.verify(a, key, signingInput, signature)
}

// JWS algorithm identifiers (RFC 7518 section 3.1, RFC 8037, plus ES256K
// which is registered in the IANA JOSE registry).
const (
	HS256 = "HS256"
	HS384 = "HS384"
	HS512 = "HS512"

	RS256 = "RS256"
	RS384 = "RS384"
	RS512 = "RS512"

	PS256 = "PS256"
	PS384 = "PS384"
	PS512 = "PS512"

	ES256 = "ES256"
	ES384 = "ES384"
	ES512 = "ES512"

	ES256K = "ES256K"

	EdDSA = "EdDSA"
)

var signatureAlgorithms = map[string]*SignatureAlgorithm{
	HS256: {Name: HS256, Hash: crypto.SHA256, KeyType: KeyTypeOctet, sign: signHMAC, verify: verifyHMAC},
	HS384: {Name: HS384, Hash: crypto.SHA384, KeyType: KeyTypeOctet, sign: signHMAC, verify: verifyHMAC},
	HS512: {Name: HS512, Hash: crypto.SHA512, KeyType: KeyTypeOctet, sign: signHMAC, verify: verifyHMAC},

	RS256: {Name: RS256, Hash: crypto.SHA256, KeyType: KeyTypeRSA, sign: signRSAPKCS1v15, verify: verifyRSAPKCS1v15},
	RS384: {Name: RS384, Hash: crypto.SHA384, KeyType: KeyTypeRSA, sign: signRSAPKCS1v15, verify: verifyRSAPKCS1v15},
	RS512: {Name: RS512, Hash: crypto.SHA512, KeyType: KeyTypeRSA, sign: signRSAPKCS1v15, verify: verifyRSAPKCS1v15},

	PS256: {Name: PS256, Hash: crypto.SHA256, KeyType: KeyTypeRSA, sign: signRSAPSS, verify: verifyRSAPSS},
	PS384: {Name: PS384, Hash: crypto.SHA384, KeyType: KeyTypeRSA, sign: signRSAPSS, verify: verifyRSAPSS},
	PS512: {Name: PS512, Hash: crypto.SHA512, KeyType: KeyTypeRSA, sign: signRSAPSS, verify: verifyRSAPSS},

	ES256:  {Name: ES256, Hash: crypto.SHA256, KeyType: KeyTypeEC, Curve: elliptic.P256(), sign: signECDSA, verify: verifyECDSA},
	ES384:  {Name: ES384, Hash: crypto.SHA384, KeyType: KeyTypeEC, Curve: elliptic.P384(), sign: signECDSA, verify: verifyECDSA},
	ES512:  {Name: ES512, Hash: crypto.SHA512, KeyType: KeyTypeEC, Curve: elliptic.P521(), sign: signECDSA, verify: verifyECDSA},
	ES256K: {Name: ES256K, Hash: crypto.SHA256, KeyType: KeyTypeEC, Curve: btcec.S256(), sign: signECDSA, verify: verifyECDSA},

	EdDSA: {Name: EdDSA, KeyType: KeyTypeOKP, sign: signEd25519, verify: verifyEd25519},
}

// ResolveSignature looks up a JWS algorithm by identifier. The "none"
// identifier is rejected here unconditionally.
func ResolveSignature(alg string) (*SignatureAlgorithm, error) {
	a, ok := signatureAlgorithms[alg]
	if !ok {
		return nil, &UnsupportedAlgorithmError{Alg: alg}
	}

	return a, nil
}

// SignatureAlgorithms returns the identifiers of the signature registry,
// in no particular order.
func SignatureAlgorithms() []string {
	algs := make([]string, 0, len(signatureAlgorithms))
	for name := range signatureAlgorithms {
		algs = append(algs, name)
	}

	return algs
}
