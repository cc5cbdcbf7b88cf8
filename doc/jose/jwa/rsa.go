/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package jwa

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"fmt"
)

// RFC 7518 sections 3.3 and 3.5: a key of 2048 bits or larger MUST be used.
const minRSAModulusBits = 2048

func rsaPrivateKey(key interface{}) (*rsa.PrivateKey, error) {
	priv, ok := key.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("rsa: invalid key type %T", key)
	}

	if priv.N.BitLen() < minRSAModulusBits {
		return nil, fmt.Errorf("rsa: key size %d bits is below the %d bit minimum", priv.N.BitLen(), minRSAModulusBits)
	}

	return priv, nil
}

func rsaPublicKey(key interface{}) (*rsa.PublicKey, error) {
	pub, ok := key.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("rsa: invalid key type %T", key)
	}

	if pub.N.BitLen() < minRSAModulusBits {
		return nil, fmt.Errorf("rsa: key size %d bits is below the %d bit minimum", pub.N.BitLen(), minRSAModulusBits)
	}

	return pub, nil
}

func digest(h crypto.Hash, data []byte) []byte {
	hasher := h.New()
	hasher.Write(data)

	return hasher.Sum(nil)
}

func signRSAPKCS1v15(a *SignatureAlgorithm, key crypto.PrivateKey, signingInput []byte) ([]byte, error) {
	priv, err := rsaPrivateKey(key)
	if err != nil {
		return nil, err
	}

	return rsa.SignPKCS1v15(rand.Reader, priv, a.Hash, digest(a.Hash, signingInput))
}

func verifyRSAPKCS1v15(a *SignatureAlgorithm, key crypto.PublicKey, signingInput, signature []byte) error {
	pub, err := rsaPublicKey(key)
	if err != nil {
		return err
	}

	return rsa.VerifyPKCS1v15(pub, a.Hash, digest(a.Hash, signingInput), signature)
}

func signRSAPSS(a *SignatureAlgorithm, key crypto.PrivateKey, signingInput []byte) ([]byte, error) {
	priv, err := rsaPrivateKey(key)
	if err != nil {
		return nil, err
	}

	// RFC 7518 section 3.5: salt length equals the digest size.
	opts := &rsa.PSSOptions{SaltLength: rsa.PSSSaltLengthEqualsHash, Hash: a.Hash}

	return rsa.SignPSS(rand.Reader, priv, a.Hash, digest(a.Hash, signingInput), opts)
}

func verifyRSAPSS(a *SignatureAlgorithm, key crypto.PublicKey, signingInput, signature []byte) error {
	pub, err := rsaPublicKey(key)
	if err != nil {
		return err
	}

	opts := &rsa.PSSOptions{SaltLength: rsa.PSSSaltLengthEqualsHash, Hash: a.Hash}

	return rsa.VerifyPSS(pub, a.Hash, digest(a.Hash, signingInput), signature, opts)
}
