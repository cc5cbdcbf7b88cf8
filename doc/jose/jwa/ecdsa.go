/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package jwa

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
)

func ecdsaPrivateKey(a *SignatureAlgorithm, key interface{}) (*ecdsa.PrivateKey, error) {
	priv, ok := key.(*ecdsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("ecdsa: invalid key type %T", key)
	}

	if priv.Curve != a.Curve {
		return nil, fmt.Errorf("ecdsa: curve %s does not match %s", priv.Curve.Params().Name, a.Name)
	}

	return priv, nil
}

func ecdsaPublicKey(a *SignatureAlgorithm, key interface{}) (*ecdsa.PublicKey, error) {
	pub, ok := key.(*ecdsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("ecdsa: invalid key type %T", key)
	}

	if pub.Curve != a.Curve {
		return nil, fmt.Errorf("ecdsa: curve %s does not match %s", pub.Curve.Params().Name, a.Name)
	}

	return pub, nil
}

// curveByteSize is the fixed width of each of the R and S values in a JWS
// ECDSA signature (RFC 7518 section 3.4).
func curveByteSize(a *SignatureAlgorithm) int {
	return (a.Curve.Params().BitSize + 7) / 8
}

func signECDSA(a *SignatureAlgorithm, key crypto.PrivateKey, signingInput []byte) ([]byte, error) {
	priv, err := ecdsaPrivateKey(a, key)
	if err != nil {
		return nil, err
	}

	r, s, err := ecdsa.Sign(rand.Reader, priv, digest(a.Hash, signingInput))
	if err != nil {
		return nil, fmt.Errorf("ecdsa: %w", err)
	}

	size := curveByteSize(a)
	signature := make([]byte, 2*size)
	r.FillBytes(signature[:size])
	s.FillBytes(signature[size:])

	return signature, nil
}

func verifyECDSA(a *SignatureAlgorithm, key crypto.PublicKey, signingInput, signature []byte) error {
	pub, err := ecdsaPublicKey(a, key)
	if err != nil {
		return err
	}

	size := curveByteSize(a)
	if len(signature) != 2*size {
		return fmt.Errorf("ecdsa: invalid signature size %d", len(signature))
	}

	r := new(big.Int).SetBytes(signature[:size])
	s := new(big.Int).SetBytes(signature[size:])

	if !ecdsa.Verify(pub, digest(a.Hash, signingInput), r, s) {
		return errors.New("ecdsa: signature mismatch")
	}

	return nil
}
