/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package jwa

import (
	"crypto"
	"crypto/ed25519"
	"errors"
	"fmt"
)

func signEd25519(_ *SignatureAlgorithm, key crypto.PrivateKey, signingInput []byte) ([]byte, error) {
	priv, ok := key.(ed25519.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("ed25519: invalid key type %T", key)
	}

	if len(priv) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("ed25519: invalid private key size %d", len(priv))
	}

	return ed25519.Sign(priv, signingInput), nil
}

func verifyEd25519(_ *SignatureAlgorithm, key crypto.PublicKey, signingInput, signature []byte) error {
	pub, ok := key.(ed25519.PublicKey)
	if !ok {
		return fmt.Errorf("ed25519: invalid key type %T", key)
	}

	if len(pub) != ed25519.PublicKeySize {
		return fmt.Errorf("ed25519: invalid public key size %d", len(pub))
	}

	if !ed25519.Verify(pub, signingInput, signature) {
		return errors.New("ed25519: signature mismatch")
	}

	return nil
}
