/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package jwa

import (
	"crypto"
	"crypto/hmac"
	"errors"
	"fmt"
)

func hmacSecret(key interface{}) ([]byte, error) {
	secret, ok := key.([]byte)
	if !ok {
		return nil, fmt.Errorf("hmac: invalid key type %T", key)
	}

	if len(secret) == 0 {
		return nil, errors.New("hmac: empty secret")
	}

	return secret, nil
}

func signHMAC(a *SignatureAlgorithm, key crypto.PrivateKey, signingInput []byte) ([]byte, error) {
	secret, err := hmacSecret(key)
	if err != nil {
		return nil, err
	}

	mac := hmac.New(a.Hash.New, secret)
	mac.Write(signingInput)

	return mac.Sum(nil), nil
}

func verifyHMAC(a *SignatureAlgorithm, key crypto.PublicKey, signingInput, signature []byte) error {
	expected, err := signHMAC(a, key, signingInput)
	if err != nil {
		return err
	}

	// hmac.Equal is constant time.
	if !hmac.Equal(expected, signature) {
		return errors.New("hmac: signature mismatch")
	}

	return nil
}
