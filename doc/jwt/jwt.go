/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package jwt carries a JSON claim set inside a signed envelope. Claims are
// treated as an opaque JSON object: validation of registered claims such as
// expiry is a policy concern left to callers.
package jwt

import (
	"encoding/json"
	"fmt"

	"github.com/sealcrypt/jose-go/doc/jose"
	"github.com/sealcrypt/jose-go/doc/jose/jwk"
)

// TypeJWT defines the "typ" header value of a JWT.
const TypeJWT = "JWT"

// Claims is a JSON claim set.
type Claims map[string]interface{}

// NewSigned marshals claims and signs them into a compact JWS. The "typ"
// header is set to JWT unless the caller provided one.
func NewSigned(claims Claims, headers jose.Headers, key *jwk.Key) (string, error) {
	payload, err := json.Marshal(claims)
	if err != nil {
		return "", fmt.Errorf("marshal JWT claims: %w", err)
	}

	protectedHeaders := jose.Headers{jose.HeaderType: TypeJWT}
	for k, v := range headers {
		protectedHeaders[k] = v
	}

	jws, err := jose.NewJWS(protectedHeaders, nil, key, payload)
	if err != nil {
		return "", err
	}

	return jws.SerializeCompact(false)
}

// ParseSigned verifies a compact JWS with the given key and unmarshals its
// payload as a claim set.
func ParseSigned(serialization string, key *jwk.Key, opts ...jose.ParseOpt) (Claims, jose.Headers, error) {
	jws, err := jose.ParseJWS(serialization, key, opts...)
	if err != nil {
		return nil, nil, err
	}

	var claims Claims
	if err := json.Unmarshal(jws.Payload, &claims); err != nil {
		return nil, nil, fmt.Errorf("unmarshal JWT claims: %w", err)
	}

	return claims, jws.ProtectedHeaders, nil
}
