/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package jose

import (
	"encoding/json"
	"fmt"
)

// IANA registered JOSE headers (https://tools.ietf.org/html/rfc7515#section-4.1)
const (
	// HeaderAlgorithm identifies:
	// For JWS: the cryptographic algorithm used to secure the JWS.
	// For JWE: the cryptographic algorithm used to encrypt or determine the value of the CEK.
	HeaderAlgorithm = "alg" // string

	// HeaderEncryption identifies the JWE content encryption algorithm.
	HeaderEncryption = "enc" // string

	// HeaderKeyID is a hint:
	// For JWS: indicating which key was used to secure the JWS.
	// For JWE: which references the public key to which the JWE was encrypted.
	HeaderKeyID = "kid" // string

	// HeaderType declares the media type of the complete JWS or JWE.
	HeaderType = "typ" // string

	// HeaderContentType declares the media type of the secured content
	// (the payload or the plaintext).
	HeaderContentType = "cty" // string

	// HeaderCritical lists extension headers that MUST be understood and
	// processed by the receiving side.
	HeaderCritical = "crit" // array

	// HeaderEPK carries the ephemeral public key of ECDH-ES envelopes.
	HeaderEPK = "epk" // JSON

	// HeaderAPU and HeaderAPV carry the PartyUInfo/PartyVInfo values fed to
	// the ECDH-ES Concat KDF (RFC 7518 section 4.6.1).
	HeaderAPU = "apu" // string
	HeaderAPV = "apv" // string
)

// Header defined in https://tools.ietf.org/html/rfc7797
const (
	// HeaderB64Payload determines whether the payload is represented in the
	// signing input as BASE64URL(payload) or unencoded.
	HeaderB64Payload = "b64" // bool
)

// Headers represents JOSE headers. Unknown fields round-trip opaquely and
// are never interpreted.
type Headers map[string]interface{}

// KeyID gets Key ID from JOSE headers.
func (h Headers) KeyID() (string, bool) {
	return h.stringValue(HeaderKeyID)
}

// Algorithm gets Algorithm from JOSE headers.
func (h Headers) Algorithm() (string, bool) {
	return h.stringValue(HeaderAlgorithm)
}

// Encryption gets content encryption algorithm from JOSE headers.
func (h Headers) Encryption() (string, bool) {
	return h.stringValue(HeaderEncryption)
}

// Type gets the envelope media type from JOSE headers.
func (h Headers) Type() (string, bool) {
	return h.stringValue(HeaderType)
}

// ContentType gets the payload content type from JOSE headers.
func (h Headers) ContentType() (string, bool) {
	return h.stringValue(HeaderContentType)
}

// Critical gets the list of critical extension header names. A present but
// malformed crit value (non-array, non-string entry, or empty list) is
// reported through the bool result as not ok.
func (h Headers) Critical() ([]string, bool) {
	raw, ok := h[HeaderCritical]
	if !ok {
		return nil, true
	}

	entries, ok := raw.([]interface{})
	if !ok {
		// A caller may have set []string directly rather than through JSON.
		strs, okStr := raw.([]string)
		if !okStr || len(strs) == 0 {
			return nil, false
		}

		return strs, true
	}

	if len(entries) == 0 {
		return nil, false
	}

	names := make([]string, 0, len(entries))

	for _, e := range entries {
		name, ok := e.(string)
		if !ok {
			return nil, false
		}

		names = append(names, name)
	}

	return names, true
}

func (h Headers) stringValue(key string) (string, bool) {
	raw, ok := h[key]
	if !ok {
		return "", false
	}

	str, ok := raw.(string)

	return str, ok
}

func (h Headers) clone() Headers {
	copied := make(Headers, len(h))
	for k, v := range h {
		copied[k] = v
	}

	return copied
}

// requireString returns the named header or MissingHeaderError. An empty
// string value counts as missing.
func (h Headers) requireString(field string) (string, error) {
	value, ok := h.stringValue(field)
	if !ok || value == "" {
		return "", &MissingHeaderError{Field: field}
	}

	return value, nil
}

// checkCritical enforces RFC 7515 section 4.1.11: every listed extension must
// be understood by this side. It runs before any cryptographic processing.
func checkCritical(h Headers, understood map[string]struct{}) error {
	names, ok := h.Critical()
	if !ok {
		return &CriticalHeaderError{Field: HeaderCritical}
	}

	for _, name := range names {
		if _, known := understood[name]; !known {
			return &CriticalHeaderError{Field: name}
		}
	}

	return nil
}

func marshalHeaders(h Headers) ([]byte, error) {
	headersJSON, err := json.Marshal(h)
	if err != nil {
		return nil, fmt.Errorf("serialize JOSE headers: %w", err)
	}

	return headersJSON, nil
}
