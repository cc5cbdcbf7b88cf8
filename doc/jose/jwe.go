/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package jose

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// JSONWebEncryption represents a JWE as defined in https://tools.ietf.org/html/rfc7516.
// All binary fields hold raw (decoded) bytes.
type JSONWebEncryption struct {
	ProtectedHeaders   Headers
	UnprotectedHeaders Headers
	EncryptedKey       []byte
	IV                 []byte
	Ciphertext         []byte
	Tag                []byte
	AAD                []byte

	// origProtected is the protected header segment exactly as produced or
	// received. It feeds the additional authenticated data: re-encoding the
	// parsed header could not be guaranteed byte-identical.
	origProtected string
}

// rawJSONWebEncryption is the flattened JWE JSON serialization
// (https://tools.ietf.org/html/rfc7516#section-7.2.2).
type rawJSONWebEncryption struct {
	ProtectedHeaders   string          `json:"protected,omitempty"`
	UnprotectedHeaders json.RawMessage `json:"unprotected,omitempty"`
	EncryptedKey       string          `json:"encrypted_key,omitempty"`
	AAD                string          `json:"aad,omitempty"`
	IV                 string          `json:"iv,omitempty"`
	Ciphertext         string          `json:"ciphertext"`
	Tag                string          `json:"tag,omitempty"`
}

var errEmptyCiphertext = errors.New("ciphertext cannot be empty")

type marshalFunc func(interface{}) ([]byte, error)

// CompactSerialize serializes the JWE into its 5-segment compact form. The
// compact form has no room for unprotected headers or external AAD.
func (e *JSONWebEncryption) CompactSerialize() (string, error) {
	if len(e.UnprotectedHeaders) > 0 {
		return "", errors.New("compact serialization cannot carry unprotected headers")
	}

	if len(e.AAD) > 0 {
		return "", errors.New("compact serialization cannot carry AAD")
	}

	if e.origProtected == "" {
		return "", errors.New("missing protected header segment")
	}

	return joinCompact([]string{
		e.origProtected,
		b64.EncodeToString(e.EncryptedKey),
		b64.EncodeToString(e.IV),
		b64.EncodeToString(e.Ciphertext),
		b64.EncodeToString(e.Tag),
	}), nil
}

// Serialize serializes the JWE into the flattened JSON form defined in
// https://tools.ietf.org/html/rfc7516#section-7.2.2.
func (e *JSONWebEncryption) Serialize(marshal marshalFunc) (string, error) {
	if len(e.Ciphertext) == 0 {
		return "", errEmptyCiphertext
	}

	var unprotectedHeaders json.RawMessage

	if e.UnprotectedHeaders != nil {
		unprotectedJSON, err := marshal(e.UnprotectedHeaders)
		if err != nil {
			return "", err
		}

		unprotectedHeaders = unprotectedJSON
	}

	preparedJWE := rawJSONWebEncryption{
		ProtectedHeaders:   e.origProtected,
		UnprotectedHeaders: unprotectedHeaders,
		EncryptedKey:       b64.EncodeToString(e.EncryptedKey),
		AAD:                b64.EncodeToString(e.AAD),
		IV:                 b64.EncodeToString(e.IV),
		Ciphertext:         b64.EncodeToString(e.Ciphertext),
		Tag:                b64.EncodeToString(e.Tag),
	}

	serializedJWE, err := marshal(preparedJWE)
	if err != nil {
		return "", err
	}

	return string(serializedJWE), nil
}

// Deserialize parses a JWE from either the compact or the flattened JSON
// serialization.
func Deserialize(serialization string) (*JSONWebEncryption, error) {
	if strings.HasPrefix(strings.TrimSpace(serialization), "{") {
		return deserializeJSON(serialization)
	}

	return deserializeCompact(serialization)
}

func deserializeCompact(serialization string) (*JSONWebEncryption, error) {
	segments, err := splitCompact(serialization, jweCompactSegments)
	if err != nil {
		return nil, err
	}

	protectedHeaders, err := parseProtectedHeaders(segments[0])
	if err != nil {
		return nil, err
	}

	encryptedKey, err := decodeSegment(segments[1])
	if err != nil {
		return nil, err
	}

	iv, err := decodeSegment(segments[2])
	if err != nil {
		return nil, err
	}

	ciphertext, err := decodeSegment(segments[3])
	if err != nil {
		return nil, err
	}

	tag, err := decodeSegment(segments[4])
	if err != nil {
		return nil, err
	}

	return &JSONWebEncryption{
		ProtectedHeaders: protectedHeaders,
		EncryptedKey:     encryptedKey,
		IV:               iv,
		Ciphertext:       ciphertext,
		Tag:              tag,
		origProtected:    segments[0],
	}, nil
}

func deserializeJSON(serialization string) (*JSONWebEncryption, error) {
	var raw rawJSONWebEncryption

	if err := json.Unmarshal([]byte(serialization), &raw); err != nil {
		return nil, fmt.Errorf("%w: unmarshal JWE JSON: %s", ErrInvalidCompactForm, err)
	}

	protectedHeaders, err := parseProtectedHeaders(raw.ProtectedHeaders)
	if err != nil {
		return nil, err
	}

	var unprotectedHeaders Headers

	if len(raw.UnprotectedHeaders) > 0 {
		if err := json.Unmarshal(raw.UnprotectedHeaders, &unprotectedHeaders); err != nil {
			return nil, fmt.Errorf("%w: unmarshal unprotected headers: %s", ErrInvalidCompactForm, err)
		}
	}

	fields := []struct {
		segment string
		dest    *[]byte
	}{
		{raw.EncryptedKey, new([]byte)},
		{raw.AAD, new([]byte)},
		{raw.IV, new([]byte)},
		{raw.Ciphertext, new([]byte)},
		{raw.Tag, new([]byte)},
	}

	for i := range fields {
		decoded, err := decodeSegment(fields[i].segment)
		if err != nil {
			return nil, err
		}

		*fields[i].dest = decoded
	}

	return &JSONWebEncryption{
		ProtectedHeaders:   protectedHeaders,
		UnprotectedHeaders: unprotectedHeaders,
		EncryptedKey:       *fields[0].dest,
		AAD:                *fields[1].dest,
		IV:                 *fields[2].dest,
		Ciphertext:         *fields[3].dest,
		Tag:                *fields[4].dest,
		origProtected:      raw.ProtectedHeaders,
	}, nil
}

func parseProtectedHeaders(segment string) (Headers, error) {
	headersJSON, err := decodeSegment(segment)
	if err != nil {
		return nil, err
	}

	var headers Headers
	if err := json.Unmarshal(headersJSON, &headers); err != nil {
		return nil, fmt.Errorf("%w: unmarshal JSON headers: %s", ErrInvalidCompactForm, err)
	}

	return headers, nil
}

// computeAuthData builds the additional authenticated data of RFC 7516
// section 5.1 step 14: the ASCII bytes of the protected header segment,
// extended with the base64url of the external AAD when present.
func computeAuthData(origProtected string, aad []byte) []byte {
	if len(aad) == 0 {
		return []byte(origProtected)
	}

	return []byte(origProtected + "." + b64.EncodeToString(aad))
}
