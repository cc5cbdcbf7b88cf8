/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package jose

import (
	"crypto"
	"crypto/ecdsa"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/sealcrypt/jose-go/doc/jose/jwa"
	"github.com/sealcrypt/jose-go/doc/jose/jwk"
)

// JSONWebSignature defines a signed envelope (https://tools.ietf.org/html/rfc7515).
type JSONWebSignature struct {
	ProtectedHeaders   Headers
	UnprotectedHeaders Headers
	Payload            []byte

	signature     []byte
	origProtected string
}

// Signature returns the signature bytes.
func (s *JSONWebSignature) Signature() []byte {
	if s.signature == nil {
		return nil
	}

	sCopy := make([]byte, len(s.signature))
	copy(sCopy, s.signature)

	return sCopy
}

// NewJWS signs payload into a JWS under the given protected headers and key.
// The header's "alg" must resolve to a signature algorithm whose key family
// matches the supplied key, and the key must carry the sign capability.
func NewJWS(protectedHeaders Headers, unprotectedHeaders Headers, key *jwk.Key, payload []byte) (*JSONWebSignature, error) {
	alg, err := protectedHeaders.requireString(HeaderAlgorithm)
	if err != nil {
		return nil, err
	}

	sigAlg, err := jwa.ResolveSignature(alg)
	if err != nil {
		return nil, err
	}

	if err := matchSignatureKey(sigAlg, key, jwk.CapabilitySign); err != nil {
		return nil, err
	}

	headersJSON, err := marshalHeaders(protectedHeaders)
	if err != nil {
		return nil, err
	}

	origProtected := b64.EncodeToString(headersJSON)

	signingInput, err := buildSigningInput(origProtected, protectedHeaders, payload)
	if err != nil {
		return nil, err
	}

	signature, err := sigAlg.Sign(signingKeyMaterial(sigAlg, key), signingInput)
	if err != nil {
		return nil, fmt.Errorf("sign JWS verification data: %w", err)
	}

	return &JSONWebSignature{
		ProtectedHeaders:   protectedHeaders,
		UnprotectedHeaders: unprotectedHeaders,
		Payload:            payload,
		signature:          signature,
		origProtected:      origProtected,
	}, nil
}

// SerializeCompact serializes the JWS into its compact form. With detached
// set, the payload segment is left empty (RFC 7515 appendix F).
func (s *JSONWebSignature) SerializeCompact(detached bool) (string, error) {
	payloadSegment := ""

	if !detached {
		b64Payload, err := b64PayloadFlag(s.ProtectedHeaders)
		if err != nil {
			return "", err
		}

		if b64Payload {
			payloadSegment = b64.EncodeToString(s.Payload)
		} else {
			payloadSegment = string(s.Payload)

			if strings.Contains(payloadSegment, ".") {
				return "", errors.New("unencoded payload contains '.'")
			}
		}
	}

	return joinCompact([]string{s.origProtected, payloadSegment, b64.EncodeToString(s.signature)}), nil
}

// IsCompactJWS checks that the given serialization has the shape of a
// compact JWS.
func IsCompactJWS(s string) bool {
	parts := strings.Split(s, ".")

	return len(parts) == jwsCompactSegments
}

type parseOpts struct {
	detachedPayload []byte
	allowedAlgs     map[string]struct{}
	criticalHeaders map[string]struct{}
}

// ParseOpt is a JWS parser option.
type ParseOpt func(opts *parseOpts)

// WithJWSDetachedPayload option is for definition of JWS detached payload.
func WithJWSDetachedPayload(payload []byte) ParseOpt {
	return func(opts *parseOpts) {
		opts.detachedPayload = payload
	}
}

// WithAllowedAlgorithms restricts verification to the listed "alg" values.
// Listing jwa.None explicitly is the only way to accept unsecured JWSs; by
// default "none" is rejected like any unknown identifier.
func WithAllowedAlgorithms(algs ...string) ParseOpt {
	return func(opts *parseOpts) {
		opts.allowedAlgs = make(map[string]struct{}, len(algs))
		for _, alg := range algs {
			opts.allowedAlgs[alg] = struct{}{}
		}
	}
}

// WithCriticalHeaders declares extension headers the caller understands and
// applies, extending the set accepted inside "crit".
func WithCriticalHeaders(names ...string) ParseOpt {
	return func(opts *parseOpts) {
		opts.criticalHeaders = make(map[string]struct{}, len(names))
		for _, name := range names {
			opts.criticalHeaders[name] = struct{}{}
		}
	}
}

// ParseJWS parses a compact JWS and verifies its signature with the supplied
// key. The algorithm/key compatibility is checked against the caller's key,
// never inferred from the header alone. All signature check failures collapse
// into ErrSignatureVerification.
func ParseJWS(serialization string, key *jwk.Key, opts ...ParseOpt) (*JSONWebSignature, error) {
	pOpts := &parseOpts{}

	for _, opt := range opts {
		opt(pOpts)
	}

	if strings.HasPrefix(strings.TrimSpace(serialization), "{") {
		return nil, errors.New("JWS JSON serialization is not supported")
	}

	segments, err := splitCompact(serialization, jwsCompactSegments)
	if err != nil {
		return nil, err
	}

	headersJSON, err := decodeSegment(segments[0])
	if err != nil {
		return nil, err
	}

	var headers Headers
	if err := json.Unmarshal(headersJSON, &headers); err != nil {
		return nil, fmt.Errorf("%w: unmarshal JSON headers: %s", ErrInvalidCompactForm, err)
	}

	// Critical extensions gate whether the rest of the header may be
	// trusted, so they are validated before anything else.
	if err := checkCritical(headers, understoodHeaders(pOpts.criticalHeaders)); err != nil {
		return nil, err
	}

	alg, err := headers.requireString(HeaderAlgorithm)
	if err != nil {
		return nil, err
	}

	if pOpts.allowedAlgs != nil {
		if _, ok := pOpts.allowedAlgs[alg]; !ok {
			return nil, &jwa.UnsupportedAlgorithmError{Alg: alg}
		}
	}

	if alg == jwa.None {
		if pOpts.allowedAlgs == nil {
			return nil, &jwa.UnsupportedAlgorithmError{Alg: alg}
		}

		return parseUnsecuredJWS(segments, headers, pOpts)
	}

	sigAlg, err := jwa.ResolveSignature(alg)
	if err != nil {
		return nil, err
	}

	if err := matchSignatureKey(sigAlg, key, jwk.CapabilityVerify); err != nil {
		return nil, err
	}

	payload, signingInput, err := jwsVerificationData(segments, headers, pOpts)
	if err != nil {
		return nil, err
	}

	signature, err := decodeSegment(segments[2])
	if err != nil {
		return nil, err
	}

	if err := sigAlg.Verify(verificationKeyMaterial(sigAlg, key), signingInput, signature); err != nil {
		return nil, ErrSignatureVerification
	}

	return &JSONWebSignature{
		ProtectedHeaders: headers,
		Payload:          payload,
		signature:        signature,
		origProtected:    segments[0],
	}, nil
}

// parseUnsecuredJWS handles "none", reachable only through an explicit
// allow-list. The signature segment must be empty.
func parseUnsecuredJWS(segments []string, headers Headers, pOpts *parseOpts) (*JSONWebSignature, error) {
	if segments[2] != "" {
		return nil, ErrSignatureVerification
	}

	payload, _, err := jwsVerificationData(segments, headers, pOpts)
	if err != nil {
		return nil, err
	}

	return &JSONWebSignature{
		ProtectedHeaders: headers,
		Payload:          payload,
		origProtected:    segments[0],
	}, nil
}

// jwsVerificationData recovers the payload bytes and the exact signing input.
// The signing input reuses the header segment as received: re-encoding the
// parsed header could not be guaranteed byte-identical.
func jwsVerificationData(segments []string, headers Headers, pOpts *parseOpts) (payload, signingInput []byte, err error) {
	b64Payload, err := b64PayloadFlag(headers)
	if err != nil {
		return nil, nil, err
	}

	payloadSegment := segments[1]

	switch {
	case pOpts.detachedPayload != nil:
		if payloadSegment != "" {
			return nil, nil, fmt.Errorf("%w: payload segment must be empty for detached payload", ErrInvalidCompactForm)
		}

		payload = pOpts.detachedPayload

		if b64Payload {
			payloadSegment = b64.EncodeToString(payload)
		} else {
			payloadSegment = string(payload)
		}
	case b64Payload:
		payload, err = decodeSegment(payloadSegment)
		if err != nil {
			return nil, nil, err
		}
	default:
		payload = []byte(payloadSegment)
	}

	signingInput = []byte(segments[0] + "." + payloadSegment)

	return payload, signingInput, nil
}

func buildSigningInput(origProtected string, headers Headers, payload []byte) ([]byte, error) {
	b64Payload, err := b64PayloadFlag(headers)
	if err != nil {
		return nil, err
	}

	payloadSegment := string(payload)
	if b64Payload {
		payloadSegment = b64.EncodeToString(payload)
	}

	return []byte(origProtected + "." + payloadSegment), nil
}

func b64PayloadFlag(headers Headers) (bool, error) {
	raw, ok := headers[HeaderB64Payload]
	if !ok {
		return true, nil
	}

	flag, ok := raw.(bool)
	if !ok {
		return false, errors.New("invalid b64 header")
	}

	return flag, nil
}

func understoodHeaders(extra map[string]struct{}) map[string]struct{} {
	understood := map[string]struct{}{
		HeaderB64Payload: {},
	}

	for name := range extra {
		understood[name] = struct{}{}
	}

	return understood
}

// matchSignatureKey enforces the capability and key-family compatibility of
// the caller-supplied key with the resolved algorithm.
func matchSignatureKey(alg *jwa.SignatureAlgorithm, key *jwk.Key, capability jwk.Capability) error {
	if key == nil || !key.Has(capability) {
		return ErrAlgorithmMismatch
	}

	if key.KeyType() != alg.KeyType {
		return ErrAlgorithmMismatch
	}

	if alg.KeyType == jwa.KeyTypeEC {
		pub, ok := key.Public().(*ecdsa.PublicKey)
		if !ok || pub.Curve != alg.Curve {
			return ErrAlgorithmMismatch
		}
	}

	return nil
}

func signingKeyMaterial(alg *jwa.SignatureAlgorithm, key *jwk.Key) crypto.PrivateKey {
	if alg.KeyType == jwa.KeyTypeOctet {
		return key.Secret()
	}

	return key.Private()
}

func verificationKeyMaterial(alg *jwa.SignatureAlgorithm, key *jwk.Key) crypto.PublicKey {
	if alg.KeyType == jwa.KeyTypeOctet {
		return key.Secret()
	}

	return key.Public()
}
