/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package jose

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// Segment counts of the two compact forms (RFC 7515 section 7.1,
// RFC 7516 section 7.1).
const (
	jwsCompactSegments = 3
	jweCompactSegments = 5
)

// base64url without padding, rejecting any trailing-bit garbage.
var b64 = base64.RawURLEncoding.Strict()

// splitCompact splits a compact serialization into its raw (still encoded)
// segments and validates the segment count. Segment contents are validated
// by decodeSegment at the point of use: a b64=false JWS carries its payload
// segment unencoded, so eager alphabet checks cannot apply uniformly. Empty
// segments are tolerated here; which positions may legally be empty is
// algorithm-dependent and checked by the engines.
func splitCompact(serialization string, expectedSegments int) ([]string, error) {
	segments := strings.Split(serialization, ".")
	if len(segments) != expectedSegments {
		return nil, fmt.Errorf("%w: expected %d segments, got %d",
			ErrInvalidCompactForm, expectedSegments, len(segments))
	}

	return segments, nil
}

// decodeSegment decodes one segment, rejecting padding characters and
// anything outside the base64url alphabet.
func decodeSegment(segment string) ([]byte, error) {
	decoded, err := b64.DecodeString(segment)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCompactForm, ErrBase64Decode)
	}

	return decoded, nil
}

func joinCompact(segments []string) string {
	return strings.Join(segments, ".")
}
