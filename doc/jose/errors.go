/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package jose

import (
	"errors"
	"fmt"
)

// Structural errors are reported precisely and before any cryptographic
// work. Cryptographic outcomes are deliberately collapsed: verification and
// decryption each fail with a single opaque error so that the cause (bad
// key, bad tag, bad padding) is not observable by the peer.
var (
	// ErrInvalidCompactForm reports a malformed compact serialization:
	// wrong segment count or a segment that is not valid unpadded base64url.
	ErrInvalidCompactForm = errors.New("invalid compact serialization")

	// ErrBase64Decode reports a segment that failed strict base64url
	// decoding. It is always wrapped by ErrInvalidCompactForm.
	ErrBase64Decode = errors.New("invalid base64url encoding")

	// ErrAlgorithmMismatch reports that the header's declared algorithm is
	// incompatible with the caller-supplied key, or the key lacks the
	// capability the operation needs.
	ErrAlgorithmMismatch = errors.New("algorithm does not match key")

	// ErrSignatureVerification is the only error returned for a failed
	// signature check.
	ErrSignatureVerification = errors.New("signature verification failed")

	// ErrDecryption is the only error returned once JWE decryption has
	// passed header validation.
	ErrDecryption = errors.New("decryption failed")
)

// MissingHeaderError reports a required header field that is absent or empty.
type MissingHeaderError struct {
	Field string
}

func (e *MissingHeaderError) Error() string {
	return fmt.Sprintf("%q JOSE header is missing", e.Field)
}

// CriticalHeaderError reports a "crit" entry the receiving side does not
// understand, or a malformed "crit" value itself.
type CriticalHeaderError struct {
	Field string
}

func (e *CriticalHeaderError) Error() string {
	return fmt.Sprintf("unsupported critical header %q", e.Field)
}
