/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package jose

import (
	"crypto/ecdsa"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"fmt"

	josecipher "github.com/go-jose/go-jose/v3/cipher"
	"github.com/google/tink/go/subtle/random"

	"github.com/sealcrypt/jose-go/doc/jose/jwa"
	"github.com/sealcrypt/jose-go/doc/jose/jwk"
)

// Decrypter interface to Decrypt JWE messages.
type Decrypter interface {
	// Decrypt a deserialized JWE, decrypts its protected content and returns plaintext.
	Decrypt(jwe *JSONWebEncryption) ([]byte, error)
}

// JWEDecrypt is responsible for decrypting a JWE message and returning its
// protected plaintext. Header validation failures are reported precisely;
// once the CEK recovery starts, every failure collapses into ErrDecryption
// so the caller cannot be used as a padding or key-recovery oracle.
type JWEDecrypt struct {
	key             *jwk.Key
	criticalHeaders map[string]struct{}
}

// DecryptOpt is a JWEDecrypt option.
type DecryptOpt func(jd *JWEDecrypt)

// WithDecryptionCriticalHeaders declares extension headers the caller
// understands and applies, extending the set accepted inside "crit".
func WithDecryptionCriticalHeaders(names ...string) DecryptOpt {
	return func(jd *JWEDecrypt) {
		for _, name := range names {
			jd.criticalHeaders[name] = struct{}{}
		}
	}
}

// NewJWEDecrypt creates a new JWEDecrypt instance to decrypt a JWE message
// for the given recipient key.
func NewJWEDecrypt(key *jwk.Key, opts ...DecryptOpt) *JWEDecrypt {
	jd := &JWEDecrypt{
		key:             key,
		criticalHeaders: make(map[string]struct{}),
	}

	for _, opt := range opts {
		opt(jd)
	}

	return jd
}

// Decrypt a deserialized JWE, decrypts its protected content and returns plaintext.
func (jd *JWEDecrypt) Decrypt(jwe *JSONWebEncryption) ([]byte, error) {
	kmAlg, encAlg, err := jd.validateHeaders(jwe)
	if err != nil {
		return nil, err
	}

	cek, err := jd.recoverCEK(jwe, kmAlg, encAlg)
	if err != nil {
		return nil, ErrDecryption
	}

	contentCipher, err := newContentAEAD(encAlg, cek)
	if err != nil {
		return nil, ErrDecryption
	}

	authData := computeAuthData(jwe.origProtected, jwe.AAD)

	plaintext, err := contentCipher.Decrypt(jwe.Ciphertext, jwe.Tag, jwe.IV, authData)
	if err != nil {
		return nil, ErrDecryption
	}

	return plaintext, nil
}

// validateHeaders performs the structural checks that run before any
// cryptographic work: critical extensions first, then algorithm resolution
// and key compatibility against the caller-supplied key.
func (jd *JWEDecrypt) validateHeaders(jwe *JSONWebEncryption) (*jwa.KeyManagementAlgorithm, *jwa.ContentEncryption, error) {
	if jwe == nil || len(jwe.ProtectedHeaders) == 0 {
		return nil, nil, fmt.Errorf("jwedecrypt: jwe is missing protected headers")
	}

	if jwe.origProtected == "" {
		// Hand-built envelope: fix the AAD base from the headers we have.
		headersJSON, err := marshalHeaders(jwe.ProtectedHeaders)
		if err != nil {
			return nil, nil, fmt.Errorf("jwedecrypt: %w", err)
		}

		jwe.origProtected = b64.EncodeToString(headersJSON)
	}

	if err := checkCritical(jwe.ProtectedHeaders, jd.criticalHeaders); err != nil {
		return nil, nil, err
	}

	alg, err := jwe.ProtectedHeaders.requireString(HeaderAlgorithm)
	if err != nil {
		return nil, nil, err
	}

	enc, err := jwe.ProtectedHeaders.requireString(HeaderEncryption)
	if err != nil {
		return nil, nil, err
	}

	kmAlg, err := jwa.ResolveKeyManagement(alg)
	if err != nil {
		return nil, nil, err
	}

	encAlg, err := jwa.ResolveContentEncryption(enc)
	if err != nil {
		return nil, nil, err
	}

	if err := matchDecryptionKey(kmAlg, jd.key); err != nil {
		return nil, nil, err
	}

	return kmAlg, encAlg, nil
}

// recoverCEK reverses RFC 7516 section 5.2 steps 6-10. Callers map any
// returned error to ErrDecryption.
func (jd *JWEDecrypt) recoverCEK(jwe *JSONWebEncryption, kmAlg *jwa.KeyManagementAlgorithm,
	encAlg *jwa.ContentEncryption) ([]byte, error) {
	switch kmAlg.Mode {
	case jwa.ModeDirect:
		if len(jwe.EncryptedKey) > 0 {
			return nil, fmt.Errorf("unexpected encrypted key segment")
		}

		cek := jd.key.Secret()
		if len(cek) != encAlg.KeySize {
			return nil, fmt.Errorf("invalid cek size")
		}

		return cek, nil

	case jwa.ModeKeyWrap:
		kek := jd.key.Secret()
		if len(kek) != kmAlg.KeySize {
			return nil, fmt.Errorf("invalid kek size")
		}

		return aesKeyUnwrap(kek, jwe.EncryptedKey)

	case jwa.ModeKeyEncryption:
		priv, ok := jd.key.Private().(*rsa.PrivateKey)
		if !ok {
			return nil, fmt.Errorf("invalid key type")
		}

		cek, err := rsa.DecryptOAEP(kmAlg.OAEPHash.New(), rand.Reader, priv, jwe.EncryptedKey, nil)
		if err != nil {
			// Continue with a random CEK so that key decryption failures are
			// indistinguishable from content authentication failures.
			cek = random.GetRandomBytes(uint32(encAlg.KeySize))
		}

		return cek, nil

	case jwa.ModeDirectKeyAgreement:
		if len(jwe.EncryptedKey) > 0 {
			return nil, fmt.Errorf("unexpected encrypted key segment")
		}

		return jd.agreeECDHES(jwe, encAlg.Name, encAlg.KeySize)

	case jwa.ModeKeyAgreementWithKeyWrap:
		kek, err := jd.agreeECDHES(jwe, kmAlg.Name, kmAlg.KeySize)
		if err != nil {
			return nil, err
		}

		return aesKeyUnwrap(kek, jwe.EncryptedKey)

	default:
		return nil, &jwa.UnsupportedAlgorithmError{Alg: kmAlg.Name}
	}
}

// agreeECDHES recovers the shared key from the sender's ephemeral public key
// carried in the "epk" header.
func (jd *JWEDecrypt) agreeECDHES(jwe *JSONWebEncryption, algID string, keySize int) ([]byte, error) {
	priv, ok := jd.key.Private().(*ecdsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("invalid key type")
	}

	epk, err := extractEPK(jwe.ProtectedHeaders)
	if err != nil {
		return nil, err
	}

	ephemeralPub, ok := epk.Public().(*ecdsa.PublicKey)
	if !ok || ephemeralPub.Curve != priv.Curve {
		return nil, fmt.Errorf("epk curve mismatch")
	}

	apu, apv, err := partyInfo(jwe.ProtectedHeaders)
	if err != nil {
		return nil, err
	}

	return josecipher.DeriveECDHES(algID, apu, apv, priv, ephemeralPub, keySize), nil
}

// extractEPK reads the ephemeral public key header. The value is a generic
// map after JSON parsing and a *jwk.JWK when the envelope was produced in
// process; both are handled.
func extractEPK(headers Headers) (*jwk.Key, error) {
	raw, ok := headers[HeaderEPK]
	if !ok {
		return nil, &MissingHeaderError{Field: HeaderEPK}
	}

	if epk, ok := raw.(*jwk.JWK); ok {
		return epk.PublicKey()
	}

	epkJSON, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("marshal epk: %w", err)
	}

	return jwk.ParseJWK(epkJSON)
}

// matchDecryptionKey enforces the capability and key-family compatibility of
// the recipient key with the resolved key management algorithm.
func matchDecryptionKey(kmAlg *jwa.KeyManagementAlgorithm, key *jwk.Key) error {
	if key == nil || !key.Has(jwk.CapabilityDecrypt) {
		return ErrAlgorithmMismatch
	}

	if key.KeyType() != kmAlg.KeyType {
		return ErrAlgorithmMismatch
	}

	switch kmAlg.Mode {
	case jwa.ModeKeyEncryption:
		if _, ok := key.Private().(*rsa.PrivateKey); !ok {
			return ErrAlgorithmMismatch
		}
	case jwa.ModeDirectKeyAgreement, jwa.ModeKeyAgreementWithKeyWrap:
		priv, ok := key.Private().(*ecdsa.PrivateKey)
		if !ok {
			return ErrAlgorithmMismatch
		}

		if _, ok := nistCurves[priv.Curve]; !ok {
			return ErrAlgorithmMismatch
		}
	}

	return nil
}
