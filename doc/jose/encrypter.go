/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package jose

import (
	"crypto/aes"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"fmt"

	josecipher "github.com/go-jose/go-jose/v3/cipher"
	"github.com/google/tink/go/subtle/random"

	"github.com/sealcrypt/jose-go/crypto/primitive/aead/subtle"
	"github.com/sealcrypt/jose-go/doc/jose/jwa"
	"github.com/sealcrypt/jose-go/doc/jose/jwk"
)

// Encrypter interface to Encrypt JWE messages.
type Encrypter interface {
	// EncryptWithAuthData encrypt plaintext and aad sent to more than one recipient.
	EncryptWithAuthData(plaintext, aad []byte) (*JSONWebEncryption, error)
	// Encrypt plaintext with empty aad.
	Encrypt(plaintext []byte) (*JSONWebEncryption, error)
}

// JWEEncrypt is responsible for encrypting a plaintext into a JWE for one
// recipient. The header's "alg" selects the key management algorithm and
// "enc" the content encryption algorithm; both must be compatible with the
// supplied recipient key.
type JWEEncrypt struct {
	protectedHeaders Headers
	recipientKey     *jwk.Key
	kmAlg            *jwa.KeyManagementAlgorithm
	encAlg           *jwa.ContentEncryption
}

// NewJWEEncrypt creates a JWEEncrypt instance. Header and key compatibility
// is validated here so that Encrypt itself can only fail on primitive
// errors.
func NewJWEEncrypt(protectedHeaders Headers, recipientKey *jwk.Key) (*JWEEncrypt, error) {
	alg, err := protectedHeaders.requireString(HeaderAlgorithm)
	if err != nil {
		return nil, err
	}

	enc, err := protectedHeaders.requireString(HeaderEncryption)
	if err != nil {
		return nil, err
	}

	kmAlg, err := jwa.ResolveKeyManagement(alg)
	if err != nil {
		return nil, err
	}

	encAlg, err := jwa.ResolveContentEncryption(enc)
	if err != nil {
		return nil, err
	}

	if err := matchEncryptionKey(kmAlg, encAlg, recipientKey, jwk.CapabilityEncrypt); err != nil {
		return nil, err
	}

	return &JWEEncrypt{
		protectedHeaders: protectedHeaders,
		recipientKey:     recipientKey,
		kmAlg:            kmAlg,
		encAlg:           encAlg,
	}, nil
}

// Encrypt plaintext with empty aad.
func (je *JWEEncrypt) Encrypt(plaintext []byte) (*JSONWebEncryption, error) {
	return je.EncryptWithAuthData(plaintext, nil)
}

// EncryptWithAuthData encrypts plaintext with additional authenticated data.
// A JWE carrying external aad cannot be compact serialized.
func (je *JWEEncrypt) EncryptWithAuthData(plaintext, aad []byte) (*JSONWebEncryption, error) {
	headers := je.protectedHeaders.clone()

	cek, encryptedKey, err := je.establishCEK(headers)
	if err != nil {
		return nil, fmt.Errorf("jweencrypt: %w", err)
	}

	headersJSON, err := marshalHeaders(headers)
	if err != nil {
		return nil, fmt.Errorf("jweencrypt: %w", err)
	}

	origProtected := b64.EncodeToString(headersJSON)
	authData := computeAuthData(origProtected, aad)

	contentCipher, err := newContentAEAD(je.encAlg, cek)
	if err != nil {
		return nil, fmt.Errorf("jweencrypt: %w", err)
	}

	iv := random.GetRandomBytes(uint32(je.encAlg.IVSize))

	ciphertext, tag, err := contentCipher.Encrypt(plaintext, iv, authData)
	if err != nil {
		return nil, fmt.Errorf("jweencrypt: %w", err)
	}

	return &JSONWebEncryption{
		ProtectedHeaders: headers,
		EncryptedKey:     encryptedKey,
		IV:               iv,
		Ciphertext:       ciphertext,
		Tag:              tag,
		AAD:              aad,
		origProtected:    origProtected,
	}, nil
}

// establishCEK generates or derives the content encryption key and its
// encrypted form per the key management mode (RFC 7516 section 5.1 steps
// 2-7). ECDH-ES modes add the ephemeral public key to headers.
func (je *JWEEncrypt) establishCEK(headers Headers) (cek, encryptedKey []byte, err error) {
	switch je.kmAlg.Mode {
	case jwa.ModeDirect:
		return je.recipientKey.Secret(), nil, nil

	case jwa.ModeKeyWrap:
		cek = random.GetRandomBytes(uint32(je.encAlg.KeySize))

		encryptedKey, err = aesKeyWrap(je.recipientKey.Secret(), cek)
		if err != nil {
			return nil, nil, err
		}

		return cek, encryptedKey, nil

	case jwa.ModeKeyEncryption:
		cek = random.GetRandomBytes(uint32(je.encAlg.KeySize))

		pub := je.recipientKey.Public().(*rsa.PublicKey)

		encryptedKey, err = rsa.EncryptOAEP(je.kmAlg.OAEPHash.New(), rand.Reader, pub, cek, nil)
		if err != nil {
			return nil, nil, err
		}

		return cek, encryptedKey, nil

	case jwa.ModeDirectKeyAgreement:
		cek, err = je.deriveECDHES(headers, je.encAlg.Name, je.encAlg.KeySize)

		return cek, nil, err

	case jwa.ModeKeyAgreementWithKeyWrap:
		kek, err := je.deriveECDHES(headers, je.kmAlg.Name, je.kmAlg.KeySize)
		if err != nil {
			return nil, nil, err
		}

		cek = random.GetRandomBytes(uint32(je.encAlg.KeySize))

		encryptedKey, err = aesKeyWrap(kek, cek)
		if err != nil {
			return nil, nil, err
		}

		return cek, encryptedKey, nil

	default:
		return nil, nil, &jwa.UnsupportedAlgorithmError{Alg: je.kmAlg.Name}
	}
}

// deriveECDHES generates an ephemeral key pair on the recipient's curve,
// records it in the "epk" header and runs the Concat KDF of RFC 7518
// section 4.6.
func (je *JWEEncrypt) deriveECDHES(headers Headers, algID string, keySize int) ([]byte, error) {
	recipientPub := je.recipientKey.Public().(*ecdsa.PublicKey)

	ephemeral, err := ecdsa.GenerateKey(recipientPub.Curve, rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate ephemeral key: %w", err)
	}

	ephemeralKey, err := jwk.NewPublic(&ephemeral.PublicKey)
	if err != nil {
		return nil, err
	}

	epk, err := ephemeralKey.PublicJWK()
	if err != nil {
		return nil, err
	}

	headers[HeaderEPK] = epk

	apu, apv, err := partyInfo(headers)
	if err != nil {
		return nil, err
	}

	return josecipher.DeriveECDHES(algID, apu, apv, ephemeral, recipientPub, keySize), nil
}

func aesKeyWrap(kek, cek []byte) ([]byte, error) {
	block, err := aes.NewCipher(kek)
	if err != nil {
		return nil, err
	}

	return josecipher.KeyWrap(block, cek)
}

func aesKeyUnwrap(kek, encryptedKey []byte) ([]byte, error) {
	block, err := aes.NewCipher(kek)
	if err != nil {
		return nil, err
	}

	return josecipher.KeyUnwrap(block, encryptedKey)
}

// partyInfo decodes the apu/apv headers fed into the Concat KDF.
func partyInfo(headers Headers) (apu, apv []byte, err error) {
	if raw, ok := headers.stringValue(HeaderAPU); ok {
		apu, err = b64.DecodeString(raw)
		if err != nil {
			return nil, nil, fmt.Errorf("decode apu: %w", err)
		}
	}

	if raw, ok := headers.stringValue(HeaderAPV); ok {
		apv, err = b64.DecodeString(raw)
		if err != nil {
			return nil, nil, fmt.Errorf("decode apv: %w", err)
		}
	}

	return apu, apv, nil
}

func newContentAEAD(encAlg *jwa.ContentEncryption, cek []byte) (*subtle.ContentAEAD, error) {
	switch encAlg.Name {
	case jwa.A128GCM, jwa.A192GCM, jwa.A256GCM:
		return subtle.NewAESGCM(cek)
	case jwa.A128CBCHS256, jwa.A192CBCHS384, jwa.A256CBCHS512:
		return subtle.NewAESCBCHMAC(cek)
	case jwa.XC20P:
		return subtle.NewXChaCha20Poly1305(cek)
	default:
		return nil, &jwa.UnsupportedAlgorithmError{Alg: encAlg.Name}
	}
}

// nistCurves are the curves usable with ECDH-ES key agreement.
var nistCurves = map[elliptic.Curve]struct{}{
	elliptic.P256(): {},
	elliptic.P384(): {},
	elliptic.P521(): {},
}

// matchEncryptionKey enforces the capability and key-family compatibility of
// the caller-supplied key with the resolved JWE algorithms, including the
// fixed key sizes of the symmetric modes.
func matchEncryptionKey(kmAlg *jwa.KeyManagementAlgorithm, encAlg *jwa.ContentEncryption,
	key *jwk.Key, capability jwk.Capability) error {
	if key == nil || !key.Has(capability) {
		return ErrAlgorithmMismatch
	}

	if key.KeyType() != kmAlg.KeyType {
		return ErrAlgorithmMismatch
	}

	switch kmAlg.Mode {
	case jwa.ModeDirect:
		if len(key.Secret()) != encAlg.KeySize {
			return ErrAlgorithmMismatch
		}
	case jwa.ModeKeyWrap:
		if len(key.Secret()) != kmAlg.KeySize {
			return ErrAlgorithmMismatch
		}
	case jwa.ModeKeyEncryption:
		pub, ok := key.Public().(*rsa.PublicKey)
		if !ok || pub.N.BitLen() < 2048 {
			return ErrAlgorithmMismatch
		}
	case jwa.ModeDirectKeyAgreement, jwa.ModeKeyAgreementWithKeyWrap:
		pub, ok := key.Public().(*ecdsa.PublicKey)
		if !ok {
			return ErrAlgorithmMismatch
		}

		if _, ok := nistCurves[pub.Curve]; !ok {
			return ErrAlgorithmMismatch
		}
	}

	return nil
}
