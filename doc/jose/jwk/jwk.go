/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package jwk

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"

	"github.com/btcsuite/btcd/btcec"

	"github.com/sealcrypt/jose-go/doc/jose/jwa"
)

// JWK is the JSON Web Key representation of public key material
// (RFC 7517). It carries only the members this module produces and
// consumes, in particular the "epk" header of ECDH-ES envelopes.
type JWK struct {
	Kty string `json:"kty"`
	Crv string `json:"crv,omitempty"`
	X   string `json:"x,omitempty"`
	Y   string `json:"y,omitempty"`
	N   string `json:"n,omitempty"`
	E   string `json:"e,omitempty"`
}

// Curve names registered for JOSE use.
const (
	CurveP256      = "P-256"
	CurveP384      = "P-384"
	CurveP521      = "P-521"
	CurveSecp256k1 = "secp256k1"
	CurveEd25519   = "Ed25519"
)

func curveName(curve elliptic.Curve) (string, error) {
	// btcec's secp256k1 params carry no standard name, compare the singleton.
	if curve == btcec.S256() {
		return CurveSecp256k1, nil
	}

	switch curve {
	case elliptic.P256():
		return CurveP256, nil
	case elliptic.P384():
		return CurveP384, nil
	case elliptic.P521():
		return CurveP521, nil
	default:
		return "", fmt.Errorf("jwk: unsupported curve %q", curve.Params().Name)
	}
}

func curveByName(name string) (elliptic.Curve, error) {
	switch name {
	case CurveP256:
		return elliptic.P256(), nil
	case CurveP384:
		return elliptic.P384(), nil
	case CurveP521:
		return elliptic.P521(), nil
	case CurveSecp256k1:
		return btcec.S256(), nil
	default:
		return nil, fmt.Errorf("jwk: unsupported curve %q", name)
	}
}

// PublicJWK returns the JWK form of the key's public material. Symmetric
// secrets have none.
func (k *Key) PublicJWK() (*JWK, error) {
	switch pub := k.public.(type) {
	case *rsa.PublicKey:
		return &JWK{
			Kty: string(jwa.KeyTypeRSA),
			N:   base64.RawURLEncoding.EncodeToString(pub.N.Bytes()),
			E:   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(pub.E)).Bytes()),
		}, nil
	case *ecdsa.PublicKey:
		crv, err := curveName(pub.Curve)
		if err != nil {
			return nil, err
		}

		size := (pub.Curve.Params().BitSize + 7) / 8
		x := make([]byte, size)
		y := make([]byte, size)
		pub.X.FillBytes(x)
		pub.Y.FillBytes(y)

		return &JWK{
			Kty: string(jwa.KeyTypeEC),
			Crv: crv,
			X:   base64.RawURLEncoding.EncodeToString(x),
			Y:   base64.RawURLEncoding.EncodeToString(y),
		}, nil
	case ed25519.PublicKey:
		return &JWK{
			Kty: string(jwa.KeyTypeOKP),
			Crv: CurveEd25519,
			X:   base64.RawURLEncoding.EncodeToString(pub),
		}, nil
	default:
		return nil, errors.New("jwk: key has no public representation")
	}
}

// ParseJWK builds a public Key from a marshalled JWK, as found in "epk"
// headers. Only EC and OKP keys are accepted there.
func ParseJWK(data []byte) (*Key, error) {
	var j JWK

	if err := json.Unmarshal(data, &j); err != nil {
		return nil, fmt.Errorf("jwk: unmarshal: %w", err)
	}

	return j.PublicKey()
}

// PublicKey converts the JWK into a capability-tagged Key.
func (j *JWK) PublicKey() (*Key, error) {
	switch jwa.KeyType(j.Kty) {
	case jwa.KeyTypeEC:
		curve, err := curveByName(j.Crv)
		if err != nil {
			return nil, err
		}

		x, err := decodeCoordinate(j.X, curve)
		if err != nil {
			return nil, fmt.Errorf("jwk: x: %w", err)
		}

		y, err := decodeCoordinate(j.Y, curve)
		if err != nil {
			return nil, fmt.Errorf("jwk: y: %w", err)
		}

		pub := &ecdsa.PublicKey{Curve: curve, X: x, Y: y}
		if !curve.IsOnCurve(pub.X, pub.Y) {
			return nil, errors.New("jwk: point is not on curve")
		}

		return NewPublic(pub)
	case jwa.KeyTypeOKP:
		if j.Crv != CurveEd25519 {
			return nil, fmt.Errorf("jwk: unsupported curve %q", j.Crv)
		}

		x, err := base64.RawURLEncoding.Strict().DecodeString(j.X)
		if err != nil {
			return nil, fmt.Errorf("jwk: x: %w", err)
		}

		if len(x) != ed25519.PublicKeySize {
			return nil, fmt.Errorf("jwk: invalid Ed25519 key size %d", len(x))
		}

		return NewPublic(ed25519.PublicKey(x))
	default:
		return nil, fmt.Errorf("jwk: unsupported key type %q", j.Kty)
	}
}

func decodeCoordinate(s string, curve elliptic.Curve) (*big.Int, error) {
	raw, err := base64.RawURLEncoding.Strict().DecodeString(s)
	if err != nil {
		return nil, err
	}

	size := (curve.Params().BitSize + 7) / 8
	if len(raw) != size {
		return nil, fmt.Errorf("invalid coordinate size %d", len(raw))
	}

	return new(big.Int).SetBytes(raw), nil
}
