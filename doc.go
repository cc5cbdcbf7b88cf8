/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package josego implements the JOSE envelope formats: JWS signing and
// verification (RFC 7515) and JWE encryption and decryption (RFC 7516),
// over a closed registry of JWA algorithms (RFC 7518).
//
// Packages for end developer usage
//
// doc/jose: The envelope engines. NewJWS/ParseJWS produce and verify compact
// JWSs; JWEEncrypt/JWEDecrypt produce and open JWEs in compact or flattened
// JSON form.
//
// doc/jose/jwk: Capability-tagged key handles wrapping caller-supplied key
// material, JWK conversion and RFC 7638 thumbprints.
//
// doc/jose/jwa: The algorithm registry, resolved per role (signature, key
// management, content encryption).
//
// doc/jwt: A thin signed-JWT wrapper over doc/jose.
//
// Basic workflow
//
//      1) Wrap your key material with jwk.NewSymmetric, jwk.NewPublic or jwk.NewPrivate.
//      2) Build the protected headers, at minimum "alg" (and "enc" for JWE).
//      3) Sign with jose.NewJWS + SerializeCompact, or encrypt with jose.NewJWEEncrypt.
//      4) Verify with jose.ParseJWS, or decrypt with jose.Deserialize + jose.NewJWEDecrypt.
package josego
