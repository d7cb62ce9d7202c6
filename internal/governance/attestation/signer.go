// Package attestation implements the pluggable signer interface over a
// ServerDigest (§4.8): signing, verification, and expected-digest pin
// enforcement. The default signer is symmetric HMAC-SHA256; a JWT-based
// signer is offered for collaborators that already run a JWT trust chain.
package attestation

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Signer signs and verifies an attestation payload (the plain
// ServerDigest.digest string).
type Signer interface {
	Name() string
	Sign(payload string) (string, error)
	Verify(payload, signature string) bool
}

// HMACSigner is the default signer: HMAC-SHA256 over the configured
// secret, rendered as 64-character lowercase hex.
type HMACSigner struct {
	secret []byte
}

// NewHMACSigner builds an HMACSigner. A hmac signer-id without a secret
// must fail loudly (§4.8), so an empty secret is rejected here rather than
// deferred to the first Sign call.
func NewHMACSigner(secret []byte) (*HMACSigner, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("attestation: hmac signer requires a non-empty secret")
	}
	return &HMACSigner{secret: secret}, nil
}

func (s *HMACSigner) Name() string { return "hmac" }

func (s *HMACSigner) Sign(payload string) (string, error) {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil)), nil
}

func (s *HMACSigner) Verify(payload, signature string) bool {
	expected, err := s.Sign(payload)
	if err != nil {
		return false
	}
	return hmac.Equal([]byte(expected), []byte(signature))
}

// JWTSigner wraps a ServerDigest's payload in a signed JWT instead of a raw
// HMAC hex string, for collaborators that want attestations to flow
// through an existing JWT-based trust chain.
type JWTSigner struct {
	secret []byte
	issuer string
}

// NewJWTSigner builds a JWTSigner. As with HMACSigner, an empty secret
// fails loudly rather than producing unverifiable tokens later.
func NewJWTSigner(secret []byte, issuer string) (*JWTSigner, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("attestation: jwt signer requires a non-empty secret")
	}
	return &JWTSigner{secret: secret, issuer: issuer}, nil
}

func (s *JWTSigner) Name() string { return "jwt" }

func (s *JWTSigner) Sign(payload string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"digest": payload,
		"iss":    s.issuer,
		"iat":    time.Now().Unix(),
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("attestation: jwt signing failed: %w", err)
	}
	return signed, nil
}

func (s *JWTSigner) Verify(payload, signature string) bool {
	token, err := jwt.Parse(signature, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("attestation: unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return false
	}
	digest, _ := claims["digest"].(string)
	return digest == payload
}
