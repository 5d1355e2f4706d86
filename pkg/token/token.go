// Package token decodes and verifies the compact signed session tokens
// issued by the identity provider.
package token

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMalformed = errors.New("malformed token")
	ErrSignature = errors.New("invalid token signature")
	ErrExpired   = errors.New("token expired")
	ErrIssuer    = errors.New("unexpected token issuer")
)

// Claims is the subset of the token payload the application consumes.
type Claims struct {
	Subject   string
	ExpiresAt time.Time
}

// Decode extracts the subject and expiry from the payload segment without
// verifying the signature. Never use the result as an authentication source;
// resolution paths must go through Verify.
func Decode(raw string) (*Claims, error) {
	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		return nil, ErrMalformed
	}

	payload, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(parts[1], "="))
	if err != nil {
		return nil, ErrMalformed
	}

	var body struct {
		Sub string `json:"sub"`
		Exp int64  `json:"exp"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return nil, ErrMalformed
	}
	if body.Sub == "" {
		return nil, ErrMalformed
	}

	return &Claims{
		Subject:   body.Sub,
		ExpiresAt: time.Unix(body.Exp, 0),
	}, nil
}

// Verify checks the HS256 signature, expiry and issuer before extracting the
// subject. An empty issuer disables the issuer check.
func Verify(raw, secret, issuer string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrSignature
		}
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithExpirationRequired())
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrSignature
		default:
			return nil, ErrMalformed
		}
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return nil, ErrMalformed
	}
	if issuer != "" && claims.Issuer != issuer {
		return nil, ErrIssuer
	}

	var expiresAt time.Time
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}

	return &Claims{
		Subject:   claims.Subject,
		ExpiresAt: expiresAt,
	}, nil
}
