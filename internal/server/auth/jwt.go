// Package auth implements the token service: issuing, validating, and
// renewing signed, time-bounded bearer tokens that carry the username as
// subject.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the JWT claims set used by the service. The username travels in
// the registered "sub" claim; no custom claims are added.
type Claims struct {
	jwt.RegisteredClaims
}

// TokenClaims is the decoded, validated form handed back to callers.
type TokenClaims struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenService issues and validates tokens with a single symmetric secret
// and a fixed lifetime, both loaded once at startup. It holds no mutable
// state and is safe for concurrent use.
type TokenService struct {
	secret   []byte
	method   *jwt.SigningMethodHMAC
	lifetime time.Duration
}

// NewTokenService constructs a TokenService. Only the HMAC family of signing
// algorithms is supported; an unknown algorithm identifier, an empty secret,
// or a non-positive lifetime is a fatal configuration error.
func NewTokenService(secret []byte, algorithm string, lifetime time.Duration) (*TokenService, error) {
	if len(secret) == 0 {
		return nil, errors.New("empty signing secret")
	}
	if lifetime <= 0 {
		return nil, fmt.Errorf("non-positive token lifetime: %v", lifetime)
	}

	var method *jwt.SigningMethodHMAC
	switch algorithm {
	case "HS256":
		method = jwt.SigningMethodHS256
	case "HS384":
		method = jwt.SigningMethodHS384
	case "HS512":
		method = jwt.SigningMethodHS512
	default:
		return nil, fmt.Errorf("unsupported signing algorithm: %q", algorithm)
	}

	return &TokenService{secret: secret, method: method, lifetime: lifetime}, nil
}

// Lifetime returns the configured token validity window.
func (s *TokenService) Lifetime() time.Duration { return s.lifetime }

// Issue signs a token for subject with issued_at = now (UTC) and
// expires_at = now + lifetime.
func (s *TokenService) Issue(subject string) (string, error) {
	now := time.Now().UTC()

	token := jwt.NewWithClaims(s.method, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.lifetime)),
		},
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// Validate parses tokenString and verifies its signature and expiry.
// Outcomes are distinguishable: a structurally broken or forged token yields
// common.ErrInvalidToken, while a well-signed token past its expiry yields
// common.ErrTokenExpired. A token expiring at exactly now is expired.
func (s *TokenService) Validate(tokenString string) (*TokenClaims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		// The library only reports expiry after the signature checked out,
		// so this mapping never labels a forged token as merely expired.
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}
	if !token.Valid || claims.Subject == "" || claims.IssuedAt == nil {
		return nil, common.ErrInvalidToken
	}

	return &TokenClaims{
		Subject:   claims.Subject,
		IssuedAt:  claims.IssuedAt.Time.UTC(),
		ExpiresAt: claims.ExpiresAt.Time.UTC(),
	}, nil
}

// Renew validates tokenString and issues a fresh token for the same subject
// with the configured lifetime. Failure outcomes are those of Validate.
func (s *TokenService) Renew(tokenString string) (string, error) {
	claims, err := s.Validate(tokenString)
	if err != nil {
		return "", err
	}
	return s.Issue(claims.Subject)
}
