// Package auth turns bearer tokens into the caller identity used to stamp tracked entities.
// Issuing credentials and looking users up is the job of an external identity provider;
// this package only verifies and reads the claims it is handed.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	trackingdomain "github.com/Apurer/dbmodel-tracking/internal/tracking/domain"
)

var (
	ErrMissingSecret = errors.New("jwt signing secret is empty")
	ErrInvalidToken  = errors.New("invalid bearer token")
)

var signingMethod = jwt.SigningMethodHS256

// Claims carries the principal fields we read from a token.
type Claims struct {
	Name   string `json:"name,omitempty"`
	UserID int64  `json:"uid"`
	jwt.RegisteredClaims
}

// Principal is the authenticated caller.
type Principal struct {
	UserID int64
	Name   string
}

var _ trackingdomain.Identity = (*Principal)(nil)

// DisplayName returns the principal's name; unnamed principals report ok=false.
func (p *Principal) DisplayName() (string, bool) {
	if p == nil || p.Name == "" {
		return "", false
	}
	return p.Name, true
}

// Verifier validates HS256 bearer tokens.
type Verifier struct {
	secret []byte
}

// NewVerifier builds a Verifier for the shared secret.
func NewVerifier(secret string) (*Verifier, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, ErrMissingSecret
	}
	return &Verifier{secret: []byte(secret)}, nil
}

// Verify parses the token and returns the principal it describes.
func (v *Verifier) Verify(token string) (*Principal, error) {
	keyFunc := func(t *jwt.Token) (any, error) {
		if t.Method != signingMethod {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	}
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, keyFunc, jwt.WithValidMethods([]string{signingMethod.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return &Principal{UserID: claims.UserID, Name: claims.Name}, nil
}

// IssueToken signs a token for the principal. It exists for tests and local tooling.
func IssueToken(secret string, principal Principal, ttl time.Duration) (string, error) {
	if strings.TrimSpace(secret) == "" {
		return "", ErrMissingSecret
	}
	claims := &Claims{
		Name:   principal.Name,
		UserID: principal.UserID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(signingMethod, claims).SignedString([]byte(secret))
}
