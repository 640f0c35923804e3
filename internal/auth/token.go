package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/indiverse/heritagebot/internal/domain"
)

// Claims are the fields the auth API puts in its tokens
type Claims struct {
	UserID    string
	Username  string
	ExpiresAt time.Time
}

// Expired reports whether the token is past its expiry at now.
// Tokens without an expiry never expire.
func (c Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt)
}

// Inspect reads a token's claims without checking its signature. It is only
// fit for deciding whether a stored token is worth sending.
func Inspect(token string) (Claims, error) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return Claims{}, fmt.Errorf("malformed token: %w", err)
	}
	mc, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, errors.New("malformed token claims")
	}
	return claimsFrom(mc), nil
}

// Verifier checks HS256 tokens signed with the auth API's secret
type Verifier struct {
	secret []byte
	now    func() time.Time
}

// NewVerifier creates a verifier for secret
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret), now: time.Now}
}

// Verify validates signature and expiry and returns the claims
func (v *Verifier) Verify(token string) (Claims, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return v.secret, nil
	})
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}

	mc, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return Claims{}, fmt.Errorf("%w: invalid token", domain.ErrUnauthorized)
	}

	claims := claimsFrom(mc)
	if claims.UserID == "" {
		return Claims{}, fmt.Errorf("%w: token has no user", domain.ErrUnauthorized)
	}
	return claims, nil
}

// Sign issues a token in the auth API's format. Used by tests and local tooling.
func Sign(secret string, claims Claims) (string, error) {
	mc := jwt.MapClaims{
		"user_id":  claims.UserID,
		"username": claims.Username,
	}
	if !claims.ExpiresAt.IsZero() {
		mc["exp"] = claims.ExpiresAt.Unix()
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, mc).SignedString([]byte(secret))
}

func claimsFrom(mc jwt.MapClaims) Claims {
	var c Claims
	if v, ok := mc["user_id"].(string); ok {
		c.UserID = v
	}
	if v, ok := mc["username"].(string); ok {
		c.Username = v
	}
	if exp, ok := mc["exp"].(float64); ok {
		c.ExpiresAt = time.Unix(int64(exp), 0)
	}
	return c
}
