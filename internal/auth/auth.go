// Package auth covers the two credential primitives: bcrypt password
// hashing and signed, expiring identity tokens.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var ErrBadToken = errors.New("invalid token")

func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	return string(b), err
}

func CheckPassword(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

type Claims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

// TokenMaker issues and parses HS256 access tokens. It is stateless; the
// secret is fixed at construction and never rotated at runtime.
type TokenMaker struct {
	secret string
	ttl    time.Duration
}

func NewTokenMaker(secret string, ttl time.Duration) *TokenMaker {
	return &TokenMaker{secret: secret, ttl: ttl}
}

func (m *TokenMaker) Issue(userID string) (string, error) {
	c := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte(m.secret))
}

// Parse verifies the signature and expiry and returns the subject user id.
func (m *TokenMaker) Parse(raw string) (string, error) {
	tok, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (any, error) {
		// block alg confusion
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrBadToken
		}
		return []byte(m.secret), nil
	})
	if err != nil {
		return "", ErrBadToken
	}
	c, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid || c.UserID == "" {
		return "", ErrBadToken
	}
	return c.UserID, nil
}
