package utils // package utils provides helpers for session tokens and generated codes

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionToken is a signed anonymous client session.  Token is the JWT
// string, ClientID its subject and Exp the UTC expiry.
type SessionToken struct {
	Token    string
	ClientID string
	Exp      time.Time
}

// ErrInvalidSession is returned for tokens that fail signature, expiry or
// claim checks.
var ErrInvalidSession = errors.New("invalid session token")

// NewSessionToken issues an HS256 JWT for a freshly generated client id.
// The claims are sub (client id), exp and iat.
func NewSessionToken(secret string, ttl time.Duration) (SessionToken, error) {
	now := time.Now().UTC()
	exp := now.Add(ttl)
	clientID := uuid.NewString()
	claims := jwt.RegisteredClaims{
		Subject:   clientID,
		ExpiresAt: jwt.NewNumericDate(exp),
		IssuedAt:  jwt.NewNumericDate(now),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return SessionToken{}, err
	}
	return SessionToken{Token: signed, ClientID: clientID, Exp: exp}, nil
}

// ParseSessionToken validates raw and returns its client id.  Only HMAC
// signed tokens are accepted.
func ParseSessionToken(secret, raw string) (string, error) {
	var claims jwt.RegisteredClaims
	tok, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		// Type assert the signing method to HMAC; reject others.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSession
		}
		return []byte(secret), nil
	}, jwt.WithExpirationRequired())
	if err != nil || !tok.Valid {
		return "", ErrInvalidSession
	}
	if claims.Subject == "" {
		return "", ErrInvalidSession
	}
	return claims.Subject, nil
}
