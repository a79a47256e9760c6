package fakeapi

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL matches the backend's token lifetime.
const DefaultTokenTTL = 24 * time.Hour

type claims struct {
	UserID int64 `json:"user_id"`
	jwt.RegisteredClaims
}

func (s *Server) issueToken(userID int64) (string, error) {
	now := s.now()
	c := claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.secret)
}

var errTokenInvalid = errors.New("invalid token")

func (s *Server) parseToken(raw string) (int64, error) {
	var c claims
	token, err := jwt.ParseWithClaims(raw, &c, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return 0, errTokenInvalid
	}
	return c.UserID, nil
}
