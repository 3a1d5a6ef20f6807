// Package session models the identity under which remote operations run.
//
// A Session is established on login and passed explicitly to every engine
// operation that may touch the remote store. While no session exists, remote
// adapters refuse to perform any network I/O.
package session

import (
	"time"

	"github.com/creatorsync/creatorsync/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Session identifies the authenticated user. A nil *Session means
// "not logged in" and causes remote operations to fail fast.
type Session struct {
	UserID string
}

// Claims embeds the registered claims and adds the user identifier.
type Claims struct {
	jwt.RegisteredClaims
	UserID string
}

// GenerateToken signs an HS256 ID token carrying userID, valid for
// validityDuration. Used by local development tooling and tests.
func GenerateToken(userID string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		UserID: userID,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// FromToken verifies tokenString against secretKey and builds a Session
// from its claims. Expired or malformed tokens yield ErrInvalidToken.
func FromToken(tokenString string, secretKey []byte) (*Session, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		return nil, common.ErrInvalidToken
	}

	if !token.Valid || claims.UserID == "" {
		return nil, common.ErrInvalidToken
	}

	return &Session{UserID: claims.UserID}, nil
}
