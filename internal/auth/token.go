package auth

import (
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
)

// TokenManager mints and verifies the signed session tokens held by the
// client. Identity lives only in these tokens; the server keeps no session
// state.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl == 0 {
		ttl = 24 * time.Hour
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// Issue signs a session token for the identity.
func (m *TokenManager) Issue(id Identity) (string, error) {
	claims := jwt.MapClaims{
		"uid":   id.UID,
		"email": id.Email,
		"exp":   time.Now().Add(m.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Parse verifies a session token and reconstructs the session. Expired or
// tampered tokens yield an unauthenticated error.
func (m *TokenManager) Parse(tokenString string) (Session, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return Session{}, &Error{Message: "invalid session token"}
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return Session{}, &Error{Message: "invalid session token"}
	}

	uid, _ := claims["uid"].(string)
	email, _ := claims["email"].(string)
	if uid == "" {
		return Session{}, &Error{Message: "session token carries no identity"}
	}
	return Session{UID: uid, Email: email}, nil
}
