package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// Verifier превращает токен в идентификатор пользователя.
type Verifier interface {
	Verify(ctx context.Context, token string) (int64, error)
}

// AuthError — токен отсутствует, неверен или просрочен.
type AuthError struct {
	Reason string
	Err    error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unauthorized: %s: %v", e.Reason, e.Err)
	}
	return "unauthorized: " + e.Reason
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// JWTVerifier проверяет HS256-токены с claim user_id.
type JWTVerifier struct {
	secret []byte
}

func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret)}
}

func (v *JWTVerifier) Verify(_ context.Context, tokenString string) (int64, error) {
	if tokenString == "" {
		return 0, &AuthError{Reason: "missing token"}
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithJSONNumber())
	if err != nil || !token.Valid {
		return 0, &AuthError{Reason: "invalid or expired token", Err: err}
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, &AuthError{Reason: "unreadable claims"}
	}

	// С WithJSONNumber claim приходит как json.Number.
	raw, ok := claims["user_id"].(json.Number)
	if !ok {
		return 0, &AuthError{Reason: "missing user_id claim"}
	}
	userID, err := raw.Int64()
	if err != nil || userID <= 0 {
		return 0, &AuthError{Reason: "invalid user_id claim", Err: err}
	}
	return userID, nil
}

// IssueToken выпускает токен доступа для userID со сроком жизни ttl.
func (v *JWTVerifier) IssueToken(userID int64, ttl time.Duration) (string, error) {
	if userID <= 0 {
		return "", errors.New("user id must be positive")
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     now.Add(ttl).Unix(),
		"iat":     now.Unix(),
	})

	signed, err := token.SignedString(v.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}
	return signed, nil
}
