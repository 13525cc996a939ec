package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/shazminnasir67/tech-flow/internal/platform/config"
)

// ErrInvalidRememberToken indicates the remember-me token failed validation.
var ErrInvalidRememberToken = errors.New("invalid remember token")

// GenerateRememberToken signs a long-lived token that can re-establish a
// session after the session cookie itself has expired.
func GenerateRememberToken(userID string) (string, error) {
	if userID == "" {
		return "", errors.New("userID is required")
	}
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Issuer:    "techflow",
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(config.AppConfig.RememberExp)),
		ID:        uuid.NewString(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(config.AppConfig.RememberKey)
}

// ParseRememberToken verifies a remember-me token and returns the user id it
// was issued for.
func ParseRememberToken(tokenString string) (string, error) {
	if tokenString == "" {
		return "", ErrInvalidRememberToken
	}
	parsed, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, ErrInvalidRememberToken
		}
		return config.AppConfig.RememberKey, nil
	})
	if err != nil {
		return "", ErrInvalidRememberToken
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || !parsed.Valid {
		return "", ErrInvalidRememberToken
	}
	if claims.Issuer != "techflow" || claims.Subject == "" {
		return "", ErrInvalidRememberToken
	}
	return claims.Subject, nil
}
