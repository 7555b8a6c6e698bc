package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"ixfguard/internal/domain"
	"ixfguard/internal/support"
)

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrMissingSecret = errors.New("JWT_SECRET is not set")
)

const issuer = "ixfguard"

// Claims carry the acting user. Role and Superuser decide whether validation
// is bypassed.
type Claims struct {
	UserID    uint   `json:"user_id"`
	Email     string `json:"email,omitempty"`
	Role      string `json:"role"`
	Superuser bool   `json:"superuser,omitempty"`
	jwt.RegisteredClaims
}

func (c *Claims) User() *domain.User {
	return &domain.User{
		ID:        c.UserID,
		Email:     c.Email,
		Role:      c.Role,
		Superuser: c.Superuser,
	}
}

func secret() ([]byte, error) {
	key := support.GetEnv("JWT_SECRET", "")
	if key == "" {
		return nil, ErrMissingSecret
	}
	return []byte(key), nil
}

func GenerateJWT(user domain.User, ttl time.Duration) (string, error) {
	key, err := secret()
	if err != nil {
		return "", err
	}

	now := time.Now()
	claims := Claims{
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
		Superuser: user.Superuser,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
}

func ValidateJWT(token string) (*Claims, error) {
	key, err := secret()
	if err != nil {
		return nil, err
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(issuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
