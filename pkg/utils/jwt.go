package utils

import (
	"errors"
	"fmt"
	"time"

	"cloudhub/pkg/config"

	"github.com/golang-jwt/jwt/v5"
)

// Custom JWT claims carrying the authenticated user's ID.
type Claims struct {
	UserID uint `json:"user_id"`
	jwt.RegisteredClaims
}

// The secret is read from config at call time, after config.Init has run.
func jwtSecret() []byte {
	return []byte(config.GlobalConfig.JWT.Secret)
}

// GenerateToken mints a signed HS256 token for the given user.
func GenerateToken(userID uint) (string, error) {
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(config.GlobalConfig.JWT.Expiration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

// ParseToken validates a token string and returns its claims.
func ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return jwtSecret(), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}
