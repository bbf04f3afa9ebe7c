package utils

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Mmneaa/GradApp-Back-End-V2/internal/models"
)

// TokenLifetime is the validity window of issued session tokens.
const TokenLifetime = 24 * time.Hour

var ErrNoSecret = errors.New("JWT_SECRET is not configured")

type Claims struct {
	UserID      string      `json:"userId"`
	AccountType models.Role `json:"accountType"`
	jwt.RegisteredClaims
}

func secret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

// GenerateJWT creates a signed session token carrying the user's id and role.
func GenerateJWT(userID string, accountType models.Role) (string, error) {
	key := secret()
	if len(key) == 0 {
		return "", ErrNoSecret
	}
	claims := &Claims{
		UserID:      userID,
		AccountType: accountType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(TokenLifetime)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(key)
}

// ValidateJWT parses and verifies a token string, rejecting bad signatures,
// unexpected signing methods, and expired tokens.
func ValidateJWT(tokenStr string) (*Claims, error) {
	key := secret()
	if len(key) == 0 {
		return nil, ErrNoSecret
	}
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return key, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
