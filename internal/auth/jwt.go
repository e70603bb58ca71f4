package auth

import (
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL matches the lifetime of the session cookie the token rides in.
const TokenTTL = 7 * 24 * time.Hour

var jwtSecret []byte

func InitJWTSecret() error {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return fmt.Errorf("JWT_SECRET environment variable is not set")
	}
	jwtSecret = []byte(secret)
	return nil
}

// Claims is the verified identity carried by a session token. The token holds
// only the user id; everything else is loaded fresh from the store.
type Claims struct {
	UserID uint
}

func GenerateToken(userID uint) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  userID,
		"exp": time.Now().Add(TokenTTL).Unix(),
	})

	return token.SignedString(jwtSecret)
}

// VerifyToken checks the signature and expiry and extracts the user id.
func VerifyToken(tokenString string) (Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return jwtSecret, nil
	})

	if err != nil || !token.Valid {
		return Claims{}, fmt.Errorf("Invalid or expired token")
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, fmt.Errorf("Invalid token claims")
	}

	id, ok := mapClaims["id"].(float64)
	if !ok {
		return Claims{}, fmt.Errorf("Invalid user ID in token claims")
	}

	return Claims{UserID: uint(id)}, nil
}
