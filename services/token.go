package services

import (
	"time"

	apperrors "spotbook/errors"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
)

type UserInfo struct {
	UserID   uint   `json:"userid"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

type Claims struct {
	UserInfo UserInfo `json:"userinfo"`
	jwt.StandardClaims
}

// ExpiresIn is how long the token stays valid after now.
func (c *Claims) ExpiresIn(now time.Time) time.Duration {
	return time.Unix(c.ExpiresAt, 0).Sub(now)
}

// GenerateToken signs a session token for info that expires after ttl.
func GenerateToken(secret []byte, info UserInfo, ttl time.Duration, now time.Time) (string, error) {
	claims := &Claims{
		UserInfo: info,
		StandardClaims: jwt.StandardClaims{
			Id:        uuid.NewString(),
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(ttl).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ParseToken verifies the signature and expiry of tokenString.
func ParseToken(secret []byte, tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, apperrors.NewAppError(apperrors.ErrCodeInvalidToken, "Invalid token", err)
	}
	if claims.UserInfo.UserID == 0 || claims.Id == "" {
		return nil, apperrors.NewAppError(apperrors.ErrCodeInvalidToken, "Invalid token", nil)
	}
	return claims, nil
}
