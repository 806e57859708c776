package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/TheManUnderTheHood/Loomly/config"
	"github.com/TheManUnderTheHood/Loomly/models"
)

const (
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Claims carried by both access and refresh tokens.
type Claims struct {
	UserID string      `json:"user_id"`
	Role   models.Role `json:"role"`
	jwt.RegisteredClaims
}

func IssueAccessToken(user *models.User) (string, error) {
	cfg := config.GetConfig()
	ttl, err := time.ParseDuration(cfg.AccessTokenTTL)
	if err != nil {
		ttl = 15 * time.Minute
	}
	return signToken(user, ttl, cfg.AccessTokenSecret)
}

func IssueRefreshToken(user *models.User) (string, error) {
	cfg := config.GetConfig()
	ttl, err := time.ParseDuration(cfg.RefreshTokenTTL)
	if err != nil {
		ttl = 10 * 24 * time.Hour
	}
	return signToken(user, ttl, cfg.RefreshTokenSecret)
}

func signToken(user *models.User, ttl time.Duration, secret string) (string, error) {
	claims := Claims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ParseAccessToken(tokenString string) (*Claims, error) {
	return parseToken(tokenString, config.GetConfig().AccessTokenSecret)
}

func ParseRefreshToken(tokenString string) (*Claims, error) {
	return parseToken(tokenString, config.GetConfig().RefreshTokenSecret)
}

func parseToken(tokenString, secret string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
