package security

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrJWTSecretMissing = errors.New("JWT_SECRET is not set")

// sessionTTL 会话有效期。到期后需要重新登录换取新 Token。
const sessionTTL = 7 * 24 * time.Hour

type Claims struct {
	Uid int64 `json:"uid"`
	jwt.RegisteredClaims
}

func jwtSecret() ([]byte, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, ErrJWTSecretMissing
	}
	return []byte(secret), nil
}

// Award 为登录成功的玩家签发会话 Token。
func Award(uid int64) (string, error) {
	key, err := jwtSecret()
	if err != nil {
		return "", err
	}

	now := time.Now()
	claims := &Claims{
		Uid: uid,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(sessionTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
}

// ParseToken 解析并验证 Token。HTTP 鉴权中间件与 ws 进场共用。
func ParseToken(tokenStr string) (*jwt.Token, *Claims, error) {
	key, err := jwtSecret()
	if err != nil {
		return nil, nil, err
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return key, nil
	})
	if err != nil {
		return nil, nil, err
	}
	if token == nil || !token.Valid {
		return nil, nil, jwt.ErrTokenInvalidClaims
	}
	return token, claims, nil
}
