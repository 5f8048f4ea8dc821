package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/koinonia-dev/koinonia/internal/domain"
)

type Jwt struct {
	secretKey string
	ttl       time.Duration
}

func New(secretKey string, ttl time.Duration) *Jwt {
	return &Jwt{secretKey, ttl}
}

// NewToken issues a signed session token for the given user.
func (j *Jwt) NewToken(user domain.User) (string, error) {
	claims := jwt.MapClaims{
		"username": user.Username,
		"exp":      time.Now().Add(j.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", err
	}
	return tokenString, nil
}

// DecodeToken verifies the signature and expiry and returns the user the
// token was issued to.
func (j *Jwt) DecodeToken(jwtStr string) (domain.User, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(jwtStr, &claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(j.secretKey), nil
	})
	if err != nil {
		return domain.User{}, err
	}

	username, ok := claims["username"].(string)
	if !ok || username == "" {
		return domain.User{}, fmt.Errorf("token has no username claim")
	}
	return domain.User{Username: username}, nil
}
