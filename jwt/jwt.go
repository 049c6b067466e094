package jwt

import (
	"errors"
	"time"

	"campuseventhub-backend/entity"
	"campuseventhub-backend/log"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
)

var (
	ErrExpired = errors.New("token expired")
)

const issuer = "campuseventhub"

type RefreshClaims struct {
	UserID string `json:"user_id"`
	*jwt.StandardClaims
}

type AccessClaims struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	*jwt.StandardClaims
}

func (c *AccessClaims) IsAdmin() bool {
	return c.Role == entity.RoleAdmin
}

func NewRefreshToken(user *entity.User, key []byte) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS512, &RefreshClaims{
		UserID: user.ID.Hex(),
		StandardClaims: &jwt.StandardClaims{
			ExpiresAt: time.Now().Add(time.Hour * 24 * 30 * 6).Unix(),
			IssuedAt:  time.Now().Unix(),
			Issuer:    issuer,
		},
	})

	ss, err := token.SignedString(key)
	if err != nil {
		log.Logger.Error("signing failure", zap.Error(err))
		return "", err
	}

	return ss, nil
}

func NewAccessToken(user *entity.User, key []byte) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS512, &AccessClaims{
		UserID: user.ID.Hex(),
		Name:   user.Name,
		Role:   user.Role,
		StandardClaims: &jwt.StandardClaims{
			ExpiresAt: time.Now().Add(time.Hour * 24).Unix(),
			IssuedAt:  time.Now().Unix(),
			Issuer:    issuer,
		},
	})

	ss, err := token.SignedString(key)
	if err != nil {
		log.Logger.Error("signing failure", zap.Error(err))
		return "", err
	}

	return ss, nil
}

func ValidateRefreshToken(token string, key []byte) (*RefreshClaims, error) {
	t, err := jwt.ParseWithClaims(token, &RefreshClaims{}, func(token *jwt.Token) (interface{}, error) {
		return key, nil
	})
	if err != nil {
		if isExpired(err) {
			return nil, ErrExpired
		}

		log.Logger.Debug("parse failure", zap.Error(err))
		return nil, err
	}

	return t.Claims.(*RefreshClaims), nil
}

func ValidateAccessToken(token string, key []byte) (*AccessClaims, error) {
	t, err := jwt.ParseWithClaims(token, &AccessClaims{}, func(token *jwt.Token) (interface{}, error) {
		return key, nil
	})
	if err != nil {
		if isExpired(err) {
			return nil, ErrExpired
		}

		log.Logger.Debug("parse failure", zap.Error(err))
		return nil, err
	}

	return t.Claims.(*AccessClaims), nil
}

func isExpired(err error) bool {
	ve := &jwt.ValidationError{}
	return errors.As(err, &ve) && ve.Errors&jwt.ValidationErrorExpired != 0
}
