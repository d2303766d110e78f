package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"support-desk-api/config/common"
	"support-desk-api/entity"
)

const issuer = "support-desk-api"

var ErrInvalidClaims = errors.New("token carries no user id")

type JWT struct {
	config *common.Config
}

func NewJWT(config *common.Config) *JWT {
	return &JWT{config: config}
}

func (j *JWT) GenerateToken(user *entity.User) (string, error) {
	secretKey := j.config.GetJwtConfig()
	now := time.Now()

	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"role":     string(user.Role),
		"aud":      issuer,
		"iss":      issuer,
		"iat":      now.Unix(),
		"exp":      now.Add(j.config.GetJwtTTL()).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	return token.SignedString(secretKey)
}

func (j *JWT) VerifyJwtToken(token string) (jwt.MapClaims, error) {
	secretKey := j.config.GetJwtConfig()

	tokenParse, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secretKey, nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := tokenParse.Claims.(jwt.MapClaims); ok && tokenParse.Valid {
		return claims, nil
	}
	return nil, jwt.ErrTokenInvalidClaims
}

// UserIDFromClaims reads the numeric user_id claim. JSON numbers decode as
// float64.
func UserIDFromClaims(claims jwt.MapClaims) (uint, error) {
	raw, ok := claims["user_id"].(float64)
	if !ok || raw <= 0 {
		return 0, ErrInvalidClaims
	}
	return uint(raw), nil
}
