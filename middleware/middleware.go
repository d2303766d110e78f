package middleware

import (
	"errors"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"support-desk-api/config/common"
	"support-desk-api/entity"
	"support-desk-api/enum"
	"support-desk-api/exception"
	"support-desk-api/repository"
	"support-desk-api/security"
)

const (
	jwtContextKey    = "jwt"
	callerContextKey = "user"
)

type Middleware struct {
	*common.Config
	*repository.UserRepository
	DB  *gorm.DB
	Log *logrus.Logger

	jwtHandler fiber.Handler
}

func NewMiddleware(config *common.Config, userRepository *repository.UserRepository, db *gorm.DB, logger *logrus.Logger) *Middleware {
	middleware := &Middleware{Config: config, UserRepository: userRepository, DB: db, Log: logger}
	middleware.jwtHandler = jwtware.New(jwtware.Config{
		SigningKey:  jwtware.SigningKey{JWTAlg: jwt.SigningMethodHS512.Alg(), Key: config.GetJwtConfig()},
		ContextKey:  jwtContextKey,
		TokenLookup: "header:Authorization,cookie:token",
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			middleware.Log.WithError(err).Warn("Failed to validate JWT")
			return exception.Unauthorized("Token is not valid").Wrap(err)
		},
	})
	return middleware
}

// JWTProtected rejects requests without a valid token, read from the
// Authorization header or the token cookie.
func (middleware *Middleware) JWTProtected(c *fiber.Ctx) error {
	return middleware.jwtHandler(c)
}

// LoadCaller attaches the token's user, with its agent profile, to the request.
func (middleware *Middleware) LoadCaller(c *fiber.Ctx) error {
	token, ok := c.Locals(jwtContextKey).(*jwt.Token)
	if !ok {
		return exception.Unauthorized("Token is not valid")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return exception.Unauthorized("Token is not valid")
	}
	userID, err := security.UserIDFromClaims(claims)
	if err != nil {
		middleware.Log.WithError(err).Error("Failed to extract user ID from token")
		return exception.Unauthorized("Failed to extract user ID from token").Wrap(err)
	}

	user, err := middleware.UserRepository.FindWithAgent(c.Context(), middleware.DB, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return exception.Unauthorized("User no longer exists")
		}
		return exception.Internal("Internal Server Error").Wrap(err)
	}

	c.Locals(callerContextKey, user)
	return c.Next()
}

// RequireRole lets the request through only when the caller holds one of roles.
func (middleware *Middleware) RequireRole(roles ...enum.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := security.RequireRole(Caller(c), roles...); err != nil {
			middleware.Log.WithField("path", c.Path()).Warn("Caller lacks the required role")
			return err
		}
		return c.Next()
	}
}

// Caller returns the user attached by LoadCaller, or nil.
func Caller(c *fiber.Ctx) *entity.User {
	user, _ := c.Locals(callerContextKey).(*entity.User)
	return user
}
