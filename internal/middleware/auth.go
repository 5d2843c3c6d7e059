package middleware

import (
	"errors"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/nextiwant/wishlist-backend/internal/config"
	"github.com/nextiwant/wishlist-backend/internal/domain"
	"github.com/nextiwant/wishlist-backend/internal/dto"
)

func JWTProtected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{JWTAlg: jwtware.HS256, Key: []byte(cfg.JWTSecret)},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "Unauthorized: invalid or expired token",
			})
		},
	})
}

var errNoUser = errors.New("no authenticated user in context")

// CurrentUserID reads the "sub" claim left in Locals by JWTProtected.
func CurrentUserID(c *fiber.Ctx) (domain.UserID, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return domain.UserID{}, errNoUser
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return domain.UserID{}, errNoUser
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return domain.UserID{}, errNoUser
	}
	return domain.ParseUserID(sub)
}
