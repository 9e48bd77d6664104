package middleware

import (
	"errors"
	"strings"

	"github.com/fadilmartias/careers-portal/internal/service"
	"github.com/fadilmartias/careers-portal/internal/usecase"
	"github.com/fadilmartias/careers-portal/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

const userKey = "user"

// BearerToken returns the token of an "Authorization: Bearer" header, or "".
func BearerToken(c *fiber.Ctx) string {
	h := c.Get(fiber.HeaderAuthorization)
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// CurrentUser is the user resolved by OptionalUser, if any.
func CurrentUser(c *fiber.Ctx) *service.User {
	u, _ := c.Locals(userKey).(*service.User)
	return u
}

// OptionalUser resolves the bearer token, when present, and stores the user
// for later handlers. Requests without a valid token pass through anonymous.
func OptionalUser(auth service.AuthServiceInterface) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := BearerToken(c)
		if token == "" {
			return c.Next()
		}
		user, err := auth.User(c.UserContext(), token)
		if err != nil {
			if !errors.Is(err, service.ErrInvalidToken) {
				log.Warnf("resolve user: %v", err)
			}
			return c.Next()
		}
		c.Locals(userKey, user)
		return c.Next()
	}
}

// RequireAdmin rejects anonymous requests with 401 and non-admins with 403.
// It must run after OptionalUser.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusUnauthorized,
				Message: usecase.ErrUnauthorized.Error(),
			})
		}
		if !user.IsAdmin() {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusForbidden,
				Message: usecase.ErrForbidden.Error(),
			})
		}
		return c.Next()
	}
}
