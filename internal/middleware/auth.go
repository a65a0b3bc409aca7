// Package middleware provides authentication and request context middleware for the application.
package middleware

import (
	"context"
	"strings"

	"shoplist/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Locals keys set by the auth middleware.
const (
	LocalUserID = "userID"
	LocalUser   = "user"
)

// UserResolver turns a bearer token into the user it belongs to.
type UserResolver interface {
	Resolve(ctx context.Context, token string) (*models.PublicUser, error)
}

// AuthRequired enforces a valid "Authorization: Bearer <token>" header.
// Every failure answers 401 with the same body.
func AuthRequired(resolver UserResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Authorization header required"))
		}
		return authenticate(c, resolver, token)
	}
}

// WebSocketAuthRequired accepts the token from the "token" query parameter,
// since browsers cannot set headers on a websocket handshake, and falls back
// to the Authorization header.
func WebSocketAuthRequired(resolver UserResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := strings.TrimSpace(c.Query("token"))
		if token == "" {
			var ok bool
			token, ok = bearerToken(c.Get(fiber.HeaderAuthorization))
			if !ok {
				return models.RespondWithError(c, fiber.StatusUnauthorized,
					models.NewUnauthorizedError("Token required"))
			}
		}
		return authenticate(c, resolver, token)
	}
}

func authenticate(c *fiber.Ctx, resolver UserResolver, token string) error {
	user, err := resolver.Resolve(c.UserContext(), token)
	if err != nil {
		if models.CodeOf(err) == models.CodeInternal || models.CodeOf(err) == "" {
			return models.RespondWithError(c, fiber.StatusInternalServerError, err)
		}
		return models.RespondWithError(c, fiber.StatusUnauthorized, err)
	}

	c.Locals(LocalUserID, user.ID)
	c.Locals(LocalUser, user)
	c.SetUserContext(context.WithValue(c.UserContext(), UserIDKey, user.ID))
	return c.Next()
}

// bearerToken extracts the token from "Bearer <token>". The scheme is
// matched case-insensitively.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
