package middleware

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/bazaarhub/internal/config"
	"github.com/example/bazaarhub/internal/models"
	"github.com/example/bazaarhub/internal/utils"
)

const claimsContextKey = "sessionClaims"

// SessionCookie is the name of the cookie carrying the session token.
const SessionCookie = "userToken"

// AuthMiddleware validates the session cookie and loads the decoded identity
// into the request context.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(SessionCookie)
		if token == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "No token provided")
		}

		claims, err := utils.ParseToken(cfg.JWTSecret, token)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
		}

		c.Locals(claimsContextKey, claims)
		return c.Next()
	}
}

// AdminMiddleware re-fetches the session's user and rejects the request
// unless the stored role is admin. Runs after AuthMiddleware.
func AdminMiddleware(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := GetSessionClaims(c)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "No token provided")
		}

		userID, err := claims.Identity()
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
		}

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fiber.NewError(fiber.StatusForbidden, "Access denied. Admin only.")
			}
			return err
		}

		if user.Role != models.RoleAdmin {
			return fiber.NewError(fiber.StatusForbidden, "Access denied. Admin only.")
		}

		return c.Next()
	}
}

// GetSessionClaims extracts the authenticated identity from context.
func GetSessionClaims(c *fiber.Ctx) (*utils.SessionClaims, bool) {
	value := c.Locals(claimsContextKey)
	if value == nil {
		return nil, false
	}

	if claims, ok := value.(*utils.SessionClaims); ok {
		return claims, true
	}

	return nil, false
}
