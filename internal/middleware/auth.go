package middleware

import (
	"github.com/drivedeck/drivedeck/internal/types"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// SessionUserKey is the session key holding the authenticated user id.
const SessionUserKey = "user_id"

// AuthRequired validates the session cookie and stores the user id in context
func AuthRequired(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err != nil {
			return &types.CustomError{
				Code:    fiber.StatusUnauthorized,
				Message: "Session unavailable",
				Type:    "auth.session",
			}
		}

		userID, ok := sess.Get(SessionUserKey).(uint64)
		if !ok || userID == 0 {
			return &types.CustomError{
				Code:    fiber.StatusUnauthorized,
				Message: "Not authenticated",
				Type:    "auth.session",
			}
		}

		c.Locals("userID", userID)
		return c.Next()
	}
}
