package handlers

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// currentUserID extracts the authenticated user id from context (set by auth middleware)
func currentUserID(c *fiber.Ctx) (uint64, error) {
	userID, ok := c.Locals("userID").(uint64)
	if !ok || userID == 0 {
		return 0, fmt.Errorf("user not found in context")
	}
	return userID, nil
}

// parseIDParam parses a numeric route parameter
func parseIDParam(c *fiber.Ctx, name string) (uint64, error) {
	raw := c.Params(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s: %q", name, raw)
	}
	return id, nil
}

// parseOptionalIDQuery parses a numeric query parameter, returning nil when absent.
func parseOptionalIDQuery(c *fiber.Ctx, name string) (*uint64, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %q", name, raw)
	}
	return &id, nil
}
