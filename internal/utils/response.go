package utils

import (
	"errors"
	"time"

	"github.com/drivedeck/drivedeck/internal/types"
	"github.com/gofiber/fiber/v2"
)

// SuccessResponse sends a standard success response
func SuccessResponse(c *fiber.Ctx, data interface{}, status int) error {
	return c.Status(status).JSON(data)
}

// ErrorResponse sends a standard error response
func ErrorResponse(c *fiber.Ctx, message string, status int, errorType string) error {
	return c.Status(status).JSON(fiber.Map{
		"status":    status,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      errorType,
	})
}

// NotFoundResponse sends a 404 not found response
func NotFoundResponse(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"status":    fiber.StatusNotFound,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
	})
}

// ServiceErrorResponse maps service/storage sentinel errors onto the error
// taxonomy: validation/duplicates 400, unauthorized 401, access denied 403,
// not found 404, expired 410, everything else a generic 500 with no detail
// leakage.
func ServiceErrorResponse(c *fiber.Ctx, err error, errorType string) error {
	switch {
	case errors.Is(err, types.ErrValidation), errors.Is(err, types.ErrExists):
		return ErrorResponse(c, err.Error(), fiber.StatusBadRequest, errorType)
	case errors.Is(err, types.ErrUnauthorized):
		return ErrorResponse(c, "Invalid credentials", fiber.StatusUnauthorized, errorType)
	case errors.Is(err, types.ErrAccessDenied):
		return ErrorResponse(c, "Access denied", fiber.StatusForbidden, errorType)
	case errors.Is(err, types.ErrNotFound):
		return NotFoundResponse(c, "Resource not found")
	case errors.Is(err, types.ErrExpired):
		return ErrorResponse(c, "Share link has expired", fiber.StatusGone, errorType)
	default:
		return ErrorResponse(c, "Internal server error", fiber.StatusInternalServerError, errorType)
	}
}

// ErrorResponseStruct defines the schema for error responses
type ErrorResponseStruct struct {
	Status    int    `json:"status"`
	Message   string `json:"message"`
	Ok        bool   `json:"ok"`
	Timestamp string `json:"timestamp"`
	URL       string `json:"url"`
	Type      string `json:"type,omitempty"`
}
