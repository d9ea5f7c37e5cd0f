package utils

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func ErrorResponse(c *fiber.Ctx, status int, message string, err error) error {
	var errMsg interface{}
	if err != nil {
		errMsg = err.Error()
	}
	return c.Status(status).JSON(fiber.Map{
		"message": message,
		"error":   errMsg,
	})
}

func ErrorResponseHaveKey(c *fiber.Ctx, status int, message string, err error, keyError string) error {
	var errMsg string
	if err != nil {
		errMsg = err.Error()
	}
	return c.Status(status).JSON(fiber.Map{
		"status":   "error",
		"message":  message,
		"errors":   errMsg,
		"keyError": keyError,
	})
}

func ErrorResponseHaveData(c *fiber.Ctx, status int, message string, err error, keyError string, data any) error {
	var errMsg string
	if err != nil {
		errMsg = err.Error()
	}
	return c.Status(status).JSON(fiber.Map{
		"status":   "error",
		"message":  message,
		"errors":   errMsg,
		"keyError": keyError,
		"data":     data,
	})
}

func SuccessResponse(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(fiber.Map{
		"status": "success",
		"data":   data,
	})
}

func MessageResponse(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(fiber.Map{
		"status":  "success",
		"message": message,
		"data":    data,
	})
}

// Window resolves optional skip/take values against defaults.
func Window(skip, take *int, defaultTake int) (int, int) {
	s, t := 0, defaultTake
	if skip != nil && *skip > 0 {
		s = *skip
	}
	if take != nil && *take > 0 {
		t = *take
	}
	return s, t
}

func ApplyPagination(query *gorm.DB, skip, take int) *gorm.DB {
	if take > 0 {
		query = query.Limit(take)
	}
	if skip > 0 {
		query = query.Offset(skip)
	}
	return query
}

// Page cuts an in-memory slice the same way ApplyPagination cuts a query.
func Page[T any](items []T, skip, take int) []T {
	if skip >= len(items) {
		return []T{}
	}
	items = items[skip:]
	if take > 0 && take < len(items) {
		items = items[:take]
	}
	return items
}

func Ptr[T any](v T) *T {
	return &v
}
