package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler converts handler failures into the shared JSON envelope
// {success:false, message}. Unexpected errors surface their message with a
// 500 status; nothing is allowed to crash the process.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"message": err.Error(),
	})
}
