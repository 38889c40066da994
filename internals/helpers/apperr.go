package helper

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	taskerrors "storeops_backend/internals/features/tasks/errors"
)

// FromTaskError maps the task-engine error taxonomy onto a consistent
// JSON response. Anything unrecognized falls back to 500 with the
// original message.
func FromTaskError(c *fiber.Ctx, err error) error {
	var ve *taskerrors.ValidationError
	if errors.As(err, &ve) {
		return Error(c, fiber.StatusBadRequest, ve.Error())
	}

	var ce *taskerrors.ConflictError
	if errors.As(err, &ce) {
		return Error(c, fiber.StatusConflict, ce.Error())
	}

	var re *taskerrors.DependencyReadError
	if errors.As(err, &re) {
		return Error(c, fiber.StatusBadGateway, re.Error())
	}

	var we *taskerrors.DependencyWriteError
	if errors.As(err, &we) {
		return Error(c, fiber.StatusBadGateway, we.Error())
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Error(c, fiber.StatusNotFound, "Record not found")
	}

	if fe, ok := err.(*fiber.Error); ok {
		return Error(c, fe.Code, fe.Message)
	}

	return Error(c, fiber.StatusInternalServerError, err.Error())
}
