// file: internals/features/school/examination/controller/http_errors.go
package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"edutrack_backend/internals/features/school/examination/service"
	helper "edutrack_backend/internals/helpers"
)

// writeServiceError maps service errors onto the JSON error envelope.
// Lookup sentinels become 404, fiber errors keep their code, and anything
// else is treated as a client-side 400 with the rule's message, matching
// how the API has always reported rule violations.
func writeServiceError(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return helper.JsonError(c, fe.Code, fe.Message)
	}

	switch {
	case errors.Is(err, service.ErrExamNotFound),
		errors.Is(err, service.ErrMarksNotFound),
		errors.Is(err, service.ErrStudentNotFound),
		errors.Is(err, service.ErrTemplateNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, err.Error())
	default:
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
}
