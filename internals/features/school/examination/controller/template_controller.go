// file: internals/features/school/examination/controller/template_controller.go
package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"edutrack_backend/internals/features/school/examination/dto"
	"edutrack_backend/internals/features/school/examination/service"
	helper "edutrack_backend/internals/helpers"
)

type TemplateController struct {
	Service   *service.TemplateService
	Validator *validator.Validate
}

func NewTemplateController(svc *service.TemplateService) *TemplateController {
	return &TemplateController{
		Service:   svc,
		Validator: validator.New(),
	}
}

// POST /api/exam-templates (admin only, enforced at the route)
func (ctl *TemplateController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return writeServiceError(c, err)
	}
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return writeServiceError(c, err)
	}

	var req dto.CreateTemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	resp, err := ctl.Service.Create(c.Context(), req, schoolID, userID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return helper.JsonCreated(c, "Template created successfully", resp)
}

// GET /api/exam-templates?active=true
func (ctl *TemplateController) List(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return writeServiceError(c, err)
	}

	activeOnly := c.QueryBool("active", false)
	items, err := ctl.Service.List(c.Context(), schoolID, activeOnly)
	if err != nil {
		return writeServiceError(c, err)
	}
	return helper.JsonList(c, "", items, len(items))
}

// PUT /api/exam-templates/:id (admin only, enforced at the route)
func (ctl *TemplateController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return writeServiceError(c, err)
	}
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return writeServiceError(c, err)
	}

	tpl, err := ctl.Service.Get(c.Context(), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	if tpl.SchoolID != schoolID {
		return helper.JsonError(c, fiber.StatusNotFound, service.ErrTemplateNotFound.Error())
	}

	var req dto.UpdateTemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	resp, err := ctl.Service.Update(c.Context(), id, req)
	if err != nil {
		return writeServiceError(c, err)
	}
	return helper.JsonUpdated(c, "Template updated successfully", resp)
}

// DELETE /api/exam-templates/:id (admin only, enforced at the route)
func (ctl *TemplateController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return writeServiceError(c, err)
	}
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return writeServiceError(c, err)
	}

	tpl, err := ctl.Service.Get(c.Context(), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	if tpl.SchoolID != schoolID {
		return helper.JsonError(c, fiber.StatusNotFound, service.ErrTemplateNotFound.Error())
	}

	if err := ctl.Service.Delete(c.Context(), id); err != nil {
		return writeServiceError(c, err)
	}
	return helper.JsonDeleted(c, "Template deleted successfully", fiber.Map{"id": id})
}
