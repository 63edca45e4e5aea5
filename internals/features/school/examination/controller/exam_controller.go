// file: internals/features/school/examination/controller/exam_controller.go
package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"edutrack_backend/internals/constants"
	"edutrack_backend/internals/features/school/examination/dto"
	"edutrack_backend/internals/features/school/examination/service"
	"edutrack_backend/internals/features/school/examination/store"
	helper "edutrack_backend/internals/helpers"
)

type ExamController struct {
	Service   *service.ExamService
	Validator *validator.Validate
}

func NewExamController(svc *service.ExamService) *ExamController {
	return &ExamController{
		Service:   svc,
		Validator: validator.New(),
	}
}

// ==== CREATE ====

// POST /api/exams
func (ctl *ExamController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return writeServiceError(c, err)
	}

	var req dto.CreateExamRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	if helper.GetRoleFromToken(c) == constants.RoleTeacher {
		ok, err := ctl.Service.IsSubjectTeacher(c.Context(), userID, req.SubjectID)
		if err != nil {
			return writeServiceError(c, err)
		}
		if !ok {
			return helper.JsonError(c, fiber.StatusForbidden, "You are not authorized to create exams for this subject")
		}
	}

	resp, err := ctl.Service.Create(c.Context(), req, userID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return helper.JsonCreated(c, "Exam created successfully", resp)
}

// ==== LIST ====

// GET /api/exams
func (ctl *ExamController) List(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return writeServiceError(c, err)
	}
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return writeServiceError(c, err)
	}

	filter := store.ExamFilter{SchoolID: schoolID}
	if filter.ClassID, err = helper.QueryUUID(c, "classId"); err != nil {
		return writeServiceError(c, err)
	}
	if filter.SubjectID, err = helper.QueryUUID(c, "subjectId"); err != nil {
		return writeServiceError(c, err)
	}
	if v := strings.TrimSpace(c.Query("type")); v != "" {
		filter.Type = &v
	}
	if v := strings.TrimSpace(c.Query("status")); v != "" {
		filter.Status = &v
	}
	if filter.StartDate, err = helper.QueryDate(c, "startDate"); err != nil {
		return writeServiceError(c, err)
	}
	if filter.EndDate, err = helper.QueryDate(c, "endDate"); err != nil {
		return writeServiceError(c, err)
	}

	items, err := ctl.Service.List(c.Context(), filter, userID, helper.GetRoleFromToken(c))
	if err != nil {
		return writeServiceError(c, err)
	}
	return helper.JsonList(c, "", items, len(items))
}

// ==== DETAIL ====

// GET /api/exams/:examId
func (ctl *ExamController) Detail(c *fiber.Ctx) error {
	examID, err := helper.ParseUUIDParam(c, "examId")
	if err != nil {
		return writeServiceError(c, err)
	}
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return writeServiceError(c, err)
	}

	exam, err := ctl.Service.Get(c.Context(), examID)
	if err != nil {
		return writeServiceError(c, err)
	}
	// tenant guard: a foreign school's exam reads as missing
	if exam.SchoolID != schoolID {
		return helper.JsonError(c, fiber.StatusNotFound, service.ErrExamNotFound.Error())
	}

	resp, stats, err := ctl.Service.Details(c.Context(), examID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return helper.JsonOK(c, "", fiber.Map{
		"exam":       resp,
		"statistics": stats,
	})
}

// ==== UPDATE ====

// PUT /api/exams/:examId
func (ctl *ExamController) Update(c *fiber.Ctx) error {
	examID, err := helper.ParseUUIDParam(c, "examId")
	if err != nil {
		return writeServiceError(c, err)
	}
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return writeServiceError(c, err)
	}

	if err := ctl.guardExamWrite(c, examID); err != nil {
		return writeServiceError(c, err)
	}

	var req dto.UpdateExamRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	resp, err := ctl.Service.Update(c.Context(), examID, req, userID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return helper.JsonUpdated(c, "Exam updated successfully", resp)
}

// ==== STATUS ====

// POST /api/exams/:examId/status
func (ctl *ExamController) ChangeStatus(c *fiber.Ctx) error {
	examID, err := helper.ParseUUIDParam(c, "examId")
	if err != nil {
		return writeServiceError(c, err)
	}
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return writeServiceError(c, err)
	}

	if err := ctl.guardExamWrite(c, examID); err != nil {
		return writeServiceError(c, err)
	}

	var req dto.ChangeExamStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	resp, err := ctl.Service.ChangeStatus(c.Context(), examID, req.Status, userID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return helper.JsonUpdated(c, "Exam status updated", resp)
}

// ==== DELETE ====

// DELETE /api/exams/:examId (admin only, enforced at the route)
func (ctl *ExamController) Delete(c *fiber.Ctx) error {
	examID, err := helper.ParseUUIDParam(c, "examId")
	if err != nil {
		return writeServiceError(c, err)
	}
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return writeServiceError(c, err)
	}
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return writeServiceError(c, err)
	}

	exam, err := ctl.Service.Get(c.Context(), examID)
	if err != nil {
		return writeServiceError(c, err)
	}
	if exam.SchoolID != schoolID {
		return helper.JsonError(c, fiber.StatusNotFound, service.ErrExamNotFound.Error())
	}

	if err := ctl.Service.Delete(c.Context(), examID, userID); err != nil {
		return writeServiceError(c, err)
	}
	return helper.JsonDeleted(c, "Exam deleted successfully", fiber.Map{"id": examID})
}

// guardExamWrite enforces admin-or-assigned-teacher plus tenant scope for
// mutating exam endpoints.
func (ctl *ExamController) guardExamWrite(c *fiber.Ctx, examID uuid.UUID) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	exam, err := ctl.Service.Get(c.Context(), examID)
	if err != nil {
		return err
	}
	if exam.SchoolID != schoolID {
		return fiber.NewError(fiber.StatusNotFound, service.ErrExamNotFound.Error())
	}

	if helper.GetRoleFromToken(c) == constants.RoleAdmin {
		return nil
	}
	authorized, err := ctl.Service.IsTeacherAuthorized(c.Context(), userID, exam.ID)
	if err != nil {
		return err
	}
	if !authorized {
		return fiber.NewError(fiber.StatusForbidden, "You are not authorized to modify this exam")
	}
	return nil
}
