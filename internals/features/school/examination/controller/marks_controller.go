// file: internals/features/school/examination/controller/marks_controller.go
package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"edutrack_backend/internals/constants"
	"edutrack_backend/internals/features/school/examination/dto"
	"edutrack_backend/internals/features/school/examination/model"
	"edutrack_backend/internals/features/school/examination/service"
	helper "edutrack_backend/internals/helpers"
)

type MarksController struct {
	Service   *service.MarksService
	Exams     *service.ExamService
	Validator *validator.Validate
}

func NewMarksController(svc *service.MarksService, exams *service.ExamService) *MarksController {
	return &MarksController{
		Service:   svc,
		Exams:     exams,
		Validator: validator.New(),
	}
}

// guardMarksEntry checks that the caller may write marks for this exam:
// admins always, teachers only for their own subject, both only within
// their school.
func (ctl *MarksController) guardMarksEntry(c *fiber.Ctx, examID uuid.UUID) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	exam, err := ctl.Exams.Get(c.Context(), examID)
	if err != nil {
		return err
	}
	if exam.SchoolID != schoolID {
		return fiber.NewError(fiber.StatusNotFound, service.ErrExamNotFound.Error())
	}

	if helper.GetRoleFromToken(c) == constants.RoleAdmin {
		return nil
	}
	authorized, err := ctl.Exams.IsTeacherAuthorized(c.Context(), userID, exam.ID)
	if err != nil {
		return err
	}
	if !authorized {
		return fiber.NewError(fiber.StatusForbidden, "You are not authorized to enter marks for this exam")
	}
	return nil
}

// guardMarksRecord resolves a marks record and confirms its exam belongs
// to the caller's school. Cross-school records read as missing so IDs
// cannot be probed across tenants.
func (ctl *MarksController) guardMarksRecord(c *fiber.Ctx, marksID uuid.UUID) (*model.MarksModel, error) {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return nil, err
	}

	rec, err := ctl.Service.Get(c.Context(), marksID)
	if err != nil {
		return nil, err
	}
	exam, err := ctl.Exams.Get(c.Context(), rec.ExamID)
	if err != nil {
		return nil, err
	}
	if exam.SchoolID != schoolID {
		return nil, fiber.NewError(fiber.StatusNotFound, service.ErrMarksNotFound.Error())
	}
	return rec, nil
}

// ==== ENTRY ====

// POST /api/marks
func (ctl *MarksController) Enter(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return writeServiceError(c, err)
	}

	var req dto.EnterMarksRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := ctl.guardMarksEntry(c, req.ExamID); err != nil {
		return writeServiceError(c, err)
	}

	resp, err := ctl.Service.Enter(c.Context(), req, userID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return helper.JsonCreated(c, "Marks entered successfully", resp)
}

// POST /api/marks/bulk
//
// Row failures do not fail the request: the 201 body itemizes entered,
// failed and the per-student errors.
func (ctl *MarksController) EnterBulk(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return writeServiceError(c, err)
	}

	var req dto.BulkMarksRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := ctl.guardMarksEntry(c, req.ExamID); err != nil {
		return writeServiceError(c, err)
	}

	result, err := ctl.Service.EnterBulk(c.Context(), req, userID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return helper.JsonCreated(c, "Bulk marks processed", result)
}

// ==== READS ====

// GET /api/marks/exam/:examId
func (ctl *MarksController) ByExam(c *fiber.Ctx) error {
	examID, err := helper.ParseUUIDParam(c, "examId")
	if err != nil {
		return writeServiceError(c, err)
	}
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return writeServiceError(c, err)
	}

	exam, err := ctl.Exams.Get(c.Context(), examID)
	if err != nil {
		return writeServiceError(c, err)
	}
	if exam.SchoolID != schoolID {
		return helper.JsonError(c, fiber.StatusNotFound, service.ErrExamNotFound.Error())
	}

	marks, stats, err := ctl.Service.ExamMarks(c.Context(), exam)
	if err != nil {
		return writeServiceError(c, err)
	}
	return helper.JsonOK(c, "", fiber.Map{
		"examId":     exam.ID,
		"examName":   exam.Name,
		"totalMarks": exam.TotalMarks,
		"marks":      marks,
		"statistics": stats,
	})
}

// GET /api/marks/student/:studentId
func (ctl *MarksController) ByStudent(c *fiber.Ctx) error {
	studentID, err := helper.ParseUUIDParam(c, "studentId")
	if err != nil {
		return writeServiceError(c, err)
	}
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return writeServiceError(c, err)
	}

	filter := service.PerformanceFilter{}
	if filter.SubjectID, err = helper.QueryUUID(c, "subjectId"); err != nil {
		return writeServiceError(c, err)
	}
	if filter.StartDate, err = helper.QueryDate(c, "startDate"); err != nil {
		return writeServiceError(c, err)
	}
	if filter.EndDate, err = helper.QueryDate(c, "endDate"); err != nil {
		return writeServiceError(c, err)
	}

	perf, err := ctl.Service.StudentPerformance(c.Context(), studentID, schoolID, filter)
	if err != nil {
		return writeServiceError(c, err)
	}
	return helper.JsonOK(c, "", perf)
}

// ==== UPDATE / VERIFY / DELETE ====

// PUT /api/marks/:marksId
func (ctl *MarksController) Update(c *fiber.Ctx) error {
	marksID, err := helper.ParseUUIDParam(c, "marksId")
	if err != nil {
		return writeServiceError(c, err)
	}
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return writeServiceError(c, err)
	}

	rec, err := ctl.Service.Get(c.Context(), marksID)
	if err != nil {
		return writeServiceError(c, err)
	}
	if err := ctl.guardMarksEntry(c, rec.ExamID); err != nil {
		return writeServiceError(c, err)
	}

	var req dto.UpdateMarksRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	resp, err := ctl.Service.Update(c.Context(), marksID, req, userID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return helper.JsonUpdated(c, "Marks updated successfully", resp)
}

// POST /api/marks/:marksId/verify (admin only, enforced at the route)
func (ctl *MarksController) Verify(c *fiber.Ctx) error {
	marksID, err := helper.ParseUUIDParam(c, "marksId")
	if err != nil {
		return writeServiceError(c, err)
	}
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return writeServiceError(c, err)
	}

	if _, err := ctl.guardMarksRecord(c, marksID); err != nil {
		return writeServiceError(c, err)
	}

	resp, err := ctl.Service.Verify(c.Context(), marksID, userID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return helper.JsonUpdated(c, "Marks verified successfully", resp)
}

// DELETE /api/marks/:marksId (admin only, enforced at the route)
func (ctl *MarksController) Delete(c *fiber.Ctx) error {
	marksID, err := helper.ParseUUIDParam(c, "marksId")
	if err != nil {
		return writeServiceError(c, err)
	}
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return writeServiceError(c, err)
	}

	if _, err := ctl.guardMarksRecord(c, marksID); err != nil {
		return writeServiceError(c, err)
	}

	if err := ctl.Service.Delete(c.Context(), marksID, userID); err != nil {
		return writeServiceError(c, err)
	}
	return helper.JsonDeleted(c, "Marks deleted successfully", fiber.Map{"id": marksID})
}

// ==== GRADE CONFIG ====

// GET /api/grade-config
func (ctl *MarksController) GradeConfig(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return writeServiceError(c, err)
	}

	table := ctl.Service.EffectiveTable(c.Context(), schoolID)
	return helper.JsonOK(c, "", fiber.Map{
		"schoolId": schoolID,
		"bands":    table.Bands,
	})
}
