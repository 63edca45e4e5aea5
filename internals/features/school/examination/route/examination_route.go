// file: internals/features/school/examination/route/examination_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"edutrack_backend/internals/constants"
	examController "edutrack_backend/internals/features/school/examination/controller"
	"edutrack_backend/internals/features/school/examination/grading"
	"edutrack_backend/internals/features/school/examination/service"
	"edutrack_backend/internals/features/school/examination/store"
	authMiddleware "edutrack_backend/internals/middlewares/auth"
)

// ExaminationRoutes mounts the exam, marks, template and grade-config
// endpoints on an already-authenticated router group.
func ExaminationRoutes(r fiber.Router, db *gorm.DB) {
	st := store.NewGormStore(db)

	examSvc := service.NewExamService(st)
	marksSvc := service.NewMarksService(st, grading.DefaultTable())
	tplSvc := service.NewTemplateService(st)

	examCtl := examController.NewExamController(examSvc)
	marksCtl := examController.NewMarksController(marksSvc, examSvc)
	tplCtl := examController.NewTemplateController(tplSvc)

	adminOnly := authMiddleware.OnlyRoles("", constants.RoleAdmin)
	staff := authMiddleware.OnlyRoles("", constants.RoleAdmin, constants.RoleTeacher)

	// ===== Exams =====
	exams := r.Group("/exams")
	exams.Post("/", staff, examCtl.Create)
	exams.Get("/", examCtl.List)
	exams.Get("/:examId", examCtl.Detail)
	exams.Put("/:examId", staff, examCtl.Update)
	exams.Post("/:examId/status", staff, examCtl.ChangeStatus)
	exams.Delete("/:examId", adminOnly, examCtl.Delete)

	// ===== Marks =====
	marks := r.Group("/marks")
	marks.Post("/", staff, marksCtl.Enter)
	marks.Post("/bulk", staff, marksCtl.EnterBulk)
	marks.Get("/exam/:examId", marksCtl.ByExam)
	marks.Get("/student/:studentId", marksCtl.ByStudent)
	marks.Put("/:marksId", staff, marksCtl.Update)
	marks.Post("/:marksId/verify", adminOnly, marksCtl.Verify)
	marks.Delete("/:marksId", adminOnly, marksCtl.Delete)

	// ===== Templates =====
	templates := r.Group("/exam-templates")
	templates.Post("/", adminOnly, tplCtl.Create)
	templates.Get("/", tplCtl.List)
	templates.Put("/:id", adminOnly, tplCtl.Update)
	templates.Delete("/:id", adminOnly, tplCtl.Delete)

	// ===== Grade config =====
	r.Get("/grade-config", marksCtl.GradeConfig)
}
