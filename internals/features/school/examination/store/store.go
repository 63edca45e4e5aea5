// file: internals/features/school/examination/store/store.go
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	academicsModel "edutrack_backend/internals/features/school/academics/model"
	"edutrack_backend/internals/features/school/examination/grading"
	"edutrack_backend/internals/features/school/examination/model"
	userModel "edutrack_backend/internals/features/users/user/model"
)

var (
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate surfaces the (exam_id, student_id) unique-index violation.
	ErrDuplicate = errors.New("duplicate record")

	// ErrVerified means the row exists but is frozen by verification.
	ErrVerified = errors.New("record is verified")

	// ErrAlreadyVerified means a second verify hit an already-verified row.
	ErrAlreadyVerified = errors.New("record already verified")
)

// ExamFilter narrows ListExams. Nil/empty fields are ignored. SubjectIDs,
// when non-nil, restricts results to those subjects (teacher scoping).
type ExamFilter struct {
	SchoolID  uuid.UUID
	ClassID   *uuid.UUID
	SubjectID *uuid.UUID
	Type      *string
	Status    *string
	StartDate *time.Time
	EndDate   *time.Time

	SubjectIDs []uuid.UUID
}

// DataStore is everything the examination services need from persistence.
// The production implementation is GORM/Postgres; tests substitute an
// in-memory fake.
type DataStore interface {
	// Collaborator lookups (owned by the school-admin service).
	UserByID(ctx context.Context, id uuid.UUID) (*userModel.UserModel, error)
	ClassByID(ctx context.Context, id uuid.UUID) (*academicsModel.ClassModel, error)
	SubjectByID(ctx context.Context, id uuid.UUID) (*academicsModel.SubjectModel, error)
	StudentByID(ctx context.Context, id uuid.UUID) (*academicsModel.StudentModel, error)
	StudentsByClass(ctx context.Context, classID uuid.UUID) ([]academicsModel.StudentModel, error)
	SubjectIDsByTeacher(ctx context.Context, teacherID uuid.UUID) ([]uuid.UUID, error)

	// Exams.
	CreateExam(ctx context.Context, exam *model.ExamModel) error
	ExamByID(ctx context.Context, id uuid.UUID) (*model.ExamModel, error)
	UpdateExam(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*model.ExamModel, error)
	DeleteExam(ctx context.Context, id uuid.UUID) error
	ListExams(ctx context.Context, filter ExamFilter) ([]model.ExamModel, error)

	// Marks. CreateMarks returns ErrDuplicate when the (exam, student)
	// unique index rejects the insert; the write paths guarded with
	// "unverified" enforce the verification freeze in the same statement
	// that mutates, so concurrent verifies cannot both win.
	CreateMarks(ctx context.Context, marks *model.MarksModel) error
	MarksByID(ctx context.Context, id uuid.UUID) (*model.MarksModel, error)
	MarksByExam(ctx context.Context, examID uuid.UUID) ([]model.MarksModel, error)
	MarksByStudent(ctx context.Context, studentID uuid.UUID) ([]model.MarksModel, error)
	MarksByExamAndStudent(ctx context.Context, examID, studentID uuid.UUID) (*model.MarksModel, error)
	UpdateMarksUnverified(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*model.MarksModel, error)
	DeleteMarksUnverified(ctx context.Context, id uuid.UUID) error
	VerifyMarks(ctx context.Context, id, verifierID uuid.UUID, at time.Time) (*model.MarksModel, error)

	// Grade config. ErrNotFound means "use the default table".
	GradeTableBySchool(ctx context.Context, schoolID uuid.UUID) (*grading.Table, error)

	// Exam templates.
	CreateTemplate(ctx context.Context, tpl *model.ExamTemplateModel) error
	TemplateByID(ctx context.Context, id uuid.UUID) (*model.ExamTemplateModel, error)
	ListTemplates(ctx context.Context, schoolID uuid.UUID, activeOnly bool) ([]model.ExamTemplateModel, error)
	UpdateTemplate(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*model.ExamTemplateModel, error)
	DeleteTemplate(ctx context.Context, id uuid.UUID) error
}
