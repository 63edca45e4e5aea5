// file: internals/features/school/examination/dto/marks_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"edutrack_backend/internals/features/school/examination/model"
)

type EnterMarksRequest struct {
	ExamID        uuid.UUID `json:"examId" validate:"required"`
	StudentID     uuid.UUID `json:"studentId" validate:"required"`
	MarksObtained *float64  `json:"marksObtained" validate:"omitempty"`
	Status        string    `json:"status" validate:"required"`
	Remarks       *string   `json:"remarks" validate:"omitempty,max=500"`
}

// BulkMarksItem is one row of a bulk submission; rows succeed or fail
// independently.
type BulkMarksItem struct {
	StudentID     uuid.UUID `json:"studentId" validate:"required"`
	MarksObtained *float64  `json:"marksObtained" validate:"omitempty"`
	Status        string    `json:"status" validate:"required"`
	Remarks       *string   `json:"remarks" validate:"omitempty,max=500"`
}

type BulkMarksRequest struct {
	ExamID uuid.UUID       `json:"examId" validate:"required"`
	Marks  []BulkMarksItem `json:"marks" validate:"required,min=1,dive"`
}

// UpdateMarksRequest is partial: only non-nil fields are touched.
type UpdateMarksRequest struct {
	MarksObtained *float64 `json:"marksObtained" validate:"omitempty"`
	Status        *string  `json:"status" validate:"omitempty"`
	Remarks       *string  `json:"remarks" validate:"omitempty,max=500"`
}

/* ========================= Responses ========================= */

type MarksResponse struct {
	ID            uuid.UUID  `json:"id"`
	ExamID        uuid.UUID  `json:"examId"`
	StudentID     uuid.UUID  `json:"studentId"`
	StudentName   string     `json:"studentName,omitempty"`
	EnrollmentNo  string     `json:"enrollmentNo,omitempty"`
	ExamName      string     `json:"examName,omitempty"`
	SubjectName   string     `json:"subjectName,omitempty"`
	MarksObtained float64    `json:"marksObtained"`
	Percentage    float64    `json:"percentage"`
	Grade         *string    `json:"grade"`
	GradePoint    *float64   `json:"gradePoint"`
	Status        string     `json:"status"`
	Remarks       *string    `json:"remarks"`
	EnteredBy     uuid.UUID  `json:"enteredBy"`
	EnteredAt     time.Time  `json:"enteredAt"`
	UpdatedBy     *uuid.UUID `json:"updatedBy"`
	UpdatedAt     *time.Time `json:"updatedAt"`
	VerifiedBy    *uuid.UUID `json:"verifiedBy"`
	VerifiedAt    *time.Time `json:"verifiedAt"`
}

// BulkMarksError itemizes one failed row of a bulk submission.
type BulkMarksError struct {
	StudentID uuid.UUID `json:"studentId"`
	Error     string    `json:"error"`
}

// BulkMarksResult always satisfies Entered+Failed == len(request.Marks).
type BulkMarksResult struct {
	Entered int              `json:"entered"`
	Failed  int              `json:"failed"`
	Records []MarksResponse  `json:"records"`
	Errors  []BulkMarksError `json:"errors"`
}

// StudentPerformanceSummary aggregates a student's marks after filtering.
type StudentPerformanceSummary struct {
	TotalExams        int     `json:"totalExams"`
	ExamsAppeared     int     `json:"examsAppeared"`
	AveragePercentage float64 `json:"averagePercentage"`
	AverageGradePoint float64 `json:"averageGradePoint"`
	OverallGrade      *string `json:"overallGrade"`
}

// StudentMarksItem is one row of the student performance listing, enriched
// with its exam context.
type StudentMarksItem struct {
	MarksResponse
	ExamType   string `json:"examType"`
	ExamDate   string `json:"examDate"`
	TotalMarks int    `json:"totalMarks"`
}

type StudentPerformance struct {
	StudentID    uuid.UUID                 `json:"studentId"`
	StudentName  string                    `json:"studentName"`
	EnrollmentNo string                    `json:"enrollmentNo"`
	ClassID      uuid.UUID                 `json:"classId"`
	Summary      StudentPerformanceSummary `json:"summary"`
	Marks        []StudentMarksItem        `json:"marks"`
}

func NewMarksResponse(m *model.MarksModel) MarksResponse {
	return MarksResponse{
		ID:            m.ID,
		ExamID:        m.ExamID,
		StudentID:     m.StudentID,
		MarksObtained: m.MarksObtained,
		Percentage:    m.Percentage,
		Grade:         m.Grade,
		GradePoint:    m.GradePoint,
		Status:        m.Status,
		Remarks:       m.Remarks,
		EnteredBy:     m.EnteredBy,
		EnteredAt:     m.EnteredAt,
		UpdatedBy:     m.UpdatedBy,
		UpdatedAt:     m.UpdatedAt,
		VerifiedBy:    m.VerifiedBy,
		VerifiedAt:    m.VerifiedAt,
	}
}
