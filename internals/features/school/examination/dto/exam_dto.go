// file: internals/features/school/examination/dto/exam_dto.go
package dto

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"edutrack_backend/internals/features/school/examination/model"
)

// Wire format keeps the camelCase field names the mobile client already
// speaks; the snake_case prefixed names stay a storage concern.

type CreateExamRequest struct {
	Name           string    `json:"name" validate:"required,max=180"`
	Type           string    `json:"type" validate:"required"`
	ClassID        uuid.UUID `json:"classId" validate:"required"`
	SubjectID      uuid.UUID `json:"subjectId" validate:"required"`
	TotalMarks     int       `json:"totalMarks" validate:"required"`
	PassingMarks   int       `json:"passingMarks" validate:"required"`
	Weightage      *float64  `json:"weightage" validate:"omitempty"`
	ExamDate       string    `json:"examDate" validate:"required"`
	Duration       *int      `json:"duration" validate:"omitempty"`
	Instructions   *string   `json:"instructions" validate:"omitempty"`
	SyllabusTopics []string  `json:"syllabusTopics" validate:"omitempty,dive,max=180"`
}

// UpdateExamRequest is partial: only non-nil fields are touched.
type UpdateExamRequest struct {
	Name           *string    `json:"name" validate:"omitempty,max=180"`
	Type           *string    `json:"type" validate:"omitempty"`
	ClassID        *uuid.UUID `json:"classId" validate:"omitempty"`
	SubjectID      *uuid.UUID `json:"subjectId" validate:"omitempty"`
	TotalMarks     *int       `json:"totalMarks" validate:"omitempty"`
	PassingMarks   *int       `json:"passingMarks" validate:"omitempty"`
	Weightage      *float64   `json:"weightage" validate:"omitempty"`
	ExamDate       *string    `json:"examDate" validate:"omitempty"`
	Duration       *int       `json:"duration" validate:"omitempty"`
	Instructions   *string    `json:"instructions" validate:"omitempty"`
	SyllabusTopics []string   `json:"syllabusTopics" validate:"omitempty,dive,max=180"`
}

type ChangeExamStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// ParseExamDate accepts plain dates and full RFC3339 timestamps.
func ParseExamDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, errors.New("Invalid date format")
}

/* ========================= Responses ========================= */

type ExamResponse struct {
	ID             uuid.UUID `json:"id"`
	SchoolID       uuid.UUID `json:"schoolId"`
	Name           string    `json:"name"`
	Type           string    `json:"type"`
	ClassID        uuid.UUID `json:"classId"`
	SubjectID      uuid.UUID `json:"subjectId"`
	ClassName      string    `json:"className,omitempty"`
	SubjectName    string    `json:"subjectName,omitempty"`
	TotalMarks     int       `json:"totalMarks"`
	PassingMarks   int       `json:"passingMarks"`
	Weightage      float64   `json:"weightage"`
	ExamDate       string    `json:"examDate"`
	Duration       *int      `json:"duration"`
	Instructions   *string   `json:"instructions"`
	SyllabusTopics []string  `json:"syllabusTopics"`
	CreatedBy      uuid.UUID `json:"createdBy"`
	CreatedByName  string    `json:"createdByName,omitempty"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// ExamListItem is the trimmed row shape of the exam list endpoint.
type ExamListItem struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Type          string    `json:"type"`
	ClassID       uuid.UUID `json:"classId"`
	SubjectID     uuid.UUID `json:"subjectId"`
	ClassName     string    `json:"className"`
	SubjectName   string    `json:"subjectName"`
	ExamDate      string    `json:"examDate"`
	TotalMarks    int       `json:"totalMarks"`
	PassingMarks  int       `json:"passingMarks"`
	Status        string    `json:"status"`
	MarksEntered  int       `json:"marksEntered"`
	TotalStudents int       `json:"totalStudents"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ExamStatistics is the derived block on the exam detail endpoint.
type ExamStatistics struct {
	TotalStudents     int     `json:"totalStudents"`
	MarksEntered      int     `json:"marksEntered"`
	Pending           int     `json:"pending"`
	AverageMarks      float64 `json:"averageMarks"`
	AveragePercentage float64 `json:"averagePercentage"`
	HighestMarks      float64 `json:"highestMarks"`
	LowestMarks       float64 `json:"lowestMarks"`
	PassCount         int     `json:"passCount"`
	FailCount         int     `json:"failCount"`
	AbsentCount       int     `json:"absentCount"`
	ExemptedCount     int     `json:"exemptedCount"`
}

func NewExamResponse(m *model.ExamModel) ExamResponse {
	topics := []string(m.SyllabusTopics)
	if topics == nil {
		topics = []string{}
	}
	return ExamResponse{
		ID:             m.ID,
		SchoolID:       m.SchoolID,
		Name:           m.Name,
		Type:           m.Type,
		ClassID:        m.ClassID,
		SubjectID:      m.SubjectID,
		TotalMarks:     m.TotalMarks,
		PassingMarks:   m.PassingMarks,
		Weightage:      m.Weightage,
		ExamDate:       m.ExamDate.Format("2006-01-02"),
		Duration:       m.Duration,
		Instructions:   m.Instructions,
		SyllabusTopics: topics,
		CreatedBy:      m.CreatedBy,
		Status:         m.Status,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}
