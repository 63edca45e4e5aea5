// file: internals/features/school/examination/dto/template_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"edutrack_backend/internals/features/school/examination/model"
)

type CreateTemplateRequest struct {
	Name         string  `json:"name" validate:"required,max=180"`
	Type         string  `json:"type" validate:"required"`
	TotalMarks   int     `json:"totalMarks" validate:"required"`
	PassingMarks int     `json:"passingMarks" validate:"required"`
	Weightage    float64 `json:"weightage"`
	IsActive     *bool   `json:"isActive" validate:"omitempty"`
}

type UpdateTemplateRequest struct {
	Name         *string  `json:"name" validate:"omitempty,max=180"`
	Type         *string  `json:"type" validate:"omitempty"`
	TotalMarks   *int     `json:"totalMarks" validate:"omitempty"`
	PassingMarks *int     `json:"passingMarks" validate:"omitempty"`
	Weightage    *float64 `json:"weightage" validate:"omitempty"`
	IsActive     *bool    `json:"isActive" validate:"omitempty"`
}

type TemplateResponse struct {
	ID           uuid.UUID `json:"id"`
	SchoolID     uuid.UUID `json:"schoolId"`
	Name         string    `json:"name"`
	Type         string    `json:"type"`
	TotalMarks   int       `json:"totalMarks"`
	PassingMarks int       `json:"passingMarks"`
	Weightage    float64   `json:"weightage"`
	IsActive     bool      `json:"isActive"`
	CreatedBy    uuid.UUID `json:"createdBy"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func NewTemplateResponse(m *model.ExamTemplateModel) TemplateResponse {
	return TemplateResponse{
		ID:           m.ID,
		SchoolID:     m.SchoolID,
		Name:         m.Name,
		Type:         m.Type,
		TotalMarks:   m.TotalMarks,
		PassingMarks: m.PassingMarks,
		Weightage:    m.Weightage,
		IsActive:     m.IsActive,
		CreatedBy:    m.CreatedBy,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
