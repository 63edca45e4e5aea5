// file: internals/features/school/examination/model/exam_template_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ExamTemplateModel maps table `exam_templates`: a reusable exam pattern.
// Template→exam auto-generation is deliberately not exposed; templates are
// kept for their validation contract and as admin reference data.
type ExamTemplateModel struct {
	ID       uuid.UUID `json:"exam_template_id" gorm:"column:exam_template_id;type:uuid;default:gen_random_uuid();primaryKey"`
	SchoolID uuid.UUID `json:"exam_template_school_id" gorm:"column:exam_template_school_id;type:uuid;not null;index:idx_exam_templates_school"`

	Name string `json:"exam_template_name" gorm:"column:exam_template_name;type:varchar(180);not null"`
	Type string `json:"exam_template_type" gorm:"column:exam_template_type;type:varchar(20);not null"`

	TotalMarks   int     `json:"exam_template_total_marks" gorm:"column:exam_template_total_marks;not null"`
	PassingMarks int     `json:"exam_template_passing_marks" gorm:"column:exam_template_passing_marks;not null"`
	Weightage    float64 `json:"exam_template_weightage" gorm:"column:exam_template_weightage;type:numeric(3,2);not null"`

	IsActive bool `json:"exam_template_is_active" gorm:"column:exam_template_is_active;not null;default:true"`

	CreatedBy uuid.UUID `json:"exam_template_created_by" gorm:"column:exam_template_created_by;type:uuid;not null"`

	CreatedAt time.Time      `json:"exam_template_created_at" gorm:"column:exam_template_created_at;not null;autoCreateTime"`
	UpdatedAt time.Time      `json:"exam_template_updated_at" gorm:"column:exam_template_updated_at;not null;autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"exam_template_deleted_at" gorm:"column:exam_template_deleted_at;index"`
}

func (ExamTemplateModel) TableName() string { return "exam_templates" }
