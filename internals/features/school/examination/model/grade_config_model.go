// file: internals/features/school/examination/model/grade_config_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// GradeConfigModel maps table `grade_configs`: one grading scheme per school.
// Bands is the serialized band list (see grading.Band); decode happens in
// the store, never in business logic.
type GradeConfigModel struct {
	ID       uuid.UUID `json:"grade_config_id" gorm:"column:grade_config_id;type:uuid;default:gen_random_uuid();primaryKey"`
	SchoolID uuid.UUID `json:"grade_config_school_id" gorm:"column:grade_config_school_id;type:uuid;not null;uniqueIndex:uq_grade_configs_school"`

	Name  string         `json:"grade_config_name" gorm:"column:grade_config_name;type:varchar(120);not null"`
	Bands datatypes.JSON `json:"grade_config_bands" gorm:"column:grade_config_bands;type:jsonb;not null"`

	CreatedAt time.Time      `json:"grade_config_created_at" gorm:"column:grade_config_created_at;not null;autoCreateTime"`
	UpdatedAt time.Time      `json:"grade_config_updated_at" gorm:"column:grade_config_updated_at;not null;autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"grade_config_deleted_at" gorm:"column:grade_config_deleted_at;index"`
}

func (GradeConfigModel) TableName() string { return "grade_configs" }
