// file: internals/features/school/academics/model/class_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClassModel maps table `classes`. CRUD lives in the school-admin service;
// exams only resolve class ownership and display names from it.
type ClassModel struct {
	ID       uuid.UUID `json:"class_id" gorm:"column:class_id;type:uuid;default:gen_random_uuid();primaryKey"`
	SchoolID uuid.UUID `json:"class_school_id" gorm:"column:class_school_id;type:uuid;not null;index:idx_classes_school"`

	Name  string `json:"class_name" gorm:"column:class_name;type:varchar(120);not null"`
	Grade *int   `json:"class_grade" gorm:"column:class_grade"`

	CreatedAt time.Time      `json:"class_created_at" gorm:"column:class_created_at;not null;autoCreateTime"`
	UpdatedAt time.Time      `json:"class_updated_at" gorm:"column:class_updated_at;not null;autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"class_deleted_at" gorm:"column:class_deleted_at;index"`
}

func (ClassModel) TableName() string { return "classes" }
