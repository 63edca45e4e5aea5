// file: internals/features/school/academics/model/student_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StudentModel maps table `students`.
type StudentModel struct {
	ID      uuid.UUID `json:"student_id" gorm:"column:student_id;type:uuid;default:gen_random_uuid();primaryKey"`
	ClassID uuid.UUID `json:"student_class_id" gorm:"column:student_class_id;type:uuid;not null;index:idx_students_class"`

	Name         string `json:"student_name" gorm:"column:student_name;type:varchar(120);not null"`
	EnrollmentNo string `json:"student_enrollment_no" gorm:"column:student_enrollment_no;type:varchar(40);not null"`

	CreatedAt time.Time      `json:"student_created_at" gorm:"column:student_created_at;not null;autoCreateTime"`
	UpdatedAt time.Time      `json:"student_updated_at" gorm:"column:student_updated_at;not null;autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"student_deleted_at" gorm:"column:student_deleted_at;index"`
}

func (StudentModel) TableName() string { return "students" }
