// file: internals/features/school/academics/model/subject_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SubjectModel maps table `subjects`. TeacherID is the assigned subject
// teacher; the examination guard checks callers against it.
type SubjectModel struct {
	ID       uuid.UUID `json:"subject_id" gorm:"column:subject_id;type:uuid;default:gen_random_uuid();primaryKey"`
	SchoolID uuid.UUID `json:"subject_school_id" gorm:"column:subject_school_id;type:uuid;not null;index:idx_subjects_school"`
	ClassID  uuid.UUID `json:"subject_class_id" gorm:"column:subject_class_id;type:uuid;not null;index:idx_subjects_class"`

	Name      string     `json:"subject_name" gorm:"column:subject_name;type:varchar(120);not null"`
	TeacherID *uuid.UUID `json:"subject_teacher_id" gorm:"column:subject_teacher_id;type:uuid;index:idx_subjects_teacher"`

	CreatedAt time.Time      `json:"subject_created_at" gorm:"column:subject_created_at;not null;autoCreateTime"`
	UpdatedAt time.Time      `json:"subject_updated_at" gorm:"column:subject_updated_at;not null;autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"subject_deleted_at" gorm:"column:subject_deleted_at;index"`
}

func (SubjectModel) TableName() string { return "subjects" }
