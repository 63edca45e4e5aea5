// file: internals/features/school/examination/model/marks_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	MarksStatusPresent  = "present"
	MarksStatusAbsent   = "absent"
	MarksStatusExempted = "exempted"
)

// MarksModel maps table `marks`: one student's outcome for one exam.
//
// The composite unique index on (exam_id, student_id) is the authority on
// duplicates; the service-level existence check is only there for friendlier
// error messages and can lose races safely.
//
// A row with non-nil VerifiedBy is frozen: no update, no delete.
type MarksModel struct {
	ID        uuid.UUID `json:"marks_id" gorm:"column:marks_id;type:uuid;default:gen_random_uuid();primaryKey"`
	ExamID    uuid.UUID `json:"marks_exam_id" gorm:"column:marks_exam_id;type:uuid;not null;uniqueIndex:uq_marks_exam_student,priority:1"`
	StudentID uuid.UUID `json:"marks_student_id" gorm:"column:marks_student_id;type:uuid;not null;uniqueIndex:uq_marks_exam_student,priority:2;index:idx_marks_student"`

	// Zero whenever status is not `present`.
	MarksObtained float64 `json:"marks_obtained" gorm:"column:marks_obtained;type:numeric(7,2);not null;default:0"`

	// Derived on every write of MarksObtained/Status, never at read time.
	Percentage float64  `json:"marks_percentage" gorm:"column:marks_percentage;type:numeric(5,2);not null;default:0"`
	Grade      *string  `json:"marks_grade" gorm:"column:marks_grade;type:varchar(4)"`
	GradePoint *float64 `json:"marks_grade_point" gorm:"column:marks_grade_point;type:numeric(4,2)"`

	Status  string  `json:"marks_status" gorm:"column:marks_status;type:varchar(12);not null"`
	Remarks *string `json:"marks_remarks" gorm:"column:marks_remarks;type:text"`

	EnteredBy uuid.UUID  `json:"marks_entered_by" gorm:"column:marks_entered_by;type:uuid;not null"`
	EnteredAt time.Time  `json:"marks_entered_at" gorm:"column:marks_entered_at;not null;autoCreateTime"`
	UpdatedBy *uuid.UUID `json:"marks_updated_by" gorm:"column:marks_updated_by;type:uuid"`
	UpdatedAt *time.Time `json:"marks_updated_at" gorm:"column:marks_updated_at"`

	VerifiedBy *uuid.UUID `json:"marks_verified_by" gorm:"column:marks_verified_by;type:uuid"`
	VerifiedAt *time.Time `json:"marks_verified_at" gorm:"column:marks_verified_at"`
}

func (MarksModel) TableName() string { return "marks" }

// IsVerified reports whether the record passed the one-way verification gate.
func (m *MarksModel) IsVerified() bool { return m.VerifiedBy != nil }
