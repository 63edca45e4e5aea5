// file: internals/features/school/examination/model/exam_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Exam status state machine: scheduled → ongoing → completed, cancelled
// reachable from any non-terminal state. Transitions are always explicit.
const (
	ExamStatusScheduled = "scheduled"
	ExamStatusOngoing   = "ongoing"
	ExamStatusCompleted = "completed"
	ExamStatusCancelled = "cancelled"
)

const (
	ExamTypeUnitTest   = "unit_test"
	ExamTypeMidterm    = "midterm"
	ExamTypeFinal      = "final"
	ExamTypeAssignment = "assignment"
	ExamTypeProject    = "project"
	ExamTypePractical  = "practical"
	ExamTypeQuiz       = "quiz"
	ExamTypeOral       = "oral"
)

// ExamModel maps table `exams`.
type ExamModel struct {
	ID       uuid.UUID `json:"exam_id" gorm:"column:exam_id;type:uuid;default:gen_random_uuid();primaryKey"`
	SchoolID uuid.UUID `json:"exam_school_id" gorm:"column:exam_school_id;type:uuid;not null;index:idx_exams_school_date,priority:1"`

	Name string `json:"exam_name" gorm:"column:exam_name;type:varchar(180);not null"`
	Type string `json:"exam_type" gorm:"column:exam_type;type:varchar(20);not null"`

	ClassID   uuid.UUID `json:"exam_class_id" gorm:"column:exam_class_id;type:uuid;not null;index:idx_exams_class"`
	SubjectID uuid.UUID `json:"exam_subject_id" gorm:"column:exam_subject_id;type:uuid;not null;index:idx_exams_subject"`

	TotalMarks   int     `json:"exam_total_marks" gorm:"column:exam_total_marks;not null"`
	PassingMarks int     `json:"exam_passing_marks" gorm:"column:exam_passing_marks;not null"`
	Weightage    float64 `json:"exam_weightage" gorm:"column:exam_weightage;type:numeric(3,1);not null;default:1.0"`

	ExamDate time.Time `json:"exam_date" gorm:"column:exam_date;type:date;not null;index:idx_exams_school_date,priority:2"`

	// minutes, optional
	Duration       *int           `json:"exam_duration" gorm:"column:exam_duration"`
	Instructions   *string        `json:"exam_instructions" gorm:"column:exam_instructions;type:text"`
	SyllabusTopics pq.StringArray `json:"exam_syllabus_topics" gorm:"column:exam_syllabus_topics;type:text[]"`

	CreatedBy uuid.UUID `json:"exam_created_by" gorm:"column:exam_created_by;type:uuid;not null"`
	Status    string    `json:"exam_status" gorm:"column:exam_status;type:varchar(20);not null;default:scheduled;index:idx_exams_status"`

	CreatedAt time.Time      `json:"exam_created_at" gorm:"column:exam_created_at;not null;autoCreateTime"`
	UpdatedAt time.Time      `json:"exam_updated_at" gorm:"column:exam_updated_at;not null;autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"exam_deleted_at" gorm:"column:exam_deleted_at;index"`
}

func (ExamModel) TableName() string { return "exams" }
