// file: internals/features/school/examination/validation/exam_rules.go
package validation

import (
	"fmt"
	"strings"
	"time"

	"edutrack_backend/internals/features/school/examination/model"
)

var examTypes = []string{
	model.ExamTypeUnitTest,
	model.ExamTypeMidterm,
	model.ExamTypeFinal,
	model.ExamTypeAssignment,
	model.ExamTypeProject,
	model.ExamTypePractical,
	model.ExamTypeQuiz,
	model.ExamTypeOral,
}

var examStatuses = []string{
	model.ExamStatusScheduled,
	model.ExamStatusOngoing,
	model.ExamStatusCompleted,
	model.ExamStatusCancelled,
}

// ExamData is the field set shared by exam create and the aggregate check.
type ExamData struct {
	Name         string
	Type         string
	TotalMarks   int
	PassingMarks int
	ExamDate     time.Time
	Weightage    *float64
	Duration     *int
}

func ExamType(t string) Result {
	var r Result
	for _, v := range examTypes {
		if t == v {
			return r
		}
	}
	r.add("type", fmt.Sprintf("Invalid exam type. Must be one of: %s", strings.Join(examTypes, ", ")))
	return r
}

// ExamDate accepts dates within one calendar year behind or ahead of now,
// inclusive.
func ExamDate(date, now time.Time) Result {
	var r Result
	if date.Before(now.AddDate(-1, 0, 0)) {
		r.add("exam_date", "Exam date cannot be more than 1 year in the past")
	} else if date.After(now.AddDate(1, 0, 0)) {
		r.add("exam_date", "Exam date cannot be more than 1 year in the future")
	}
	return r
}

func MarksRange(totalMarks, passingMarks int) Result {
	var r Result
	if totalMarks < 1 || totalMarks > 1000 {
		r.add("total_marks", "Total marks must be between 1 and 1000")
	}
	if passingMarks < 1 || passingMarks > totalMarks {
		r.add("passing_marks", "Passing marks must be between 1 and total marks")
	}
	return r
}

func Weightage(w float64) Result {
	var r Result
	if w < 0.1 || w > 5.0 {
		r.add("weightage", "Weightage must be between 0.1 and 5.0")
	}
	return r
}

func Duration(minutes int) Result {
	var r Result
	if minutes < 15 || minutes > 300 {
		r.add("duration", "Duration must be between 15 and 300 minutes")
	}
	return r
}

func ExamStatus(status string) Result {
	var r Result
	for _, v := range examStatuses {
		if status == v {
			return r
		}
	}
	r.add("status", fmt.Sprintf("Invalid status. Must be one of: %s", strings.Join(examStatuses, ", ")))
	return r
}

// Exam runs every field-level rule over a full create payload and returns
// all violations in one result.
func Exam(data ExamData, now time.Time) Result {
	var r Result

	if strings.TrimSpace(data.Name) == "" {
		r.add("name", "Exam name is required")
	}
	if data.Type == "" {
		r.add("type", "Exam type is required")
	} else {
		r.merge(ExamType(data.Type))
	}

	r.merge(MarksRange(data.TotalMarks, data.PassingMarks))

	if data.ExamDate.IsZero() {
		r.add("exam_date", "Exam date is required")
	} else {
		r.merge(ExamDate(data.ExamDate, now))
	}

	if data.Weightage != nil {
		r.merge(Weightage(*data.Weightage))
	}
	if data.Duration != nil {
		r.merge(Duration(*data.Duration))
	}

	return r
}
