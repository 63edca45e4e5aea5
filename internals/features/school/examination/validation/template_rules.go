// file: internals/features/school/examination/validation/template_rules.go
package validation

import "strings"

// TemplateData is the exam-template payload. Templates use a narrower
// weightage scale ([0,1] share of the final grade) than exams do.
type TemplateData struct {
	Name         string
	Type         string
	TotalMarks   int
	PassingMarks int
	Weightage    float64
}

// Template collects every violation rather than failing fast, same as Exam.
func Template(data TemplateData) Result {
	var r Result

	if strings.TrimSpace(data.Name) == "" {
		r.add("name", "Template name is required")
	}
	if data.Type == "" {
		r.add("type", "Template type is required")
	} else {
		r.merge(ExamType(data.Type))
	}
	if data.TotalMarks <= 0 {
		r.add("total_marks", "Total marks must be greater than 0")
	}
	if data.PassingMarks < 0 {
		r.add("passing_marks", "Passing marks cannot be negative")
	}
	if data.TotalMarks > 0 && data.PassingMarks >= data.TotalMarks {
		r.add("passing_marks", "Passing marks must be less than total marks")
	}
	if data.Weightage < 0 || data.Weightage > 1 {
		r.add("weightage", "Weightage must be between 0 and 1")
	}

	return r
}
