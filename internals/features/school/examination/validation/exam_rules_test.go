// file: internals/features/school/examination/validation/exam_rules_test.go
package validation

import (
	"strings"
	"testing"
	"time"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func validExamData() ExamData {
	return ExamData{
		Name:         "Midterm Mathematics",
		Type:         "midterm",
		TotalMarks:   100,
		PassingMarks: 33,
		ExamDate:     testNow.AddDate(0, 1, 0),
	}
}

func TestExamTypeRule(t *testing.T) {
	for _, typ := range []string{"unit_test", "midterm", "final", "assignment", "project", "practical", "quiz", "oral"} {
		if r := ExamType(typ); !r.OK() {
			t.Errorf("ExamType(%q) rejected a valid type", typ)
		}
	}
	if r := ExamType("viva"); r.OK() {
		t.Error("ExamType accepted an unknown type")
	}
}

func TestExamDateRule(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		ok   bool
	}{
		{"today", testNow, true},
		{"exactly one year ahead", testNow.AddDate(1, 0, 0), true},
		{"exactly one year behind", testNow.AddDate(-1, 0, 0), true},
		{"too far ahead", testNow.AddDate(1, 0, 1), false},
		{"too far behind", testNow.AddDate(-1, 0, -1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExamDate(tt.date, testNow).OK(); got != tt.ok {
				t.Errorf("ExamDate(%v) ok = %v, want %v", tt.date, got, tt.ok)
			}
		})
	}
}

func TestMarksRangeRule(t *testing.T) {
	tests := []struct {
		name    string
		total   int
		passing int
		ok      bool
	}{
		{"typical", 100, 33, true},
		{"minimum", 1, 1, true},
		{"maximum", 1000, 1000, true},
		{"total zero", 0, 1, false},
		{"total above cap", 1001, 500, false},
		{"passing zero", 100, 0, false},
		{"passing above total", 100, 101, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MarksRange(tt.total, tt.passing).OK(); got != tt.ok {
				t.Errorf("MarksRange(%d, %d) ok = %v, want %v", tt.total, tt.passing, got, tt.ok)
			}
		})
	}
}

func TestWeightageRule(t *testing.T) {
	for _, w := range []float64{0.1, 1.0, 5.0} {
		if !Weightage(w).OK() {
			t.Errorf("Weightage(%v) rejected a valid value", w)
		}
	}
	for _, w := range []float64{0.09, 0, -1, 5.01} {
		if Weightage(w).OK() {
			t.Errorf("Weightage(%v) accepted an invalid value", w)
		}
	}
}

func TestDurationRule(t *testing.T) {
	for _, d := range []int{15, 90, 300} {
		if !Duration(d).OK() {
			t.Errorf("Duration(%d) rejected a valid value", d)
		}
	}
	for _, d := range []int{14, 0, 301} {
		if Duration(d).OK() {
			t.Errorf("Duration(%d) accepted an invalid value", d)
		}
	}
}

func TestExamStatusRule(t *testing.T) {
	for _, s := range []string{"scheduled", "ongoing", "completed", "cancelled"} {
		if !ExamStatus(s).OK() {
			t.Errorf("ExamStatus(%q) rejected a valid status", s)
		}
	}
	if ExamStatus("archived").OK() {
		t.Error("ExamStatus accepted an unknown status")
	}
}

// The aggregate validator must report every violation, not stop at the
// first.
func TestExamAggregateCollectsAllViolations(t *testing.T) {
	w := 9.0
	d := 5
	data := ExamData{
		Name:         "  ",
		Type:         "viva",
		TotalMarks:   0,
		PassingMarks: 0,
		ExamDate:     testNow.AddDate(2, 0, 0),
		Weightage:    &w,
		Duration:     &d,
	}
	r := Exam(data, testNow)
	if r.OK() {
		t.Fatal("expected violations")
	}
	if len(r.Errors) < 6 {
		t.Errorf("expected at least 6 violations, got %d: %v", len(r.Errors), r.Errors)
	}

	msg := r.Err().Error()
	for _, want := range []string{
		"Exam name is required",
		"Invalid exam type",
		"Total marks must be between 1 and 1000",
		"Passing marks must be between 1 and total marks",
		"Exam date cannot be more than 1 year in the future",
		"Weightage must be between 0.1 and 5.0",
		"Duration must be between 15 and 300 minutes",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("aggregate error missing %q in %q", want, msg)
		}
	}
}

func TestExamAggregateValid(t *testing.T) {
	if r := Exam(validExamData(), testNow); !r.OK() {
		t.Errorf("valid payload rejected: %v", r.Errors)
	}
}
