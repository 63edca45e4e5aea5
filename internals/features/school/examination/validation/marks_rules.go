// file: internals/features/school/examination/validation/marks_rules.go
package validation

import (
	"fmt"
	"math"
	"strings"

	"edutrack_backend/internals/features/school/examination/model"
)

var marksStatuses = []string{
	model.MarksStatusPresent,
	model.MarksStatusAbsent,
	model.MarksStatusExempted,
}

// MarksData is the payload shape for a single marks entry. MarksObtained is
// a pointer so "absent, no marks supplied" and "present, zero marks" stay
// distinguishable.
type MarksData struct {
	Status        string
	MarksObtained *float64
}

func MarksStatus(status string) Result {
	var r Result
	for _, v := range marksStatuses {
		if status == v {
			return r
		}
	}
	r.add("status", fmt.Sprintf("Invalid status. Must be one of: %s", strings.Join(marksStatuses, ", ")))
	return r
}

// MarksObtained bounds the value to [0, totalMarks] with at most 2 decimal
// digits.
func MarksObtained(marksObtained float64, totalMarks int) Result {
	var r Result
	if marksObtained < 0 {
		r.add("marks_obtained", "Marks cannot be negative")
	}
	if marksObtained > float64(totalMarks) {
		r.add("marks_obtained", fmt.Sprintf("Marks cannot exceed total marks (%d)", totalMarks))
	}
	if hasExcessDecimals(marksObtained) {
		r.add("marks_obtained", "Marks can have maximum 2 decimal places")
	}
	return r
}

// Marks validates a single entry against its exam's total. Marks are
// required for present students and rejected for absent/exempted ones.
func Marks(data MarksData, totalMarks int) Result {
	var r Result

	if data.Status == "" {
		r.add("status", "Status is required")
		return r
	}
	if sr := MarksStatus(data.Status); !sr.OK() {
		r.merge(sr)
		return r
	}

	if data.Status == model.MarksStatusPresent {
		if data.MarksObtained == nil {
			r.add("marks_obtained", "Marks obtained is required for present students")
		} else {
			r.merge(MarksObtained(*data.MarksObtained, totalMarks))
		}
	} else if data.MarksObtained != nil && *data.MarksObtained > 0 {
		r.add("marks_obtained", fmt.Sprintf("Marks cannot be entered for %s students", data.Status))
	}

	return r
}

// hasExcessDecimals reports a third significant decimal digit, tolerating
// float64 representation noise.
func hasExcessDecimals(v float64) bool {
	scaled := v * 100
	return math.Abs(scaled-math.Round(scaled)) > 1e-6
}
