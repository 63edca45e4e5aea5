// file: internals/features/school/examination/grading/grade_table.go
package grading

import "math"

// Band is one inclusive percentage range mapped to a grade label and point.
type Band struct {
	Grade         string  `json:"grade"`
	MinPercentage float64 `json:"min_percentage"`
	MaxPercentage float64 `json:"max_percentage"`
	GradePoint    float64 `json:"grade_point"`
	Description   string  `json:"description"`
}

// Table is an ordered, gap-free partition of [0,100] into grade bands.
// Tables are injected into the marks service so a school can swap in its own
// scheme without touching any grading call site.
type Table struct {
	Name  string `json:"name"`
	Bands []Band `json:"bands"`
}

// Round2 rounds to 2 decimal places. All percentage-derived numbers are
// rounded here, at computation time, so stored and displayed values agree.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Percentage computes round2(obtained/total*100). A zero total yields 0
// rather than dividing by zero.
func Percentage(marksObtained float64, totalMarks int) float64 {
	if totalMarks == 0 {
		return 0
	}
	return Round2(marksObtained / float64(totalMarks) * 100)
}

// Resolve returns the first band whose inclusive [min,max] range contains
// percentage. ok is false only when the table has a gap, which a well-formed
// table never does.
func (t Table) Resolve(percentage float64) (Band, bool) {
	for _, b := range t.Bands {
		if percentage >= b.MinPercentage && percentage <= b.MaxPercentage {
			return b, true
		}
	}
	return Band{}, false
}

// DefaultTable returns the CBSE-style scheme used when a school has no
// grade config of its own.
func DefaultTable() Table {
	return Table{
		Name: "CBSE Grading",
		Bands: []Band{
			{Grade: "A+", MinPercentage: 91, MaxPercentage: 100, GradePoint: 10.0, Description: "Outstanding"},
			{Grade: "A", MinPercentage: 81, MaxPercentage: 91, GradePoint: 9.0, Description: "Excellent"},
			{Grade: "B+", MinPercentage: 71, MaxPercentage: 81, GradePoint: 8.0, Description: "Very Good"},
			{Grade: "B", MinPercentage: 61, MaxPercentage: 71, GradePoint: 7.0, Description: "Good"},
			{Grade: "C+", MinPercentage: 51, MaxPercentage: 61, GradePoint: 6.0, Description: "Satisfactory"},
			{Grade: "C", MinPercentage: 41, MaxPercentage: 51, GradePoint: 5.0, Description: "Adequate"},
			{Grade: "D", MinPercentage: 33, MaxPercentage: 41, GradePoint: 4.0, Description: "Pass"},
			{Grade: "E", MinPercentage: 0, MaxPercentage: 33, GradePoint: 0.0, Description: "Fail"},
		},
	}
}
