// file: internals/features/school/examination/grading/grade_table_test.go
package grading

import "testing"

func TestPercentage(t *testing.T) {
	tests := []struct {
		name     string
		obtained float64
		total    int
		want     float64
	}{
		{"simple", 85, 100, 85},
		{"rounds to two decimals", 1, 3, 33.33},
		{"rounds half up", 42.5, 50, 85},
		{"repeating fraction", 2, 3, 66.67},
		{"zero total yields zero", 50, 0, 0},
		{"full marks", 50, 50, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Percentage(tt.obtained, tt.total); got != tt.want {
				t.Errorf("Percentage(%v, %d) = %v, want %v", tt.obtained, tt.total, got, tt.want)
			}
		})
	}
}

func TestRound2(t *testing.T) {
	if got := Round2(66.666666); got != 66.67 {
		t.Errorf("Round2 = %v, want 66.67", got)
	}
	if got := Round2(33.333333); got != 33.33 {
		t.Errorf("Round2 = %v, want 33.33", got)
	}
}

func TestResolveDefaultTable(t *testing.T) {
	table := DefaultTable()

	tests := []struct {
		pct       float64
		wantGrade string
		wantGP    float64
	}{
		{100, "A+", 10.0},
		{91, "A+", 10.0}, // boundary goes to the higher band
		{90.5, "A", 9.0},
		{85, "A", 9.0},
		{81, "A", 9.0},
		{75, "B+", 8.0},
		{65, "B", 7.0},
		{55, "C+", 6.0},
		{45, "C", 5.0},
		{33, "D", 4.0},
		{32.99, "E", 0.0},
		{0, "E", 0.0},
	}
	for _, tt := range tests {
		band, ok := table.Resolve(tt.pct)
		if !ok {
			t.Fatalf("Resolve(%v): no band", tt.pct)
		}
		if band.Grade != tt.wantGrade || band.GradePoint != tt.wantGP {
			t.Errorf("Resolve(%v) = %s/%v, want %s/%v", tt.pct, band.Grade, band.GradePoint, tt.wantGrade, tt.wantGP)
		}
	}
}

// Every value in [0,100] must land in a band; sweep in small steps.
func TestDefaultTableHasNoGaps(t *testing.T) {
	table := DefaultTable()
	for i := 0; i <= 10000; i++ {
		pct := float64(i) / 100
		if _, ok := table.Resolve(pct); !ok {
			t.Fatalf("no band for %.2f", pct)
		}
	}
}

func TestResolveOutsideRange(t *testing.T) {
	table := DefaultTable()
	if _, ok := table.Resolve(100.01); ok {
		t.Error("Resolve(100.01) should not match a band")
	}
	if _, ok := table.Resolve(-0.01); ok {
		t.Error("Resolve(-0.01) should not match a band")
	}
}
