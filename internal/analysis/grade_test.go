package analysis_test

import (
	"testing"

	"github.com/bbertka/openai-gpt-review-analyzer/internal/analysis"
)

func TestGrade(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{100, "A+"},
		{97, "A+"},
		{93, "A"},
		{90, "A-"},
		{87, "B+"},
		{85, "B"},
		{80, "B-"},
		{77, "C+"},
		{73, "C"},
		{70, "C-"},
		{67.01, "D+"},
		{65, "D"},
		{61, "D-"},
		{50, "F"},
		{0, "F"},
		// strict-> boundaries: exactly 67/63/60 fall all the way to F
		{67, "F"},
		{63, "F"},
		{60, "F"},
	}
	for _, tc := range cases {
		if got := analysis.Grade(tc.score); got != tc.want {
			t.Errorf("Grade(%v) = %s, want %s", tc.score, got, tc.want)
		}
	}
}
