package analysis_test

import (
	"math"
	"testing"

	"github.com/bbertka/openai-gpt-review-analyzer/internal/analysis"
	"github.com/bbertka/openai-gpt-review-analyzer/internal/domain"
)

func TestScore(t *testing.T) {
	cases := []struct {
		v    domain.FacetVector
		want float64
	}{
		{domain.FacetVector{domain.Good, domain.Good, domain.Good}, 100},
		{domain.FacetVector{domain.Bad, domain.Bad, domain.Bad}, 0},
		{domain.FacetVector{domain.Neutral, domain.Neutral, domain.Neutral}, 73},
		// 0.40*100 + 0.20*73 + 0.40*0
		{domain.FacetVector{domain.Good, domain.Neutral, domain.Bad}, 54.6},
		// weights are positional: star and content outweigh title
		{domain.FacetVector{domain.Bad, domain.Good, domain.Bad}, 20},
	}
	for _, tc := range cases {
		got := analysis.Score(tc.v)
		if math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("Score(%v) = %v, want %v", tc.v, got, tc.want)
		}
	}
}
