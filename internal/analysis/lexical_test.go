package analysis_test

import (
	"context"
	"testing"

	"github.com/bbertka/openai-gpt-review-analyzer/internal/analysis"
	"github.com/bbertka/openai-gpt-review-analyzer/internal/domain"
)

func TestLexical_Classify(t *testing.T) {
	lex := analysis.NewLexical()
	cases := []struct {
		text string
		want domain.SentimentLabel
	}{
		{"great, loved it", domain.Good},
		{"terrible, broke after a week", domain.Bad},
		{"it is a toaster", domain.Neutral},
		{"", domain.Neutral},
		{"\t \n", domain.Neutral},
		{"not good", domain.Bad},
		{"never broke, works great", domain.Good},
		// mixed text leans on the majority of opinion words
		{"good but slow and overpriced", domain.Bad},
		// a tie between positive and negative words is Neutral
		{"good quality but slow and overpriced", domain.Neutral},
	}
	for _, tc := range cases {
		got, err := lex.Classify(context.Background(), tc.text)
		if err != nil {
			t.Fatalf("Classify(%q): %v", tc.text, err)
		}
		if got != tc.want {
			t.Errorf("Classify(%q) = %s, want %s", tc.text, got, tc.want)
		}
	}
}

func TestLexical_Idempotent(t *testing.T) {
	lex := analysis.NewLexical()
	const text = "solid build, easy to use, would recommend"
	first, _ := lex.Classify(context.Background(), text)
	for i := 0; i < 10; i++ {
		got, err := lex.Classify(context.Background(), text)
		if err != nil {
			t.Fatalf("Classify: %v", err)
		}
		if got != first {
			t.Fatalf("classification changed between calls: %s then %s", first, got)
		}
	}
}

func TestPolarity_Range(t *testing.T) {
	for _, text := range []string{
		"great great great", "awful junk", "fine but flimsy", "plain text with no opinions",
	} {
		p := analysis.Polarity(text)
		if p < -1 || p > 1 {
			t.Errorf("Polarity(%q) = %v, outside [-1,1]", text, p)
		}
	}
}
