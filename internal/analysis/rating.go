package analysis

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bbertka/openai-gpt-review-analyzer/internal/domain"
)

// ClassifyRating maps a star rating to a label. Thresholds are inclusive on
// the upper bands: >= 4 Good, >= 2.5 Neutral, below that Bad.
func ClassifyRating(raw string) (domain.SentimentLabel, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return "", fmt.Errorf("parse rating %q: %w", raw, err)
	}
	switch {
	case v >= 4:
		return domain.Good, nil
	case v >= 2.5:
		return domain.Neutral, nil
	default:
		return domain.Bad, nil
	}
}
