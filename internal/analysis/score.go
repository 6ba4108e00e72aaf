package analysis

import "github.com/bbertka/openai-gpt-review-analyzer/internal/domain"

// Facet weights, positional over [star, title, content]. They sum to 1.0 and
// are never renormalized: a missing facet still receives a label (Neutral),
// so the weighted sum stays well-defined.
var facetWeights = [3]float64{0.40, 0.20, 0.40}

var labelScores = map[domain.SentimentLabel]float64{
	domain.Good:    100,
	domain.Neutral: 73,
	domain.Bad:     0,
}

// Score folds a facet label vector into a weighted score in [0,100].
func Score(v domain.FacetVector) float64 {
	var total float64
	for i, label := range v {
		total += facetWeights[i] * labelScores[label]
	}
	return total
}
