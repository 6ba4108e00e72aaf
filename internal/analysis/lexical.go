package analysis

import (
	"context"
	"strings"

	"github.com/bbertka/openai-gpt-review-analyzer/internal/domain"
)

// Lexical is the deterministic, offline sentiment strategy: a polarity score
// over an embedded word list. It is a pure function of the text and never
// fails; text it cannot make sense of is Neutral.
type Lexical struct{}

func NewLexical() *Lexical { return &Lexical{} }

func (l *Lexical) Classify(_ context.Context, text string) (domain.SentimentLabel, error) {
	p := Polarity(text)
	switch {
	case p < 0:
		return domain.Bad, nil
	case p > 0:
		return domain.Good, nil
	default:
		return domain.Neutral, nil
	}
}

// Polarity returns a sentiment polarity in [-1,1]: the signed fraction of
// recognized opinion words. A bare negator ("not", "never", ...) flips the
// polarity of the next recognized word.
func Polarity(text string) float64 {
	var pos, neg int
	negated := false
	for _, tok := range tokenize(text) {
		if negators[tok] {
			negated = true
			continue
		}
		switch {
		case positiveWords[tok]:
			if negated {
				neg++
			} else {
				pos++
			}
			negated = false
		case negativeWords[tok]:
			if negated {
				pos++
			} else {
				neg++
			}
			negated = false
		}
	}
	if pos+neg == 0 {
		return 0
	}
	return float64(pos-neg) / float64(pos+neg)
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9') && r != '\''
	})
}

var negators = wordSet("not", "no", "never", "hardly", "barely", "isn't", "wasn't", "won't", "don't", "doesn't", "didn't", "can't", "couldn't", "wouldn't")

var positiveWords = wordSet(
	"good", "great", "excellent", "amazing", "awesome", "fantastic", "wonderful",
	"perfect", "love", "loved", "loves", "best", "nice", "happy", "pleased",
	"solid", "sturdy", "reliable", "recommend", "recommended", "works", "worked",
	"easy", "comfortable", "beautiful", "quality", "fast", "satisfied", "superb",
	"impressive", "durable", "helpful", "smooth", "worth", "favorite", "enjoy",
	"enjoyed", "delighted", "outstanding", "brilliant", "fine",
)

var negativeWords = wordSet(
	"bad", "terrible", "awful", "horrible", "poor", "worst", "hate", "hated",
	"broken", "broke", "breaks", "useless", "waste", "cheap", "flimsy",
	"disappointed", "disappointing", "disappointment", "defective", "faulty",
	"refund", "return", "returned", "slow", "ugly", "uncomfortable", "annoying",
	"garbage", "junk", "fail", "failed", "fails", "failure", "damaged", "wrong",
	"misleading", "overpriced", "regret", "scam", "stopped", "leaks", "leaked",
)

func wordSet(ws ...string) map[string]bool {
	m := make(map[string]bool, len(ws))
	for _, w := range ws {
		m[w] = true
	}
	return m
}
