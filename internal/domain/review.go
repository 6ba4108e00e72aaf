package domain

// SentimentLabel is the common output alphabet for every facet classifier.
type SentimentLabel string

const (
	Good    SentimentLabel = "Good"
	Neutral SentimentLabel = "Neutral"
	Bad     SentimentLabel = "Bad"
)

// Facet positions inside a FacetVector. Order matters: the aggregator
// weights are positional.
const (
	FacetStar = iota
	FacetTitle
	FacetContent
)

// FacetVector holds one label per review facet: star rating, title, content.
type FacetVector [3]SentimentLabel

// ReviewRecord is one scraped review. Rating is kept as raw text because the
// upstream page may serve a malformed value; it is parsed at classification
// time. Optional fields are nil when their selector did not match.
type ReviewRecord struct {
	Rating   string
	Title    *string
	Content  *string
	Author   *string
	Date     *string
	Verified *string
	ImageURL *string
}

// StoredReview is the cache record format: one JSON object per key.
// Only the three classified facets survive persistence.
type StoredReview struct {
	Star    string `json:"star"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// OverallResult is the single externally observable artifact of a run.
type OverallResult struct {
	Score   float64
	Verdict string
}

// VerdictUnavailable is the caller-visible fallback verdict for a failed run.
const VerdictUnavailable = "Unavailable"
