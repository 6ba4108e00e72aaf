package domain

import "context"

// ReviewSource fetches the ordered collection of reviews for an item from an
// external, paginated feed. Each call re-fetches from page 1. A transport
// failure or non-success response fails the whole fetch; a page that parses
// to zero reviews ends it.
type ReviewSource interface {
	Fetch(ctx context.Context, itemID string) ([]ReviewRecord, error)
}

// ReviewStore is the durable staging buffer between acquisition and
// classification. Keys are unique per write.
type ReviewStore interface {
	Put(ctx context.Context, itemID string, rec ReviewRecord) (string, error)
	Get(ctx context.Context, key string) (StoredReview, error)
}

// FacetClassifier maps free text to a SentimentLabel. Implementations are
// interchangeable; the orchestrator does not care which strategy backs a
// given facet.
type FacetClassifier interface {
	Classify(ctx context.Context, text string) (SentimentLabel, error)
}

// RunRepository persists pipeline run state.
type RunRepository interface {
	CreateRun(ctx context.Context, run Run) error
	RecordProgress(ctx context.Context, runID, reviewKey string, score float64) error
	CompleteRun(ctx context.Context, runID string, score float64, verdict string) error
	FailRun(ctx context.Context, runID, reason string) error
	GetRun(ctx context.Context, runID string) (Run, error)
	ListRuns(ctx context.Context, itemID string, limit int) ([]Run, error)
}
