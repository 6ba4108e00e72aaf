package domain

import "time"

// Run statuses.
const (
	RunRunning = "running"
	RunDone    = "done"
	RunFailed  = "failed"
)

// Run is the serializable state of one pipeline execution. It is checkpointed
// after every processed review so a run can be inspected (or resumed) after a
// process restart.
type Run struct {
	ID               string
	ItemID           string
	Status           string
	ReviewsProcessed int
	ScoreSum         float64
	Result           *float64
	Verdict          *string
	Error            *string
	StoredKeys       []string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
