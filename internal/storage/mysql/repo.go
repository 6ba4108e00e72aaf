package mysql

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/bbertka/openai-gpt-review-analyzer/internal/domain"
)

// Repo persists pipeline run state. It implements domain.RunRepository.
type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) CreateRun(ctx context.Context, run domain.Run) error {
	status := run.Status
	if status == "" {
		status = domain.RunRunning
	}
	_, err := r.db.ExecContext(ctx, insertRunSQL, run.ID, run.ItemID, status)
	return err
}

func (r *Repo) RecordProgress(ctx context.Context, runID, reviewKey string, score float64) error {
	res, err := r.db.ExecContext(ctx, recordProgressSQL, score, reviewKey, runID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrRunNotFound
	}
	return nil
}

func (r *Repo) CompleteRun(ctx context.Context, runID string, score float64, verdict string) error {
	_, err := r.db.ExecContext(ctx, completeRunSQL, score, verdict, runID)
	return err
}

func (r *Repo) FailRun(ctx context.Context, runID, reason string) error {
	_, err := r.db.ExecContext(ctx, failRunSQL, reason, runID)
	return err
}

func (r *Repo) GetRun(ctx context.Context, runID string) (domain.Run, error) {
	row := r.db.QueryRowContext(ctx, getRunSQL, runID)
	run, err := scanRun(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Run{}, domain.ErrRunNotFound
	}
	return run, err
}

func (r *Repo) ListRuns(ctx context.Context, itemID string, limit int) ([]domain.Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.QueryContext(ctx, listRunsSQL, itemID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Run
	for rows.Next() {
		run, err := scanRun(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	return out, rows.Err()
}

func scanRun(scan func(...any) error) (domain.Run, error) {
	var (
		run      domain.Run
		result   sql.NullFloat64
		verdict  sql.NullString
		errMsg   sql.NullString
		keysJSON []byte
	)
	if err := scan(
		&run.ID,
		&run.ItemID,
		&run.Status,
		&run.ReviewsProcessed,
		&run.ScoreSum,
		&result,
		&verdict,
		&errMsg,
		&keysJSON,
		&run.CreatedAt,
		&run.UpdatedAt,
	); err != nil {
		return domain.Run{}, err
	}
	if result.Valid {
		f := result.Float64
		run.Result = &f
	}
	if verdict.Valid {
		s := verdict.String
		run.Verdict = &s
	}
	if errMsg.Valid {
		s := errMsg.String
		run.Error = &s
	}
	if len(keysJSON) > 0 {
		_ = json.Unmarshal(keysJSON, &run.StoredKeys)
	}
	return run, nil
}
