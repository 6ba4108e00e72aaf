package app

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/bbertka/openai-gpt-review-analyzer/internal/adapters/observability"
	"github.com/bbertka/openai-gpt-review-analyzer/internal/analysis"
	"github.com/bbertka/openai-gpt-review-analyzer/internal/domain"
)

// Options tune the per-stage call discipline and worker fan-out.
type Options struct {
	Workers      int           // parallel review workers; 1 = sequential
	StageTimeout time.Duration // budget for one external call
	MaxAttempts  int           // attempts per stage call, retries included
}

func (o Options) withDefaults() Options {
	if o.Workers < 1 {
		o.Workers = 1
	}
	if o.StageTimeout <= 0 {
		o.StageTimeout = 20 * time.Second
	}
	if o.MaxAttempts < 1 {
		o.MaxAttempts = 2
	}
	return o
}

// Pipeline drives one sentiment run end to end: acquire reviews, stage each
// one through the store, classify the three facets, fold labels into a
// weighted score, and reduce all per-review scores into the item's overall
// score and grade. A fatal error at any stage fails the whole run; the
// caller-visible result is then the fallback {0.0, Unavailable}.
type Pipeline struct {
	source  domain.ReviewSource
	store   domain.ReviewStore
	title   domain.FacetClassifier
	content domain.FacetClassifier
	runs    domain.RunRepository // optional
	opts    Options
}

func New(source domain.ReviewSource, store domain.ReviewStore, title, content domain.FacetClassifier, runs domain.RunRepository, opts Options) *Pipeline {
	return &Pipeline{
		source:  source,
		store:   store,
		title:   title,
		content: content,
		runs:    runs,
		opts:    opts.withDefaults(),
	}
}

func (p *Pipeline) Analyze(ctx context.Context, itemID string) (domain.OverallResult, error) {
	runID := fmt.Sprintf("review-analyzer-%s-%s", itemID, uuid.NewString()[:8])
	logger := log.With().Str("run", runID).Str("item", itemID).Logger()

	if p.runs != nil {
		if err := p.runs.CreateRun(ctx, domain.Run{ID: runID, ItemID: itemID, Status: domain.RunRunning}); err != nil {
			return domain.OverallResult{Verdict: domain.VerdictUnavailable}, fmt.Errorf("create run: %w", err)
		}
	}

	res, err := p.run(ctx, runID, itemID, logger)
	if err == nil && p.runs != nil {
		// the completion checkpoint is as fatal as any other repository
		// write: a run must never report Done while the durable record
		// still says running
		if cerr := p.runs.CompleteRun(ctx, runID, res.Score, res.Verdict); cerr != nil {
			err = fmt.Errorf("complete run: %w", cerr)
		}
	}
	if err != nil {
		if ctx.Err() != nil {
			// cancelled by the caller: no result, not even a fallback
			return domain.OverallResult{}, ctx.Err()
		}
		observability.ObserveRun("failed")
		if p.runs != nil {
			if ferr := p.runs.FailRun(context.WithoutCancel(ctx), runID, err.Error()); ferr != nil {
				logger.Error().Err(ferr).Msg("failure checkpoint not recorded")
			}
		}
		logger.Warn().Err(err).Msg("run failed")
		return domain.OverallResult{Score: 0, Verdict: domain.VerdictUnavailable}, err
	}

	observability.ObserveRun("done")
	logger.Info().Float64("result", res.Score).Str("verdict", res.Verdict).Msg("overall product sentiment")
	return res, nil
}

func (p *Pipeline) run(ctx context.Context, runID, itemID string, logger zerolog.Logger) (domain.OverallResult, error) {
	var records []domain.ReviewRecord
	err := p.stage(ctx, "acquire", func(ctx context.Context) error {
		var err error
		records, err = p.source.Fetch(ctx, itemID)
		return err
	})
	if err != nil {
		return domain.OverallResult{}, fmt.Errorf("acquire reviews: %w", err)
	}
	logger.Info().Int("reviews", len(records)).Msg("reviews acquired")

	// Per-review work is independent; aggregation is commutative, so
	// completion order does not matter. The accumulator is the only shared
	// state and sits behind the mutex.
	var (
		mu    sync.Mutex
		sum   float64
		count int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.opts.Workers)
	for i, rec := range records {
		g.Go(func() error {
			score, err := p.processReview(gctx, runID, itemID, i, rec, logger)
			if err != nil {
				return err
			}
			mu.Lock()
			sum += score
			count++
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return domain.OverallResult{}, err
	}

	// Reducing: the mean over zero reviews is undefined, make that an
	// explicit error instead of a division fault.
	if count == 0 {
		return domain.OverallResult{}, domain.ErrNoReviews
	}
	overall := sum / float64(count)
	return domain.OverallResult{Score: overall, Verdict: analysis.Grade(overall)}, nil
}

// processReview runs one review through persist, classify, and score.
func (p *Pipeline) processReview(ctx context.Context, runID, itemID string, idx int, rec domain.ReviewRecord, logger zerolog.Logger) (float64, error) {
	var key string
	if err := p.stage(ctx, "persist", func(ctx context.Context) error {
		var err error
		key, err = p.store.Put(ctx, itemID, rec)
		return err
	}); err != nil {
		return 0, fmt.Errorf("persist review %d: %w", idx, err)
	}

	var stored domain.StoredReview
	if err := p.stage(ctx, "load", func(ctx context.Context) error {
		var err error
		stored, err = p.store.Get(ctx, key)
		return err
	}); err != nil {
		return 0, fmt.Errorf("load review %s: %w", key, err)
	}

	// rating first, then title, then content; the order is not required
	// but keeps logs deterministic
	star, err := analysis.ClassifyRating(stored.Star)
	if err != nil {
		return 0, &domain.ClassificationError{Facet: "star", Err: err}
	}
	title, err := p.classifyFacet(ctx, "title", p.title, stored.Title)
	if err != nil {
		return 0, err
	}
	content, err := p.classifyFacet(ctx, "content", p.content, stored.Content)
	if err != nil {
		return 0, err
	}

	vector := domain.FacetVector{star, title, content}
	score := analysis.Score(vector)
	logger.Info().
		Str("key", key).
		Str("star", string(star)).
		Str("title", string(title)).
		Str("content", string(content)).
		Float64("score", score).
		Msg("review scored")
	observability.ObserveReview()

	if p.runs != nil {
		if err := p.runs.RecordProgress(ctx, runID, key, score); err != nil {
			return 0, fmt.Errorf("record progress: %w", err)
		}
	}
	return score, nil
}

// classifyFacet labels one text facet. An absent facet still receives a
// label (Neutral) so the positional weights stay well-defined; that branch
// is deliberate, not a swallowed failure.
func (p *Pipeline) classifyFacet(ctx context.Context, facet string, clf domain.FacetClassifier, text string) (domain.SentimentLabel, error) {
	if strings.TrimSpace(text) == "" {
		return domain.Neutral, nil
	}
	var label domain.SentimentLabel
	err := p.stage(ctx, "classify_"+facet, func(ctx context.Context) error {
		var err error
		label, err = clf.Classify(ctx, text)
		return err
	})
	if err != nil {
		return "", &domain.ClassificationError{Facet: facet, Err: err}
	}
	return label, nil
}

// stage wraps one external call with a per-call timeout and bounded retry:
// exponential backoff, coefficient 2, first interval 1s capped at 2s.
func (p *Pipeline) stage(ctx context.Context, name string, fn func(context.Context) error) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = time.Second
	bo.Multiplier = 2
	bo.MaxInterval = 2 * time.Second
	bo.RandomizationFactor = 0

	attempt := 0
	op := func() error {
		attempt++
		if attempt > 1 {
			observability.ObserveRetry(name)
		}
		callCtx, cancel := context.WithTimeout(ctx, p.opts.StageTimeout)
		defer cancel()
		return fn(callCtx)
	}
	return backoff.Retry(op, backoff.WithContext(backoff.WithMaxRetries(bo, uint64(p.opts.MaxAttempts-1)), ctx))
}
