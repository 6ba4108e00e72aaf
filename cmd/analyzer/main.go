package main

import (
	"context"
	"database/sql"
	"os"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"github.com/bbertka/openai-gpt-review-analyzer/internal/adapters/amazon"
	"github.com/bbertka/openai-gpt-review-analyzer/internal/adapters/observability"
	openaiad "github.com/bbertka/openai-gpt-review-analyzer/internal/adapters/openai"
	redisad "github.com/bbertka/openai-gpt-review-analyzer/internal/adapters/redis"
	"github.com/bbertka/openai-gpt-review-analyzer/internal/analysis"
	"github.com/bbertka/openai-gpt-review-analyzer/internal/app"
	"github.com/bbertka/openai-gpt-review-analyzer/internal/domain"
	"github.com/bbertka/openai-gpt-review-analyzer/internal/shared"
	mysqlrepo "github.com/bbertka/openai-gpt-review-analyzer/internal/storage/mysql"
)

func classifierFor(kind string, cfg shared.Config) domain.FacetClassifier {
	switch kind {
	case "openai":
		return openaiad.New(cfg.OpenAIKey, cfg.OpenAIBase, cfg.OpenAIModel)
	case "lexical":
		return analysis.NewLexical()
	default:
		log.Fatal().Str("classifier", kind).Msg("unknown classifier strategy")
		return nil
	}
}

// Batch runner: analyze each item ID given on the command line, a few at a
// time, and log the verdicts.
func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)

	items := os.Args[1:]
	if len(items) == 0 {
		log.Fatal().Msg("usage: analyzer <item-id> [item-id ...]")
	}

	log.Info().
		Str("base", cfg.ReviewBase).
		Int("workers", cfg.Workers).
		Int("items", len(items)).
		Msg("analyzer starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	runs := mysqlrepo.New(db)
	store := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB, cfg.ReviewTTL)
	source := amazon.New(cfg.ReviewBase, cfg.ReviewUser, cfg.ReviewPass, cfg.ReviewRPS, cfg.StageTimeout)
	pipe := app.New(source, store,
		classifierFor(cfg.TitleClassifier, cfg),
		classifierFor(cfg.ContentClassifier, cfg),
		runs,
		app.Options{Workers: cfg.Workers, StageTimeout: cfg.StageTimeout, MaxAttempts: cfg.StageMaxAttempts},
	)

	// bound concurrent items; each item fans out its own review workers
	sem := semaphore.NewWeighted(int64(max(1, cfg.Workers)))
	var wg sync.WaitGroup

	for _, item := range items {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(itemID string) {
			defer wg.Done()
			defer sem.Release(1)

			res, err := pipe.Analyze(ctx, itemID)
			if err != nil {
				log.Warn().Str("item", itemID).Err(err).Msg("analysis failed")
				return
			}
			log.Info().Str("item", itemID).Float64("result", res.Score).Str("verdict", res.Verdict).Msg("analysis ok")
		}(item)
	}

	wg.Wait()
	log.Info().Msg("analysis completed")
}
