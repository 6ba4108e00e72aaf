package main

import (
	"database/sql"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"github.com/bbertka/openai-gpt-review-analyzer/internal/adapters/amazon"
	server "github.com/bbertka/openai-gpt-review-analyzer/internal/adapters/http_server"
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

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	// run state db
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("database connection ok")

	// deps
	runs := mysqlrepo.New(db)
	store := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB, cfg.ReviewTTL)
	source := amazon.New(cfg.ReviewBase, cfg.ReviewUser, cfg.ReviewPass, cfg.ReviewRPS, cfg.StageTimeout)
	pipe := app.New(source, store,
		classifierFor(cfg.TitleClassifier, cfg),
		classifierFor(cfg.ContentClassifier, cfg),
		runs,
		app.Options{Workers: cfg.Workers, StageTimeout: cfg.StageTimeout, MaxAttempts: cfg.StageMaxAttempts},
	)

	// http
	srv := server.New(0)
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Pipeline: pipe, Runs: runs})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("review analyzer listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
