package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string
	MySQLDSN    string

	RedisAddr string
	RedisPass string
	RedisDB   int
	ReviewTTL time.Duration

	ReviewBase string
	ReviewUser string
	ReviewPass string
	ReviewRPS  int

	OpenAIKey   string
	OpenAIBase  string
	OpenAIModel string

	TitleClassifier   string
	ContentClassifier string

	Workers          int
	StageTimeout     time.Duration
	StageMaxAttempts int
}

func Load() Config {
	_ = godotenv.Load()

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ""),
		MySQLDSN:    env("MYSQL_DSN", "root:root@tcp(localhost:3306)/analyzer?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),

		RedisAddr: env("REDIS_ADDR", "localhost:6379"),
		RedisPass: env("REDIS_PASSWORD", ""),
		RedisDB:   atoi("REDIS_DB", 0),
		ReviewTTL: time.Duration(atoi("REVIEW_TTL_SECONDS", 3600)) * time.Second,

		ReviewBase: env("REVIEW_BASE_URL", "https://www.amazon.com"),
		ReviewUser: env("REVIEW_USERNAME", ""),
		ReviewPass: env("REVIEW_PASSWORD", ""),
		ReviewRPS:  atoi("REVIEW_RPS", 5),

		OpenAIKey:   env("OPENAI_API_KEY", ""),
		OpenAIBase:  env("OPENAI_BASE_URL", ""),
		OpenAIModel: env("OPENAI_MODEL", "gpt-3.5-turbo"),

		TitleClassifier:   env("CLASSIFIER_TITLE", "lexical"),
		ContentClassifier: env("CLASSIFIER_CONTENT", "openai"),

		Workers:          atoi("PIPELINE_WORKERS", 1),
		StageTimeout:     time.Duration(atoi("STAGE_TIMEOUT_SECONDS", 20)) * time.Second,
		StageMaxAttempts: atoi("STAGE_MAX_ATTEMPTS", 2),
	}
	if c.OpenAIKey == "" && (c.TitleClassifier == "openai" || c.ContentClassifier == "openai") {
		log.Warn().Msg("OPENAI_API_KEY is empty")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
