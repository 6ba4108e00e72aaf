package redisad

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/bbertka/openai-gpt-review-analyzer/internal/adapters/observability"
	"github.com/bbertka/openai-gpt-review-analyzer/internal/domain"
)

// Store is the Redis-backed review staging buffer. Each Put mints a fresh
// key, so writes never collide with earlier runs of the same item (the
// 8-char suffix leaves a small accepted collision risk).
type Store struct {
	c   *redis.Client
	ttl time.Duration
}

func New(addr, pass string, db int, ttl time.Duration) *Store {
	return &Store{
		c:   redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db}),
		ttl: ttl,
	}
}

func (s *Store) Put(ctx context.Context, itemID string, rec domain.ReviewRecord) (string, error) {
	key := itemID + "-" + uuid.NewString()[:8]
	v := domain.StoredReview{
		Star:    rec.Rating,
		Title:   strDeref(rec.Title),
		Content: strDeref(rec.Content),
	}
	b, _ := json.Marshal(v)
	if err := s.c.Set(ctx, key, b, s.ttl).Err(); err != nil {
		return "", err
	}
	observability.ObserveCache("redis", "set")
	return key, nil
}

func (s *Store) Get(ctx context.Context, key string) (domain.StoredReview, error) {
	v, err := s.c.Get(ctx, key).Bytes()
	if err == redis.Nil {
		observability.ObserveCache("redis", "miss")
		return domain.StoredReview{}, domain.ErrReviewNotFound
	}
	if err != nil {
		return domain.StoredReview{}, err
	}
	observability.ObserveCache("redis", "hit")
	var out domain.StoredReview
	return out, json.Unmarshal(v, &out)
}

func strDeref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
