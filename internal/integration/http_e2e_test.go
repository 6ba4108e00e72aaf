//go:build integration || !unit

package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/bbertka/openai-gpt-review-analyzer/internal/adapters/amazon"
	httpserver "github.com/bbertka/openai-gpt-review-analyzer/internal/adapters/http_server"
	openaiad "github.com/bbertka/openai-gpt-review-analyzer/internal/adapters/openai"
	redisad "github.com/bbertka/openai-gpt-review-analyzer/internal/adapters/redis"
	"github.com/bbertka/openai-gpt-review-analyzer/internal/analysis"
	"github.com/bbertka/openai-gpt-review-analyzer/internal/app"
)

// reviewFeed serves two review pages and then an empty one, the way the
// upstream feed terminates pagination.
func reviewFeed() http.Handler {
	review := func(rating, title, content string) string {
		return fmt.Sprintf(`<div class="review">
  <i class="review-rating">%s out of 5 stars</i>
  <a class="review-title"><span>%s</span></a>
  <span class="review-text">%s</span>
</div>`, rating, title, content)
	}
	pages := map[string]string{
		"1": "<html><body>" + review("5.0", "great", "loved it") + "</body></html>",
		"2": "<html><body>" + review("1.0", "bad", "terrible") + "</body></html>",
		"3": "<html><body></body></html>",
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(pages[r.URL.Query().Get("pageNumber")]))
	})
}

// sentimentModel fakes the chat completion endpoint: it labels any text
// containing "loved" as Good and anything else as Bad.
func sentimentModel() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		reply := "Bad"
		for _, m := range req.Messages {
			if m.Role == "user" && strings.Contains(m.Content, "loved") {
				reply = "Good"
			}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":     "chatcmpl-e2e",
			"object": "chat.completion",
			"choices": []map[string]any{{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]any{"role": "assistant", "content": reply},
			}},
		})
	})
}

func TestHTTP_EndToEnd_Sentiment(t *testing.T) {
	feed := httptest.NewServer(reviewFeed())
	defer feed.Close()
	model := httptest.NewServer(sentimentModel())
	defer model.Close()
	mr := miniredis.RunT(t)

	source := amazon.New(feed.URL, "", "", 100, 5*time.Second)
	store := redisad.New(mr.Addr(), "", 0, time.Hour)
	title := analysis.NewLexical()
	content := openaiad.New("test-key", model.URL, "gpt-3.5-turbo")
	pipe := app.New(source, store, title, content, nil,
		app.Options{Workers: 2, StageTimeout: 5 * time.Second, MaxAttempts: 1})

	srv := httpserver.New(30 * time.Second)
	srv.MountHandlers(&httpserver.Handlers{Pipeline: pipe})
	api := httptest.NewServer(srv.Mux())
	defer api.Close()

	res, err := http.Get(api.URL + "/sentiment?item=B000TEST")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status %d", res.StatusCode)
	}

	var body struct {
		Item    string  `json:"item"`
		Result  float64 `json:"result"`
		Verdict string  `json:"verdict"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	// review one scores 100, review two scores 0; the mean 50 grades as F
	if body.Item != "B000TEST" || body.Result != 50 || body.Verdict != "F" {
		t.Fatalf("unexpected body: %+v", body)
	}

	// both reviews were staged in the cache
	if got := len(mr.Keys()); got != 2 {
		t.Fatalf("expected 2 staged reviews in redis, got %d", got)
	}
}

func TestHTTP_EndToEnd_FeedFailure(t *testing.T) {
	feed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer feed.Close()
	mr := miniredis.RunT(t)

	source := amazon.New(feed.URL, "", "", 100, 5*time.Second)
	store := redisad.New(mr.Addr(), "", 0, time.Hour)
	lex := analysis.NewLexical()
	pipe := app.New(source, store, lex, lex, nil,
		app.Options{Workers: 1, StageTimeout: 5 * time.Second, MaxAttempts: 1})

	srv := httpserver.New(30 * time.Second)
	srv.MountHandlers(&httpserver.Handlers{Pipeline: pipe})
	api := httptest.NewServer(srv.Mux())
	defer api.Close()

	res, err := http.Get(api.URL + "/sentiment?item=B000TEST")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("degraded run must still answer 200, got %d", res.StatusCode)
	}

	var body struct {
		Result  float64 `json:"result"`
		Verdict string  `json:"verdict"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Result != 0 || body.Verdict != "Unavailable" {
		t.Fatalf("unexpected fallback: %+v", body)
	}
}
