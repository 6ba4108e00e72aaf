package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/bbertka/openai-gpt-review-analyzer/internal/domain"
)

// Analyzer runs a full sentiment pipeline for one item.
type Analyzer interface {
	Analyze(ctx context.Context, itemID string) (domain.OverallResult, error)
}

type Handlers struct {
	Pipeline Analyzer
	Runs     domain.RunRepository // optional; /runs is 404 without it
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

type sentimentResponse struct {
	Item    string  `json:"item"`
	Result  float64 `json:"result"`
	Verdict string  `json:"verdict"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/sentiment", h.sentiment)
	if h.Runs != nil {
		s.mux.Get("/runs", h.listRuns)
	}
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// sentiment triggers one pipeline run. A failed run still answers 200 with
// the degraded result: callers always get a well-formed body, never a raw
// error.
func (h *Handlers) sentiment(w http.ResponseWriter, r *http.Request) {
	item := r.URL.Query().Get("item")
	if item == "" {
		writeProblem(w, http.StatusBadRequest, "Missing item", "query parameter item is required")
		return
	}
	log.Info().Str("item", item).Msg("running analysis on new item")

	res, err := h.Pipeline.Analyze(r.Context(), item)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			// caller went away; the run produced no result
			return
		}
		log.Warn().Str("item", item).Err(err).Msg("analysis failed, serving fallback")
		res = domain.OverallResult{Score: 0, Verdict: domain.VerdictUnavailable}
	}

	writeJSON(w, http.StatusOK, sentimentResponse{Item: item, Result: res.Score, Verdict: res.Verdict})
}

func (h *Handlers) listRuns(w http.ResponseWriter, r *http.Request) {
	item := r.URL.Query().Get("item")
	if item == "" {
		writeProblem(w, http.StatusBadRequest, "Missing item", "query parameter item is required")
		return
	}

	limit := 20
	if ls := r.URL.Query().Get("limit"); ls != "" {
		l, err := strconv.Atoi(ls)
		if err != nil || l <= 0 || l > 200 {
			writeProblem(w, http.StatusBadRequest, "Invalid limit", "limit must be an integer between 1 and 200")
			return
		}
		limit = l
	}

	runs, err := h.Runs.ListRuns(r.Context(), item, limit)
	if err != nil {
		log.Error().Str("item", item).Err(err).Msg("list runs failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "could not list runs")
		return
	}

	type runView struct {
		ID               string   `json:"id"`
		Item             string   `json:"item"`
		Status           string   `json:"status"`
		ReviewsProcessed int      `json:"reviews_processed"`
		Result           *float64 `json:"result,omitempty"`
		Verdict          *string  `json:"verdict,omitempty"`
		Error            *string  `json:"error,omitempty"`
	}
	out := make([]runView, 0, len(runs))
	for _, run := range runs {
		out = append(out, runView{
			ID:               run.ID,
			Item:             run.ItemID,
			Status:           run.Status,
			ReviewsProcessed: run.ReviewsProcessed,
			Result:           run.Result,
			Verdict:          run.Verdict,
			Error:            run.Error,
		})
	}
	writeJSON(w, http.StatusOK, out)
}
