package amazon

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"github.com/bbertka/openai-gpt-review-analyzer/internal/adapters/observability"
	"github.com/bbertka/openai-gpt-review-analyzer/internal/domain"
)

// Client fetches product review pages and extracts review records with CSS
// selectors. It implements domain.ReviewSource.
type Client struct {
	base string
	hc   *http.Client
	user string
	pass string
	rl   *rate.Limiter
}

func New(base, user, pass string, rps int, timeout time.Duration) *Client {
	if rps <= 0 {
		rps = 5
	}
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: timeout},
		user: user,
		pass: pass,
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}
}

// Fetch pages through the review feed starting at page 1 and stops at the
// first page that yields zero reviews. Any transport failure or non-success
// status aborts the whole fetch: partial truncation must never masquerade as
// a complete review set.
func (c *Client) Fetch(ctx context.Context, itemID string) ([]domain.ReviewRecord, error) {
	var out []domain.ReviewRecord
	for page := 1; ; page++ {
		recs, err := c.fetchPage(ctx, itemID, page)
		if err != nil {
			return nil, err
		}
		if len(recs) == 0 {
			break
		}
		out = append(out, recs...)
	}
	return out, nil
}

func (c *Client) fetchPage(ctx context.Context, itemID string, page int) ([]domain.ReviewRecord, error) {
	if err := c.rl.Wait(ctx); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/product-reviews/%s/ref=cm_cr_arp_d_paging_btm_next_%d?pageNumber=%d",
		c.base, itemID, page, page)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept-Language", "en-GB,en;q=0.9")
	req.Header.Set("Cache-Control", "max-age=0")
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.1 Safari/605.1.15")
	if c.user != "" {
		req.SetBasicAuth(c.user, c.pass)
	}

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		observability.ObserveExternal("reviews", "page", 0, time.Since(start))
		return nil, &domain.AcquisitionError{Page: page, Err: err}
	}
	defer resp.Body.Close()
	observability.ObserveExternal("reviews", "page", resp.StatusCode, time.Since(start))

	if resp.StatusCode != http.StatusOK {
		return nil, &domain.AcquisitionError{Page: page, Status: resp.StatusCode}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, &domain.AcquisitionError{Page: page, Err: fmt.Errorf("parse page: %w", err)}
	}

	var recs []domain.ReviewRecord
	doc.Find("div.review").Each(func(_ int, s *goquery.Selection) {
		recs = append(recs, extractReview(s))
	})
	return recs, nil
}

// extractReview pulls the review fields out of one div.review block. A
// selector that does not match degrades that field to nil; it never aborts
// the fetch.
func extractReview(s *goquery.Selection) domain.ReviewRecord {
	var rec domain.ReviewRecord

	if rating := selText(s, "i.review-rating"); rating != nil {
		rec.Rating = strings.TrimSpace(strings.Replace(*rating, "out of 5 stars", "", 1))
	}
	rec.Author = selText(s, "span.a-profile-name")
	rec.Title = selText(s, "a.review-title span:not([class])")
	rec.Content = selText(s, "span.review-text")
	rec.Date = selText(s, "span.review-date")
	rec.Verified = selText(s, "span.a-size-mini")
	if img := s.Find("img.review-image-tile"); img.Length() > 0 {
		if src, ok := img.First().Attr("src"); ok {
			rec.ImageURL = &src
		}
	}
	return rec
}

func selText(s *goquery.Selection, selector string) *string {
	el := s.Find(selector)
	if el.Length() == 0 {
		return nil
	}
	t := strings.TrimSpace(el.First().Text())
	return &t
}
