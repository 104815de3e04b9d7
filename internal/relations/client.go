// Package relations fetches synonyms and antonyms from a Datamuse-compatible
// word-relation service.
package relations

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"leximap/internal/metrics"
	"leximap/internal/models"
)

// DefaultBaseURL is the public Datamuse words endpoint.
const DefaultBaseURL = "https://api.datamuse.com/words"

// Relation kinds understood by the service.
const (
	KindSynonym = "rel_syn"
	KindAntonym = "rel_ant"
)

// maxBodyBytes bounds how much of a response is read.
const maxBodyBytes = 1 << 20

// Fetch outcomes reported to metrics.
const (
	outcomeOK          = "ok"
	outcomeStatus      = "status"
	outcomeNetwork     = "network"
	outcomeDecode      = "decode"
	outcomeRateLimited = "rate_limited"
)

// Options configures a Client.
type Options struct {
	BaseURL   string
	Timeout   time.Duration
	RPS       float64 // 0 means unlimited
	Burst     int
	UserAgent string
}

// Client fetches word relations. It never returns errors: every failure
// degrades to an empty list for the affected relation kind.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	userAgent  string
	log        *slog.Logger
}

// NewClient creates a Client with the given options.
func NewClient(opts Options, logger *slog.Logger) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Second
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "leximap/1.0"
	}

	limit := rate.Inf
	if opts.RPS > 0 {
		limit = rate.Limit(opts.RPS)
	}
	if opts.Burst <= 0 {
		opts.Burst = 5
	}

	return &Client{
		baseURL:    opts.BaseURL,
		httpClient: &http.Client{Timeout: opts.Timeout},
		limiter:    rate.NewLimiter(limit, opts.Burst),
		userAgent:  opts.UserAgent,
		log:        logger.With("component", "relations"),
	}
}

// BaseURL returns the service endpoint the client queries.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Fetch queries synonyms and antonyms concurrently and waits for both.
func (c *Client) Fetch(ctx context.Context, word string) models.Relations {
	var rel models.Relations

	var g errgroup.Group
	g.Go(func() error {
		rel.Synonyms = c.FetchKind(ctx, KindSynonym, word)
		return nil
	})
	g.Go(func() error {
		rel.Antonyms = c.FetchKind(ctx, KindAntonym, word)
		return nil
	})
	_ = g.Wait()

	return rel
}

// FetchKind queries a single relation kind. Words are lowercased and empty
// results dropped; the service's order is preserved.
func (c *Client) FetchKind(ctx context.Context, kind, word string) []string {
	words, outcome, err := c.fetch(ctx, kind, word)
	metrics.RecordRelationFetch(kind, outcome)
	if err != nil {
		c.log.WarnContext(ctx, "relation fetch failed",
			slog.String("relation", kind),
			slog.String("word", word),
			slog.String("outcome", outcome),
			slog.String("error", err.Error()),
		)
		return []string{}
	}
	return words
}

func (c *Client) fetch(ctx context.Context, kind, word string) ([]string, string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, outcomeRateLimited, fmt.Errorf("rate limit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.requestURL(kind, word), nil)
	if err != nil {
		return nil, outcomeNetwork, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, outcomeNetwork, fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, outcomeStatus, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, outcomeNetwork, fmt.Errorf("read body: %w", err)
	}

	words, err := decodeWords(body)
	if err != nil {
		return nil, outcomeDecode, err
	}
	return words, outcomeOK, nil
}

// requestURL composes base?kind=word with the word percent-encoded.
func (c *Client) requestURL(kind, word string) string {
	sep := "?"
	if strings.Contains(c.baseURL, "?") {
		sep = "&"
	}
	escaped := strings.ReplaceAll(url.QueryEscape(word), "+", "%20")
	return c.baseURL + sep + kind + "=" + escaped
}

// decodeWords extracts the "word" field of each array element. Elements that
// are not objects, or whose word is missing or not a string, count as empty.
func decodeWords(body []byte) ([]string, error) {
	var items []any
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}

	words := make([]string, 0, len(items))
	for _, item := range items {
		obj, _ := item.(map[string]any)
		w, _ := obj["word"].(string)
		if w = strings.ToLower(w); w != "" {
			words = append(words, w)
		}
	}
	return words, nil
}

// Ping checks that the service answers HTTP at all. Any response counts as reachable.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.baseURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}
	resp.Body.Close()
	return nil
}
