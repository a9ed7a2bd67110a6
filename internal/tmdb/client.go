package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/sourcegraph/conc/pool"

	"cinecraze/internal/domain"
)

// Config holds TMDB client configuration.
type Config struct {
	BaseURL      string
	ImageBaseURL string
	APIKey       string
	Timeout      time.Duration
}

// Client fetches movie metadata from the TMDB API. One movie requires three
// lookups (details, credits, videos); the client reports success only when all
// three succeed.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	imageBaseURL string
	apiKey       string
	logger       *slog.Logger
}

// New creates a new TMDB client.
func New(cfg Config, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:      cfg.BaseURL,
		imageBaseURL: cfg.ImageBaseURL,
		apiKey:       cfg.APIKey,
		logger:       logger.With("component", "tmdb"),
	}
}

// FetchMovie fetches and normalizes the metadata for one TMDB id. Any failed
// lookup yields domain.ErrUpstreamLookup; no partial result is returned.
func (c *Client) FetchMovie(ctx context.Context, tmdbID int64) (*domain.MovieFields, error) {
	bundle, err := c.fetchBundle(ctx, tmdbID)
	if err != nil {
		return nil, err
	}
	fields := Normalize(bundle, c.imageBaseURL)
	return &fields, nil
}

func (c *Client) fetchBundle(ctx context.Context, tmdbID int64) (*Bundle, error) {
	bundle := &Bundle{}

	// The three lookups are independent; run them concurrently and join on
	// the first error so callers only ever see a complete bundle.
	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()

	p.Go(func(ctx context.Context) error {
		return c.get(ctx, fmt.Sprintf("%s/movie/%d", c.baseURL, tmdbID), &bundle.Details)
	})
	p.Go(func(ctx context.Context) error {
		return c.get(ctx, fmt.Sprintf("%s/movie/%d/credits", c.baseURL, tmdbID), &bundle.Credits)
	})
	p.Go(func(ctx context.Context) error {
		return c.get(ctx, fmt.Sprintf("%s/movie/%d/videos", c.baseURL, tmdbID), &bundle.Videos)
	})

	if err := p.Wait(); err != nil {
		c.logger.Warn("metadata lookup failed", "tmdb_id", tmdbID, "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamLookup, err)
	}

	return bundle, nil
}

func (c *Client) get(ctx context.Context, rawURL string, dst interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	q := url.Values{"api_key": {c.apiKey}}
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}
