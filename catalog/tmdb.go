package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
)

const PosterBaseURL = "https://image.tmdb.org/t/p/w500"

var (
	ErrMissingAPIKey = errors.New("tmdb: api key not configured")
	errNotFound      = errors.New("tmdb: not found")
)

type TMDBClient struct {
	client     *http.Client
	baseURL    string
	apiKey     string
	language   string
	maxRetries int
	log        *zap.Logger
}

type Config struct {
	BaseURL    string
	APIKey     string
	Language   string
	Timeout    time.Duration
	MaxRetries int
}

func NewTMDBClient(cfg Config, log *zap.Logger) *TMDBClient {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &TMDBClient{
		client:     &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		language:   cfg.Language,
		maxRetries: cfg.MaxRetries,
		log:        log,
	}
}

func (c *TMDBClient) ListByCategory(ctx context.Context, category string, page int) (Page, error) {
	var out Page
	err := c.get(ctx, "/movie/"+category, url.Values{"page": {strconv.Itoa(page)}}, &out)
	return out, err
}

func (c *TMDBClient) Detail(ctx context.Context, id int64) (Detail, error) {
	var out Detail
	err := c.get(ctx, "/movie/"+strconv.FormatInt(id, 10), nil, &out)
	return out, err
}

func (c *TMDBClient) get(ctx context.Context, path string, query url.Values, out any) error {
	if c.apiKey == "" {
		return ErrMissingAPIKey
	}
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(attempt) * 200 * time.Millisecond
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			c.log.Info("retrying tmdb request", zap.String("path", path), zap.Int("attempt", attempt))
		}
		lastErr = c.do(ctx, path, query, out)
		if lastErr == nil || errors.Is(lastErr, errNotFound) || ctx.Err() != nil {
			return lastErr
		}
	}
	c.log.Warn("tmdb request failed", zap.String("path", path), zap.Int("attempts", c.maxRetries+1), zap.Error(lastErr))
	return lastErr
}

func (c *TMDBClient) do(ctx context.Context, path string, query url.Values, out any) error {
	q := url.Values{}
	for k, v := range query {
		q[k] = v
	}
	q.Set("api_key", c.apiKey)
	if c.language != "" {
		q.Set("language", c.language)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("tmdb: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("tmdb: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return errNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("tmdb: unexpected status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("tmdb: decode %s: %w", path, err)
	}
	return nil
}
