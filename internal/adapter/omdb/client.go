package omdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/cinelog-app/cinelog/internal/domain"
)

const (
	// DefaultBaseURL is the public OMDb endpoint
	DefaultBaseURL = "https://www.omdbapi.com/"

	defaultTimeout = 30 * time.Second
	userAgent      = "cinelog/1.0"
)

// Client implements domain.MovieDirectory for the OMDb API
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithTimeout sets the per-request timeout. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// NewClient creates a new OMDb client
func NewClient(baseURL, apiKey string, logger *slog.Logger, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("omdb API key is required")
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid omdb base URL: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	c := &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// SearchByTitle returns movies whose title matches query
func (c *Client) SearchByTitle(ctx context.Context, query string) ([]domain.SearchResult, error) {
	query = domain.NormalizeQuery(query)
	if query == "" {
		return nil, nil
	}

	params := url.Values{}
	params.Set("s", query)

	var resp SearchResponse
	if err := c.get(ctx, params, &resp); err != nil {
		return nil, err
	}
	if !resp.ok() {
		return nil, &domain.NotFoundError{Message: resp.Error}
	}

	return MapSearchResults(resp.Search), nil
}

// FetchByID returns the full record for the movie with the given IMDb id
func (c *Client) FetchByID(ctx context.Context, id string) (*domain.MovieDetail, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, &domain.NotFoundError{Message: "Incorrect IMDb ID."}
	}

	params := url.Values{}
	params.Set("i", id)

	var resp TitleResponse
	if err := c.get(ctx, params, &resp); err != nil {
		return nil, err
	}
	if !resp.ok() {
		return nil, &domain.NotFoundError{Message: resp.Error}
	}

	detail := MapMovieDetail(resp)
	if detail.ID == "" {
		detail.ID = id
	}
	return detail, nil
}

// get performs an authenticated GET and decodes the JSON body into dest
func (c *Client) get(ctx context.Context, params url.Values, dest interface{}) error {
	params.Set("apikey", c.apiKey)
	reqURL := c.baseURL + "?" + params.Encode()
	if strings.Contains(c.baseURL, "?") {
		reqURL = c.baseURL + "&" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	requestID := uuid.NewString()
	c.logger.Debug("omdb request", "request_id", requestID, "s", params.Get("s"), "i", params.Get("i"))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isCancelled(ctx, err) {
			c.logger.Debug("omdb request cancelled", "request_id", requestID)
			return domain.ErrCancelled
		}
		c.logger.Error("omdb request failed", "request_id", requestID, "error", err)
		return &domain.TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if isCancelled(ctx, err) {
			return domain.ErrCancelled
		}
		return &domain.TransportError{Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("omdb request error", "request_id", requestID, "status", resp.StatusCode, "body", string(body))
		return &domain.TransportError{StatusCode: resp.StatusCode}
	}

	if err := json.Unmarshal(body, dest); err != nil {
		c.logger.Error("JSON parse error", "request_id", requestID, "error", err, "bodyLen", len(body))
		return &domain.TransportError{Err: fmt.Errorf("failed to parse response: %w", err)}
	}

	c.logger.Debug("omdb response", "request_id", requestID, "status", resp.StatusCode)
	return nil
}

// isCancelled distinguishes caller cancellation from timeouts and network errors.
// Only the caller's own context counts; the client timeout is a transport failure.
func isCancelled(ctx context.Context, err error) bool {
	return err != nil && errors.Is(ctx.Err(), context.Canceled)
}
