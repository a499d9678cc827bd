package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/scenra/scenra/internal/domain"
)

const (
	defaultTimeout = 15 * time.Second
	userAgent      = "Scenra/1.0"

	// DefaultBaseURL is the TMDB v3 API root
	DefaultBaseURL = "https://api.themoviedb.org/3"
	// DefaultLanguage is the locale sent with every request
	DefaultLanguage = "es-ES"
)

var (
	errMissingResults = errors.New("response has no results")
	errMissingItem    = errors.New("response has no item")
)

// Client implements domain.CatalogClient against the TMDB v3 API
type Client struct {
	apiKey     string
	baseURL    string
	language   string
	httpClient *http.Client
	logger     *slog.Logger
}

var _ domain.CatalogClient = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a TMDB client.
func New(apiKey, baseURL, language string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("tmdb api key required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("tmdb base url required")
	}
	language = strings.TrimSpace(language)
	if language == "" {
		language = DefaultLanguage
	}
	client := &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		language:   language,
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Popular returns page 1 of the popular listing
func (c *Client) Popular(ctx context.Context, kind domain.MediaKind) ([]domain.CatalogItem, error) {
	return c.List(ctx, kind, domain.CategoryPopular)
}

// TopRated returns page 1 of the top rated listing
func (c *Client) TopRated(ctx context.Context, kind domain.MediaKind) ([]domain.CatalogItem, error) {
	return c.List(ctx, kind, domain.CategoryTopRated)
}

// Trending returns the weekly trending listing
func (c *Client) Trending(ctx context.Context, kind domain.MediaKind) ([]domain.CatalogItem, error) {
	return c.List(ctx, kind, domain.CategoryTrending)
}

// List returns one page of a (kind, category) listing in provider order
func (c *Client) List(ctx context.Context, kind domain.MediaKind, category domain.Category) ([]domain.CatalogItem, error) {
	op := ListingLabel(kind, category)
	seg, err := kindSegment(kind)
	if err != nil {
		return nil, &domain.FetchError{Op: op, Err: err}
	}

	params := url.Values{}
	var path string
	switch category {
	case domain.CategoryPopular:
		path = "/" + seg + "/popular"
		params.Set("page", "1")
	case domain.CategoryTopRated:
		path = "/" + seg + "/top_rated"
		params.Set("page", "1")
	case domain.CategoryTrending:
		path = "/trending/" + seg + "/week"
	default:
		return nil, &domain.FetchError{Op: op, Err: fmt.Errorf("category %q is not a remote listing", category)}
	}

	return c.fetchList(ctx, op, path, params, kind)
}

// Search returns matches for query in provider (relevance) order
func (c *Client) Search(ctx context.Context, kind domain.MediaKind, query string) ([]domain.CatalogItem, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrEmptyQuery
	}
	op := SearchLabel(kind)
	seg, err := kindSegment(kind)
	if err != nil {
		return nil, &domain.FetchError{Op: op, Err: err}
	}

	params := url.Values{}
	params.Set("query", query)
	return c.fetchList(ctx, op, "/search/"+seg, params, kind)
}

// Details returns the enriched record for one item
func (c *Client) Details(ctx context.Context, kind domain.MediaKind, id int64) (*domain.DetailRecord, error) {
	op := DetailsLabel(kind)
	if id <= 0 {
		return nil, &domain.FetchError{Op: op, Err: domain.ErrInvalidID}
	}
	seg, err := kindSegment(kind)
	if err != nil {
		return nil, &domain.FetchError{Op: op, Err: err}
	}

	params := url.Values{}
	params.Set("append_to_response", "credits,videos")
	body, err := c.doRequest(ctx, op, "/"+seg+"/"+strconv.FormatInt(id, 10), params)
	if err != nil {
		return nil, err
	}

	var payload Details
	if err := json.Unmarshal(body, &payload); err != nil {
		c.logger.Error("tmdb decode failed", "op", op, "error", err, "bodyLen", len(body))
		return nil, &domain.FetchError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	if payload.ID == 0 {
		return nil, &domain.FetchError{Op: op, Err: errMissingItem}
	}

	rec := NormalizeDetail(payload, kind)
	return &rec, nil
}

func (c *Client) fetchList(ctx context.Context, op, path string, params url.Values, kind domain.MediaKind) ([]domain.CatalogItem, error) {
	body, err := c.doRequest(ctx, op, path, params)
	if err != nil {
		return nil, err
	}

	var payload ListResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		c.logger.Error("tmdb decode failed", "op", op, "error", err, "bodyLen", len(body))
		return nil, &domain.FetchError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	if payload.Results == nil {
		return nil, &domain.FetchError{Op: op, Err: errMissingResults}
	}

	items := MapItems(*payload.Results, kind)
	c.logger.Debug("tmdb listing", "op", op, "count", len(items))
	return items, nil
}

// doRequest performs an authenticated GET and returns the 2xx body
func (c *Client) doRequest(ctx context.Context, op, path string, params url.Values) ([]byte, error) {
	endpoint, err := url.Parse(c.baseURL + path)
	if err != nil {
		return nil, &domain.FetchError{Op: op, Err: fmt.Errorf("parse tmdb url: %w", err)}
	}
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)
	params.Set("language", c.language)
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, &domain.FetchError{Op: op, Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("tmdb request", "op", op, "path", path)

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		c.logger.Error("tmdb request failed", "op", op, "error", err, "latency", latency)
		return nil, &domain.FetchError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.FetchError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("tmdb request error", "op", op, "status", resp.StatusCode, "latency", latency)
		var apiErr ErrorResponse
		if json.Unmarshal(body, &apiErr) == nil && apiErr.StatusMessage != "" {
			return nil, &domain.FetchError{Op: op, Status: resp.StatusCode, Err: errors.New(apiErr.StatusMessage)}
		}
		return nil, &domain.FetchError{Op: op, Status: resp.StatusCode}
	}

	return body, nil
}

func kindSegment(kind domain.MediaKind) (string, error) {
	switch kind {
	case domain.MediaKindMovie:
		return "movie", nil
	case domain.MediaKindTV:
		return "tv", nil
	}
	return "", fmt.Errorf("unknown media kind %q", kind)
}

// VerifyKey checks the API key against the provider's configuration endpoint
func (c *Client) VerifyKey(ctx context.Context) error {
	_, err := c.doRequest(ctx, "api key check", "/configuration", nil)
	return err
}
