package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"golang.org/x/time/rate"

	"github.com/AntonStoeckl/loan-lifecycle-go/lending/core"
)

const (
	// DefaultBaseURL is the public Google Books API.
	DefaultBaseURL = "https://www.googleapis.com/books/v1"

	defaultRequestsPerSecond = 5
	defaultBurst             = 10
	defaultTimeout           = 5 * time.Second
	maxResponseBytes         = 1 << 20
)

type volumeResponse struct {
	VolumeInfo struct {
		Title      string   `json:"title"`
		Authors    []string `json:"authors"`
		ImageLinks struct {
			Thumbnail      string `json:"thumbnail"`
			SmallThumbnail string `json:"smallThumbnail"`
		} `json:"imageLinks"`
	} `json:"volumeInfo"`
}

// GoogleBooksClient looks up volumes by ID. Requests are rate limited across all callers.
type GoogleBooksClient struct {
	baseURL     string
	httpClient  *http.Client
	rateLimiter *rate.Limiter
}

// GoogleBooksOption configures a GoogleBooksClient.
type GoogleBooksOption func(*GoogleBooksClient)

// WithBaseURL points the client at another endpoint.
func WithBaseURL(baseURL string) GoogleBooksOption {
	return func(c *GoogleBooksClient) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(client *http.Client) GoogleBooksOption {
	return func(c *GoogleBooksClient) {
		c.httpClient = client
	}
}

// WithRateLimit sets the sustained requests per second. Zero disables the limit.
func WithRateLimit(requestsPerSecond float64) GoogleBooksOption {
	return func(c *GoogleBooksClient) {
		if requestsPerSecond <= 0 {
			c.rateLimiter = rate.NewLimiter(rate.Inf, 0)
			return
		}

		c.rateLimiter = rate.NewLimiter(rate.Limit(requestsPerSecond), defaultBurst)
	}
}

// NewGoogleBooksClient creates a client for the public API.
func NewGoogleBooksClient(opts ...GoogleBooksOption) *GoogleBooksClient {
	client := &GoogleBooksClient{
		baseURL:     DefaultBaseURL,
		rateLimiter: rate.NewLimiter(rate.Limit(defaultRequestsPerSecond), defaultBurst),
		httpClient: &http.Client{
			Timeout: defaultTimeout,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// GetBookSnapshot fetches volumes/{bookID} and copies title, authors and thumbnail.
func (c *GoogleBooksClient) GetBookSnapshot(ctx context.Context, bookID core.BookIDString) (core.BookSnapshot, error) {
	if strings.TrimSpace(bookID) == "" {
		return core.BookSnapshot{}, ErrBookNotFound
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return core.BookSnapshot{}, errors.Join(ErrCatalogUnavailable, err)
	}

	endpoint := c.baseURL + "/volumes/" + url.PathEscape(bookID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return core.BookSnapshot{}, errors.Join(ErrCatalogUnavailable, err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return core.BookSnapshot{}, errors.Join(ErrCatalogUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return core.BookSnapshot{}, ErrBookNotFound
	case resp.StatusCode != http.StatusOK:
		return core.BookSnapshot{}, errors.Join(ErrCatalogUnavailable, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return core.BookSnapshot{}, errors.Join(ErrCatalogUnavailable, err)
	}

	var volume volumeResponse
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(body, &volume); err != nil {
		return core.BookSnapshot{}, errors.Join(ErrDecodingResponseFailed, err)
	}

	info := volume.VolumeInfo

	image := info.ImageLinks.Thumbnail
	if image == "" {
		image = info.ImageLinks.SmallThumbnail
	}

	return core.BuildBookSnapshot(info.Title, info.Authors, secureURL(image)), nil
}

// secureURL upgrades the plain http image links the API returns.
func secureURL(raw string) string {
	if strings.HasPrefix(raw, "http://") {
		return "https://" + strings.TrimPrefix(raw, "http://")
	}

	return raw
}
