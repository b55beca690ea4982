package catalog_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/loan-lifecycle-go/lending/catalog"
	"github.com/AntonStoeckl/loan-lifecycle-go/lending/core"
	. "github.com/AntonStoeckl/loan-lifecycle-go/testutil/helper" //nolint:revive
)

func Test_GoogleBooksClient_GetBookSnapshot_Success(t *testing.T) {
	// arrange
	var requestedPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestedPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "zyTCAlFPjgYC",
			"volumeInfo": {
				"title": "The Google Story",
				"authors": ["David A. Vise", "Mark Malseed"],
				"imageLinks": {"smallThumbnail": "http://books.google.com/small", "thumbnail": "http://books.google.com/thumb"}
			}
		}`))
	}))
	defer server.Close()

	client := catalog.NewGoogleBooksClient(catalog.WithBaseURL(server.URL), catalog.WithRateLimit(0))

	// act
	snapshot, err := client.GetBookSnapshot(context.Background(), "zyTCAlFPjgYC")

	// assert
	require.NoError(t, err)
	assert.Equal(t, "/volumes/zyTCAlFPjgYC", requestedPath)
	assert.Equal(t, "The Google Story", snapshot.Title)
	assert.Equal(t, []string{"David A. Vise", "Mark Malseed"}, snapshot.Authors)
	assert.Equal(t, "https://books.google.com/thumb", snapshot.ImageURL)
}

func Test_GoogleBooksClient_GetBookSnapshot_MissingFieldsBecomePlaceholders(t *testing.T) {
	// arrange
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"volumeInfo": {}}`))
	}))
	defer server.Close()

	client := catalog.NewGoogleBooksClient(catalog.WithBaseURL(server.URL), catalog.WithRateLimit(0))

	// act
	snapshot, err := client.GetBookSnapshot(context.Background(), "b1")

	// assert
	require.NoError(t, err)
	assert.True(t, snapshot.IsPlaceholder())
}

func Test_GoogleBooksClient_GetBookSnapshot_Errors(t *testing.T) {
	testCases := []struct {
		name     string
		status   int
		body     string
		expected error
	}{
		{name: "not found", status: http.StatusNotFound, body: `{}`, expected: catalog.ErrBookNotFound},
		{name: "server error", status: http.StatusServiceUnavailable, body: `{}`, expected: catalog.ErrCatalogUnavailable},
		{name: "broken body", status: http.StatusOK, body: `{"volumeInfo": `, expected: catalog.ErrDecodingResponseFailed},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer server.Close()

			client := catalog.NewGoogleBooksClient(catalog.WithBaseURL(server.URL), catalog.WithRateLimit(0))

			// act
			_, err := client.GetBookSnapshot(context.Background(), "b1")

			// assert
			assert.ErrorIs(t, err, tc.expected)
		})
	}
}

func Test_GoogleBooksClient_GetBookSnapshot_Error_CanceledContext(t *testing.T) {
	// arrange
	client := catalog.NewGoogleBooksClient(catalog.WithBaseURL("http://127.0.0.1:1"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// act
	_, err := client.GetBookSnapshot(ctx, "b1")

	// assert
	assert.ErrorIs(t, err, catalog.ErrCatalogUnavailable)
}

func Test_WithFallback_ReturnsPlaceholderAndLogs(t *testing.T) {
	// arrange
	logger := NewContextualLoggerSpy(true)
	provider := catalog.WithFallback(failingProvider{}, logger)

	// act
	snapshot, err := provider.GetBookSnapshot(context.Background(), "b1")

	// assert
	require.NoError(t, err)
	assert.Equal(t, core.PlaceholderBookSnapshot(), snapshot)
	assert.True(t, logger.HasWarnLog("catalog lookup failed, using placeholder"))
}

func Test_WithFallback_PassesSnapshotThrough(t *testing.T) {
	// arrange
	dune := core.BuildBookSnapshot("Dune", []string{"Frank Herbert"}, "")
	provider := catalog.WithFallback(catalog.StaticProvider{"b1": dune}, nil)

	// act
	snapshot, err := provider.GetBookSnapshot(context.Background(), "b1")

	// assert
	require.NoError(t, err)
	assert.Equal(t, dune, snapshot)
}

type failingProvider struct{}

func (failingProvider) GetBookSnapshot(context.Context, core.BookIDString) (core.BookSnapshot, error) {
	return core.BookSnapshot{}, errors.New("boom")
}
