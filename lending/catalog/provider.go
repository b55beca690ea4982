package catalog

import (
	"context"
	"errors"

	"github.com/AntonStoeckl/loan-lifecycle-go/lending/core"
	"github.com/AntonStoeckl/loan-lifecycle-go/lending/shell"
)

const (
	logMsgCatalogLookupFailed = "catalog lookup failed, using placeholder"
	logAttrBookID             = "book_id"
	logAttrError              = "error"
)

var (
	// ErrBookNotFound is returned when the catalog does not know the book.
	ErrBookNotFound = errors.New("book not found in catalog")

	// ErrCatalogUnavailable is returned when the catalog cannot be reached or answers with an error.
	ErrCatalogUnavailable = errors.New("catalog unavailable")

	// ErrDecodingResponseFailed is returned when the catalog answer cannot be decoded.
	ErrDecodingResponseFailed = errors.New("decoding catalog response failed")
)

// SnapshotProvider describes a book by its catalog ID.
type SnapshotProvider interface {
	GetBookSnapshot(ctx context.Context, bookID core.BookIDString) (core.BookSnapshot, error)
}

// FallbackProvider never fails: lookup errors are logged and answered with the placeholder snapshot.
type FallbackProvider struct {
	provider SnapshotProvider
	logger   shell.ContextualLogger
}

// WithFallback wraps provider. The logger is optional.
func WithFallback(provider SnapshotProvider, logger shell.ContextualLogger) FallbackProvider {
	return FallbackProvider{provider: provider, logger: logger}
}

// GetBookSnapshot returns the catalog snapshot or the placeholder.
func (p FallbackProvider) GetBookSnapshot(ctx context.Context, bookID core.BookIDString) (core.BookSnapshot, error) {
	snapshot, err := p.provider.GetBookSnapshot(ctx, bookID)
	if err != nil {
		if p.logger != nil {
			p.logger.WarnContext(ctx, logMsgCatalogLookupFailed, logAttrBookID, bookID, logAttrError, err.Error())
		}

		return core.PlaceholderBookSnapshot(), nil
	}

	return snapshot, nil
}

// StaticProvider answers from a fixed map. It backs demos and tests.
type StaticProvider map[core.BookIDString]core.BookSnapshot

// GetBookSnapshot returns the stored snapshot or ErrBookNotFound.
func (p StaticProvider) GetBookSnapshot(_ context.Context, bookID core.BookIDString) (core.BookSnapshot, error) {
	snapshot, ok := p[bookID]
	if !ok {
		return core.BookSnapshot{}, ErrBookNotFound
	}

	return snapshot, nil
}
