// Package source defines the record-source boundary: a paged query
// capability plus the sequential pagination loop that drives it.
//
// The loop fetches one page at a time, never concurrently, stops early
// when a page comes back short, and gives up at a hard page cap so a
// misbehaving source cannot run it forever. Each refresh carries a
// monotonically increasing token; a refresh superseded by a newer one
// has its result discarded instead of being applied out of order.
package source

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/planline/planline/internal/milestone"
)

const (
	// DefaultPageSize is the fixed per-page record count.
	DefaultPageSize = 200

	// MaxPages bounds worst-case work against a misbehaving source.
	MaxPages = 50
)

var (
	// ErrStale marks a refresh whose results were superseded by a newer
	// refresh before it finished.
	ErrStale = errors.New("refresh superseded by a newer refresh")

	// ErrNoSource is returned when no record source is configured.
	ErrNoSource = errors.New("no record source configured")

	// ErrNoGrant is returned when the permission context is missing.
	ErrNoGrant = errors.New("missing permission context")
)

// Query names one page of records. Workspace and Grant are the opaque
// permission contexts the source scopes its results by.
type Query struct {
	Kind      string
	Limit     int
	Offset    int
	Workspace string
	Grant     string
}

// Source is the external paged query capability.
type Source interface {
	FetchPage(ctx context.Context, q Query) ([]milestone.Record, error)
}

// Loader drives sequential pagination over a Source.
type Loader struct {
	src      Source
	base     Query
	pageSize int
	maxPages int
	backoff  func(attempt int) time.Duration
	token    atomic.Int64
}

// NewLoader creates a loader for the given source and base query.
// The base query's Limit and Offset are ignored; the loader owns paging.
func NewLoader(src Source, base Query) *Loader {
	return &Loader{
		src:      src,
		base:     base,
		pageSize: DefaultPageSize,
		maxPages: MaxPages,
		backoff:  backoffDelay,
	}
}

// SetPageSize overrides the page size (mainly for tests).
func (l *Loader) SetPageSize(n int) {
	if n > 0 {
		l.pageSize = n
	}
}

// Refresh fetches every page of records sequentially. It returns
// ErrStale when another Refresh started while this one was running;
// the caller drops the result and waits for the newer refresh.
func (l *Loader) Refresh(ctx context.Context) ([]milestone.Record, error) {
	if l.src == nil {
		return nil, ErrNoSource
	}
	tok := l.token.Add(1)

	var all []milestone.Record
	for page := 0; page < l.maxPages; page++ {
		q := l.base
		q.Limit = l.pageSize
		q.Offset = page * l.pageSize

		records, err := l.fetchWithRetry(ctx, q)
		if err != nil {
			return nil, fmt.Errorf("fetch page %d: %w", page+1, err)
		}
		if l.token.Load() != tok {
			return nil, ErrStale
		}

		all = append(all, records...)
		if len(records) < l.pageSize {
			// Short page: end of data.
			break
		}
	}

	return all, nil
}
