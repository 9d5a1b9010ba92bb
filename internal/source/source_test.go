package source

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planline/planline/internal/milestone"
)

// fakeSource serves a fixed record slice page by page and records the
// queries it saw.
type fakeSource struct {
	records []milestone.Record
	queries []Query
	failAt  int // fail on the Nth call (1-based), 0 = never
	onFetch func(call int)
	calls   int
}

func (f *fakeSource) FetchPage(ctx context.Context, q Query) ([]milestone.Record, error) {
	f.calls++
	f.queries = append(f.queries, q)
	if f.onFetch != nil {
		f.onFetch(f.calls)
	}
	if f.failAt != 0 && f.calls == f.failAt {
		return nil, errors.New("boom")
	}
	if q.Offset >= len(f.records) {
		return nil, nil
	}
	end := min(q.Offset+q.Limit, len(f.records))
	return f.records[q.Offset:end], nil
}

func makeRecords(n int) []milestone.Record {
	recs := make([]milestone.Record, n)
	for i := range recs {
		recs[i] = milestone.Record{RecordID: fmt.Sprintf("r%d", i), Time: "2024-03-01"}
	}
	return recs
}

func TestRefreshPagination(t *testing.T) {
	src := &fakeSource{records: makeRecords(25)}
	l := NewLoader(src, Query{Kind: "milestone", Workspace: "ws", Grant: "g"})
	l.SetPageSize(10)

	got, err := l.Refresh(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 25)
	assert.Equal(t, "r0", got[0].RecordID)
	assert.Equal(t, "r24", got[24].RecordID)

	// Three sequential pages; the short third page ends the loop.
	require.Len(t, src.queries, 3)
	for i, q := range src.queries {
		assert.Equal(t, 10, q.Limit)
		assert.Equal(t, i*10, q.Offset)
		assert.Equal(t, "milestone", q.Kind)
		assert.Equal(t, "ws", q.Workspace)
	}
}

func TestRefreshStopsOnExactBoundary(t *testing.T) {
	// 20 records at page size 10: page 3 returns empty and stops.
	src := &fakeSource{records: makeRecords(20)}
	l := NewLoader(src, Query{})
	l.SetPageSize(10)

	got, err := l.Refresh(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 20)
	assert.Equal(t, 3, src.calls)
}

func TestRefreshPageCap(t *testing.T) {
	// A source that always fills its page would loop forever without
	// the cap.
	src := &fakeSource{records: makeRecords(DefaultPageSize * (MaxPages + 5))}
	l := NewLoader(src, Query{})

	got, err := l.Refresh(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, DefaultPageSize*MaxPages)
	assert.Equal(t, MaxPages, src.calls)
}

func TestRefreshError(t *testing.T) {
	src := &fakeSource{records: makeRecords(30), failAt: 2}
	l := NewLoader(src, Query{})
	l.SetPageSize(10)

	_, err := l.Refresh(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch page 2")
}

func TestRefreshNoSource(t *testing.T) {
	l := NewLoader(nil, Query{})
	_, err := l.Refresh(context.Background())
	assert.ErrorIs(t, err, ErrNoSource)
}

func TestRefreshStaleTokenDiscarded(t *testing.T) {
	src := &fakeSource{records: makeRecords(30)}
	l := NewLoader(src, Query{})
	l.SetPageSize(10)

	// A second refresh starts while the first is on its middle page.
	src.onFetch = func(call int) {
		if call == 2 {
			src.onFetch = nil
			got, err := l.Refresh(context.Background())
			require.NoError(t, err)
			assert.Len(t, got, 30)
		}
	}

	_, err := l.Refresh(context.Background())
	assert.ErrorIs(t, err, ErrStale)
}
