package services

import (
	"context"
	"sync"

	"github.com/superbmd/bmd-cli/internal/core/domain"
)

// FetchPage issues one list request for a page of a collection.
type FetchPage[T any, F domain.Criteria] func(ctx context.Context, filter F, page, limit int) ([]T, domain.Pagination, error)

// ListStore is the paginated resource store shared by every collection
// view (assets, locations, users). It owns the current filter, page
// and page size, and exposes the last settled server response.
//
// Exactly one request is issued per settled input change; filter
// changes are detected by value, and a filter change resets the page
// to 1. Overlapping fetches are resolved with a generation token: a
// response that settles after a newer one has already been applied is
// dropped, so rapid page or filter changes can never roll state back.
// A failed fetch keeps the previous items and pagination visible and
// surfaces the error alongside them.
type ListStore[T any, F interface {
	domain.Criteria
	comparable
}] struct {
	mu       sync.Mutex
	fetch    FetchPage[T, F]
	filter   F
	page     int
	pageSize int

	items      []T
	pagination domain.Pagination
	err        error
	inflight   int

	dispatched uint64
	applied    uint64

	onChange func()
}

// NewListStore creates a store around a fetch function. onChange, when
// non-nil, fires after every state transition; interactive views use
// it to trigger a redraw. It may be called from the fetching
// goroutine.
func NewListStore[T any, F interface {
	domain.Criteria
	comparable
}](fetch FetchPage[T, F], pageSize int, onChange func()) *ListStore[T, F] {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &ListStore[T, F]{
		fetch:    fetch,
		page:     1,
		pageSize: pageSize,
		onChange: onChange,
	}
}

// SetFilter replaces the filter criteria. A change by value resets the
// page to 1 and refetches; setting an equal filter is a no-op.
func (s *ListStore[T, F]) SetFilter(ctx context.Context, filter F) {
	s.mu.Lock()
	if filter == s.filter {
		s.mu.Unlock()
		return
	}
	s.filter = filter
	s.page = 1
	s.mu.Unlock()
	s.Refetch(ctx)
}

// SetPage moves to another page and refetches. Out-of-range values are
// clamped to 1; the server clamps the upper bound.
func (s *ListStore[T, F]) SetPage(ctx context.Context, page int) {
	if page < 1 {
		page = 1
	}
	s.mu.Lock()
	if page == s.page {
		s.mu.Unlock()
		return
	}
	s.page = page
	s.mu.Unlock()
	s.Refetch(ctx)
}

// SetPageSize changes the page size, resets to page 1 and refetches.
func (s *ListStore[T, F]) SetPageSize(ctx context.Context, size int) {
	if size < 1 {
		return
	}
	s.mu.Lock()
	if size == s.pageSize {
		s.mu.Unlock()
		return
	}
	s.pageSize = size
	s.page = 1
	s.mu.Unlock()
	s.Refetch(ctx)
}

// Refetch re-issues the list request with the current parameters. It
// blocks until the response settles; callers that need it off the
// main flow run it in a goroutine. Used directly after a mutation to
// resynchronize.
func (s *ListStore[T, F]) Refetch(ctx context.Context) {
	s.mu.Lock()
	s.dispatched++
	gen := s.dispatched
	s.inflight++
	filter, page, size := s.filter, s.page, s.pageSize
	s.mu.Unlock()
	s.notifyChange()

	items, pagination, err := s.fetch(ctx, filter, page, size)

	s.mu.Lock()
	s.inflight--
	if gen > s.applied {
		s.applied = gen
		if err != nil {
			// Stale-but-present data stays visible on failure.
			s.err = err
		} else {
			s.items = items
			s.pagination = pagination
			s.err = nil
		}
	}
	s.mu.Unlock()
	s.notifyChange()
}

func (s *ListStore[T, F]) notifyChange() {
	if s.onChange != nil {
		s.onChange()
	}
}

// Items returns the last settled item list verbatim.
func (s *ListStore[T, F]) Items() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items
}

// Pagination returns the server-reported list metadata.
func (s *ListStore[T, F]) Pagination() domain.Pagination {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pagination
}

// Loading reports whether any request is in flight.
func (s *ListStore[T, F]) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inflight > 0
}

// Err returns the error of the most recent settled fetch, or nil.
func (s *ListStore[T, F]) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Filter returns the current filter criteria.
func (s *ListStore[T, F]) Filter() F {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

// Page returns the current page number.
func (s *ListStore[T, F]) Page() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page
}

// PageSize returns the current page size.
func (s *ListStore[T, F]) PageSize() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pageSize
}
