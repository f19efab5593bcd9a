package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/superbmd/bmd-cli/internal/core/domain"
)

type fetchResult struct {
	items []domain.Asset
	pg    domain.Pagination
	err   error
}

type fetchCall struct {
	filter domain.AssetFilter
	page   int
	limit  int
	reply  chan fetchResult
}

// blockingFetcher hands every request to the test, which decides when
// and with what each one settles.
func blockingFetcher(calls chan *fetchCall) FetchPage[domain.Asset, domain.AssetFilter] {
	return func(ctx context.Context, f domain.AssetFilter, page, limit int) ([]domain.Asset, domain.Pagination, error) {
		c := &fetchCall{filter: f, page: page, limit: limit, reply: make(chan fetchResult)}
		calls <- c
		r := <-c.reply
		return r.items, r.pg, r.err
	}
}

func awaitCall(t *testing.T, calls chan *fetchCall) *fetchCall {
	t.Helper()
	select {
	case c := <-calls:
		return c
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for a fetch to be issued")
		return nil
	}
}

func assets(names ...string) []domain.Asset {
	out := make([]domain.Asset, len(names))
	for i, n := range names {
		out[i] = domain.Asset{ID: i + 1, Name: n}
	}
	return out
}

func TestListStoreIssuesOneRequestPerSettledChange(t *testing.T) {
	calls := make(chan *fetchCall, 8)
	store := NewListStore(blockingFetcher(calls), 10, nil)
	ctx := context.Background()

	// Runs one fetch-triggering step and settles its single request.
	step := func(trigger func(), check func(*fetchCall), result fetchResult) {
		t.Helper()
		done := make(chan struct{})
		go func() { trigger(); close(done) }()
		c := awaitCall(t, calls)
		check(c)
		c.reply <- result
		<-done
	}

	step(
		func() { store.Refetch(ctx) },
		func(c *fetchCall) {
			if c.page != 1 || c.limit != 10 {
				t.Errorf("initial fetch got page=%d limit=%d, want 1/10", c.page, c.limit)
			}
		},
		fetchResult{items: assets("Monitor"), pg: domain.Pagination{TotalItems: 1, TotalPages: 1, CurrentPage: 1, ItemsPerPage: 10}},
	)

	// Equal filter by value: no request even though it is a fresh struct.
	store.SetFilter(ctx, domain.AssetFilter{})
	// Equal page: no request.
	store.SetPage(ctx, 1)

	step(
		func() { store.SetPage(ctx, 3) },
		func(c *fetchCall) {
			if c.page != 3 {
				t.Errorf("page change fetched page %d, want 3", c.page)
			}
		},
		fetchResult{items: assets("Monitor"), pg: domain.Pagination{CurrentPage: 3}},
	)

	step(
		func() { store.SetFilter(ctx, domain.AssetFilter{Search: "Mon"}) },
		func(c *fetchCall) {
			if c.filter.Search != "Mon" {
				t.Errorf("fetch carried search %q, want Mon", c.filter.Search)
			}
			if c.page != 1 {
				t.Errorf("filter change must reset to page 1, got %d", c.page)
			}
		},
		fetchResult{items: assets("Monitor LG"), pg: domain.Pagination{TotalItems: 1, CurrentPage: 1}},
	)

	select {
	case <-calls:
		t.Error("unexpected extra request was issued")
	default:
	}

	items := store.Items()
	if len(items) != 1 || items[0].Name != "Monitor LG" {
		t.Errorf("unexpected items after settle: %+v", items)
	}
}

func TestListStoreKeepsStaleDataOnFailure(t *testing.T) {
	calls := make(chan *fetchCall, 2)
	store := NewListStore(blockingFetcher(calls), 10, nil)
	ctx := context.Background()

	done := make(chan struct{})
	go func() { store.Refetch(ctx); close(done) }()
	c := awaitCall(t, calls)
	c.reply <- fetchResult{items: assets("Printer", "Monitor"), pg: domain.Pagination{TotalItems: 2, TotalPages: 1, CurrentPage: 1, ItemsPerPage: 10}}
	<-done

	done = make(chan struct{})
	go func() { store.Refetch(ctx); close(done) }()
	c = awaitCall(t, calls)
	c.reply <- fetchResult{err: errors.New("server error (500)")}
	<-done

	if store.Err() == nil {
		t.Fatal("expected error to be exposed")
	}
	if got := len(store.Items()); got != 2 {
		t.Errorf("stale items must remain visible, got %d items", got)
	}
	if store.Pagination().TotalItems != 2 {
		t.Error("stale pagination must remain visible")
	}
	if store.Loading() {
		t.Error("loading must be false after settlement")
	}

	// A later success clears the error.
	done = make(chan struct{})
	go func() { store.Refetch(ctx); close(done) }()
	c = awaitCall(t, calls)
	c.reply <- fetchResult{items: assets("Printer"), pg: domain.Pagination{TotalItems: 1, CurrentPage: 1}}
	<-done
	if store.Err() != nil {
		t.Errorf("error must clear on success, got %v", store.Err())
	}
}

func TestListStoreDropsStaleResponse(t *testing.T) {
	calls := make(chan *fetchCall, 2)
	store := NewListStore(blockingFetcher(calls), 10, nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() { defer wg.Done(); store.Refetch(ctx) }()
	first := awaitCall(t, calls)

	go func() { defer wg.Done(); store.SetPage(ctx, 2) }()
	second := awaitCall(t, calls)

	// The newer request settles first.
	second.reply <- fetchResult{items: assets("Page Two"), pg: domain.Pagination{CurrentPage: 2}}
	// The older request settles late and must be dropped.
	first.reply <- fetchResult{items: assets("Page One"), pg: domain.Pagination{CurrentPage: 1}}
	wg.Wait()

	items := store.Items()
	if len(items) != 1 || items[0].Name != "Page Two" {
		t.Errorf("stale response overwrote newer state: %+v", items)
	}
	if store.Pagination().CurrentPage != 2 {
		t.Errorf("pagination rolled back to page %d", store.Pagination().CurrentPage)
	}
	if store.Loading() {
		t.Error("loading must be false once all requests settled")
	}
}

func TestListStoreLoadingWhileInFlight(t *testing.T) {
	calls := make(chan *fetchCall, 1)
	store := NewListStore(blockingFetcher(calls), 10, nil)

	done := make(chan struct{})
	go func() { store.Refetch(context.Background()); close(done) }()
	c := awaitCall(t, calls)

	if !store.Loading() {
		t.Error("loading must be true while the request is in flight")
	}
	c.reply <- fetchResult{}
	<-done
	if store.Loading() {
		t.Error("loading must be false after the request settled")
	}
}
