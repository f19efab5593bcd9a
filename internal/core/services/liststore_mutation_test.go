package services

import (
	"context"
	"testing"

	"github.com/superbmd/bmd-cli/internal/core/domain"
	"github.com/superbmd/bmd-cli/internal/core/ports/mocks"
)

// A mutation followed by Refetch must make the list reflect the change;
// the store never patches items locally.

func TestDeleteThenRefetchRemovesItem(t *testing.T) {
	api := mocks.NewMockAssetAPI()
	api.Seed(
		domain.Asset{ID: 1, Name: "Monitor LG 24", Code: "BRG-001", Condition: domain.CondBaik},
		domain.Asset{ID: 2, Name: "Printer Epson", Code: "BRG-002", Condition: domain.CondBaik},
		domain.Asset{ID: 3, Name: "Proyektor", Code: "BRG-003", Condition: domain.CondRusakRingan},
	)

	ctx := context.Background()
	store := NewListStore(api.List, 10, nil)
	store.Refetch(ctx)

	if got := len(store.Items()); got != 3 {
		t.Fatalf("expected 3 items before delete, got %d", got)
	}

	var deletion Mutation[struct{}]
	ok := deletion.Do(ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, api.Delete(ctx, 1)
	})
	if !ok {
		t.Fatalf("delete failed: %v", deletion.Err())
	}

	// The store still holds the stale page until it resynchronizes.
	if got := len(store.Items()); got != 3 {
		t.Fatalf("expected stale list to keep 3 items until Refetch, got %d", got)
	}

	store.Refetch(ctx)

	items := store.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 items after refetch, got %d", len(items))
	}
	for _, a := range items {
		if a.Code == "BRG-001" {
			t.Error("deleted asset BRG-001 still present after refetch")
		}
	}
	if got := store.Pagination().TotalItems; got != 2 {
		t.Errorf("TotalItems = %d after refetch, want 2", got)
	}
}

func TestCreateThenRefetchShowsItem(t *testing.T) {
	api := mocks.NewMockAssetAPI()
	api.Seed(domain.Asset{ID: 1, Name: "Monitor LG 24", Code: "BRG-001", Condition: domain.CondBaik})

	ctx := context.Background()
	store := NewListStore(api.List, 10, nil)
	store.Refetch(ctx)

	var creation Mutation[*domain.Asset]
	ok := creation.Do(ctx, func(ctx context.Context) (*domain.Asset, error) {
		return api.Create(ctx, domain.AssetInput{
			Name:      "Scanner Canon",
			Code:      "BRG-004",
			Condition: domain.CondBaik,
			EntryDate: "2026-02-01",
		})
	})
	if !ok {
		t.Fatalf("create failed: %v", creation.Err())
	}

	store.Refetch(ctx)

	found := false
	for _, a := range store.Items() {
		if a.Code == "BRG-004" {
			found = true
		}
	}
	if !found {
		t.Error("created asset BRG-004 missing after refetch")
	}
}

func TestMockListHonorsFilterAndPaging(t *testing.T) {
	api := mocks.NewMockAssetAPI()
	api.Seed(
		domain.Asset{ID: 1, Name: "Monitor LG 24", Code: "BRG-001", Condition: domain.CondBaik},
		domain.Asset{ID: 2, Name: "Monitor Dell", Code: "BRG-002", Condition: domain.CondRusakBerat},
		domain.Asset{ID: 3, Name: "Printer Epson", Code: "BRG-003", Condition: domain.CondBaik},
	)

	ctx := context.Background()
	store := NewListStore(api.List, 1, nil)
	store.SetFilter(ctx, domain.AssetFilter{Search: "Mon"})

	if got := store.Pagination().TotalItems; got != 2 {
		t.Fatalf("search 'Mon' matched %d items, want 2", got)
	}
	if items := store.Items(); len(items) != 1 || items[0].Code != "BRG-001" {
		t.Fatalf("page 1 = %+v, want just BRG-001", items)
	}

	store.SetPage(ctx, 2)
	if items := store.Items(); len(items) != 1 || items[0].Code != "BRG-002" {
		t.Fatalf("page 2 = %+v, want just BRG-002", items)
	}
}
