package services

import (
	"context"
	"errors"
	"testing"

	"github.com/superbmd/bmd-cli/internal/core/domain"
)

func TestMutationSuccessRetainsResult(t *testing.T) {
	var m Mutation[*domain.Asset]
	created := &domain.Asset{ID: 7, Code: "BRG-007"}

	ok := m.Do(context.Background(), func(ctx context.Context) (*domain.Asset, error) {
		return created, nil
	})

	if !ok || !m.Success() {
		t.Fatal("expected success")
	}
	if m.Err() != nil {
		t.Errorf("unexpected error: %v", m.Err())
	}
	if m.Result() == nil || m.Result().Code != "BRG-007" {
		t.Errorf("mutated record not retained: %+v", m.Result())
	}
	if m.Loading() {
		t.Error("loading must be false after settlement")
	}
}

func TestMutationFailureSetsError(t *testing.T) {
	var m Mutation[*domain.Asset]
	boom := errors.New("kode_barang already exists")

	ok := m.Do(context.Background(), func(ctx context.Context) (*domain.Asset, error) {
		return nil, boom
	})

	if ok || m.Success() {
		t.Fatal("expected failure")
	}
	if !errors.Is(m.Err(), boom) {
		t.Errorf("error = %v, want %v", m.Err(), boom)
	}
}

func TestMutationNoAutomaticReset(t *testing.T) {
	var m Mutation[*domain.Asset]
	m.Do(context.Background(), func(ctx context.Context) (*domain.Asset, error) {
		return &domain.Asset{ID: 1}, nil
	})

	// Flags stay sticky until the caller clears them.
	if !m.Success() {
		t.Fatal("success flag must persist after Do returns")
	}

	m.Reset()
	if m.Success() || m.Err() != nil || m.Result() != nil {
		t.Error("Reset must clear all flags and the retained result")
	}
}

func TestMutationFailureAfterSuccessOverwrites(t *testing.T) {
	var m Mutation[*domain.Asset]
	m.Do(context.Background(), func(ctx context.Context) (*domain.Asset, error) {
		return &domain.Asset{ID: 1}, nil
	})
	m.Do(context.Background(), func(ctx context.Context) (*domain.Asset, error) {
		return nil, errors.New("validation failed")
	})

	if m.Success() {
		t.Error("success must be false after a failed attempt")
	}
	if m.Err() == nil {
		t.Error("error must be set after a failed attempt")
	}
}
