package cmd

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/superbmd/bmd-cli/internal/core/domain"
	"github.com/superbmd/bmd-cli/internal/core/services"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxLen   int
		expected string
	}{
		{"shorter than max", "monitor", 10, "monitor"},
		{"exactly max", "monitor", 7, "monitor"},
		{"longer than max", "Monitor LG 24 inch", 10, "Monitor..."},
		{"tiny max", "monitor", 3, "mon"},
		{"empty", "", 5, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncate(tt.input, tt.maxLen); got != tt.expected {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.expected)
			}
		})
	}
}

func TestNormalizeWireDate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain date", "2026-01-15", "2026-01-15"},
		{"timestamp", "2026-01-15T00:00:00", "2026-01-15"},
		{"rfc3339", "2026-01-15T09:30:00Z", "2026-01-15"},
		{"empty", "", ""},
		{"short garbage", "2026", "2026"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeWireDate(tt.input); got != tt.expected {
				t.Errorf("normalizeWireDate(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestBuildAssetFilter(t *testing.T) {
	reset := func() {
		assetSearch = ""
		assetLocationID = 0
		assetCondition = ""
		assetPJ = ""
		assetStartDate = ""
		assetEndDate = ""
	}

	t.Run("all fields", func(t *testing.T) {
		reset()
		assetSearch = "monitor"
		assetLocationID = 3
		assetCondition = "rusak-ringan"
		assetPJ = "Pak Budi"
		assetStartDate = "2026-01-01"
		assetEndDate = "2026-06-30"

		filter, err := buildAssetFilter()
		if err != nil {
			t.Fatalf("buildAssetFilter() error = %v", err)
		}
		if filter.Search != "monitor" {
			t.Errorf("Search = %q, want %q", filter.Search, "monitor")
		}
		if filter.LocationID != 3 {
			t.Errorf("LocationID = %d, want 3", filter.LocationID)
		}
		if filter.Condition != domain.CondRusakRingan {
			t.Errorf("Condition = %q, want %q", filter.Condition, domain.CondRusakRingan)
		}
		if filter.ResponsibleParty != "Pak Budi" {
			t.Errorf("ResponsibleParty = %q, want %q", filter.ResponsibleParty, "Pak Budi")
		}
	})

	t.Run("no condition leaves it empty", func(t *testing.T) {
		reset()
		filter, err := buildAssetFilter()
		if err != nil {
			t.Fatalf("buildAssetFilter() error = %v", err)
		}
		if filter.Condition != "" {
			t.Errorf("Condition = %q, want empty", filter.Condition)
		}
	})

	t.Run("invalid condition", func(t *testing.T) {
		reset()
		assetCondition = "broken"
		if _, err := buildAssetFilter(); err == nil {
			t.Error("expected error for invalid condition")
		}
	})
}

func TestPrimeAssetStoreIssuesInitialFetch(t *testing.T) {
	tests := []struct {
		name       string
		filter     domain.AssetFilter
		wantFilter domain.AssetFilter
	}{
		// A zero filter equals the store's initial state; SetFilter
		// alone would no-op and the live view would open empty.
		{"zero filter", domain.AssetFilter{}, domain.AssetFilter{}},
		{"seeded filter", domain.AssetFilter{Search: "monitor"}, domain.AssetFilter{Search: "monitor"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			var gotFilter domain.AssetFilter
			fetch := func(ctx context.Context, f domain.AssetFilter, page, limit int) ([]domain.Asset, domain.Pagination, error) {
				calls.Add(1)
				gotFilter = f
				return nil, domain.Pagination{}, nil
			}

			store := services.NewListStore(fetch, 10, nil)
			primeAssetStore(context.Background(), store, tt.filter)

			if got := calls.Load(); got != 1 {
				t.Fatalf("expected exactly one initial fetch, got %d", got)
			}
			if gotFilter != tt.wantFilter {
				t.Errorf("fetched with filter %+v, want %+v", gotFilter, tt.wantFilter)
			}
		})
	}
}

func TestParseReportType(t *testing.T) {
	tests := []struct {
		input    string
		expected domain.ReportType
		wantErr  bool
	}{
		{"by-location", domain.ReportByLocation, false},
		{"assets-by-location", domain.ReportByLocation, false},
		{"by-condition", domain.ReportByCondition, false},
		{"assets-by-condition", domain.ReportByCondition, false},
		{"in-out", domain.ReportInOut, false},
		{"assets-in-out", domain.ReportInOut, false},
		{"By-Location", domain.ReportByLocation, false},
		{"  in-out  ", domain.ReportInOut, false},
		{"monthly", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseReportType(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("parseReportType(%q) expected error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseReportType(%q) error = %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("parseReportType(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
