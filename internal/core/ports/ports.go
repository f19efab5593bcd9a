package ports

import (
	"context"

	"github.com/superbmd/bmd-cli/internal/core/domain"
)

// AssetAPI is the port for the asset collection endpoints.
type AssetAPI interface {
	// List fetches one page of assets matching the filter.
	List(ctx context.Context, filter domain.AssetFilter, page, limit int) ([]domain.Asset, domain.Pagination, error)

	// Get retrieves a single asset by id.
	Get(ctx context.Context, id int) (*domain.Asset, error)

	// Create submits a new asset.
	Create(ctx context.Context, in domain.AssetInput) (*domain.Asset, error)

	// Update replaces the writable fields of an asset.
	Update(ctx context.Context, id int, in domain.AssetInput) (*domain.Asset, error)

	// Delete removes an asset by id.
	Delete(ctx context.Context, id int) error
}

// LocationAPI is the port for the location collection endpoints.
type LocationAPI interface {
	List(ctx context.Context, filter domain.LocationFilter, page, limit int) ([]domain.Location, domain.Pagination, error)
	Get(ctx context.Context, id int) (*domain.Location, error)
	Create(ctx context.Context, in domain.LocationInput) (*domain.Location, error)
	Update(ctx context.Context, id int, in domain.LocationInput) (*domain.Location, error)
	Delete(ctx context.Context, id int) error
}

// UserAPI is the port for account management and authentication.
type UserAPI interface {
	List(ctx context.Context, filter domain.UserFilter, page, limit int) ([]domain.User, domain.Pagination, error)
	Get(ctx context.Context, id int) (*domain.User, error)
	Create(ctx context.Context, in domain.UserInput) (*domain.User, error)
	Update(ctx context.Context, id int, in domain.UserInput) (*domain.User, error)
	Delete(ctx context.Context, id int) error

	// Login exchanges credentials for a session. A 401 here means bad
	// credentials and is never treated as session expiry.
	Login(ctx context.Context, username, password string) (domain.Session, error)
}

// ReportAPI is the port for the pre-aggregated dashboard and report
// endpoints. The client performs no aggregation of its own.
type ReportAPI interface {
	Dashboard(ctx context.Context) (*domain.DashboardSummary, error)
	AssetsByLocation(ctx context.Context, filter domain.ReportFilter) ([]domain.LocationReportRow, error)
	AssetsByCondition(ctx context.Context, filter domain.ReportFilter) ([]domain.ConditionReportRow, error)
	AssetsInOut(ctx context.Context, filter domain.ReportFilter) ([]domain.InOutReportRow, error)
}
