package api

import (
	"context"

	"github.com/superbmd/bmd-cli/internal/core/domain"
)

// ReportClient implements ports.ReportAPI against the dashboard and
// report aggregate endpoints. Rows arrive pre-aggregated; nothing is
// computed client-side.
type ReportClient struct {
	c *Client
}

// Reports returns the report endpoint family.
func (c *Client) Reports() *ReportClient {
	return &ReportClient{c: c}
}

func (r *ReportClient) Dashboard(ctx context.Context) (*domain.DashboardSummary, error) {
	var summary domain.DashboardSummary
	if err := r.c.get(ctx, "/dashboard", nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (r *ReportClient) AssetsByLocation(ctx context.Context, filter domain.ReportFilter) ([]domain.LocationReportRow, error) {
	// Grouped by location; the location/condition filters do not apply.
	filter.LocationID = 0
	filter.Condition = ""
	var rows []domain.LocationReportRow
	if err := r.c.get(ctx, "/report/assets-by-location", filter.Values(), &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ReportClient) AssetsByCondition(ctx context.Context, filter domain.ReportFilter) ([]domain.ConditionReportRow, error) {
	filter.LocationID = 0
	filter.Condition = ""
	var rows []domain.ConditionReportRow
	if err := r.c.get(ctx, "/report/assets-by-condition", filter.Values(), &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ReportClient) AssetsInOut(ctx context.Context, filter domain.ReportFilter) ([]domain.InOutReportRow, error) {
	var rows []domain.InOutReportRow
	if err := r.c.get(ctx, "/report/assets-in-out", filter.Values(), &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
