package domain

import (
	"net/url"
	"strconv"
)

// NameValue is one aggregate bucket of a dashboard chart.
type NameValue struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// DashboardSummary is the pre-aggregated dashboard payload.
type DashboardSummary struct {
	TotalAssets       int         `json:"total_assets"`
	TotalLocations    int         `json:"total_locations"`
	AssetsByCondition []NameValue `json:"assets_by_condition"`
	AssetsByLocation  []NameValue `json:"assets_by_location"`
}

// ReportType selects one of the report aggregate endpoints.
type ReportType string

const (
	ReportByLocation  ReportType = "assets_by_location"
	ReportByCondition ReportType = "assets_by_condition"
	ReportInOut       ReportType = "assets_in_out"
)

// ReportFilter narrows report rows. Irrelevant keys are dropped per
// report type by the caller, matching the web report page.
type ReportFilter struct {
	StartDate  string
	EndDate    string
	LocationID int
	Condition  Condition
}

func (f ReportFilter) Values() url.Values {
	v := url.Values{}
	setNonEmpty(v, "start_date", f.StartDate)
	setNonEmpty(v, "end_date", f.EndDate)
	if f.LocationID > 0 {
		v.Set("location_id", strconv.Itoa(f.LocationID))
	}
	setNonEmpty(v, "condition", string(f.Condition))
	return v
}

// LocationReportRow is one row of the assets-by-location report.
type LocationReportRow struct {
	LocationName string `json:"location_name"`
	TotalAssets  int    `json:"total_assets"`
	Baik         int    `json:"baik"`
	RusakRingan  int    `json:"rusak_ringan"`
	RusakBerat   int    `json:"rusak_berat"`
}

// ConditionReportRow is one row of the assets-by-condition report.
type ConditionReportRow struct {
	Condition   string `json:"condition"`
	TotalAssets int    `json:"total_assets"`
}

// InOutReportRow is one row of the in/out movement report.
type InOutReportRow struct {
	AssetName       string `json:"nama_barang"`
	AssetCode       string `json:"kode_barang"`
	Location        string `json:"lokasi"`
	Date            string `json:"tanggal"`
	TransactionType string `json:"tipe_transaksi"`
	OldCondition    string `json:"kondisi_lama"`
	NewCondition    string `json:"kondisi_baru"`
}

// Tabular flattening for display and export. Keys mirror the wire
// field names; the export pipeline humanizes them into headers.

func (r LocationReportRow) Keys() []string {
	return []string{"location_name", "total_assets", "baik", "rusak_ringan", "rusak_berat"}
}

func (r LocationReportRow) Cells() []string {
	return []string{r.LocationName, strconv.Itoa(r.TotalAssets), strconv.Itoa(r.Baik),
		strconv.Itoa(r.RusakRingan), strconv.Itoa(r.RusakBerat)}
}

func (r ConditionReportRow) Keys() []string {
	return []string{"condition", "total_assets"}
}

func (r ConditionReportRow) Cells() []string {
	return []string{r.Condition, strconv.Itoa(r.TotalAssets)}
}

func (r InOutReportRow) Keys() []string {
	return []string{"nama_barang", "kode_barang", "lokasi", "tanggal", "tipe_transaksi", "kondisi_lama", "kondisi_baru"}
}

func (r InOutReportRow) Cells() []string {
	return []string{r.AssetName, r.AssetCode, r.Location, r.Date, r.TransactionType, r.OldCondition, r.NewCondition}
}
