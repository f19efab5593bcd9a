package domain

import (
	"fmt"
	"strings"
	"time"
)

// Condition is the enumerated health state of an asset.
type Condition string

const (
	CondBaik        Condition = "Baik"
	CondRusakRingan Condition = "Rusak Ringan"
	CondRusakBerat  Condition = "Rusak Berat"
)

// Conditions returns all valid conditions in display order.
func Conditions() []Condition {
	return []Condition{CondBaik, CondRusakRingan, CondRusakBerat}
}

// ParseCondition matches a condition value case-insensitively.
// Accepts both the display form ("Rusak Ringan") and a flag-friendly
// form ("rusak-ringan").
func ParseCondition(s string) (Condition, error) {
	normalized := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "-", " "))
	for _, c := range Conditions() {
		if strings.ToLower(string(c)) == normalized {
			return c, nil
		}
	}
	return "", fmt.Errorf("invalid condition %q (valid: Baik, Rusak Ringan, Rusak Berat)", s)
}

// DateLayout is the wire format for asset dates.
const DateLayout = "2006-01-02"

// Asset represents one tracked item of regional government property
// as served by the backend.
type Asset struct {
	ID               int       `json:"id"`
	Name             string    `json:"nama_barang"`
	Code             string    `json:"kode_barang"`
	Condition        Condition `json:"kondisi"`
	LocationID       int       `json:"id_lokasi"`
	ResponsibleParty string    `json:"penanggung_jawab"`
	EntryDate        string    `json:"tanggal_masuk"`
	UpdatedDate      string    `json:"tanggal_pembaruan,omitempty"`
	Image            string    `json:"gambar_aset,omitempty"`
	Location         *Location `json:"lokasi,omitempty"`
}

// LocationName returns the nested location name when present.
func (a Asset) LocationName() string {
	if a.Location != nil {
		return a.Location.Name
	}
	return ""
}

// DisplayEntryDate returns a human-readable entry date.
func (a Asset) DisplayEntryDate() string {
	return displayDate(a.EntryDate)
}

func displayDate(s string) string {
	if s == "" {
		return "-"
	}
	// The backend serializes dates either bare or with a time component.
	for _, layout := range []string{DateLayout, time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("Jan 02, 2006")
		}
	}
	return s
}

// AssetInput carries the writable asset fields for create and update.
// The field set mirrors what the backend schema accepts; anything else
// is rejected server-side.
type AssetInput struct {
	Name             string    `json:"nama_barang"`
	Code             string    `json:"kode_barang"`
	Condition        Condition `json:"kondisi"`
	LocationID       int       `json:"id_lokasi"`
	ResponsibleParty string    `json:"penanggung_jawab"`
	EntryDate        string    `json:"tanggal_masuk"`
	UpdatedDate      string    `json:"tanggal_pembaruan,omitempty"`
	Image            string    `json:"gambar_aset,omitempty"`
}

// Validate applies the same required-field rules the web form enforced
// before submission. Uniqueness of the code stays server-side.
func (in AssetInput) Validate() error {
	if l := len(strings.TrimSpace(in.Name)); l < 3 || l > 200 {
		return fmt.Errorf("asset name must be 3-200 characters")
	}
	if l := len(strings.TrimSpace(in.Code)); l < 3 || l > 100 {
		return fmt.Errorf("asset code must be 3-100 characters")
	}
	if _, err := ParseCondition(string(in.Condition)); err != nil {
		return err
	}
	if in.LocationID <= 0 {
		return fmt.Errorf("location id is required")
	}
	if l := len(strings.TrimSpace(in.ResponsibleParty)); l < 3 || l > 50 {
		return fmt.Errorf("responsible party must be 3-50 characters")
	}
	if _, err := time.Parse(DateLayout, in.EntryDate); err != nil {
		return fmt.Errorf("entry date must be YYYY-MM-DD")
	}
	if in.UpdatedDate != "" {
		if _, err := time.Parse(DateLayout, in.UpdatedDate); err != nil {
			return fmt.Errorf("updated date must be YYYY-MM-DD")
		}
	}
	return nil
}
