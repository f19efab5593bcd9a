package domain

import (
	"fmt"
	"strings"
)

// Location is a physical site assets are assigned to.
type Location struct {
	ID      int    `json:"id"`
	Name    string `json:"nama_lokasi"`
	Code    string `json:"kode_lokasi"`
	Address string `json:"alamat_lokasi"`
}

// LocationInput carries the writable location fields.
type LocationInput struct {
	Name    string `json:"nama_lokasi"`
	Code    string `json:"kode_lokasi"`
	Address string `json:"alamat_lokasi"`
}

// Validate mirrors the backend schema's length rules. Deleting a
// location cascades to its assets server-side; the client never
// enforces that.
func (in LocationInput) Validate() error {
	if l := len(strings.TrimSpace(in.Name)); l < 3 || l > 100 {
		return fmt.Errorf("location name must be 3-100 characters")
	}
	if l := len(strings.TrimSpace(in.Code)); l < 3 || l > 50 {
		return fmt.Errorf("location code must be 3-50 characters")
	}
	if len(strings.TrimSpace(in.Address)) < 5 {
		return fmt.Errorf("location address must be at least 5 characters")
	}
	return nil
}
