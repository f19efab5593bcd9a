package services

import (
	"encoding/json"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/superbmd/bmd-cli/internal/core/domain"
)

// QRPayload is the JSON encoded into an asset's printed QR label. The
// field set matches what the scanning side expects: identity, code and
// display name, nothing more.
type QRPayload struct {
	ID   int    `json:"id"`
	Code string `json:"kode_barang"`
	Name string `json:"nama_barang"`
}

// QRPayloadFor builds the label payload for an asset.
func QRPayloadFor(a domain.Asset) QRPayload {
	return QRPayload{ID: a.ID, Code: a.Code, Name: a.Name}
}

// JSON serializes the payload for encoding.
func (p QRPayload) JSON() (string, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("failed to encode QR payload: %w", err)
	}
	return string(data), nil
}

// WriteQRLabel renders the asset's QR label as a PNG of the given
// pixel size. Symbol encoding is delegated entirely to the library.
func WriteQRLabel(a domain.Asset, size int, path string) error {
	if size <= 0 {
		size = 256
	}
	payload, err := QRPayloadFor(a).JSON()
	if err != nil {
		return err
	}
	if err := qrcode.WriteFile(payload, qrcode.Medium, size, path); err != nil {
		return fmt.Errorf("failed to write QR label: %w", err)
	}
	return nil
}
