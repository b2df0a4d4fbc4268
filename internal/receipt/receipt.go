// Package receipt renders scannable receipts for finalized orders.
package receipt

import (
	"fmt"
	"net/url"

	"github.com/skip2/go-qrcode"

	"github.com/mmynk/idine/internal/models"
)

// DefaultSize is the PNG edge length in pixels.
const DefaultSize = 256

// Generator encodes receipts as QR PNGs.
type Generator interface {
	Generate(rec models.OrderRecord) ([]byte, error)
}

// QRGenerator links to the order in the app via the idine:// scheme.
type QRGenerator struct {
	Size int
}

// Payload is the text encoded in the QR code for rec.
func Payload(rec models.OrderRecord) string {
	q := url.Values{}
	q.Set("total", fmt.Sprint(rec.TotalPrice))
	q.Set("items", fmt.Sprint(len(rec.Items)))
	return "idine://orders/" + url.PathEscape(rec.ID) + "?" + q.Encode()
}

// Generate returns a PNG image of the receipt code.
func (g QRGenerator) Generate(rec models.OrderRecord) ([]byte, error) {
	if rec.ID == "" {
		return nil, fmt.Errorf("order record has no id")
	}
	size := g.Size
	if size <= 0 {
		size = DefaultSize
	}
	png, err := qrcode.Encode(Payload(rec), qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to encode receipt: %w", err)
	}
	return png, nil
}
