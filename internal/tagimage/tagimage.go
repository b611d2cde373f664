package tagimage

import (
	"encoding/base64"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// Encoder renders a vehicle tag into an image artifact the rider can
// scan. The core only passes the tag string through; the format is
// the encoder's business.
type Encoder interface {
	Encode(tag string) (string, error)
}

// QR encodes tags as base64 PNG QR codes.
type QR struct {
	size int
}

// NewQR returns a QR encoder producing 256x256 pixel images.
func NewQR() *QR {
	return &QR{size: 256}
}

// Encode returns the tag as a base64-encoded PNG QR code.
func (q *QR) Encode(tag string) (string, error) {
	if tag == "" {
		return "", fmt.Errorf("empty tag")
	}
	png, err := qrcode.Encode(tag, qrcode.Medium, q.size)
	if err != nil {
		return "", fmt.Errorf("qr encode: %w", err)
	}
	return base64.StdEncoding.EncodeToString(png), nil
}
