package brcode

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// Render draws the payload as a PNG at medium error correction.
func Render(text string, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultSize
	}
	png, err := qrcode.Encode(text, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to render payment code: %w", err)
	}
	return png, nil
}
