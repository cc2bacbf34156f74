package brcode

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"

	domainErrors "pixfacil/internal/errors"
)

// Scan reads the payload text out of a QR code image (PNG, JPEG or GIF).
func Scan(data []byte) (string, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %v: %w", err, domainErrors.ErrInvalidPayload)
	}

	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", fmt.Errorf("failed to read image: %v: %w", err, domainErrors.ErrInvalidPayload)
	}

	result, err := qrcode.NewQRCodeReader().Decode(bmp, nil)
	if err != nil {
		return "", fmt.Errorf("no payment code found: %v: %w", err, domainErrors.ErrInvalidPayload)
	}
	return result.GetText(), nil
}

// ScanBase64 accepts raw base64 or a data URL.
func ScanBase64(s string) (string, error) {
	if i := strings.Index(s, ","); i != -1 && strings.HasPrefix(s, "data:") {
		s = s[i+1:]
	}
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return "", fmt.Errorf("invalid base64 image: %w", domainErrors.ErrInvalidPayload)
	}
	return Scan(data)
}
