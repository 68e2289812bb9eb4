package qrcode

import (
	"encoding/base64"
	"errors"
	"strings"

	skipqrcode "github.com/skip2/go-qrcode"
)

// DefaultSize is the image edge length in pixels used when size <= 0.
const DefaultSize = 256

// PNG renders content as a QR code PNG of size×size pixels. Medium error
// correction keeps otpauth:// URIs scannable from a phone screen.
func PNG(content string, size int) ([]byte, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}
	if size <= 0 {
		size = DefaultSize
	}
	png, err := skipqrcode.Encode(content, skipqrcode.Medium, size)
	if err != nil {
		return nil, errors.Join(ErrFailedToGenerate, err)
	}
	return png, nil
}

// DataURI renders content as a PNG QR code and returns it as a
// "data:image/png;base64,..." URI ready for an <img src> attribute.
func DataURI(content string, size int) (string, error) {
	png, err := PNG(content, size)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
