package utils

import (
	"encoding/base64"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// GenerateQRCode encodes data (the user's email) as a 256px PNG and returns
// it base64-encoded, ready to be stored inline and rendered as a data URI.
// Output is deterministic for a given input.
func GenerateQRCode(data string) (string, error) {
	png, err := qrcode.Encode(data, qrcode.Medium, 256)
	if err != nil {
		return "", fmt.Errorf("failed to generate qr code: %w", err)
	}
	return base64.StdEncoding.EncodeToString(png), nil
}
