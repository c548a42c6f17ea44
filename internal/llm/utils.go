package llm

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
)

// ImageDataURL encodes img as a PNG data URL for a chat completion image part.
func ImageDataURL(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encode png: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
