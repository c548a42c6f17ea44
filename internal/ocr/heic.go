package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joseph-ayodele/ocrtext/internal/runner"
)

// HEIC converters accepted by convertHEICtoPNG.
const (
	ConverterMagick      = "magick"
	ConverterHeifConvert = "heif-convert"
	ConverterSips        = "sips"
)

// convertHEICtoPNG converts a HEIC/HEIF file to a temporary PNG using the chosen
// converter. Call cleanup() to remove the temp dir; it is non-nil whenever the
// temp dir was created, even on error.
func convertHEICtoPNG(ctx context.Context, r runner.Runner, logger *slog.Logger, converter, in string) (string, func(), error) {
	tmpDir, err := os.MkdirTemp("", "ocrtext-heic-*")
	if err != nil {
		return "", nil, err
	}
	cleanup := func() { _ = os.RemoveAll(tmpDir) }
	out := filepath.Join(tmpDir, "image.png")

	var args []string
	switch converter {
	case ConverterHeifConvert:
		args = []string{in, out}
	case ConverterMagick:
		args = []string{in, out}
	case ConverterSips:
		args = []string{"-s", "format", "png", in, "--out", out}
	default:
		return "", cleanup, fmt.Errorf("HEIC not supported: set HEIC_CONVERTER to one of: %s | %s | %s",
			ConverterMagick, ConverterHeifConvert, ConverterSips)
	}

	if _, errb, err := r.Run(ctx, converter, logger, args...); err != nil {
		return "", cleanup, fmt.Errorf("%s failed: %w: %s", converter, err, runner.Truncate(string(errb), 512))
	}
	if _, statErr := os.Stat(out); statErr != nil {
		return "", cleanup, fmt.Errorf("HEIC conversion produced no output: %v", statErr)
	}
	logger.Debug("converted heic", "converter", converter, "out", out)
	return out, cleanup, nil
}
