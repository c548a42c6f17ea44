package ocr

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/joseph-ayodele/ocrtext/constants"
	"github.com/joseph-ayodele/ocrtext/internal/runner"
)

// ImageDecoder loads the first frame of an image file.
type ImageDecoder interface {
	Decode(ctx context.Context, path string) (image.Image, error)
}

// FileDecoder decodes png, jpeg, gif, bmp and tiff in process and converts
// HEIC to PNG with an external tool first.
type FileDecoder struct {
	HeicConverter string
	Runner        runner.Runner
	Logger        *slog.Logger
}

func NewFileDecoder(heicConverter string, r runner.Runner, logger *slog.Logger) *FileDecoder {
	if logger == nil {
		logger = slog.Default()
	}
	if r == nil {
		r = runner.Exec{}
	}
	return &FileDecoder{HeicConverter: heicConverter, Runner: r, Logger: logger}
}

func (d *FileDecoder) Decode(ctx context.Context, path string) (image.Image, error) {
	if constants.IsHEICExt(filepath.Ext(path)) {
		out, cleanup, err := convertHEICtoPNG(ctx, d.Runner, d.Logger, d.HeicConverter, path)
		if cleanup != nil {
			defer cleanup()
		}
		if err != nil {
			return nil, err
		}
		path = out
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	b := img.Bounds()
	d.Logger.Debug("decoded image", "format", format, "width", b.Dx(), "height", b.Dy())
	return img, nil
}
