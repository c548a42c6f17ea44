package pipeline

import (
	"context"

	"github.com/joseph-ayodele/ocrtext/internal/ocr"
)

// ImageExtractor is the IMAGE path: file -> recognized text.
type ImageExtractor interface {
	ExtractImage(ctx context.Context, path string, languages []string) (string, error)
}

// DocumentExtractor is the DOCUMENT path: file -> ordered page transcript.
type DocumentExtractor interface {
	ExtractDocument(ctx context.Context, path string, languages []string, maxPages int) (ocr.Transcript, error)
}

// Extractor covers both paths; *ocr.Extractor implements it.
type Extractor interface {
	ImageExtractor
	DocumentExtractor
}
