package ocr

import (
	"context"
	"image"
)

// DocumentOpener opens a paginated document read-only.
type DocumentOpener interface {
	Open(ctx context.Context, path string) (Document, error)
}

// Document is an open paginated document. Pages are 0-based.
type Document interface {
	PageCount() int
	Page(i int) (Page, error)
	Close() error
}

// Page gives access to one document page.
type Page interface {
	// EmbeddedText returns the page's text layer, "" when it has none.
	EmbeddedText() string
	// Render rasterizes the page on a white background at scale times its
	// natural size (72 DPI at scale 1).
	Render(ctx context.Context, scale float64) (image.Image, error)
}
