// Package pdf opens PDF files for the document extractor. The page tree and
// text layer come from github.com/ledongthuc/pdf; pages are rasterized with
// Ghostscript.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"math"
	"os"
	"strconv"

	ledpdf "github.com/ledongthuc/pdf"

	"github.com/joseph-ayodele/ocrtext/internal/ocr"
	"github.com/joseph-ayodele/ocrtext/internal/runner"
)

// Opener implements ocr.DocumentOpener.
type Opener struct {
	ghostscript string
	runner      runner.Runner
	logger      *slog.Logger
}

// NewOpener returns an Opener that renders with the Ghostscript binary gs
// ("gs" when empty).
func NewOpener(gs string, r runner.Runner, logger *slog.Logger) *Opener {
	if gs == "" {
		gs = "gs"
	}
	if r == nil {
		r = runner.Exec{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Opener{ghostscript: gs, runner: r, logger: logger}
}

func (o *Opener) Open(_ context.Context, path string) (doc ocr.Document, err error) {
	var f *os.File
	// the reader panics on some malformed files
	defer func() {
		if r := recover(); r != nil {
			if f != nil {
				_ = f.Close()
			}
			doc, err = nil, fmt.Errorf("open pdf %s: %v", path, r)
		}
	}()

	f, r, err := ledpdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	d := &document{path: path, file: f, reader: r, opener: o}
	d.numPages = r.NumPage()
	o.logger.Debug("opened pdf", "path", path, "pages", d.numPages)
	return d, nil
}

type document struct {
	path     string
	file     *os.File
	reader   *ledpdf.Reader
	numPages int
	opener   *Opener
}

func (d *document) PageCount() int { return d.numPages }

func (d *document) Page(i int) (ocr.Page, error) {
	if i < 0 || i >= d.numPages {
		return nil, fmt.Errorf("page %d out of range [1, %d]", i+1, d.numPages)
	}
	p := d.reader.Page(i + 1)
	if p.V.IsNull() {
		return nil, fmt.Errorf("page %d: missing page object", i+1)
	}
	return &page{doc: d, number: i + 1, p: p}, nil
}

func (d *document) Close() error {
	return d.file.Close()
}

type page struct {
	doc    *document
	number int // 1-based
	p      ledpdf.Page
}

// EmbeddedText returns the page's text layer. Extraction errors are treated as
// an absent text layer.
func (pg *page) EmbeddedText() (text string) {
	logger := pg.doc.opener.logger
	defer func() {
		if r := recover(); r != nil {
			logger.Debug("text layer unreadable", "page", pg.number, "error", r)
			text = ""
		}
	}()
	text, err := pg.p.GetPlainText(nil)
	if err != nil {
		logger.Debug("text layer unreadable", "page", pg.number, "error", err)
		return ""
	}
	return text
}

// Render rasterizes the page with Ghostscript to an opaque RGB image (white
// paper) at 72*scale DPI.
func (pg *page) Render(ctx context.Context, scale float64) (image.Image, error) {
	o := pg.doc.opener
	dpi := int(math.Round(72 * scale))
	n := strconv.Itoa(pg.number)
	args := []string{
		"-dQUIET",
		"-dSAFER",
		"-dNOPAUSE",
		"-dBATCH",
		"-sDEVICE=png16m",
		"-dTextAlphaBits=4",
		"-dGraphicsAlphaBits=4",
		"-r" + strconv.Itoa(dpi),
		"-dFirstPage=" + n,
		"-dLastPage=" + n,
		"-sOutputFile=-",
		pg.doc.path,
	}
	out, errb, err := o.runner.Run(ctx, o.ghostscript, o.logger, args...)
	if err != nil {
		return nil, fmt.Errorf("ghostscript render page %d failed: %w, stderr: %s",
			pg.number, err, runner.Truncate(string(errb), 512))
	}
	img, err := png.Decode(bytes.NewReader(out))
	if err != nil {
		return nil, fmt.Errorf("decode rendered page %d: %w", pg.number, err)
	}
	return img, nil
}
