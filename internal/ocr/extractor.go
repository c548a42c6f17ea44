// Package ocr decides how text is obtained from a file (embedded document text
// or optical character recognition) and assembles it in page order.
package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/joseph-ayodele/ocrtext/constants"
	"github.com/joseph-ayodele/ocrtext/internal/common"
)

// DefaultRenderScale renders pages at twice their natural size (144 DPI).
const DefaultRenderScale = 2.0

type Config struct {
	RenderScale float64 // page raster scale, default 2.0
	PageWorkers int     // concurrent render+recognize jobs, default 1
}

type Extractor struct {
	cfg        Config
	recognizer *Recognizer
	decoder    ImageDecoder
	opener     DocumentOpener
	logger     *slog.Logger
}

func NewExtractor(cfg Config, engine Engine, decoder ImageDecoder, opener DocumentOpener, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.RenderScale <= 0 {
		cfg.RenderScale = DefaultRenderScale
	}
	if cfg.PageWorkers <= 0 {
		cfg.PageWorkers = 1
	}
	return &Extractor{
		cfg:        cfg,
		recognizer: NewRecognizer(engine, logger),
		decoder:    decoder,
		opener:     opener,
		logger:     logger,
	}
}

// ExtractImage decodes the image at path and returns the recognized text,
// which may be empty.
func (e *Extractor) ExtractImage(ctx context.Context, path string, languages []string) (string, error) {
	img, err := e.decoder.Decode(ctx, path)
	if err != nil {
		e.log(ctx).Error("image decode failed", "path", path, "error", err)
		return "", common.NewAppError(common.CodeDecode,
			fmt.Sprintf("Failed to load image: %s", path), fmt.Errorf("%w: %v", common.ErrDecode, err))
	}
	return e.recognizer.Recognize(ctx, img, languages, 0), nil
}

// ExtractDocument processes at most maxPages pages of the document at path.
// Pages with embedded text use it as is; the others are rendered and
// recognized. Pages that cannot be loaded or rendered are left out.
func (e *Extractor) ExtractDocument(ctx context.Context, path string, languages []string, maxPages int) (Transcript, error) {
	if maxPages <= 0 {
		return Transcript{}, common.ArgumentErrorf("max pages must be positive, got %d", maxPages)
	}
	log := e.log(ctx)
	doc, err := e.opener.Open(ctx, path)
	if err != nil {
		log.Error("document open failed", "path", path, "error", err)
		return Transcript{}, common.NewAppError(common.CodeDocumentOpen,
			fmt.Sprintf("Failed to open PDF: %s", path), fmt.Errorf("%w: %v", common.ErrDocumentOpen, err))
	}
	defer func() {
		if err := doc.Close(); err != nil {
			log.Warn("failed to close document", "path", path, "error", err)
		}
	}()

	total := doc.PageCount()
	limit := min(total, maxPages)
	tr := Transcript{TotalPages: total, Limit: limit, Truncated: total > maxPages}
	if tr.Truncated {
		log.Info("document has more pages than the limit, processing the first pages only (use --max-pages to adjust)",
			"total_pages", total, "max_pages", maxPages)
	}

	dpi := int(math.Round(72 * e.cfg.RenderScale))
	slots := make([]*RecognizedPage, limit)

	var g errgroup.Group
	g.SetLimit(e.cfg.PageWorkers)
	for i := 0; i < limit; i++ {
		page, err := doc.Page(i)
		if err != nil {
			log.Warn("failed to load page", "page", i+1, "error", err)
			continue
		}

		if embedded := page.EmbeddedText(); strings.TrimSpace(embedded) != "" {
			slots[i] = &RecognizedPage{Index: i + 1, Source: constants.PageSourceEmbedded, Text: embedded}
			continue
		}

		g.Go(func() error {
			img, err := page.Render(ctx, e.cfg.RenderScale)
			if err != nil {
				log.Warn("failed to render page", "page", i+1, "error", err)
				return nil
			}
			text := e.recognizer.Recognize(ctx, img, languages, dpi)
			if strings.TrimSpace(text) == "" {
				slots[i] = &RecognizedPage{Index: i + 1, Source: constants.PageSourceEmpty, Text: constants.NoTextPlaceholder}
				return nil
			}
			slots[i] = &RecognizedPage{Index: i + 1, Source: constants.PageSourceRecognized, Text: text}
			return nil
		})
	}
	_ = g.Wait() // jobs never fail; per-page problems are logged

	for _, p := range slots {
		if p != nil {
			tr.Pages = append(tr.Pages, *p)
		}
	}
	if len(tr.Pages) == 0 {
		log.Info("no text could be extracted from this document", "path", path)
		return tr, nil
	}

	log.Debug("document extracted",
		"pages", len(tr.Pages),
		"embedded", tr.Count(constants.PageSourceEmbedded),
		"recognized", tr.Count(constants.PageSourceRecognized),
		"empty", tr.Count(constants.PageSourceEmpty),
	)
	return tr, nil
}

// log attaches the run ID carried by ctx, if any.
func (e *Extractor) log(ctx context.Context) *slog.Logger {
	if id := common.RunIDFromContext(ctx); id != "" {
		return e.logger.With("run_id", id)
	}
	return e.logger
}
