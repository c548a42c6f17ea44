// Package pipeline drives one extraction: classify the file, dispatch it to
// the image or document path and report the text.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/ocrtext/constants"
	"github.com/joseph-ayodele/ocrtext/internal/common"
	"github.com/joseph-ayodele/ocrtext/internal/ocr"
)

// Result summarizes a run. Transcript is set for documents only.
type Result struct {
	RunID      string
	Path       string
	Kind       constants.FileKind
	Text       string
	Transcript ocr.Transcript
	Duration   time.Duration
}

type Pipeline struct {
	Extractor Extractor
	Log       *slog.Logger
}

func NewPipeline(ex Extractor, log *slog.Logger) *Pipeline {
	if log == nil {
		log = slog.Default()
	}
	return &Pipeline{Extractor: ex, Log: log}
}

// Run classifies req.Path and extracts its text. Errors are fatal for the run
// and carry a common.AppError code.
func (p *Pipeline) Run(ctx context.Context, req Request) (Result, error) {
	start := time.Now()
	runID := uuid.New().String()
	ctx = common.WithRunID(ctx, runID)
	log := p.Log.With("run_id", runID)

	path, kind, err := ocr.Classify(req.Path)
	res := Result{RunID: runID, Path: path, Kind: kind}
	if err != nil {
		log.Debug("classification failed", "path", req.Path, "error", err)
		return res, err
	}
	log.Debug("starting extraction", "path", path, "kind", kind, "languages", req.Languages, "max_pages", req.MaxPages)

	switch kind {
	case constants.DOCUMENT:
		tr, err := p.Extractor.ExtractDocument(ctx, path, req.Languages, req.MaxPages)
		if err != nil {
			return res, err
		}
		res.Transcript = tr
		res.Text = tr.String()
	case constants.IMAGE:
		text, err := p.Extractor.ExtractImage(ctx, path, req.Languages)
		if err != nil {
			return res, err
		}
		res.Text = text
	default:
		return res, common.NewAppError(common.CodeUnsupportedFormat,
			fmt.Sprintf("Unsupported file kind %q", kind), common.ErrUnsupportedFormat)
	}

	res.Duration = time.Since(start)
	log.Debug("extraction finished",
		"kind", kind,
		"pages", len(res.Transcript.Pages),
		"chars", len(res.Text),
		"duration_ms", res.Duration.Milliseconds(),
	)
	return res, nil
}
