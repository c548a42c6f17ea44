package ocr

import (
	"context"
	"image"
	"log/slog"
	"strings"
	"sync"
	"time"
)

type recognition struct {
	lines []string
	err   error
}

// Recognizer turns an Engine's callback into a blocking call.
type Recognizer struct {
	engine Engine
	logger *slog.Logger
}

func NewRecognizer(engine Engine, logger *slog.Logger) *Recognizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recognizer{engine: engine, logger: logger}
}

// Recognize runs the engine on img and waits for its completion. Failures are
// logged and yield "". dpi is forwarded to the engine as a hint (0 = unknown).
func (r *Recognizer) Recognize(ctx context.Context, img image.Image, languages []string, dpi int) string {
	req := RecognitionRequest{
		Image:              img,
		Languages:          append([]string(nil), languages...),
		Accuracy:           AccuracyAccurate,
		LanguageCorrection: true,
		DPI:                dpi,
	}

	// The slot holds exactly one result; later completions are dropped.
	results := make(chan recognition, 1)
	var once sync.Once
	done := func(lines []string, err error) {
		delivered := false
		once.Do(func() {
			results <- recognition{lines: lines, err: err}
			delivered = true
		})
		if !delivered {
			r.logger.Warn("engine completed more than once, ignoring", "engine", r.engine.Name())
		}
	}

	start := time.Now()
	if err := r.engine.Recognize(ctx, req, done); err != nil {
		r.logger.Warn("recognition request failed", "engine", r.engine.Name(), "error", err)
		return ""
	}

	res := <-results
	if res.err != nil {
		r.logger.Warn("recognition error", "engine", r.engine.Name(), "error", res.err)
		return ""
	}
	r.logger.Debug("recognition done",
		"engine", r.engine.Name(),
		"lines", len(res.lines),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return strings.Join(res.lines, "\n")
}
