package ocr

import (
	"context"
	"image"
)

// Accuracy selects the engine's speed/quality trade-off.
type Accuracy int

const (
	AccuracyFast Accuracy = iota
	AccuracyAccurate
)

func (a Accuracy) String() string {
	if a == AccuracyAccurate {
		return "accurate"
	}
	return "fast"
}

// RecognitionRequest is built fresh for every image.
type RecognitionRequest struct {
	Image              image.Image
	Languages          []string // BCP-47 tags, first is primary
	Accuracy           Accuracy
	LanguageCorrection bool
	DPI                int // 0 when unknown
}

// Completion receives the recognized lines in reading order, or an error.
type Completion func(lines []string, err error)

// Engine recognizes text in an image. Recognize starts the work and returns;
// done is invoked later, possibly from another goroutine. A non-nil return
// means the work never started and done will not be called.
type Engine interface {
	Name() string
	Recognize(ctx context.Context, req RecognitionRequest, done Completion) error
}
