// Package llm holds the model-facing pieces of the vision recognition engine:
// prompts, the reply schema and the cleanup applied before validation.
package llm

import (
	"encoding/json"
	"fmt"
)

// TranscribeRequest describes one image transcription.
type TranscribeRequest struct {
	Languages          []string // BCP-47 tags in priority order
	Accurate           bool
	LanguageCorrection bool
}

// Transcription is the reply shape we ask the model for.
type Transcription struct {
	Lines []string `json:"lines"`
}

// DecodeTranscription unmarshals a validated reply.
func DecodeTranscription(data []byte) (Transcription, error) {
	var t Transcription
	if err := json.Unmarshal(data, &t); err != nil {
		return Transcription{}, fmt.Errorf("unmarshal transcription: %w", err)
	}
	return t, nil
}
