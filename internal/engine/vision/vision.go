// Package vision recognizes text by sending images to an OpenAI-compatible
// chat completions endpoint with a vision-capable model.
package vision

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/joseph-ayodele/ocrtext/internal/llm"
	"github.com/joseph-ayodele/ocrtext/internal/ocr"
)

// ErrNotConfigured is returned when no API key is available.
var ErrNotConfigured = errors.New("vision engine: api key is not configured")

// Config for the vision engine.
type Config struct {
	APIKey  string
	BaseURL string        // default https://api.openai.com/v1
	Model   string        // default gpt-4o-mini
	Timeout time.Duration // per request, default 2m
}

type Engine struct {
	cfg    Config
	client *openai.Client
	schema map[string]any
	valid  *jsonschema.Schema
	log    *slog.Logger
}

func New(cfg Config, logger *slog.Logger) (*Engine, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrNotConfigured
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Minute
	}
	if logger == nil {
		logger = slog.Default()
	}

	schema := llm.BuildTranscriptionJSONSchema()
	valid, err := llm.CompileSchema("transcription.json", schema)
	if err != nil {
		return nil, err
	}

	oc := openai.DefaultConfig(cfg.APIKey)
	oc.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	oc.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	return &Engine{
		cfg:    cfg,
		client: openai.NewClientWithConfig(oc),
		schema: schema,
		valid:  valid,
		log:    logger,
	}, nil
}

func (e *Engine) Name() string { return "vision" }

// Recognize encodes the image and starts the completion request; done is
// called from the request goroutine.
func (e *Engine) Recognize(ctx context.Context, req ocr.RecognitionRequest, done ocr.Completion) error {
	if req.Image == nil {
		return errors.New("vision: nil image")
	}
	dataURL, err := llm.ImageDataURL(req.Image)
	if err != nil {
		return err
	}
	treq := llm.TranscribeRequest{
		Languages:          req.Languages,
		Accurate:           req.Accuracy == ocr.AccuracyAccurate,
		LanguageCorrection: req.LanguageCorrection,
	}

	go func() {
		lines, err := e.transcribe(ctx, treq, dataURL)
		done(lines, err)
	}()
	return nil
}

func (e *Engine) transcribe(ctx context.Context, req llm.TranscribeRequest, dataURL string) ([]string, error) {
	rid := uuid.New().String()
	start := time.Now()

	detail := openai.ImageURLDetailLow
	if req.Accurate {
		detail = openai.ImageURLDetailHigh
	}

	e.log.Debug("vision.transcribe.start",
		"req_id", rid,
		"model", e.cfg.Model,
		"languages", req.Languages,
		"image_bytes", len(dataURL),
	)

	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       e.cfg.Model,
		Temperature: 0,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: llm.BuildSystemPrompt(req)},
			{Role: openai.ChatMessageRoleSystem, Content: llm.BuildSchemaPrompt(e.schema)},
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: "Transcribe this image. Return ONLY JSON."},
					{Type: openai.ChatMessagePartTypeImageURL, ImageURL: &openai.ChatMessageImageURL{URL: dataURL, Detail: detail}},
				},
			},
		},
	})
	if err != nil {
		e.log.Debug("vision.transcribe.http_error", "req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds())
		return nil, fmt.Errorf("vision request: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("vision: no choices in response")
	}

	content := []byte(llm.ExtractJSON(resp.Choices[0].Message.Content))
	if err := llm.ValidateJSON(e.valid, content); err != nil {
		cleaned, changes, sErr := llm.SanitizeTranscription(content, e.log)
		if sErr != nil {
			return nil, fmt.Errorf("vision reply: %w", err)
		}
		if vErr := llm.ValidateJSON(e.valid, cleaned); vErr != nil {
			return nil, fmt.Errorf("vision reply after sanitize: %w", vErr)
		}
		e.log.Debug("vision.transcribe.lenient_sanitize_applied", "req_id", rid, "changes", changes)
		content = cleaned
	}

	out, err := llm.DecodeTranscription(content)
	if err != nil {
		return nil, err
	}
	e.log.Debug("vision.transcribe.ok",
		"req_id", rid,
		"lines", len(out.Lines),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return out.Lines, nil
}
