// Package tesseract recognizes text locally with Tesseract through gosseract.
package tesseract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/png"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/otiai10/gosseract/v2"

	"github.com/joseph-ayodele/ocrtext/internal/lang"
	"github.com/joseph-ayodele/ocrtext/internal/ocr"
)

// client is the subset of *gosseract.Client the engine drives.
type client interface {
	SetTessdataPrefix(prefix string) error
	SetLanguage(langs ...string) error
	SetVariable(key gosseract.SettableVariable, value string) error
	SetImageFromBytes(data []byte) error
	Text() (string, error)
	Close() error
}

// Engine implements ocr.Engine. Each recognition uses its own client, so one
// Engine can serve concurrent page jobs.
type Engine struct {
	tessdataDir   string
	clientFactory func() client
	logger        *slog.Logger
}

// New constructs a Tesseract-backed engine. tessdataDir may be empty to use
// the library default.
func New(tessdataDir string, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		tessdataDir:   tessdataDir,
		clientFactory: func() client { return gosseract.NewClient() },
		logger:        logger,
	}
}

func (e *Engine) Name() string { return "tesseract" }

func (e *Engine) Recognize(ctx context.Context, req ocr.RecognitionRequest, done ocr.Completion) error {
	if req.Image == nil {
		return errors.New("tesseract: nil image")
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, req.Image); err != nil {
		return fmt.Errorf("tesseract: encode image: %w", err)
	}
	langs := lang.TesseractList(req.Languages)

	go func() {
		lines, err := e.recognize(ctx, buf.Bytes(), langs, req)
		done(lines, err)
	}()
	return nil
}

func (e *Engine) recognize(ctx context.Context, img []byte, langs []string, req ocr.RecognitionRequest) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()

	c := e.clientFactory()
	defer func() {
		if err := c.Close(); err != nil {
			e.logger.Warn("failed to close tesseract client", "error", err)
		}
	}()

	if e.tessdataDir != "" {
		if err := c.SetTessdataPrefix(e.tessdataDir); err != nil {
			return nil, fmt.Errorf("set tessdata prefix: %w", err)
		}
	}
	if len(langs) > 0 {
		if err := c.SetLanguage(langs...); err != nil {
			return nil, fmt.Errorf("set languages: %w", err)
		}
	}
	if err := c.SetImageFromBytes(img); err != nil {
		return nil, fmt.Errorf("set image: %w", err)
	}
	for k, v := range variables(req) {
		if err := c.SetVariable(k, v); err != nil {
			return nil, fmt.Errorf("set variable %s: %w", k, err)
		}
	}

	text, err := c.Text()
	if err != nil {
		return nil, fmt.Errorf("recognize text: %w", err)
	}
	lines := splitLines(text)
	e.logger.Debug("tesseract done",
		"languages", strings.Join(langs, "+"),
		"lines", len(lines),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return lines, nil
}

// variables maps request options onto Tesseract parameters.
func variables(req ocr.RecognitionRequest) map[gosseract.SettableVariable]string {
	vars := map[gosseract.SettableVariable]string{}
	if req.LanguageCorrection {
		vars["tessedit_enable_dict_correction"] = "1"
	} else {
		vars["tessedit_enable_dict_correction"] = "0"
	}
	if req.DPI > 0 {
		vars["user_defined_dpi"] = strconv.Itoa(req.DPI)
	}
	return vars
}

// reRuleNoise matches lines Tesseract produces from table rules and underlines.
var reRuleNoise = regexp.MustCompile(`^\s*[_\-]{3,}\s*$`)

// splitLines returns the non-blank lines of Tesseract output without trailing
// whitespace, dropping rule-only noise lines.
func splitLines(text string) []string {
	var out []string
	for _, ln := range strings.Split(text, "\n") {
		ln = strings.TrimRight(ln, " \t\r\f")
		if strings.TrimSpace(ln) == "" || reRuleNoise.MatchString(ln) {
			continue
		}
		out = append(out, ln)
	}
	return out
}
