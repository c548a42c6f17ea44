package common

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{
		"OCR_LANGUAGES", "OCR_MAX_PAGES", "OCR_PAGE_WORKERS", "OCR_RENDER_SCALE",
		"OCR_ENGINE", "HEIC_CONVERTER", "GHOSTSCRIPT_BIN", "VISION_API_KEY",
		"OPENAI_API_KEY", "VISION_MODEL", "VISION_TIMEOUT", "LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()

	if diff := cmp.Diff([]string{"zh-Hans", "en-US"}, cfg.Extraction.Languages); diff != "" {
		t.Fatalf("languages mismatch (-want +got):\n%s", diff)
	}
	if cfg.Extraction.MaxPages != 20 {
		t.Fatalf("expected max pages 20, got %d", cfg.Extraction.MaxPages)
	}
	if cfg.Extraction.PageWorkers != 1 {
		t.Fatalf("expected 1 page worker, got %d", cfg.Extraction.PageWorkers)
	}
	if cfg.Extraction.RenderScale != 2.0 {
		t.Fatalf("expected render scale 2, got %v", cfg.Extraction.RenderScale)
	}
	if cfg.OCR.Engine != "tesseract" || cfg.OCR.Ghostscript != "gs" || cfg.OCR.HeicConverter != "magick" {
		t.Fatalf("unexpected ocr config: %+v", cfg.OCR)
	}
	if cfg.Vision.Timeout != 2*time.Minute {
		t.Fatalf("unexpected vision timeout: %v", cfg.Vision.Timeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}

	// the default slice must not be shared with callers
	cfg.Extraction.Languages[0] = "ja"
	if DefaultLanguages[0] != "zh-Hans" {
		t.Fatal("DefaultLanguages was mutated through the loaded config")
	}
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("OCR_LANGUAGES", " ja , ,en-US")
	t.Setenv("OCR_MAX_PAGES", "5")
	t.Setenv("OCR_PAGE_WORKERS", "4")
	t.Setenv("OCR_ENGINE", "vision")
	t.Setenv("VISION_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("VISION_TIMEOUT", "15s")
	t.Setenv("OCR_RENDER_SCALE", "not-a-number")

	cfg := LoadConfig()

	if diff := cmp.Diff([]string{"ja", "en-US"}, cfg.Extraction.Languages); diff != "" {
		t.Fatalf("languages mismatch (-want +got):\n%s", diff)
	}
	if cfg.Extraction.MaxPages != 5 || cfg.Extraction.PageWorkers != 4 {
		t.Fatalf("unexpected extraction config: %+v", cfg.Extraction)
	}
	if cfg.Extraction.RenderScale != 2.0 {
		t.Fatalf("invalid float should fall back to default, got %v", cfg.Extraction.RenderScale)
	}
	if cfg.Vision.APIKey != "sk-test" {
		t.Fatalf("expected OPENAI_API_KEY fallback, got %q", cfg.Vision.APIKey)
	}
	if cfg.Vision.Timeout != 15*time.Second {
		t.Fatalf("unexpected timeout: %v", cfg.Vision.Timeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Extraction: ExtractionConfig{Languages: []string{"en-US"}, MaxPages: 20, PageWorkers: 1, RenderScale: 2},
			OCR:        OCRConfig{Engine: "tesseract"},
			Vision:     VisionConfig{Model: "gpt-4o-mini"},
			Log:        LogConfig{Format: "text"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantSub string
	}{
		{"unknown engine", func(c *Config) { c.OCR.Engine = "abbyy" }, "OCR_ENGINE"},
		{"vision without key", func(c *Config) { c.OCR.Engine = "vision" }, "VISION_API_KEY"},
		{"zero workers", func(c *Config) { c.Extraction.PageWorkers = 0 }, "OCR_PAGE_WORKERS"},
		{"negative scale", func(c *Config) { c.Extraction.RenderScale = -1 }, "OCR_RENDER_SCALE"},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, "LOG_FORMAT"},
		{"no languages", func(c *Config) { c.Extraction.Languages = nil }, "OCR_LANGUAGES"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Fatalf("expected %q in %q", tt.wantSub, err.Error())
			}
		})
	}
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"zh-Hans,en-US", []string{"zh-Hans", "en-US"}},
		{" en-US ", []string{"en-US"}},
		{",,", nil},
		{"", nil},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, SplitList(tt.in)); diff != "" {
			t.Errorf("SplitList(%q) mismatch (-want +got):\n%s", tt.in, diff)
		}
	}
}
