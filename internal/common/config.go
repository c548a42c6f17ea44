package common

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/joseph-ayodele/ocrtext/constants"
)

// Config holds all application configuration
type Config struct {
	Extraction ExtractionConfig
	OCR        OCRConfig
	Vision     VisionConfig
	Log        LogConfig
}

// ExtractionConfig holds defaults for a single extraction run
type ExtractionConfig struct {
	Languages   []string
	MaxPages    int
	PageWorkers int
	RenderScale float64
}

// OCRConfig holds engine and converter configuration
type OCRConfig struct {
	Engine        string
	TessdataDir   string
	HeicConverter string
	Ghostscript   string
}

// VisionConfig holds the remote vision-model engine configuration
type VisionConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Format string
}

// DefaultLanguages are used when neither --lang nor OCR_LANGUAGES is given.
var DefaultLanguages = []string{"zh-Hans", "en-US"}

// DefaultMaxPages caps document processing when --max-pages is absent.
const DefaultMaxPages = 20

// LoadConfig loads configuration from environment variables, reading a .env
// file first when one exists.
func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		Extraction: ExtractionConfig{
			Languages:   getEnvAsList("OCR_LANGUAGES", DefaultLanguages),
			MaxPages:    getEnvAsInt("OCR_MAX_PAGES", DefaultMaxPages),
			PageWorkers: getEnvAsInt("OCR_PAGE_WORKERS", 1),
			RenderScale: getEnvAsFloat64("OCR_RENDER_SCALE", 2.0),
		},
		OCR: OCRConfig{
			Engine:        getEnv("OCR_ENGINE", string(constants.EngineTesseract)),
			TessdataDir:   getEnv("TESSDATA_PREFIX", ""),
			HeicConverter: getEnv("HEIC_CONVERTER", "magick"),
			Ghostscript:   getEnv("GHOSTSCRIPT_BIN", "gs"),
		},
		Vision: VisionConfig{
			APIKey:  getEnv("VISION_API_KEY", os.Getenv("OPENAI_API_KEY")),
			BaseURL: getEnv("VISION_BASE_URL", "https://api.openai.com/v1"),
			Model:   getEnv("VISION_MODEL", "gpt-4o-mini"),
			Timeout: getEnvAsDuration("VISION_TIMEOUT", 2*time.Minute),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat64(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		if list := SplitList(value); len(list) > 0 {
			return list
		}
	}
	return append([]string(nil), defaultValue...)
}

// SplitList splits a comma-separated value, trimming entries and dropping empty ones.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	v := NewValidator()
	v.Field("OCR_LANGUAGES", c.Extraction.Languages, Required)
	v.Field("OCR_MAX_PAGES", c.Extraction.MaxPages, Positive)
	v.Field("OCR_PAGE_WORKERS", c.Extraction.PageWorkers, Positive)
	v.Field("OCR_RENDER_SCALE", c.Extraction.RenderScale, Positive)
	v.Field("LOG_FORMAT", strings.ToLower(c.Log.Format), OneOf("text", "json"))

	engine, ok := constants.CanonicalizeEngine(c.OCR.Engine)
	if !ok {
		v.Field("OCR_ENGINE", c.OCR.Engine, OneOf(constants.EngineNames()...))
	}
	if engine == constants.EngineVision {
		v.Field("VISION_API_KEY", c.Vision.APIKey, Required)
		v.Field("VISION_MODEL", c.Vision.Model, Required)
	}
	return ValidateAndReturnError(v, CodeConfig, ErrInvalidConfig)
}
