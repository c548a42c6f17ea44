package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joseph-ayodele/ocrtext/constants"
	"github.com/joseph-ayodele/ocrtext/internal/cli"
	"github.com/joseph-ayodele/ocrtext/internal/common"
	"github.com/joseph-ayodele/ocrtext/internal/engine/tesseract"
	"github.com/joseph-ayodele/ocrtext/internal/engine/vision"
	"github.com/joseph-ayodele/ocrtext/internal/ocr"
	"github.com/joseph-ayodele/ocrtext/internal/pdf"
	"github.com/joseph-ayodele/ocrtext/internal/pipeline"
	"github.com/joseph-ayodele/ocrtext/internal/runner"
)

func main() {
	cfg := common.LoadConfig()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &cli.App{
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		Config:      cfg,
		NewPipeline: func(logger *slog.Logger) (*pipeline.Pipeline, error) { return buildPipeline(cfg, logger) },
	}
	code := app.Run(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}

// buildPipeline validates the configuration and wires the selected engine,
// the PDF opener and the image decoder.
func buildPipeline(cfg *common.Config, logger *slog.Logger) (*pipeline.Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	slog.SetDefault(logger)

	engine, err := newEngine(cfg, logger)
	if err != nil {
		return nil, err
	}
	logger.Debug("recognition engine selected", "engine", engine.Name())

	r := runner.Exec{}
	ex := ocr.NewExtractor(
		ocr.Config{
			RenderScale: cfg.Extraction.RenderScale,
			PageWorkers: cfg.Extraction.PageWorkers,
		},
		engine,
		ocr.NewFileDecoder(cfg.OCR.HeicConverter, r, logger),
		pdf.NewOpener(cfg.OCR.Ghostscript, r, logger),
		logger,
	)
	return pipeline.NewPipeline(ex, logger), nil
}

func newEngine(cfg *common.Config, logger *slog.Logger) (ocr.Engine, error) {
	name, _ := constants.CanonicalizeEngine(cfg.OCR.Engine)
	switch name {
	case constants.EngineVision:
		e, err := vision.New(vision.Config{
			APIKey:  cfg.Vision.APIKey,
			BaseURL: cfg.Vision.BaseURL,
			Model:   cfg.Vision.Model,
			Timeout: cfg.Vision.Timeout,
		}, logger)
		if err != nil {
			return nil, common.NewAppError(common.CodeConfig, err.Error(), common.ErrInvalidConfig)
		}
		return e, nil
	case constants.EngineTesseract:
		return tesseract.New(cfg.OCR.TessdataDir, logger), nil
	default:
		return nil, common.NewAppError(common.CodeConfig,
			fmt.Sprintf("unknown OCR_ENGINE %q", cfg.OCR.Engine), common.ErrInvalidConfig)
	}
}
