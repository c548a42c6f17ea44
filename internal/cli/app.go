// Package cli implements the ocr command line: flags, exit codes and the
// stdout/stderr split.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/ocrtext/constants"
	"github.com/joseph-ayodele/ocrtext/internal/common"
	"github.com/joseph-ayodele/ocrtext/internal/pipeline"
)

// Exit codes.
const (
	ExitOK    = 0
	ExitError = 1
)

// PipelineFactory builds the extraction pipeline once the arguments are valid.
type PipelineFactory func(logger *slog.Logger) (*pipeline.Pipeline, error)

// App runs the command. Stdout receives extracted text only; usage, notices
// and errors go to Stderr.
type App struct {
	Stdout      io.Writer
	Stderr      io.Writer
	Config      *common.Config
	NewPipeline PipelineFactory
}

// Run executes the command with args (without the program name) and returns
// the process exit code.
func (a *App) Run(ctx context.Context, args []string) int {
	logger := common.NewLogger(a.Stderr, a.Config.Log)
	cmd := a.command(logger)
	if args == nil {
		args = []string{} // nil makes cobra fall back to os.Args
	}
	cmd.SetArgs(args)

	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(a.Stderr, "Error: %s\n", common.Message(err))
		return ExitError
	}
	return ExitOK
}

func (a *App) command(logger *slog.Logger) *cobra.Command {
	var (
		langs    string
		maxPages int
	)

	cmd := &cobra.Command{
		Use:   "ocr <file_path> [options]",
		Short: "Extract text from images and scanned PDFs",
		Long: "Extract text from images and scanned PDFs.\n\n" +
			"Supported image formats: " + strings.Join(imageFormats(), ", ") + "\n" +
			"Supported document formats: pdf\n\n" +
			"PDF pages with a text layer are read directly; other pages are rendered and recognized.",
		Example: "  ocr screenshot.png\n" +
			"  ocr document.pdf --lang en-US --max-pages 10\n" +
			"  ocr photo.heic --lang zh-Hans,en-US,ja",
		Args:          pathArg,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := pipeline.NewRequest(args[len(args)-1], common.SplitList(langs), maxPages)
			if err != nil {
				return err
			}
			// usage only helps with argument mistakes
			cmd.SilenceUsage = true

			p, err := a.NewPipeline(logger)
			if err != nil {
				return err
			}
			res, err := p.Run(cmd.Context(), req)
			if err != nil {
				return err
			}
			if res.Text == "" {
				logger.Info("No text was extracted from the file")
				return nil
			}
			_, err = fmt.Fprintln(a.Stdout, res.Text)
			return err
		},
	}
	cmd.SetOut(a.Stderr)
	cmd.SetErr(a.Stderr)

	flags := cmd.Flags()
	flags.StringVar(&langs, "lang", strings.Join(a.Config.Extraction.Languages, ","),
		"Comma-separated recognition languages, first is primary")
	flags.IntVar(&maxPages, "max-pages", a.Config.Extraction.MaxPages,
		"Maximum PDF pages to process")
	return cmd
}

// pathArg requires a file path; when several are given the last one wins.
func pathArg(_ *cobra.Command, args []string) error {
	if len(args) == 0 {
		return common.ArgumentError("No file path provided")
	}
	return nil
}

func imageFormats() []string {
	var out []string
	for _, ext := range constants.SupportedExtensions() {
		if constants.MapExtToKind(ext) == constants.IMAGE {
			out = append(out, ext)
		}
	}
	return out
}
