package ocr

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joseph-ayodele/ocrtext/constants"
	"github.com/joseph-ayodele/ocrtext/internal/common"
)

// ResolvePath expands a leading "~" and makes path absolute against the
// working directory.
func ResolvePath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return filepath.Abs(path)
}

// Classify resolves path, checks that it exists and maps its extension to a
// FileKind. Existence is checked first, so a missing file with an unknown
// extension reports FILE_NOT_FOUND.
func Classify(path string) (string, constants.FileKind, error) {
	resolved, err := ResolvePath(path)
	if err != nil {
		return "", constants.UNSUPPORTED, common.NewAppError(common.CodeFileNotFound,
			fmt.Sprintf("File not found: %s", path), fmt.Errorf("%w: %v", common.ErrFileNotFound, err))
	}
	if _, err := os.Stat(resolved); err != nil {
		return resolved, constants.UNSUPPORTED, common.NewAppError(common.CodeFileNotFound,
			fmt.Sprintf("File not found: %s", resolved), common.ErrFileNotFound)
	}

	ext := constants.NormalizeExt(filepath.Ext(resolved))
	kind := constants.MapExtToKind(ext)
	if kind == constants.UNSUPPORTED {
		return resolved, kind, common.NewAppError(common.CodeUnsupportedFormat,
			fmt.Sprintf("Unsupported file format '.%s'. Supported formats: %s",
				ext, strings.Join(constants.SupportedExtensions(), ", ")),
			common.ErrUnsupportedFormat)
	}
	return resolved, kind, nil
}
