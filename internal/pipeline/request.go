package pipeline

import (
	"strings"

	"github.com/joseph-ayodele/ocrtext/internal/common"
)

// Request is one extraction run. Build it with NewRequest; it is not modified
// afterwards.
type Request struct {
	Path      string
	Languages []string // first is primary
	MaxPages  int
}

// NewRequest validates the inputs and copies languages, dropping blank tags.
func NewRequest(path string, languages []string, maxPages int) (Request, error) {
	langs := make([]string, 0, len(languages))
	for _, l := range languages {
		if l = strings.TrimSpace(l); l != "" {
			langs = append(langs, l)
		}
	}

	v := common.NewValidator().
		Field("file path", path, common.Required).
		Field("languages", langs, common.Required).
		Field("max pages", maxPages, common.Positive)
	if err := common.ValidateAndReturnError(v, common.CodeArgument, common.ErrInvalidArgument); err != nil {
		return Request{}, err
	}
	return Request{Path: path, Languages: langs, MaxPages: maxPages}, nil
}
