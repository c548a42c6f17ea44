package ocr

import (
	"fmt"
	"strings"

	"github.com/joseph-ayodele/ocrtext/constants"
)

// RecognizedPage is one page of a document transcript.
type RecognizedPage struct {
	Index  int // 1-based
	Source constants.PageSource
	Text   string
}

// Transcript holds the ordered pages of a document extraction.
type Transcript struct {
	Pages      []RecognizedPage
	TotalPages int
	Limit      int
	Truncated  bool
}

// String renders each page as a marker line followed by its body, all joined
// with newlines. An empty transcript renders as "".
func (t Transcript) String() string {
	parts := make([]string, 0, 2*len(t.Pages))
	for _, p := range t.Pages {
		parts = append(parts, fmt.Sprintf(constants.PageMarkerFormat, p.Index), p.Text)
	}
	return strings.Join(parts, "\n")
}

// Count returns the number of pages per source.
func (t Transcript) Count(src constants.PageSource) int {
	n := 0
	for _, p := range t.Pages {
		if p.Source == src {
			n++
		}
	}
	return n
}
