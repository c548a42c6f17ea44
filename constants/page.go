package constants

// PageSource records how a document page's text was obtained.
type PageSource string

const (
	PageSourceEmbedded   PageSource = "EMBEDDED"   // text layer of the document
	PageSourceRecognized PageSource = "RECOGNIZED" // rendered and recognized
	PageSourceEmpty      PageSource = "EMPTY"      // neither produced text
)

// NoTextPlaceholder is the body written for EMPTY pages.
const NoTextPlaceholder = "[No text detected]"

// PageMarkerFormat precedes every page body in a document transcript.
const PageMarkerFormat = "--- Page %d ---"
