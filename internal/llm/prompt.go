package llm

import (
	"encoding/json"
	"strings"
)

// BuildSystemPrompt composes the system message for a transcription: language
// priority, fidelity rules and the reply format.
func BuildSystemPrompt(req TranscribeRequest) string {
	parts := []string{
		"You are an OCR engine. Transcribe every piece of visible text in the image.",
		"Return ONLY JSON that matches the provided JSON Schema: an object with a 'lines' array of strings.",
		"Emit one array entry per visual line, in natural reading order (top to bottom; columns left to right).",
		"Copy text exactly as printed. Do not translate, summarize, explain or add text that is not visible.",
		"If the image contains no text, return {\"lines\": []}.",
	}

	if langs := cleanLanguages(req.Languages); len(langs) > 0 {
		parts = append(parts, "Expected languages in priority order: "+strings.Join(langs, ", ")+".")
	}
	if req.LanguageCorrection {
		parts = append(parts, "Where a glyph is ambiguous, prefer the reading that forms a real word in the expected languages.")
	} else {
		parts = append(parts, "Do not correct spelling; report glyphs as they appear.")
	}
	if req.Accurate {
		parts = append(parts, "Favor accuracy over speed; include small print, headers and footers.")
	}
	return strings.Join(parts, " ")
}

// BuildSchemaPrompt renders the reply schema as a system message.
func BuildSchemaPrompt(schema map[string]any) string {
	return "JSON Schema:\n" + mustJSON(schema)
}

func cleanLanguages(in []string) []string {
	out := make([]string, 0, len(in))
	for _, l := range in {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

func mustJSON(v any) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}
