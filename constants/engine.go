package constants

import "strings"

// EngineName identifies a recognition engine implementation.
type EngineName string

const (
	EngineTesseract EngineName = "tesseract"
	EngineVision    EngineName = "vision"
)

var allEngines = []EngineName{
	EngineTesseract,
	EngineVision,
}

func EngineNames() []string {
	result := make([]string, len(allEngines))
	for i, e := range allEngines {
		result[i] = string(e)
	}
	return result
}

// CanonicalizeEngine resolves user input (including a few aliases) to an EngineName.
func CanonicalizeEngine(input string) (EngineName, bool) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		return EngineTesseract, true
	}

	synonyms := map[string]EngineName{
		"tess":   EngineTesseract,
		"local":  EngineTesseract,
		"openai": EngineVision,
		"llm":    EngineVision,
		"remote": EngineVision,
	}
	if e, ok := synonyms[normalized]; ok {
		return e, true
	}

	for _, e := range allEngines {
		if normalized == string(e) {
			return e, true
		}
	}
	return "", false
}
