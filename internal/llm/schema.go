package llm

// BuildTranscriptionJSONSchema returns the JSON-Schema (draft 2020-12 subset)
// a transcription reply must satisfy. It is sent with the prompt and used
// locally to validate the reply.
func BuildTranscriptionJSONSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"lines": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
		"required": []string{"lines"},
	}
}
