package llm

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// ExtractJSON strips markdown code fences and any prose around the outermost
// JSON object or array in a model reply.
func ExtractJSON(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```") {
		start := 3
		// skip the language identifier line
		if nl := strings.Index(content[start:], "\n"); nl != -1 {
			start += nl + 1
		}
		if end := strings.Index(content[start:], "```"); end != -1 {
			content = content[start : start+end]
		} else {
			content = content[start:]
		}
	}
	content = strings.TrimSpace(content)

	openCh, closeCh := "{", "}"
	if strings.HasPrefix(content, "[") {
		openCh, closeCh = "[", "]"
	}
	if s := strings.Index(content, openCh); s != -1 {
		if e := strings.LastIndex(content, closeCh); e > s {
			content = content[s : e+1]
		}
	}
	return strings.TrimSpace(content)
}

// lineSynonyms are keys models use instead of "lines".
var lineSynonyms = []string{"text", "transcription", "content", "result"}

// SanitizeTranscription reshapes a loosely formed reply into the transcription
// schema so it can still validate:
//   - a bare array becomes {"lines": [...]}
//   - synonym keys are renamed to "lines"; a single string is split on newlines
//   - null entries are dropped, numbers and booleans become strings
//   - unknown keys are removed
//
// It returns the cleaned document and a list of the changes applied.
func SanitizeTranscription(raw []byte, logger *slog.Logger) ([]byte, []string, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, nil, fmt.Errorf("sanitize: decode: %w", err)
	}

	var changes []string
	m, ok := doc.(map[string]any)
	if !ok {
		arr, isArr := doc.([]any)
		if !isArr {
			return nil, nil, fmt.Errorf("sanitize: reply is neither an object nor an array")
		}
		m = map[string]any{"lines": arr}
		changes = append(changes, "array->lines")
	}

	if _, has := m["lines"]; !has {
		for _, k := range lineSynonyms {
			if v, ok := m[k]; ok {
				m["lines"] = v
				changes = append(changes, k+"->lines")
				break
			}
		}
	}

	var lines []string
	switch v := m["lines"].(type) {
	case nil:
		if _, has := m["lines"]; !has {
			return nil, changes, fmt.Errorf("sanitize: no lines in reply")
		}
		changes = append(changes, "lines:null")
	case string:
		lines = splitNonEmpty(v)
		changes = append(changes, "lines:string")
	case []any:
		for i, item := range v {
			switch t := item.(type) {
			case string:
				lines = append(lines, t)
			case float64:
				lines = append(lines, strconv.FormatFloat(t, 'f', -1, 64))
				changes = append(changes, fmt.Sprintf("lines[%d]:number", i))
			case bool:
				lines = append(lines, strconv.FormatBool(t))
				changes = append(changes, fmt.Sprintf("lines[%d]:bool", i))
			default:
				changes = append(changes, fmt.Sprintf("lines[%d]:dropped", i))
			}
		}
	default:
		return nil, changes, fmt.Errorf("sanitize: lines has unexpected type %T", v)
	}

	for _, k := range slices.Sorted(maps.Keys(m)) {
		if k != "lines" {
			changes = append(changes, "drop:"+k)
		}
	}
	if lines == nil {
		lines = []string{}
	}

	out, err := json.Marshal(Transcription{Lines: lines})
	if err != nil {
		return nil, changes, fmt.Errorf("sanitize: encode: %w", err)
	}
	if len(changes) > 0 {
		logger.Debug("sanitized transcription reply", "changes", changes)
	}
	return out, changes, nil
}

func splitNonEmpty(s string) []string {
	var out []string
	for _, ln := range strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n") {
		if strings.TrimSpace(ln) != "" {
			out = append(out, ln)
		}
	}
	return out
}
