// Package lang converts BCP-47 recognition language tags into the codes
// Tesseract trained-data files are named after.
package lang

import (
	"strings"

	"golang.org/x/text/language"
)

// tesseractOverrides covers languages whose traineddata name is not the
// ISO 639-2/T code.
var tesseractOverrides = map[string]string{
	"sr-Latn": "srp_latn",
	"uz-Cyrl": "uzb_cyrl",
	"az-Cyrl": "aze_cyrl",
}

// Tesseract maps one tag such as "zh-Hans" or "en-US" to "chi_sim" or "eng".
// Values that already look like traineddata names ("eng", "chi_sim") or that
// fail to parse are returned unchanged.
func Tesseract(tag string) string {
	tag = strings.TrimSpace(tag)
	if tag == "" || strings.Contains(tag, "_") {
		return tag
	}
	t, err := language.Parse(tag)
	if err != nil {
		return tag
	}
	base, _ := t.Base()
	script, conf := t.Script()

	if base.String() == "zh" {
		// zh-TW and zh-HK infer Hant.
		if script.String() == "Hant" {
			return "chi_tra"
		}
		return "chi_sim"
	}
	if conf == language.Exact {
		if code, ok := tesseractOverrides[base.String()+"-"+script.String()]; ok {
			return code
		}
	}
	if iso3 := base.ISO3(); iso3 != "" {
		return iso3
	}
	return tag
}

// TesseractList maps tags in order, dropping duplicates that collapse to the
// same traineddata name ("en-US", "en-GB" -> "eng").
func TesseractList(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		code := Tesseract(tag)
		if code == "" {
			continue
		}
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		out = append(out, code)
	}
	return out
}
