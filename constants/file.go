package constants

import (
	"sort"
	"strings"
)

// FileKind is the extraction category derived from a file extension.
type FileKind string

const (
	IMAGE       FileKind = "IMAGE"
	DOCUMENT    FileKind = "DOCUMENT"
	UNSUPPORTED FileKind = "UNSUPPORTED"
)

// DocumentExtensions holds the paginated document extensions.
var DocumentExtensions = map[string]struct{}{
	"pdf": {},
}

// ImageExtensions holds the raster image extensions handed to recognition.
var ImageExtensions = map[string]struct{}{
	"png":  {},
	"jpg":  {},
	"jpeg": {},
	"tiff": {},
	"tif":  {},
	"bmp":  {},
	"gif":  {},
	"heic": {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// MapExtToKind maps an extension (with or without dot, any case) to its FileKind.
func MapExtToKind(ext string) FileKind {
	ext = NormalizeExt(ext)
	if _, ok := DocumentExtensions[ext]; ok {
		return DOCUMENT
	}
	if _, ok := ImageExtensions[ext]; ok {
		return IMAGE
	}
	return UNSUPPORTED
}

// IsHEICExt reports whether ext needs conversion before decoding.
func IsHEICExt(ext string) bool {
	return NormalizeExt(ext) == "heic"
}

// SupportedExtensions lists image extensions sorted, followed by document extensions.
func SupportedExtensions() []string {
	images := sortedKeys(ImageExtensions)
	return append(images, sortedKeys(DocumentExtensions)...)
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
