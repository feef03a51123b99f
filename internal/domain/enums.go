package domain

import (
	"path/filepath"
	"strings"
)

// AllowedImageExtensions lists the upload extensions (without dot) the
// pipeline accepts.
var AllowedImageExtensions = map[string]bool{
	"png":  true,
	"jpg":  true,
	"jpeg": true,
	"bmp":  true,
	"tiff": true,
}

// ImageExtension returns the lowercased extension of filename including the
// leading dot, and whether it is an accepted screenshot format.
func ImageExtension(filename string) (string, bool) {
	ext := strings.ToLower(filepath.Ext(filename))
	return ext, AllowedImageExtensions[strings.TrimPrefix(ext, ".")]
}
