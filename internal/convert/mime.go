package convert

import (
	"path/filepath"
	"strings"
)

const videoPrefix = "video/"

// mimeByExtension covers the container formats the scanner recognizes.
var mimeByExtension = map[string]string{
	".3gp":  "video/3gpp",
	".avi":  "video/x-msvideo",
	".flv":  "video/x-flv",
	".m4v":  "video/mp4",
	".mkv":  "video/x-matroska",
	".mov":  "video/quicktime",
	".mp4":  "video/mp4",
	".mpeg": "video/mpeg",
	".mpg":  "video/mpeg",
	".ogv":  "video/ogg",
	".ts":   "video/mp2t",
	".webm": "video/webm",
	".wmv":  "video/x-ms-wmv",
}

// IsVideo reports whether a MIME type carries the video prefix.
func IsVideo(mimeType string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(mimeType)), videoPrefix)
}

// DetectMIME maps a file extension to a video MIME type.
func DetectMIME(path string) (string, bool) {
	mimeType, ok := mimeByExtension[strings.ToLower(filepath.Ext(path))]
	return mimeType, ok
}

// TargetMIME returns the MIME type for the configured target extension.
func TargetMIME(extension string) string {
	ext := "." + strings.ToLower(strings.TrimPrefix(strings.TrimSpace(extension), "."))
	if mimeType, ok := mimeByExtension[ext]; ok {
		return mimeType
	}
	return videoPrefix + strings.TrimPrefix(ext, ".")
}
