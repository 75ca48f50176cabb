package convert

import (
	"path/filepath"
	"strings"
)

// OutputPath derives the conversion target for a source file by replacing its
// extension with the target extension, preserving directory and base name.
// When the source already carries the target extension the suffix
// "-converted" is inserted before it, so a derived path can never equal its
// source and re-running conversion on an output cannot loop or self-overwrite.
func OutputPath(sourcePath, extension string) string {
	ext := "." + strings.ToLower(strings.TrimPrefix(strings.TrimSpace(extension), "."))
	sourceExt := filepath.Ext(sourcePath)
	base := strings.TrimSuffix(sourcePath, sourceExt)
	if strings.EqualFold(sourceExt, ext) {
		return base + "-converted" + ext
	}
	return base + ext
}
