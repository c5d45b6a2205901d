package naming

import (
	"path/filepath"
	"strings"
)

// BaseName strips the directory and the final extension: "a/photo.PNG" -> "photo".
func BaseName(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// OutputPath joins outputDir, base and ext (ext includes the leading dot).
func OutputPath(outputDir, base, ext string) string {
	return filepath.Join(outputDir, base+ext)
}
