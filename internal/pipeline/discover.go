package pipeline

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Supported source extensions (lowercase, with leading dot).
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// IsImage reports whether name has a supported source extension.
func IsImage(name string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(name))]
}

// Discover lists sourceDir (non-recursively), keeps regular files with an
// image extension, skips the output subdirectory, and returns the paths
// sorted lexicographically for deterministic processing order.
func Discover(sourceDir, outputSubdir string) ([]string, error) {
	entries, err := os.ReadDir(sourceDir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || e.Name() == outputSubdir {
			continue
		}
		if !e.Type().IsRegular() && !isRegularSymlink(sourceDir, e) {
			continue
		}
		if IsImage(e.Name()) {
			files = append(files, filepath.Join(sourceDir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// isRegularSymlink follows a symlinked entry and reports whether it points
// at a regular file.
func isRegularSymlink(dir string, e os.DirEntry) bool {
	if e.Type()&os.ModeSymlink == 0 {
		return false
	}
	fi, err := os.Stat(filepath.Join(dir, e.Name()))
	return err == nil && fi.Mode().IsRegular()
}
