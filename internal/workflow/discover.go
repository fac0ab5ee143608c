package workflow

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"av1batch/internal/services"
)

// Discover lists the files directly inside dir whose extension is one of
// extensions, sorted by name. Subdirectories are not descended.
func Discover(dir string, extensions []string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, services.Wrap(services.ErrNotADirectory, StageDiscover, "stat source directory", dir, err)
	}
	if !info.IsDir() {
		return nil, services.Wrap(services.ErrNotADirectory, StageDiscover, "stat source directory", dir+" is not a directory", nil)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, services.Wrap(services.ErrNotADirectory, StageDiscover, "read source directory", dir, err)
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if !slices.Contains(extensions, ext) {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	slices.Sort(files)
	return files, nil
}
