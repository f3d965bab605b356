package chart

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ListScreenshots returns the full paths of the rendered screenshots in a
// folder, sorted by filename. A missing folder yields an empty list.
func ListScreenshots(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read screenshot dir: %w", err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasPrefix(name, "candle_") && strings.HasSuffix(name, ".png") {
			paths = append(paths, filepath.Join(dir, name))
		}
	}
	sort.Strings(paths)
	return paths, nil
}
