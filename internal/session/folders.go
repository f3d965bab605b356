package session

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/imalkevich/candle-to-screenshot/internal/model"
)

// Folders locates the processed tree for one dataset: one subfolder per
// labeling category. Presence of a screenshot copy in a subfolder is the
// label itself.
type Folders struct {
	Base string
}

// NewFolders builds the processed folder layout for a dataset.
func NewFolders(processedRoot string, ds model.Dataset) Folders {
	return Folders{Base: filepath.Join(processedRoot, ds.Name())}
}

// Dir returns the folder for a category.
func (f Folders) Dir(c model.Category) string {
	return filepath.Join(f.Base, string(c))
}

// Ensure creates the base folder and every category subfolder.
func (f Folders) Ensure() error {
	for _, c := range model.Categories {
		if err := os.MkdirAll(f.Dir(c), 0755); err != nil {
			return fmt.Errorf("create processed dir %s: %w", f.Dir(c), err)
		}
	}
	return nil
}

// List returns the screenshot names labeled into a category, sorted by
// filename (which orders them by embedded bar index).
func (f Folders) List(c model.Category) ([]string, error) {
	entries, err := os.ReadDir(f.Dir(c))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read processed dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasPrefix(name, "candle_") && strings.HasSuffix(name, ".png") {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// Clear removes every labeled copy, keeping the folders. Used by the
// restart flag; the source screenshots are untouched.
func (f Folders) Clear() error {
	removed := 0
	for _, c := range model.Categories {
		names, err := f.List(c)
		if err != nil {
			return err
		}
		for _, name := range names {
			if err := os.Remove(filepath.Join(f.Dir(c), name)); err != nil {
				log.Printf("[WARN] could not remove %s: %v", name, err)
				continue
			}
			removed++
		}
	}
	if removed > 0 {
		log.Printf("[INFO] restart requested: removed %d previously labeled images", removed)
	} else {
		log.Println("[INFO] restart requested: no existing labeled images to remove")
	}
	return nil
}
