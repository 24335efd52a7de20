package stages

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Loader reads user-authored stages from a directory tree.
type Loader struct {
	Root string
}

// NewLoader creates a new stage loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans and loads all stage files.
// Returns stages sorted by ID for deterministic ordering.
func (l *Loader) LoadAll() ([]Stage, error) {
	var stages []Stage

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}

		stage, err := l.LoadFile(path)
		if err != nil {
			return err
		}
		stages = append(stages, stage)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	sort.Slice(stages, func(i, j int) bool {
		return stages[i].ID < stages[j].ID
	})
	return stages, nil
}

// LoadFile loads a single stage file.
func (l *Loader) LoadFile(path string) (Stage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Stage{}, fmt.Errorf("reading file %s: %w", path, err)
	}
	stage, err := ParseYAML(data)
	if err != nil {
		return Stage{}, fmt.Errorf("parsing file %s: %w", path, err)
	}
	return stage, nil
}
