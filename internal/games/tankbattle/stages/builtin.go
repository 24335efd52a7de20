package stages

import (
	"embed"
	"io/fs"
	"sort"
	"sync"
)

//go:embed data/*.yaml
var builtinFS embed.FS

var (
	builtinOnce   sync.Once
	builtinStages []Stage
)

// Builtin returns the stages shipped with the binary, sorted by ID.
// Files that fail to parse are skipped; the stages test keeps them valid.
func Builtin() []Stage {
	builtinOnce.Do(func() {
		entries, err := fs.ReadDir(builtinFS, "data")
		if err != nil {
			return
		}
		for _, e := range entries {
			data, err := builtinFS.ReadFile("data/" + e.Name())
			if err != nil {
				continue
			}
			stage, err := ParseYAML(data)
			if err != nil {
				continue
			}
			builtinStages = append(builtinStages, stage)
		}
		sort.Slice(builtinStages, func(i, j int) bool {
			return builtinStages[i].ID < builtinStages[j].ID
		})
	})
	return builtinStages
}

// Get returns a builtin stage by index (wraps around if index >= count).
// The second result is false when no stages are available.
func Get(index int) (Stage, bool) {
	stages := Builtin()
	if len(stages) == 0 {
		return Stage{}, false
	}
	if index < 0 {
		index = -index
	}
	return stages[index%len(stages)], true
}

// Count returns the number of builtin stages.
func Count() int {
	return len(Builtin())
}
