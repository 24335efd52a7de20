// Package stages provides the wall layouts the tank battle engine places
// on reset. Stages are authored as ASCII grids inside YAML files.
package stages

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Tile is the content of one stage cell.
type Tile uint8

const (
	TileEmpty       Tile = iota
	TileHard             // '#': blocks movement and bullets, never destroyed
	TileSoft             // '%': blocks movement and bullets, destroyed by one hit
	TileTransparent      // '~': blocks movement, bullets pass through
)

// String returns the layout character for the tile.
func (t Tile) String() string {
	switch t {
	case TileHard:
		return "#"
	case TileSoft:
		return "%"
	case TileTransparent:
		return "~"
	default:
		return "."
	}
}

// ErrInvalidStage is wrapped by every layout validation failure.
var ErrInvalidStage = errors.New("invalid stage")

// Stage is a parsed wall layout. The outer ring of the layout is ignored;
// the engine always surrounds the arena with hard walls.
type Stage struct {
	ID    string
	Name  string
	Size  int
	Tiles [][]Tile // [row][col]
}

// At returns the tile at (x, y), or TileEmpty outside the layout.
func (s Stage) At(x, y int) Tile {
	if y < 0 || y >= len(s.Tiles) || x < 0 || x >= len(s.Tiles[y]) {
		return TileEmpty
	}
	return s.Tiles[y][x]
}

// Cell is a stage position holding a wall.
type Cell struct {
	X, Y int
	Tile Tile
}

// Walls lists the interior wall cells in row-major order.
func (s Stage) Walls() []Cell {
	var cells []Cell
	for y := 1; y < s.Size-1; y++ {
		for x := 1; x < s.Size-1; x++ {
			if t := s.At(x, y); t != TileEmpty {
				cells = append(cells, Cell{X: x, Y: y, Tile: t})
			}
		}
	}
	return cells
}

// Reserved returns the cells the engine places the base and player tanks on
// for a map of the given size.
func Reserved(size int) [][2]int {
	return [][2]int{
		{size / 2, size - 2},
		{size/2 - 2, size - 2},
		{size/2 + 2, size - 2},
	}
}

// Validate checks that the stage fits a map of the given size and keeps the
// base and player spawn cells clear.
func (s Stage) Validate(size int) error {
	if s.Size != size {
		return fmt.Errorf("%w: stage %q is %dx%d, map needs %dx%d",
			ErrInvalidStage, s.ID, s.Size, s.Size, size, size)
	}
	for _, c := range Reserved(size) {
		if t := s.At(c[0], c[1]); t != TileEmpty {
			return fmt.Errorf("%w: stage %q has %s on reserved cell (%d,%d)",
				ErrInvalidStage, s.ID, t, c[0], c[1])
		}
	}
	return nil
}

// yamlStage is the on-disk stage format.
type yamlStage struct {
	ID     string   `yaml:"id"`
	Name   string   `yaml:"name"`
	Layout []string `yaml:"layout"`
}

// ParseYAML parses a stage file.
func ParseYAML(data []byte) (Stage, error) {
	var ys yamlStage
	if err := yaml.Unmarshal(data, &ys); err != nil {
		return Stage{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if ys.ID == "" {
		return Stage{}, fmt.Errorf("%w: missing id", ErrInvalidStage)
	}
	return ParseLayout(ys.ID, ys.Name, ys.Layout)
}

// ParseLayout builds a stage from an ASCII map.
// Characters:
//
//	'#' = hard wall
//	'%' = soft (destructible) wall
//	'~' = transparent wall
//	'.' or ' ' = empty
func ParseLayout(id, name string, lines []string) (Stage, error) {
	size := len(lines)
	if size == 0 {
		return Stage{}, fmt.Errorf("%w: stage %q has an empty layout", ErrInvalidStage, id)
	}

	stage := Stage{
		ID:    id,
		Name:  name,
		Size:  size,
		Tiles: make([][]Tile, size),
	}

	for row, line := range lines {
		if len(line) != size {
			return Stage{}, fmt.Errorf("%w: stage %q row %d has %d columns, want %d",
				ErrInvalidStage, id, row, len(line), size)
		}
		stage.Tiles[row] = make([]Tile, size)
		for col := range size {
			switch ch := line[col]; ch {
			case '#':
				stage.Tiles[row][col] = TileHard
			case '%':
				stage.Tiles[row][col] = TileSoft
			case '~':
				stage.Tiles[row][col] = TileTransparent
			case '.', ' ':
				stage.Tiles[row][col] = TileEmpty
			default:
				return Stage{}, fmt.Errorf("%w: stage %q has unknown tile %q at (%d,%d)",
					ErrInvalidStage, id, ch, col, row)
			}
		}
	}

	return stage, nil
}
