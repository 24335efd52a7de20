package stages

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestBuiltinStagesValid(t *testing.T) {
	stages := Builtin()
	if len(stages) < 2 {
		t.Fatalf("expected at least 2 builtin stages, got %d", len(stages))
	}

	for _, s := range stages {
		if err := s.Validate(13); err != nil {
			t.Errorf("stage %s: %v", s.ID, err)
		}
		if len(s.Walls()) == 0 {
			t.Errorf("stage %s has no interior walls", s.ID)
		}
	}
}

func TestGetWraps(t *testing.T) {
	first, ok := Get(0)
	if !ok {
		t.Fatal("expected builtin stage 0")
	}
	wrapped, _ := Get(Count())
	if wrapped.ID != first.ID {
		t.Errorf("Get(Count()) = %s, want %s", wrapped.ID, first.ID)
	}
}

func TestParseLayout(t *testing.T) {
	s, err := ParseLayout("t", "Test", []string{
		"#######",
		"#.%~#.#",
		"#.....#",
		"#.....#",
		"#.....#",
		"#.....#",
		"#######",
	})
	if err != nil {
		t.Fatalf("ParseLayout: %v", err)
	}

	tests := []struct {
		x, y int
		want Tile
	}{
		{1, 1, TileEmpty},
		{2, 1, TileSoft},
		{3, 1, TileTransparent},
		{4, 1, TileHard},
		{0, 0, TileHard},
		{-1, 3, TileEmpty},
		{9, 9, TileEmpty},
	}
	for _, tt := range tests {
		if got := s.At(tt.x, tt.y); got != tt.want {
			t.Errorf("At(%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}

	// Border cells are not reported
	walls := s.Walls()
	if len(walls) != 3 {
		t.Errorf("expected 3 interior walls, got %d", len(walls))
	}
}

func TestParseLayoutErrors(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
	}{
		{"empty", nil},
		{"ragged", []string{"###", "##", "###"}},
		{"unknown tile", []string{"###", "#x#", "###"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseLayout("bad", "", tt.lines); !errors.Is(err, ErrInvalidStage) {
				t.Errorf("expected ErrInvalidStage, got %v", err)
			}
		})
	}
}

func TestValidateReservedCells(t *testing.T) {
	s, err := ParseLayout("blocked", "", []string{
		"#######",
		"#.....#",
		"#.....#",
		"#.....#",
		"#.....#",
		"#..%..#",
		"#######",
	})
	if err != nil {
		t.Fatal(err)
	}
	// The base sits at (3,5) on a 7x7 map
	if err := s.Validate(7); !errors.Is(err, ErrInvalidStage) {
		t.Errorf("expected reserved cell error, got %v", err)
	}
	if err := s.Validate(9); !errors.Is(err, ErrInvalidStage) {
		t.Errorf("expected size mismatch error, got %v", err)
	}
}

func TestLoaderLoadAll(t *testing.T) {
	dir := t.TempDir()
	stage := "id: b\nname: Second\nlayout:\n  - \"...\"\n  - \".#.\"\n  - \"...\"\n"
	if err := os.WriteFile(filepath.Join(dir, "b.yaml"), []byte(stage), 0o600); err != nil {
		t.Fatal(err)
	}
	other := "id: a\nlayout:\n  - \"..\"\n  - \"..\"\n"
	if err := os.WriteFile(filepath.Join(dir, "a.yml"), []byte(other), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o600); err != nil {
		t.Fatal(err)
	}

	stages, err := NewLoader(dir).LoadAll()
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(stages) != 2 {
		t.Fatalf("expected 2 stages, got %d", len(stages))
	}
	if stages[0].ID != "a" || stages[1].ID != "b" {
		t.Errorf("stages not sorted: %s, %s", stages[0].ID, stages[1].ID)
	}
	if stages[1].At(1, 1) != TileHard {
		t.Error("expected hard wall in the middle of stage b")
	}
}
