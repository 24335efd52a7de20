package tankbattle

import (
	"testing"

	"github.com/vovakirdan/tui-tankbattle/internal/core"
)

// newTestEnv builds an arena without interior walls and a fixed seed.
func newTestEnv(t *testing.T, twoPlayers bool, enemies int) *Env {
	t.Helper()
	opts := DefaultOptions()
	opts.Seed = 42
	opts.Config.Episode.Stage = -1
	opts.Config.Episode.TwoPlayers = twoPlayers
	opts.Config.Episode.NumOfEnemies = enemies

	env, err := New(opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return env
}

// clearEnemies removes every enemy tank and bullet.
func clearEnemies(e *Engine) {
	for i := range e.world.Len() {
		ent := e.world.At(i)
		if isEnemy(ent) || isEnemyBullet(ent) {
			e.world.Kill(i)
		}
	}
	e.world.Compact()
}

// player returns a live pointer to a player tank; invalid after Add.
func player(t *testing.T, e *Engine, side Side) *Entity {
	t.Helper()
	ent := e.world.Get(e.PlayerID(side))
	if ent == nil {
		t.Fatalf("player %v not in play", side)
	}
	return ent
}

// placeTank moves a tank to rest at cell.
func placeTank(ent *Entity, cell core.Point, dir Direction, tile int) {
	ent.Cell = cell
	ent.Target = cell
	ent.Pixel = cell.Scale(tile)
	ent.Dir = dir
}

func countWalls(e *Engine) int {
	return e.world.Count(isWall)
}

func countBullets(e *Engine) int {
	return e.world.Count(isBullet)
}

func pt(x, y int) core.Point {
	return core.Point{X: x, Y: y}
}
