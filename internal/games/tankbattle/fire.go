package tankbattle

import (
	"github.com/vovakirdan/tui-tankbattle/internal/core"
)

// fire shoots from the tank at index i if its gun has reloaded.
func (e *Engine) fire(i int) bool {
	tank := e.world.At(i)
	if tank.Dead || tank.Kind != KindTank {
		return false
	}
	if e.frame-tank.LastFire <= tank.LoadingTime {
		return false
	}
	tank.LastFire = e.frame

	tile := e.cfg.Engine.TileSize
	size := e.cfg.Engine.BulletSize

	// Centred on the target cell, half a tile toward the muzzle
	centre := tile/2 - size/2
	pos := tank.Target.Scale(tile).
		Add(core.Point{X: centre, Y: centre}).
		Add(tank.Dir.Delta().Scale(tile / 2))

	e.world.Add(Entity{
		Kind:  KindBullet,
		Pixel: pos,
		Size:  size,
		Dir:   tank.Dir,
		Side:  tank.Side,
		Speed: e.cfg.Engine.BulletSpeed,
	})
	return true
}

// Fire shoots from the tank with the given ID and reports whether a bullet
// was spawned.
func (e *Engine) Fire(id EntityID) bool {
	i, ok := e.world.Find(id)
	if !ok {
		return false
	}
	return e.fire(i)
}
