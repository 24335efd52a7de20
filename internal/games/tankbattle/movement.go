package tankbattle

import "github.com/vovakirdan/tui-tankbattle/internal/core"

// MoveResult is the outcome of a move request.
type MoveResult uint8

const (
	MoveAccepted MoveResult = iota
	MoveBlocked             // Target cell occupied; the tank still turns
	MoveBusy                // Tank is mid-transition
	MoveInvalid             // Action has no direction or the tank is gone
)

// tryMove requests a one-cell move for the tank at index i.
func (e *Engine) tryMove(i int, a Action) MoveResult {
	tank := e.world.At(i)
	dir, ok := a.Direction()
	if !ok || tank.Dead {
		return MoveInvalid
	}
	if tank.Moving() {
		return MoveBusy
	}

	tank.Dir = dir
	candidate := tank.Cell.Add(dir.Delta())
	if e.world.Occupied(candidate, tank.ID) {
		return MoveBlocked
	}
	tank.Target = candidate
	return MoveAccepted
}

// TryMove requests a move for the tank with the given ID and reports whether
// it was accepted.
func (e *Engine) TryMove(id EntityID, a Action) bool {
	i, ok := e.world.Find(id)
	if !ok {
		return false
	}
	return e.tryMove(i, a) == MoveAccepted
}

// animate advances tank transitions, bullet flight and explosion counters.
func (e *Engine) animate() {
	tile := e.cfg.Engine.TileSize
	arena := core.NewRect(0, 0, e.cfg.Engine.ScreenSize(), e.cfg.Engine.ScreenSize())

	for i := range e.world.Len() {
		ent := e.world.At(i)
		if ent.Dead {
			continue
		}

		switch ent.Kind {
		case KindTank:
			if !ent.Moving() {
				continue
			}
			d := ent.Target.Sub(ent.Cell)
			ent.Pixel.X += d.X * ent.Speed
			ent.Pixel.Y += d.Y * ent.Speed
			if ent.Pixel.X == ent.Target.X*tile && ent.Pixel.Y == ent.Target.Y*tile {
				ent.Cell = ent.Target
			}

		case KindBullet:
			d := ent.Dir.Delta()
			ent.Pixel.X += d.X * ent.Speed
			ent.Pixel.Y += d.Y * ent.Speed
			if !arena.Intersects(ent.Rect()) {
				e.world.Kill(i)
			}

		case KindExplosion:
			ent.Count++
			if ent.Count%e.cfg.Engine.ExplosionSpeed == 0 {
				ent.AnimFrame++
			}
		}
	}
}
