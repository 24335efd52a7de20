package tankbattle

import (
	"github.com/vovakirdan/tui-tankbattle/internal/config"
	"github.com/vovakirdan/tui-tankbattle/internal/core"
)

// TankSnapshot is the observable state of one tank.
type TankSnapshot struct {
	Side     Side
	Cell     core.Point
	Target   core.Point
	Pixel    core.Point
	Dir      Direction
	LastFire int
}

// Snapshot captures the simulation state for determinism testing and replay.
type Snapshot struct {
	Frame      int
	Score      Scores
	Terminal   bool
	Reason     string
	Tanks      []TankSnapshot // Arena order
	Bullets    int
	Walls      int
	Explosions int
	BaseAlive  bool
	Enemy      config.EnemyStats // Stats the next spawned enemy gets
}

// Snapshot returns the current simulation snapshot.
func (e *Engine) Snapshot() Snapshot {
	s := Snapshot{
		Frame:    e.frame,
		Score:    e.Score(),
		Terminal: e.terminal,
		Reason:   e.reason,
		Enemy:    e.EnemyStats(),
	}

	for i := range e.world.Len() {
		ent := e.world.At(i)
		if ent.Dead {
			continue
		}
		switch ent.Kind {
		case KindTank:
			s.Tanks = append(s.Tanks, TankSnapshot{
				Side:     ent.Side,
				Cell:     ent.Cell,
				Target:   ent.Target,
				Pixel:    ent.Pixel,
				Dir:      ent.Dir,
				LastFire: ent.LastFire,
			})
		case KindBullet:
			s.Bullets++
		case KindWall:
			s.Walls++
		case KindExplosion:
			s.Explosions++
		case KindBase:
			s.BaseAlive = true
		}
	}
	return s
}

// Snapshot returns the current simulation snapshot.
func (e *Env) Snapshot() Snapshot {
	return e.engine.Snapshot()
}
