package tankbattle

import (
	"github.com/vovakirdan/tui-tankbattle/internal/core"
)

// EntityID identifies an entity for its whole lifetime. IDs are never reused
// within one world.
type EntityID uint32

// Entity is one record of the arena. Fields that do not apply to the entity's
// Kind stay zero.
type Entity struct {
	ID   EntityID
	Kind Kind
	Dead bool

	Cell   core.Point // Resting cell (tanks, walls, base)
	Target core.Point // Cell a tank is moving into; equals Cell at rest
	Pixel  core.Point // Top-left corner in pixels
	Size   int        // Square footprint in pixels

	Dir         Direction
	Side        Side
	Speed       int // Pixels per tick
	LoadingTime int // Ticks between shots
	LastFire    int // Frame of the last accepted shot

	Wall WallKind

	Count     int // Explosion ticks elapsed
	AnimFrame int // Explosion animation frame, done at 3
}

// Rect returns the pixel bounding box.
func (e *Entity) Rect() core.Rect {
	return core.Square(e.Pixel, e.Size)
}

// Moving reports whether a tank is mid-transition.
func (e *Entity) Moving() bool {
	return e.Cell != e.Target
}

// Occupies reports whether the entity holds the cell for movement purposes.
// Tanks hold both their resting and target cell.
func (e *Entity) Occupies(p core.Point) bool {
	switch e.Kind {
	case KindTank:
		return e.Cell == p || e.Target == p
	case KindWall, KindBase:
		return e.Cell == p
	default:
		return false
	}
}

// World is the arena holding every entity of one simulation.
// Removal only marks records dead; Compact drops them. Pointers returned by
// At are invalidated by Add and Compact.
type World struct {
	entities []Entity
	nextID   EntityID
}

// Reset drops every entity. IDs keep increasing.
func (w *World) Reset() {
	w.entities = w.entities[:0]
}

// Add appends an entity and returns its ID.
func (w *World) Add(e Entity) EntityID {
	w.nextID++
	e.ID = w.nextID
	e.Dead = false
	w.entities = append(w.entities, e)
	return e.ID
}

// Len returns the number of records, dead ones included.
func (w *World) Len() int {
	return len(w.entities)
}

// At returns the record at index i.
func (w *World) At(i int) *Entity {
	return &w.entities[i]
}

// Find returns the index of a live entity.
func (w *World) Find(id EntityID) (int, bool) {
	if id == 0 {
		return 0, false
	}
	for i := range w.entities {
		if w.entities[i].ID == id && !w.entities[i].Dead {
			return i, true
		}
	}
	return 0, false
}

// Get returns a live entity by ID, or nil.
func (w *World) Get(id EntityID) *Entity {
	if i, ok := w.Find(id); ok {
		return &w.entities[i]
	}
	return nil
}

// Kill marks the record at index i as removed.
func (w *World) Kill(i int) {
	w.entities[i].Dead = true
}

// Compact drops dead records, keeping the order of the live ones.
func (w *World) Compact() {
	n := 0
	for i := range w.entities {
		if !w.entities[i].Dead {
			w.entities[n] = w.entities[i]
			n++
		}
	}
	clear(w.entities[n:])
	w.entities = w.entities[:n]
}

// Count returns how many live entities match.
func (w *World) Count(match func(*Entity) bool) int {
	n := 0
	for i := range w.entities {
		if !w.entities[i].Dead && match(&w.entities[i]) {
			n++
		}
	}
	return n
}

// Occupied reports whether any live tank, wall or base other than skip holds p.
// Tanks are checked first, then walls, then the base.
func (w *World) Occupied(p core.Point, skip EntityID) bool {
	for _, kind := range [...]Kind{KindTank, KindWall, KindBase} {
		for i := range w.entities {
			e := &w.entities[i]
			if e.Dead || e.Kind != kind || e.ID == skip {
				continue
			}
			if e.Occupies(p) {
				return true
			}
		}
	}
	return false
}

// Snapshot copies the live entities.
func (w *World) Snapshot() []Entity {
	out := make([]Entity, 0, len(w.entities))
	for i := range w.entities {
		if !w.entities[i].Dead {
			out = append(out, w.entities[i])
		}
	}
	return out
}

// Group filters used across the engine.

func isTank(e *Entity) bool   { return e.Kind == KindTank }
func isEnemy(e *Entity) bool  { return e.Kind == KindTank && e.Side == SideEnemy }
func isPlayer(e *Entity) bool { return e.Kind == KindTank && e.Side.IsPlayer() }
func isBullet(e *Entity) bool { return e.Kind == KindBullet }
func isWall(e *Entity) bool   { return e.Kind == KindWall }

func isPlayerBullet(e *Entity) bool { return e.Kind == KindBullet && e.Side.IsPlayer() }
func isEnemyBullet(e *Entity) bool  { return e.Kind == KindBullet && e.Side == SideEnemy }
