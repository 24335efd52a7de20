// Package tankbattle implements a deterministic, frame-stepped tank combat
// simulation. It can be played in the terminal through the registry.Game
// adapter or driven programmatically as a reinforcement learning environment.
package tankbattle

import (
	"github.com/vovakirdan/tui-tankbattle/internal/core"
	"github.com/vovakirdan/tui-tankbattle/internal/games/tankbattle/stages"
)

// Action is a programmatic control input for one tank.
type Action int

const (
	ActionNone  Action = -1
	ActionLeft  Action = 0
	ActionRight Action = 1
	ActionUp    Action = 2
	ActionDown  Action = 3
	ActionFire  Action = 4
)

// NumActions is the size of the action space.
const NumActions = 5

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionFire:
		return "Fire"
	default:
		return "Invalid"
	}
}

// Direction returns the movement direction of the action, if it has one.
func (a Action) Direction() (Direction, bool) {
	if a < ActionLeft || a > ActionDown {
		return 0, false
	}
	return Direction(a), true
}

// ActionFromCore maps a platform input action to a tank action.
func ActionFromCore(a core.Action) Action {
	switch a {
	case core.ActionLeft:
		return ActionLeft
	case core.ActionRight:
		return ActionRight
	case core.ActionUp:
		return ActionUp
	case core.ActionDown:
		return ActionDown
	case core.ActionFire:
		return ActionFire
	default:
		return ActionNone
	}
}

// Direction is the facing or travel direction of a tank or bullet.
type Direction uint8

const (
	DirLeft Direction = iota
	DirRight
	DirUp
	DirDown
)

// Delta returns the unit grid offset of the direction.
func (d Direction) Delta() core.Point {
	switch d {
	case DirLeft:
		return core.Point{X: -1}
	case DirRight:
		return core.Point{X: 1}
	case DirUp:
		return core.Point{Y: -1}
	default:
		return core.Point{Y: 1}
	}
}

func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	case DirUp:
		return "up"
	default:
		return "down"
	}
}

// Side is the ownership class of a tank or bullet.
type Side uint8

const (
	SidePlayer1 Side = iota
	SidePlayer2
	SideEnemy
)

// IsPlayer reports whether the side belongs to a player.
func (s Side) IsPlayer() bool {
	return s == SidePlayer1 || s == SidePlayer2
}

// Opposes reports whether bullets of side s can hit entities of side o.
// The two players are allies.
func (s Side) Opposes(o Side) bool {
	return s.IsPlayer() != o.IsPlayer()
}

func (s Side) String() string {
	switch s {
	case SidePlayer1:
		return "p1"
	case SidePlayer2:
		return "p2"
	default:
		return "enemy"
	}
}

// Kind discriminates entity records in the world arena.
type Kind uint8

const (
	KindTank Kind = iota
	KindBullet
	KindWall
	KindBase
	KindExplosion
)

func (k Kind) String() string {
	switch k {
	case KindTank:
		return "tank"
	case KindBullet:
		return "bullet"
	case KindWall:
		return "wall"
	case KindBase:
		return "base"
	default:
		return "explosion"
	}
}

// WallKind controls how a wall reacts to bullets.
type WallKind uint8

const (
	WallHard        WallKind = iota // Stops bullets, never destroyed
	WallSoft                        // Stops bullets, destroyed by the first hit
	WallTransparent                 // Bullets pass through
)

func wallKindFromTile(t stages.Tile) (WallKind, bool) {
	switch t {
	case stages.TileHard:
		return WallHard, true
	case stages.TileSoft:
		return WallSoft, true
	case stages.TileTransparent:
		return WallTransparent, true
	default:
		return 0, false
	}
}

// Rewards is the pair of reward values drained after a step.
type Rewards struct {
	P1 int
	P2 int
}
