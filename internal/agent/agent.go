// Package agent drives tank battle environments without a human at the
// keyboard: simple policies and a headless episode runner.
package agent

import (
	"math/rand"

	"github.com/vovakirdan/tui-tankbattle/internal/games/tankbattle"
	"github.com/vovakirdan/tui-tankbattle/internal/observation"
)

// Agent picks the next action from a preprocessed observation.
type Agent interface {
	Act(obs observation.Observation) tankbattle.Action
}

// Random samples uniformly from the action space.
type Random struct {
	rng *rand.Rand
}

// NewRandom creates a random agent with its own seeded stream.
func NewRandom(seed int64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

// Act ignores the observation.
func (r *Random) Act(observation.Observation) tankbattle.Action {
	return tankbattle.Action(r.rng.Intn(tankbattle.NumActions))
}

// Fixed always returns the same action.
type Fixed tankbattle.Action

// Act returns the fixed action.
func (f Fixed) Act(observation.Observation) tankbattle.Action {
	return tankbattle.Action(f)
}

// Idle never acts.
var Idle Agent = Fixed(tankbattle.ActionNone)
