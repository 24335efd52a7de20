package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tankbattle/internal/core"
)

// KeyMapper translates Bubble Tea key messages to per-player actions.
//
// Single player: arrows move, space fires.
// Two players: player 1 uses arrows and enter, player 2 uses WASD and space.
type KeyMapper struct {
	twoPlayers bool
}

// NewKeyMapper creates a key mapper for the given number of local players.
func NewKeyMapper(players int) *KeyMapper {
	return &KeyMapper{twoPlayers: players > 1}
}

// TwoPlayers reports whether the two player layout is active.
func (km *KeyMapper) TwoPlayers() bool {
	return km.twoPlayers
}

var arrowKeys = map[string]core.Action{
	"left":  core.ActionLeft,
	"right": core.ActionRight,
	"up":    core.ActionUp,
	"down":  core.ActionDown,
}

var wasdKeys = map[string]core.Action{
	"a": core.ActionLeft,
	"d": core.ActionRight,
	"w": core.ActionUp,
	"s": core.ActionDown,
}

// MapKey returns the player and action for a key. Global actions (pause,
// restart, quit) belong to player 1. isQuit is set for quit requests.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (player core.PlayerID, action core.Action, isQuit bool) {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return core.Player1, core.ActionQuit, true
	case "p", "esc":
		return core.Player1, core.ActionPause, false
	case "r":
		return core.Player1, core.ActionRestart, false
	}

	if a, ok := arrowKeys[key]; ok {
		return core.Player1, a, false
	}

	if !km.twoPlayers {
		if key == " " {
			return core.Player1, core.ActionFire, false
		}
		return core.Player1, core.ActionNone, false
	}

	if a, ok := wasdKeys[key]; ok {
		return core.Player2, a, false
	}
	switch key {
	case "enter":
		return core.Player1, core.ActionFire, false
	case " ":
		return core.Player2, core.ActionFire, false
	}

	return core.Player1, core.ActionNone, false
}

// MapKeyToFrame records a key in the input frame.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.MultiInputFrame) bool {
	player, action, isQuit := km.MapKey(msg)
	if action != core.ActionNone {
		frame.Set(player, action)
	}
	return isQuit
}

// ControlsHint describes the active layout in one line.
func (km *KeyMapper) ControlsHint() string {
	if km.twoPlayers {
		return "P1: arrows+enter  P2: WASD+space  P: pause  Q: quit"
	}
	return "Arrows: move  Space: fire  P: pause  Q: quit"
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k":
		return MenuActionUp
	case "s", "down", "j":
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}
	return MenuActionNone
}
