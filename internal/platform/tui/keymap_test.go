package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tankbattle/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKeySinglePlayer(t *testing.T) {
	km := NewKeyMapper(1)

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		player core.PlayerID
		action core.Action
		quit   bool
	}{
		{"arrow up", tea.KeyMsg{Type: tea.KeyUp}, core.Player1, core.ActionUp, false},
		{"arrow left", tea.KeyMsg{Type: tea.KeyLeft}, core.Player1, core.ActionLeft, false},
		{"space fires", tea.KeyMsg{Type: tea.KeySpace}, core.Player1, core.ActionFire, false},
		{"wasd ignored", runeKey('w'), core.Player1, core.ActionNone, false},
		{"enter ignored", tea.KeyMsg{Type: tea.KeyEnter}, core.Player1, core.ActionNone, false},
		{"pause", runeKey('p'), core.Player1, core.ActionPause, false},
		{"escape pauses", tea.KeyMsg{Type: tea.KeyEsc}, core.Player1, core.ActionPause, false},
		{"restart", runeKey('r'), core.Player1, core.ActionRestart, false},
		{"quit", runeKey('q'), core.Player1, core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.Player1, core.ActionQuit, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			player, action, quit := km.MapKey(tt.msg)
			if player != tt.player || action != tt.action || quit != tt.quit {
				t.Errorf("MapKey = (%d, %v, %v), want (%d, %v, %v)",
					player, action, quit, tt.player, tt.action, tt.quit)
			}
		})
	}
}

func TestMapKeyTwoPlayers(t *testing.T) {
	km := NewKeyMapper(2)
	if !km.TwoPlayers() {
		t.Fatal("expected two player layout")
	}

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		player core.PlayerID
		action core.Action
	}{
		{"p1 arrow", tea.KeyMsg{Type: tea.KeyDown}, core.Player1, core.ActionDown},
		{"p1 enter fires", tea.KeyMsg{Type: tea.KeyEnter}, core.Player1, core.ActionFire},
		{"p2 w", runeKey('w'), core.Player2, core.ActionUp},
		{"p2 a", runeKey('a'), core.Player2, core.ActionLeft},
		{"p2 s", runeKey('s'), core.Player2, core.ActionDown},
		{"p2 d", runeKey('d'), core.Player2, core.ActionRight},
		{"p2 space fires", tea.KeyMsg{Type: tea.KeySpace}, core.Player2, core.ActionFire},
		{"unknown key", runeKey('x'), core.Player1, core.ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			player, action, _ := km.MapKey(tt.msg)
			if player != tt.player || action != tt.action {
				t.Errorf("MapKey = (%d, %v), want (%d, %v)", player, action, tt.player, tt.action)
			}
		})
	}
}

func TestMapKeyToFrame(t *testing.T) {
	km := NewKeyMapper(2)
	frame := core.NewMultiInputFrame()

	if km.MapKeyToFrame(tea.KeyMsg{Type: tea.KeyLeft}, &frame) {
		t.Fatal("arrow reported as quit")
	}
	km.MapKeyToFrame(runeKey('d'), &frame)
	km.MapKeyToFrame(runeKey('x'), &frame)

	if !frame.Player1().Has(core.ActionLeft) {
		t.Error("player 1 left not recorded")
	}
	if !frame.Player2().Has(core.ActionRight) {
		t.Error("player 2 right not recorded")
	}
	if frame.Player1().Has(core.ActionNone) {
		t.Error("unmapped key should not be recorded")
	}
	if !km.MapKeyToFrame(runeKey('q'), &frame) {
		t.Error("q should request quit")
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper(1)

	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{runeKey('k'), MenuActionUp},
		{tea.KeyMsg{Type: tea.KeyDown}, MenuActionDown},
		{runeKey('j'), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{runeKey('b'), MenuActionBack},
		{runeKey('q'), MenuActionQuit},
		{runeKey('x'), MenuActionNone},
	}

	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.want {
			t.Errorf("MapKeyToMenuAction(%q) = %d, want %d", tt.msg.String(), got, tt.want)
		}
	}
}
