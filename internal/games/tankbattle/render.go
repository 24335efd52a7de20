package tankbattle

import (
	"fmt"

	"github.com/vovakirdan/tui-tankbattle/internal/core"
)

// Each map tile is drawn two columns wide and one row high.
const (
	tileCols  = 2
	hudHeight = 2
)

// Render draws the arena into the terminal screen buffer.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.env == nil {
		g.renderOverlay(dst, "Cannot start game", fmt.Sprint(g.err))
		return
	}

	g.renderHUD(dst)

	n := g.env.Config().Engine.MapTiles
	mapW, mapH := n*tileCols, n
	if dst.Width() < mapW || dst.Height() < mapH+hudHeight {
		g.renderOverlay(dst, "Window too small", fmt.Sprintf("Need %dx%d", mapW, mapH+hudHeight))
		return
	}

	ox := (dst.Width() - mapW) / 2
	oy := hudHeight
	tile := g.env.Config().Engine.TileSize

	entities := g.env.Entities()
	for _, layer := range [...]Kind{KindBase, KindWall, KindTank, KindBullet, KindExplosion} {
		for i := range entities {
			e := &entities[i]
			if e.Kind != layer {
				continue
			}
			drawGlyph(dst, e, ox, oy, tile)
		}
	}

	switch state := g.State(); {
	case state.GameOver:
		g.renderOverlay(dst, "Game Over: "+state.Reason, fmt.Sprintf("Score %d  R: restart  B: menu", state.Score))
	case state.Paused:
		g.renderOverlay(dst, "Paused", "P: continue  B: menu")
	}
}

// drawGlyph draws one entity at its pixel centre.
func drawGlyph(dst *core.Screen, e *Entity, ox, oy, tile int) {
	cx, cy := e.Rect().Center()
	row := oy + cy/tile

	if e.Kind == KindBullet {
		// Bullets use half-tile horizontal resolution
		col := ox + cx*tileCols/tile
		dst.SetColored(col, row, '•', core.ColorBrightYellow)
		return
	}

	col := ox + (cx/tile)*tileCols
	left, right, color := glyph(e)
	dst.SetColored(col, row, left, color)
	dst.SetColored(col+1, row, right, color)
}

func glyph(e *Entity) (rune, rune, core.Color) {
	switch e.Kind {
	case KindBase:
		return '⌂', '⌂', core.ColorOrange
	case KindWall:
		switch e.Wall {
		case WallSoft:
			return '▓', '▓', core.ColorBrick
		case WallTransparent:
			return '░', '░', core.ColorGreen
		default:
			return '█', '█', core.ColorGray
		}
	case KindTank:
		color := core.ColorWhite
		switch e.Side {
		case SidePlayer1:
			color = core.ColorBrightYellow
		case SidePlayer2:
			color = core.ColorBrightGreen
		}
		switch e.Dir {
		case DirLeft:
			return '◄', '■', color
		case DirRight:
			return '■', '►', color
		case DirUp:
			return '▲', '▲', color
		default:
			return '▼', '▼', color
		}
	default:
		if e.AnimFrame%2 == 0 {
			return '✶', '✶', core.ColorBrightRed
		}
		return '*', '*', core.ColorOrange
	}
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *core.Screen) {
	s := g.env.Score()
	hud := fmt.Sprintf(" %s  Score: %d  P1: %d", g.Title(), s.Total, s.P1)
	if g.twoPlayers {
		hud += fmt.Sprintf("  P2: %d", s.P2)
	}
	dst.DrawText(0, 0, hud)

	for x := range dst.Width() {
		dst.Set(x, 1, '─')
	}
}

// renderOverlay draws a centered overlay message.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	w := max(len(line1), len(line2)) + 4
	h := 5
	box := core.NewRect((dst.Width()-w)/2, (dst.Height()-h)/2, w, h)

	dst.FillRect(box, ' ')
	dst.DrawBox(box)
	dst.DrawTextCentered(box.Y+1, line1)
	dst.DrawTextCentered(box.Y+3, line2)
}
