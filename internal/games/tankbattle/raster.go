package tankbattle

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Palette used by the rasterizer.
var (
	colorBackground  = color.RGBA{0, 0, 0, 255}
	colorHardWall    = color.RGBA{128, 128, 128, 255}
	colorSoftWall    = color.RGBA{178, 34, 34, 255}
	colorMortar      = color.RGBA{96, 24, 24, 255}
	colorFoliage     = color.RGBA{34, 139, 34, 255}
	colorBase        = color.RGBA{255, 140, 0, 255}
	colorBaseCore    = color.RGBA{255, 255, 255, 255}
	colorPlayer1     = color.RGBA{255, 215, 0, 255}
	colorPlayer2     = color.RGBA{50, 205, 50, 255}
	colorEnemy       = color.RGBA{192, 192, 192, 255}
	colorBarrel      = color.RGBA{64, 64, 64, 255}
	colorBullet      = color.RGBA{255, 255, 255, 255}
	colorExplosion   = color.RGBA{255, 69, 0, 255}
	colorExplosionHi = color.RGBA{255, 255, 0, 255}
)

// Rasterize draws the entities into dst. Layers, bottom to top: base,
// solid walls, tanks, bullets, transparent walls, explosions.
func Rasterize(dst *image.RGBA, entities []Entity, tile int) {
	fill(dst, dst.Bounds(), colorBackground)

	layers := [...]func(*Entity) bool{
		func(e *Entity) bool { return e.Kind == KindBase },
		func(e *Entity) bool { return e.Kind == KindWall && e.Wall != WallTransparent },
		func(e *Entity) bool { return e.Kind == KindTank },
		func(e *Entity) bool { return e.Kind == KindBullet },
		func(e *Entity) bool { return e.Kind == KindWall && e.Wall == WallTransparent },
		func(e *Entity) bool { return e.Kind == KindExplosion },
	}

	for _, layer := range layers {
		for i := range entities {
			ent := &entities[i]
			if ent.Dead || !layer(ent) {
				continue
			}
			drawEntity(dst, ent, tile)
		}
	}
}

func drawEntity(dst *image.RGBA, e *Entity, tile int) {
	r := toRect(e)

	switch e.Kind {
	case KindBase:
		fill(dst, r, colorBase)
		fill(dst, inset(r, tile*3/8), colorBaseCore)

	case KindWall:
		switch e.Wall {
		case WallHard:
			fill(dst, r, colorHardWall)
		case WallSoft:
			fill(dst, r, colorSoftWall)
			step := max(1, tile/4)
			for y := r.Min.Y + step - 1; y < r.Max.Y; y += step {
				fill(dst, image.Rect(r.Min.X, y, r.Max.X, y+1), colorMortar)
			}
		case WallTransparent:
			// Checkerboard so the tanks underneath stay partly visible
			step := max(1, tile/8)
			for y := r.Min.Y; y < r.Max.Y; y += step {
				for x := r.Min.X; x < r.Max.X; x += step {
					if ((x-r.Min.X)/step+(y-r.Min.Y)/step)%2 == 0 {
						fill(dst, image.Rect(x, y, x+step, y+step).Intersect(r), colorFoliage)
					}
				}
			}
		}

	case KindTank:
		body := colorEnemy
		switch e.Side {
		case SidePlayer1:
			body = colorPlayer1
		case SidePlayer2:
			body = colorPlayer2
		}
		fill(dst, inset(r, tile/8), body)

		// Barrel from the centre toward the facing direction
		cx, cy := (r.Min.X+r.Max.X)/2, (r.Min.Y+r.Max.Y)/2
		half := max(1, tile/8)
		var barrel image.Rectangle
		switch e.Dir {
		case DirLeft:
			barrel = image.Rect(r.Min.X, cy-half, cx, cy+half)
		case DirRight:
			barrel = image.Rect(cx, cy-half, r.Max.X, cy+half)
		case DirUp:
			barrel = image.Rect(cx-half, r.Min.Y, cx+half, cy)
		default:
			barrel = image.Rect(cx-half, cy, cx+half, r.Max.Y)
		}
		fill(dst, barrel, colorBarrel)

	case KindBullet:
		fill(dst, r, colorBullet)

	case KindExplosion:
		grow := tile * (explosionFrames - e.AnimFrame) / (2 * explosionFrames)
		fill(dst, inset(r, grow/2), colorExplosion)
		fill(dst, inset(r, grow/2+tile/4), colorExplosionHi)
	}
}

func toRect(e *Entity) image.Rectangle {
	r := e.Rect()
	return image.Rect(r.X, r.Y, r.Right(), r.Bottom())
}

func inset(r image.Rectangle, n int) image.Rectangle {
	out := r.Inset(n)
	if out.Empty() {
		return image.Rectangle{}
	}
	return out
}

func fill(dst *image.RGBA, r image.Rectangle, c color.RGBA) {
	r = r.Intersect(dst.Bounds())
	if r.Empty() {
		return
	}
	draw.Draw(dst, r, image.NewUniform(c), image.Point{}, draw.Src)
}
