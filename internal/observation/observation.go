// Package observation turns rendered arena frames into the fixed-size
// grayscale arrays learning agents consume.
package observation

import (
	"image"

	"golang.org/x/image/draw"
)

// DefaultSize is the edge length of a processed observation.
const DefaultSize = 84

// Observation is a normalized grayscale frame, row-major, values in [0, 1].
type Observation struct {
	Width  int
	Height int
	Pixels []float32
}

// At returns the value at (x, y).
func (o Observation) At(x, y int) float32 {
	return o.Pixels[y*o.Width+x]
}

// Preprocessor converts frames to observations. It reuses its intermediate
// buffers and is not safe for concurrent use.
type Preprocessor struct {
	size   int
	scaler draw.Interpolator
	gray   *image.Gray
	small  *image.Gray
}

// New creates a preprocessor producing size x size observations.
func New(size int) *Preprocessor {
	if size <= 0 {
		size = DefaultSize
	}
	return &Preprocessor{
		size:   size,
		scaler: draw.BiLinear,
		small:  image.NewGray(image.Rect(0, 0, size, size)),
	}
}

// Size returns the observation edge length.
func (p *Preprocessor) Size() int {
	return p.size
}

// Gray converts src to luminance and scales it down. The returned image is
// reused by the next call.
func (p *Preprocessor) Gray(src image.Image) *image.Gray {
	b := src.Bounds()
	if p.gray == nil || p.gray.Bounds() != b {
		p.gray = image.NewGray(b)
	}
	// ITU-R 601 luma weights, as color.GrayModel applies them
	draw.Draw(p.gray, b, src, b.Min, draw.Src)
	p.scaler.Scale(p.small, p.small.Bounds(), p.gray, b, draw.Src, nil)
	return p.small
}

// Process converts src into a new normalized observation.
func (p *Preprocessor) Process(src image.Image) Observation {
	g := p.Gray(src)
	obs := Observation{
		Width:  p.size,
		Height: p.size,
		Pixels: make([]float32, p.size*p.size),
	}
	for y := range p.size {
		row := g.Pix[y*g.Stride : y*g.Stride+p.size]
		for x, v := range row {
			obs.Pixels[y*p.size+x] = float32(v) / 255
		}
	}
	return obs
}

// Preprocess converts a single frame with a one-off DefaultSize preprocessor.
func Preprocess(src image.Image) Observation {
	return New(DefaultSize).Process(src)
}
