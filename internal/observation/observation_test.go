package observation

import (
	"image"
	"image/color"
	"testing"
)

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestProcessShapeAndRange(t *testing.T) {
	obs := Preprocess(solid(416, 416, color.RGBA{0, 0, 0, 255}))
	if obs.Width != DefaultSize || obs.Height != DefaultSize {
		t.Fatalf("size = %dx%d", obs.Width, obs.Height)
	}
	if len(obs.Pixels) != DefaultSize*DefaultSize {
		t.Fatalf("len = %d", len(obs.Pixels))
	}
	for i, v := range obs.Pixels {
		if v != 0 {
			t.Fatalf("pixel %d = %v, want 0 for a black frame", i, v)
		}
	}
}

func TestProcessLuminance(t *testing.T) {
	tests := []struct {
		name string
		c    color.RGBA
		want float32
	}{
		{"white", color.RGBA{255, 255, 255, 255}, 1},
		{"red", color.RGBA{255, 0, 0, 255}, 0.299},
		{"green", color.RGBA{0, 255, 0, 255}, 0.587},
		{"blue", color.RGBA{0, 0, 255, 255}, 0.114},
	}

	p := New(16)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obs := p.Process(solid(64, 64, tt.c))
			got := obs.At(8, 8)
			if got < tt.want-0.01 || got > tt.want+0.01 {
				t.Errorf("luminance = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProcessKeepsLayout(t *testing.T) {
	// Left half white, right half black
	img := solid(168, 168, color.RGBA{0, 0, 0, 255})
	for y := range 168 {
		for x := range 84 {
			img.SetRGBA(x, y, color.RGBA{255, 255, 255, 255})
		}
	}

	obs := New(84).Process(img)
	if obs.At(10, 40) < 0.9 {
		t.Errorf("left side = %v, want bright", obs.At(10, 40))
	}
	if obs.At(70, 40) > 0.1 {
		t.Errorf("right side = %v, want dark", obs.At(70, 40))
	}
}

func TestNewDefaultsSize(t *testing.T) {
	if New(0).Size() != DefaultSize {
		t.Errorf("size = %d", New(0).Size())
	}
}
