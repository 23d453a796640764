package mixer

import (
	"image"
)

// EffectLines repaints the frame as full-width bands from top to bottom.
func EffectLines(height int) Effect {
	return &lines{height: height}
}

type lines struct {
	height int
}

func (e *lines) Name() string {
	return "lines"
}

func (e *lines) Process(img Image) (<-chan Write, error) {
	r := img.Bounds()

	h := e.height
	if h <= 0 {
		h = 1
	}

	var ws []Write
	for y := r.Min.Y; y < r.Max.Y; y += h {
		band := image.Rect(r.Min.X, y, r.Max.X, y+h).Intersect(r)
		ws = append(ws, Write{
			At:  band.Min.Sub(r.Min),
			Img: img.SubImage(band),
		})
	}

	return emit(ws), nil
}
