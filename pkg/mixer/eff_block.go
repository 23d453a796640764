package mixer

import (
	"image"
	"math/rand"
	"time"

	"github.com/samber/lo"
)

// EffectBlock repaints the frame as square tiles in random order.
func EffectBlock() Effect {
	return &block{
		size: 32,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

type block struct {
	size int
	rand *rand.Rand // nil keeps size and order fixed
}

func (e *block) Name() string {
	return "block"
}

func (e *block) Process(img Image) (<-chan Write, error) {
	r := img.Bounds()

	size := e.size
	if e.rand != nil {
		size = e.rand.Intn(32) + 8
	}

	var ws []Write
	for y := r.Min.Y; y < r.Max.Y; y += size {
		for x := r.Min.X; x < r.Max.X; x += size {
			tile := image.Rect(x, y, x+size, y+size).Intersect(r)
			ws = append(ws, Write{
				At:  tile.Min.Sub(r.Min),
				Img: img.SubImage(tile),
			})
		}
	}

	if e.rand != nil {
		ws = lo.Shuffle(ws)
	}

	return emit(ws), nil
}
