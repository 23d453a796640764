package mixer

import (
	"image"

	"github.com/disintegration/imaging"
	"github.com/samber/lo"

	"turingscreen/pkg/proto"
)

func NewDrawer(dst proto.Control, opts ...Option) *Drawer {
	d := &Drawer{
		dev: dst,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

type Drawer struct {
	dev  proto.Control
	effs []Effect
}

// Canvas draws img at the origin, through a randomly sampled effect if any
// are configured.
func (d *Drawer) Canvas(img image.Image) error {
	eff := lo.Sample(d.effs)
	if eff == nil {
		return d.dev.DrawBitmap(0, 0, img)
	}

	sub, ok := img.(Image)
	if !ok {
		sub = imaging.Clone(img)
	}

	w, err := eff.Process(sub)
	if err != nil {
		return err
	}

	var drawErr error
	for w2 := range w {
		if drawErr != nil {
			continue
		}
		drawErr = d.dev.DrawBitmap(uint16(w2.At.X), uint16(w2.At.Y), w2.Img)
	}
	return drawErr
}
