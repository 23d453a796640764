package album

import (
	"bytes"
	"fmt"
	"image"
	"sync"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"

	"turingscreen/pkg/mixer"
)

func NewDrawer(mixer *mixer.Drawer, params *Params, lib *Library, cache *Cache, history *History, logger *zap.Logger) *Drawer {
	return &Drawer{
		mixer:   mixer,
		params:  params,
		lib:     lib,
		cache:   cache,
		history: history,
		logger:  logger,
	}
}

type Drawer struct {
	sync.Mutex
	mixer   *mixer.Drawer
	params  *Params
	lib     *Library
	cache   *Cache
	history *History
	logger  *zap.Logger
}

// Filled returns pic cropped and scaled to fill the panel, oriented for it.
// Nothing is recorded until the image reaches the panel.
func (d *Drawer) Filled(pic *Picture) (image.Image, error) {
	w, h, landscape, invert := d.params.Layout()

	exists, filled, errL := d.cache.LoadImage(pic, w, h)
	if errL != nil {
		return nil, fmt.Errorf("load cache failed: %w", errL)
	}

	if !exists {
		var err error
		if filled, err = d.byLocal(pic, w, h); err != nil {
			return nil, err
		}

		if err := d.cache.SaveImage(pic, filled); err != nil {
			d.logger.With(zap.String("name", pic.Name), zap.Error(err)).Info("save cache failed")
		}
	}

	return orient(filled, landscape, invert), nil
}

func (d *Drawer) byLocal(pic *Picture, w, h int) (image.Image, error) {
	bs, err := d.lib.Read(pic)
	if err != nil {
		return nil, fmt.Errorf("read picture failed: %w", err)
	}

	img, err := imaging.Decode(bytes.NewReader(bs), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("image decode failed: %w", err)
	}

	d.logger.With(
		zap.String("name", pic.Name),
		zap.Int("w", img.Bounds().Dx()),
		zap.Int("h", img.Bounds().Dy()),
	).Debug("filling")

	return imaging.Fill(img, w, h, imaging.Center, imaging.Lanczos), nil
}

func orient(img image.Image, landscape, invert bool) image.Image {
	switch {
	case landscape && invert:
		return imaging.Rotate90(img)
	case landscape:
		return imaging.Rotate270(img)
	case invert:
		return imaging.Rotate180(img)
	}
	return img
}

func (d *Drawer) Canvas(img image.Image) error {
	return d.mixer.Canvas(img)
}
