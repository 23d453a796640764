package virtual

import (
	"image"

	"go.uber.org/zap"

	"turingscreen/pkg/proto"
)

// Mock returns a Control that only logs what it is asked to do.
func Mock(logger *zap.Logger, bounds image.Rectangle) proto.Control {
	return &Mocker{l: logger, bounds: bounds}
}

type Mocker struct {
	l      *zap.Logger
	bounds image.Rectangle
}

func (m *Mocker) Bounds() image.Rectangle {
	return m.bounds
}

func (m *Mocker) Clear() error {
	m.l.Info("clear")
	return nil
}

func (m *Mocker) ScreenOn() error {
	m.l.Info("screen-on")
	return nil
}

func (m *Mocker) ScreenOff() error {
	m.l.Info("screen-off")
	return nil
}

func (m *Mocker) DrawBitmap(posX uint16, posY uint16, image image.Image) error {
	m.l.With(
		zap.Uint16("x", posX),
		zap.Uint16("y", posY),
		zap.Int("w", image.Bounds().Dx()),
		zap.Int("h", image.Bounds().Dy()),
	).Info("draw-bitmap")
	return nil
}
