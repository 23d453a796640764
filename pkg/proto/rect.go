package proto

import (
	"image"

	"github.com/pkg/errors"
)

// Rect is a display region with inclusive corners.
type Rect struct {
	StartX, StartY uint16
	EndX, EndY     uint16
}

// RectAt returns the rectangle of a w x h bitmap placed at (x, y).
func RectAt(x, y uint16, w, h int) (Rect, error) {
	if w <= 0 || h <= 0 {
		return Rect{}, errors.Wrapf(ErrOutOfRange, "empty bitmap %dx%d", w, h)
	}

	ex := int(x) + w - 1
	ey := int(y) + h - 1
	if ex > MaxCoord || ey > MaxCoord {
		return Rect{}, errors.Wrapf(ErrOutOfRange, "corner %d,%d", ex, ey)
	}

	return Rect{StartX: x, StartY: y, EndX: uint16(ex), EndY: uint16(ey)}, nil
}

func (r Rect) Width() int {
	return int(r.EndX) - int(r.StartX) + 1
}

func (r Rect) Height() int {
	return int(r.EndY) - int(r.StartY) + 1
}

func (r Rect) Pixels() int {
	return r.Width() * r.Height()
}

// StreamLen is the number of pixel bytes that must follow the selection.
func (r Rect) StreamLen() int {
	return r.Pixels() * 2
}

// Check reports whether every corner fits 10 bits and the rectangle is not inverted.
func (r Rect) Check() error {
	for _, v := range [...]uint16{r.StartX, r.StartY, r.EndX, r.EndY} {
		if v > MaxCoord {
			return errors.Wrapf(ErrOutOfRange, "%d > %d", v, MaxCoord)
		}
	}
	if r.EndX < r.StartX || r.EndY < r.StartY {
		return errors.Wrapf(ErrOutOfRange, "inverted rectangle %s", r)
	}
	return nil
}

// Image converts to the half-open image.Rectangle convention.
func (r Rect) Image() image.Rectangle {
	return image.Rect(int(r.StartX), int(r.StartY), int(r.EndX)+1, int(r.EndY)+1)
}

func (r Rect) Frame() (Frame, error) {
	if err := r.Check(); err != nil {
		return Frame{}, err
	}
	return EncodeStateful(DisplayBitmap, r.StartX, r.StartY, r.EndX, r.EndY)
}

func (r Rect) String() string {
	return r.Image().String()
}

// CheckStream validates a pixel stream length against the selected rectangle.
func CheckStream(r Rect, n int) error {
	if want := r.StreamLen(); n != want {
		return errors.Wrapf(ErrProtocolViolation, "stream of %d bytes for %s, want %d", n, r, want)
	}
	return nil
}
