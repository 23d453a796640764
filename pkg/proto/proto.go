package proto

import (
	"image"
)

// Control is the high-level surface of a display: power, clear and
// full or partial bitmap updates.
type Control interface {
	Clear() error
	ScreenOn() error
	ScreenOff() error

	Bounds() image.Rectangle
	DrawBitmap(posX uint16, posY uint16, image image.Image) error
}
