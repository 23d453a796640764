package bitmap

import (
	"image"
)

// PackSource drains src into a device pixel stream, two bytes per pixel.
func PackSource(src Source) []byte {
	out := make([]byte, 0, 2*src.Len())
	for {
		r, g, b, ok := src.Next()
		if !ok {
			return out
		}
		p := Pack(r, g, b)
		out = append(out, p[0], p[1])
	}
}

// Encode converts img into the pixel stream for a rectangle of its size.
func Encode(src image.Image) []byte {
	if d, ok := src.(*RGB565); ok && d.Stride == 2*d.Rect.Dx() {
		return append([]byte(nil), d.Pix[:2*d.Rect.Dx()*d.Rect.Dy()]...)
	}
	return PackSource(FromImage(src))
}
