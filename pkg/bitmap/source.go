package bitmap

import (
	"image"
	"image/color"
)

// Source yields truecolor pixels in row-major order.
type Source interface {
	// Len is the total number of pixels the source yields.
	Len() int
	// Next returns the next pixel; ok is false once the source is drained.
	Next() (r, g, b uint8, ok bool)
}

// FromImage reads img left to right, top to bottom. Alpha is dropped from
// the non-premultiplied color, as decoders do when flattening to RGB.
func FromImage(img image.Image) Source {
	b := img.Bounds()
	return &imageSource{img: img, b: b, x: b.Min.X, y: b.Min.Y}
}

type imageSource struct {
	img  image.Image
	b    image.Rectangle
	x, y int
}

func (s *imageSource) Len() int {
	return s.b.Dx() * s.b.Dy()
}

func (s *imageSource) Next() (r, g, b uint8, ok bool) {
	if s.b.Empty() || s.y >= s.b.Max.Y {
		return 0, 0, 0, false
	}

	c := color.NRGBAModel.Convert(s.img.At(s.x, s.y)).(color.NRGBA)

	s.x++
	if s.x >= s.b.Max.X {
		s.x = s.b.Min.X
		s.y++
	}

	return c.R, c.G, c.B, true
}

// FromRGB reads a packed RGB888 buffer. A trailing partial pixel is ignored.
func FromRGB(buf []byte) Source {
	return &rgbSource{buf: buf[:len(buf)/3*3]}
}

type rgbSource struct {
	buf []byte
	off int
}

func (s *rgbSource) Len() int {
	return len(s.buf) / 3
}

func (s *rgbSource) Next() (r, g, b uint8, ok bool) {
	if s.off >= len(s.buf) {
		return 0, 0, 0, false
	}
	p := s.buf[s.off : s.off+3]
	s.off += 3
	return p[0], p[1], p[2], true
}
