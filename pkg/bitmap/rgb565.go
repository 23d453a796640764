package bitmap

import (
	"image"
	"image/color"
)

// Pack truncates an 8-bit-per-channel pixel to the device word layout
//
//	bit 76543210  76543210
//	    RRRRRGGG  GGGBBBBB
//	   high byte  low byte
//
// and returns it low byte first. Low bits are dropped, not rounded.
func Pack(r, g, b uint8) [2]byte {
	w := uint16(r&0xF8)<<8 | uint16(g&0xFC)<<3 | uint16(b>>3)
	return [2]byte{byte(w), byte(w >> 8)}
}

// Unpack returns the channels kept by Pack, left aligned in 8 bits.
func Unpack(p [2]byte) (r, g, b uint8) {
	w := uint16(p[1])<<8 | uint16(p[0])
	r = uint8(w>>8) & 0xF8
	g = uint8(w>>3) & 0xFC
	b = uint8(w << 3)
	return
}

// RGB565Model converts any color to its truncated device representation.
var RGB565Model = color.ModelFunc(func(c color.Color) color.Color {
	if _, ok := c.(Color); ok {
		return c
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color(Pack(n.R, n.G, n.B))
})

// Color is one packed pixel as it travels on the wire.
type Color [2]byte

// RGBA implements the color.Color interface.
func (c Color) RGBA() (r, g, b, a uint32) {
	// The short bit pattern is repeated to fill 16 bits so that all-zero and
	// all-one fields map to 0 and 0xFFFF.
	w := uint32(c[1])<<8 | uint32(c[0])
	rBits := w & 0xF800 // RRRRR00000000000
	gBits := w & 0x7E0  // 00000GGGGGG00000
	bBits := w & 0x1F   // 00000000000BBBBB
	r = rBits | rBits>>5 | rBits>>10 | rBits>>15
	g = gBits<<5 | gBits>>1 | gBits>>7
	b = bBits<<11 | bBits<<6 | bBits<<1 | bBits>>4
	a = 0xFFFF
	return
}

// NewRGB565 allocates a surface whose pixel buffer is laid out exactly like
// the device pixel stream: row-major, two bytes per pixel, no padding.
func NewRGB565(r image.Rectangle) *RGB565 {
	return &RGB565{
		Pix:    make([]byte, 2*r.Dx()*r.Dy()),
		Stride: 2 * r.Dx(),
		Rect:   r,
	}
}

// RGB565 implements the draw.Image interface.
type RGB565 struct {
	Pix    []byte
	Stride int
	Rect   image.Rectangle
}

func (d *RGB565) Bounds() image.Rectangle {
	return d.Rect
}

func (d *RGB565) ColorModel() color.Model {
	return RGB565Model
}

func (d *RGB565) PixOffset(x, y int) int {
	return (y-d.Rect.Min.Y)*d.Stride + (x-d.Rect.Min.X)*2
}

func (d *RGB565) At(x, y int) color.Color {
	return d.RGB565At(x, y)
}

func (d *RGB565) RGB565At(x, y int) Color {
	if !(image.Point{X: x, Y: y}.In(d.Rect)) {
		return Color{}
	}
	i := d.PixOffset(x, y)
	return Color{d.Pix[i], d.Pix[i+1]}
}

func (d *RGB565) Set(x, y int, c color.Color) {
	d.SetRGB565(x, y, RGB565Model.Convert(c).(Color))
}

func (d *RGB565) SetRGB565(x, y int, c Color) {
	if !(image.Point{X: x, Y: y}.In(d.Rect)) {
		return
	}
	i := d.PixOffset(x, y)
	d.Pix[i] = c[0]
	d.Pix[i+1] = c[1]
}

// SubImage returns a view sharing pixels with d.
func (d *RGB565) SubImage(r image.Rectangle) image.Image {
	r = r.Intersect(d.Rect)
	if r.Empty() {
		return &RGB565{}
	}
	i := d.PixOffset(r.Min.X, r.Min.Y)
	return &RGB565{
		Pix:    d.Pix[i:],
		Stride: d.Stride,
		Rect:   r,
	}
}

// Fill sets every pixel to c.
func (d *RGB565) Fill(c Color) {
	for y := d.Rect.Min.Y; y < d.Rect.Max.Y; y++ {
		row := d.Pix[d.PixOffset(d.Rect.Min.X, y):]
		for x := 0; x < d.Rect.Dx(); x++ {
			row[2*x] = c[0]
			row[2*x+1] = c[1]
		}
	}
}
