package proto

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrOutOfRange        = errors.New("coordinate out of range")
	ErrInvalidOpcode     = errors.New("invalid opcode")
	ErrProtocolViolation = errors.New("protocol violation")
)

// Opcode is a command understood by the display firmware.
type Opcode uint8

const (
	Clear         Opcode = 102
	ScreenOff     Opcode = 108
	ScreenOn      Opcode = 109
	DisplayBitmap Opcode = 197
)

// MaxCoord is the largest value a 10-bit coordinate can carry.
const MaxCoord = 1<<10 - 1

// FrameSize is the length of every command frame on the wire.
const FrameSize = 6

// OpcodeFromTag maps a wire tag back to its opcode.
func OpcodeFromTag(tag uint8) (Opcode, error) {
	switch op := Opcode(tag); op {
	case Clear, ScreenOff, ScreenOn, DisplayBitmap:
		return op, nil
	}
	return 0, errors.Wrapf(ErrInvalidOpcode, "tag %d", tag)
}

func (o Opcode) Tag() uint8 {
	return uint8(o)
}

// Stateful reports whether the opcode carries a rectangle.
func (o Opcode) Stateful() bool {
	return o == DisplayBitmap
}

func (o Opcode) String() string {
	switch o {
	case Clear:
		return "clear"
	case ScreenOff:
		return "screen-off"
	case ScreenOn:
		return "screen-on"
	case DisplayBitmap:
		return "display-bitmap"
	}
	return fmt.Sprintf("opcode(%d)", uint8(o))
}

// Frame is a single 6-byte command as written to the transport.
type Frame [FrameSize]byte

func (f Frame) Opcode() (Opcode, error) {
	return OpcodeFromTag(f[5])
}

func (f Frame) String() string {
	return fmt.Sprintf("%x", f[:])
}

// EncodeStateless builds a frame for an opcode without coordinates.
func EncodeStateless(op Opcode) (Frame, error) {
	var f Frame
	if _, err := OpcodeFromTag(op.Tag()); err != nil {
		return f, err
	}
	if op.Stateful() {
		return f, errors.Wrapf(ErrInvalidOpcode, "%s needs a rectangle", op)
	}

	f[5] = op.Tag()
	return f, nil
}

// EncodeStateful builds a frame addressing the rectangle (sx, sy)-(ex, ey).
// The four 10-bit coordinates are packed MSB first into bytes 0..4.
func EncodeStateful(op Opcode, sx, sy, ex, ey uint16) (Frame, error) {
	var f Frame
	if !op.Stateful() {
		return f, errors.Wrapf(ErrInvalidOpcode, "%s carries no rectangle", op)
	}

	for _, v := range [...]uint16{sx, sy, ex, ey} {
		if v > MaxCoord {
			return f, errors.Wrapf(ErrOutOfRange, "%d > %d", v, MaxCoord)
		}
	}

	packCoords(&f, sx, sy, ex, ey)
	f[5] = op.Tag()
	return f, nil
}

func packCoords(f *Frame, x0, y0, x1, y1 uint16) {
	f[0] = byte(x0 >> 2)
	f[1] = byte((x0&0x3)<<6 | y0>>4)
	f[2] = byte((y0&0xF)<<4 | x1>>6)
	f[3] = byte((x1&0x3F)<<2 | y1>>8)
	f[4] = byte(y1 & 0xFF)
}

func unpackCoords(f Frame) (x0, y0, x1, y1 uint16) {
	x0 = uint16(f[0])<<2 | uint16(f[1])>>6
	y0 = uint16(f[1]&0x3F)<<4 | uint16(f[2])>>4
	x1 = uint16(f[2]&0xF)<<6 | uint16(f[3])>>2
	y1 = uint16(f[3]&0x3)<<8 | uint16(f[4])
	return
}

// DecodeFrame recovers the opcode and, for stateful opcodes, the rectangle.
func DecodeFrame(f Frame) (Opcode, Rect, error) {
	op, err := f.Opcode()
	if err != nil {
		return 0, Rect{}, err
	}

	if !op.Stateful() {
		return op, Rect{}, nil
	}

	x0, y0, x1, y1 := unpackCoords(f)
	return op, Rect{StartX: x0, StartY: y0, EndX: x1, EndY: y1}, nil
}
