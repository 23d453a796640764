package proto

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestEncodeStateless(t *testing.T) {
	t.Parallel()

	tests := []struct {
		op   Opcode
		want Frame
	}{
		{Clear, Frame{0, 0, 0, 0, 0, 102}},
		{ScreenOff, Frame{0, 0, 0, 0, 0, 108}},
		{ScreenOn, Frame{0, 0, 0, 0, 0, 109}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.op.String(), func(t *testing.T) {
			t.Parallel()

			f, err := EncodeStateless(tt.op)
			require.NoError(t, err)
			assert.Equal(t, tt.want, f)
			assert.Equal(t, tt.op.Tag(), f[5])
		})
	}
}

func TestEncodeStatelessRejectsBitmap(t *testing.T) {
	t.Parallel()

	_, err := EncodeStateless(DisplayBitmap)
	assert.True(t, errors.Is(err, ErrInvalidOpcode))

	_, err = EncodeStateless(Opcode(1))
	assert.True(t, errors.Is(err, ErrInvalidOpcode))
}

func TestEncodeStatefulGolden(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		sx, sy, ex, ey uint16
		want           Frame
	}{
		{"full portrait", 0, 0, 319, 479, Frame{0x00, 0x00, 0x04, 0xFD, 0xDF, 0xC5}},
		{"full landscape", 0, 0, 479, 319, Frame{0x00, 0x00, 0x07, 0x7D, 0x3F, 0xC5}},
		{"origin pixel", 0, 0, 0, 0, Frame{0x00, 0x00, 0x00, 0x00, 0x00, 0xC5}},
		{"all ones", 1023, 1023, 1023, 1023, Frame{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xC5}},
		{"tile", 32, 64, 63, 95, Frame{0x08, 0x04, 0x00, 0xFC, 0x5F, 0xC5}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f, err := EncodeStateful(DisplayBitmap, tt.sx, tt.sy, tt.ex, tt.ey)
			require.NoError(t, err)
			assert.Equal(t, tt.want, f, "got %s", f)
		})
	}
}

func TestEncodeStatefulOutOfRange(t *testing.T) {
	t.Parallel()

	for _, c := range [][4]uint16{
		{1024, 0, 0, 0},
		{0, 1024, 0, 0},
		{0, 0, 1024, 0},
		{0, 0, 0, 0xFFFF},
	} {
		_, err := EncodeStateful(DisplayBitmap, c[0], c[1], c[2], c[3])
		assert.True(t, errors.Is(err, ErrOutOfRange), "coords %v", c)
	}
}

func TestEncodeStatefulRejectsStateless(t *testing.T) {
	t.Parallel()

	_, err := EncodeStateful(Clear, 0, 0, 1, 1)
	assert.True(t, errors.Is(err, ErrInvalidOpcode))
}

func TestOpcodeFromTag(t *testing.T) {
	t.Parallel()

	for _, op := range []Opcode{Clear, ScreenOff, ScreenOn, DisplayBitmap} {
		got, err := OpcodeFromTag(op.Tag())
		require.NoError(t, err)
		assert.Equal(t, op, got)
	}

	_, err := OpcodeFromTag(101)
	assert.True(t, errors.Is(err, ErrInvalidOpcode))
	assert.Equal(t, "opcode(101)", Opcode(101).String())
}

func TestDecodeFrameStateless(t *testing.T) {
	t.Parallel()

	f, err := EncodeStateless(ScreenOn)
	require.NoError(t, err)

	op, r, err := DecodeFrame(f)
	require.NoError(t, err)
	assert.Equal(t, ScreenOn, op)
	assert.Equal(t, Rect{}, r)
}

// TestPropertyStatefulRoundTrip verifies the 40 packed bits recover every
// coordinate of the valid domain.
func TestPropertyStatefulRoundTrip(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		coord := rapid.Uint16Range(0, MaxCoord)
		sx := coord.Draw(t, "sx")
		sy := coord.Draw(t, "sy")
		ex := coord.Draw(t, "ex")
		ey := coord.Draw(t, "ey")

		f, err := EncodeStateful(DisplayBitmap, sx, sy, ex, ey)
		if err != nil {
			t.Fatalf("encode: %v", err)
		}

		op, r, err := DecodeFrame(f)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if op != DisplayBitmap {
			t.Fatalf("opcode %s", op)
		}
		if r != (Rect{StartX: sx, StartY: sy, EndX: ex, EndY: ey}) {
			t.Fatalf("round trip %v -> %v", [4]uint16{sx, sy, ex, ey}, r)
		}
	})
}

// TestPropertyStatefulBitLayout checks every byte against the MSB-first layout.
func TestPropertyStatefulBitLayout(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		coord := rapid.Uint16Range(0, MaxCoord)
		sx := coord.Draw(t, "sx")
		sy := coord.Draw(t, "sy")
		ex := coord.Draw(t, "ex")
		ey := coord.Draw(t, "ey")

		f, err := EncodeStateful(DisplayBitmap, sx, sy, ex, ey)
		if err != nil {
			t.Fatalf("encode: %v", err)
		}

		bits := uint64(sx)<<30 | uint64(sy)<<20 | uint64(ex)<<10 | uint64(ey)
		for i := 0; i < 5; i++ {
			want := byte(bits >> (32 - 8*i))
			if f[i] != want {
				t.Fatalf("byte %d = %#x, want %#x", i, f[i], want)
			}
		}
		if f[5] != 197 {
			t.Fatalf("tag %d", f[5])
		}
	})
}

func TestPropertyEncodeDeterministic(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		coord := rapid.Uint16Range(0, MaxCoord)
		sx, sy := coord.Draw(t, "sx"), coord.Draw(t, "sy")
		ex, ey := coord.Draw(t, "ex"), coord.Draw(t, "ey")

		a, _ := EncodeStateful(DisplayBitmap, sx, sy, ex, ey)
		b, _ := EncodeStateful(DisplayBitmap, sx, sy, ex, ey)
		if a != b {
			t.Fatalf("non-deterministic: %s vs %s", a, b)
		}
	})
}
