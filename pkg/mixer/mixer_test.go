package mixer

import (
	"image"
	"image/color"
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"turingscreen/pkg/bitmap"
	"turingscreen/pkg/device/inch35"
	"turingscreen/pkg/device/virtual"
)

type draw struct {
	at   image.Point
	size image.Point
}

type recorder struct {
	draws []draw
	err   error
}

func (r *recorder) Bounds() image.Rectangle { return image.Rect(0, 0, 320, 480) }
func (r *recorder) Clear() error            { return nil }
func (r *recorder) ScreenOn() error         { return nil }
func (r *recorder) ScreenOff() error        { return nil }

func (r *recorder) DrawBitmap(posX uint16, posY uint16, img image.Image) error {
	r.draws = append(r.draws, draw{at: image.Pt(int(posX), int(posY)), size: img.Bounds().Size()})
	return r.err
}

func pattern(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: uint8(x ^ y), A: 255})
		}
	}
	return img
}

func covered(draws []draw) int {
	n := 0
	for _, d := range draws {
		n += d.size.X * d.size.Y
	}
	return n
}

func TestCanvasWithoutEffect(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	require.NoError(t, NewDrawer(rec).Canvas(pattern(320, 480)))
	assert.Equal(t, []draw{{at: image.Pt(0, 0), size: image.Pt(320, 480)}}, rec.draws)
}

func TestEffectBlockFixed(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	d := NewDrawer(rec, WithEffect(&block{size: 100}))
	require.NoError(t, d.Canvas(pattern(320, 480)))

	require.Len(t, rec.draws, 4*5)
	assert.Equal(t, draw{at: image.Pt(0, 0), size: image.Pt(100, 100)}, rec.draws[0])
	assert.Equal(t, draw{at: image.Pt(300, 0), size: image.Pt(20, 100)}, rec.draws[3])
	assert.Equal(t, draw{at: image.Pt(300, 400), size: image.Pt(20, 80)}, rec.draws[19])
	assert.Equal(t, 320*480, covered(rec.draws))
}

func TestEffectBlockRandomCoversFrame(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	eff := &block{size: 32, rand: rand.New(rand.NewSource(1))}
	require.NoError(t, NewDrawer(rec, WithEffect(eff)).Canvas(pattern(320, 480)))

	assert.Equal(t, 320*480, covered(rec.draws))
	assert.Equal(t, "block", eff.Name())
}

func TestEffectLines(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	require.NoError(t, NewDrawer(rec, WithEffect(EffectLines(100))).Canvas(pattern(320, 480)))

	require.Len(t, rec.draws, 5)
	for i, d := range rec.draws {
		assert.Equal(t, image.Pt(0, i*100), d.at)
	}
	assert.Equal(t, image.Pt(320, 80), rec.draws[4].size)
}

func TestCanvasStopsOnError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	rec := &recorder{err: boom}
	err := NewDrawer(rec, WithEffect(EffectLines(10))).Canvas(pattern(20, 40))

	assert.Same(t, boom, err)
	assert.Len(t, rec.draws, 1)
}

type opaque struct{ image.Image }

func TestCanvasClonesNonSubImager(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	require.NoError(t, NewDrawer(rec, WithEffect(EffectLines(20))).Canvas(opaque{pattern(10, 40)}))
	assert.Len(t, rec.draws, 2)
}

// TestEffectsComposeFrame draws through the real driver and checks the
// panel ends up with the same pixels as a single full-frame draw.
func TestEffectsComposeFrame(t *testing.T) {
	t.Parallel()

	src := pattern(inch35.Width, inch35.Height)

	for _, eff := range []Effect{EffectBlock(), EffectLines(33)} {
		screen := virtual.NewScreen(inch35.Width, inch35.Height, zap.NewNop())
		dev := inch35.New(screen, zap.NewNop())

		require.NoError(t, NewDrawer(dev, WithEffect(eff)).Canvas(src), eff.Name())
		assert.Equal(t, bitmap.Encode(src), screen.Image().Pix, eff.Name())
	}
}
