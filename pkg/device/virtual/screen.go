package virtual

import (
	"image"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"turingscreen/pkg/bitmap"
	"turingscreen/pkg/proto"
)

// NewScreen emulates the firmware side of the wire protocol on a w x h
// surface. Feed it the bytes a driver writes to the serial port.
func NewScreen(w, h int, logger *zap.Logger) *Screen {
	return &Screen{
		surface: bitmap.NewRGB565(image.Rect(0, 0, w, h)),
		logger:  logger,
	}
}

type Screen struct {
	mu      sync.Mutex
	surface *bitmap.RGB565
	logger  *zap.Logger

	on      bool
	frames  []proto.Frame
	partial []byte

	// active pixel stream
	rect    proto.Rect
	pending int
	offset  int
}

// Write consumes frames and pixel data in any split.
func (s *Screen) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(p)
	for len(p) > 0 {
		if s.pending > 0 {
			take := s.pending
			if take > len(p) {
				take = len(p)
			}
			s.pixels(p[:take])
			p = p[take:]
			continue
		}

		need := proto.FrameSize - len(s.partial)
		if need > len(p) {
			s.partial = append(s.partial, p...)
			break
		}

		var f proto.Frame
		copy(f[:], append(s.partial, p[:need]...))
		s.partial = s.partial[:0]
		p = p[need:]

		if err := s.apply(f); err != nil {
			return n - len(p), err
		}
	}

	return n, nil
}

func (s *Screen) apply(f proto.Frame) error {
	op, r, err := proto.DecodeFrame(f)
	if err != nil {
		return err
	}

	s.frames = append(s.frames, f)
	s.logger.With(zap.Stringer("op", op), zap.Stringer("frame", f)).Debug("frame")

	switch op {
	case proto.Clear:
		s.surface.Fill(bitmap.Color{})
	case proto.ScreenOn:
		s.on = true
	case proto.ScreenOff:
		s.on = false
	case proto.DisplayBitmap:
		if err := r.Check(); err != nil {
			return err
		}
		if !r.Image().In(s.surface.Rect) {
			return errors.Wrapf(proto.ErrOutOfRange, "%s outside %s", r, s.surface.Rect)
		}
		s.rect = r
		s.pending = r.StreamLen()
		s.offset = 0
	}

	return nil
}

func (s *Screen) pixels(p []byte) {
	w := s.rect.Width()
	for _, v := range p {
		px := s.offset / 2
		x := int(s.rect.StartX) + px%w
		y := int(s.rect.StartY) + px/w
		s.surface.Pix[s.surface.PixOffset(x, y)+s.offset%2] = v
		s.offset++
	}
	s.pending -= len(p)
}

// On reports the last power state set by ScreenOn/ScreenOff.
func (s *Screen) On() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.on
}

// Pending is the number of pixel bytes still expected by the active selection.
func (s *Screen) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// Frames returns every command frame received so far.
func (s *Screen) Frames() []proto.Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]proto.Frame(nil), s.frames...)
}

// Image returns a copy of the surface.
func (s *Screen) Image() *bitmap.RGB565 {
	s.mu.Lock()
	defer s.mu.Unlock()

	img := bitmap.NewRGB565(s.surface.Rect)
	copy(img.Pix, s.surface.Pix)
	return img
}
