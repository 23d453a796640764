package proto

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// NewConn wraps a write-only transport. The device never answers, so the
// only framing is the byte count armed by Select.
func NewConn(w io.Writer, logger *zap.Logger) *Conn {
	return &Conn{w: w, logger: logger}
}

// Conn orders frames and pixel streams on one transport and enforces the
// stream length of every bitmap selection.
type Conn struct {
	mu      sync.Mutex
	w       io.Writer
	logger  *zap.Logger
	rect    Rect
	pending int
	open    bool
}

// Command sends a stateless frame.
func (c *Conn) Command(op Opcode) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.open {
		return errors.Wrapf(ErrProtocolViolation, "%s while %d stream bytes pending", op, c.pending)
	}

	f, err := EncodeStateless(op)
	if err != nil {
		return err
	}

	_, err = c.send(f[:])
	return err
}

// Select sends a DisplayBitmap frame and arms the pixel stream.
func (c *Conn) Select(r Rect) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.selectLocked(r)
}

func (c *Conn) selectLocked(r Rect) error {
	if c.open {
		return errors.Wrapf(ErrProtocolViolation, "select %s while %d stream bytes pending", r, c.pending)
	}

	f, err := r.Frame()
	if err != nil {
		return err
	}

	if _, err := c.send(f[:]); err != nil {
		return err
	}

	c.rect = r
	c.pending = r.StreamLen()
	c.open = true
	return nil
}

// Write streams pixel bytes for the selected rectangle, whole or in chunks.
// A transport error reports the bytes that did go out and drops the stream.
func (c *Conn) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.writeLocked(p)
}

func (c *Conn) writeLocked(p []byte) (int, error) {
	if !c.open {
		return 0, errors.Wrap(ErrProtocolViolation, "pixel data without selection")
	}
	if len(p) > c.pending {
		return 0, errors.Wrapf(ErrProtocolViolation, "%d bytes exceed %d pending for %s", len(p), c.pending, c.rect)
	}

	n, err := c.send(p)
	if err != nil {
		// the device got part of the stream; only a full resend recovers
		c.open = false
		c.pending = 0
		return n, err
	}

	c.pending -= n
	return n, nil
}

// End closes the stream; it fails if fewer bytes than selected were sent.
func (c *Conn) End() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.endLocked()
}

func (c *Conn) endLocked() error {
	if !c.open {
		return nil
	}

	sent := c.rect.StreamLen() - c.pending
	c.open = false
	c.pending = 0
	return CheckStream(c.rect, sent)
}

// Abort drops the open stream after a transport failure. What the device
// makes of the partial stream is undefined; resend the whole bitmap.
func (c *Conn) Abort() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.open = false
	c.pending = 0
}

// Pending returns how many pixel bytes the open stream still expects.
func (c *Conn) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.pending
}

// Bitmap selects r and streams pix in chunks of at most chunk bytes
// (0 sends it in one write), holding the connection for the whole sequence.
// The length is checked before anything reaches the transport.
func (c *Conn) Bitmap(r Rect, pix []byte, chunk int) error {
	if err := r.Check(); err != nil {
		return err
	}
	if err := CheckStream(r, len(pix)); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.selectLocked(r); err != nil {
		return err
	}

	if chunk <= 0 {
		chunk = len(pix)
	}

	for _, part := range lo.Chunk(pix, chunk) {
		if _, err := c.writeLocked(part); err != nil {
			return err
		}
	}

	return c.endLocked()
}

func (c *Conn) send(bytes []byte) (int, error) {
	var sent int
	var cost time.Duration

	start := time.Now()
	for sent < len(bytes) {
		n, err := c.w.Write(bytes[sent:])
		sent += n
		if err != nil {
			return sent, err
		}
		if n == 0 {
			return sent, io.ErrShortWrite
		}
	}
	cost = time.Since(start)

	ext := ""
	if len(bytes) <= 16 {
		ext = fmt.Sprintf("%x", bytes)
	}

	c.logger.With(
		zap.Int("sent", sent),
		zap.String("cost", cost.String()),
		zap.String("data", ext),
	).Debug("transfer")

	return sent, nil
}
