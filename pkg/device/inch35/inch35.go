package inch35

import (
	"image"
	"io"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"turingscreen/pkg/bitmap"
	"turingscreen/pkg/proto"
)

const (
	Width  = 320
	Height = 480
)

var ErrOverflow = errors.New("bitmap overflows screen")

// Open finds the panel, configures the port the way the firmware expects and
// returns a driver writing to it.
func Open(serial *proto.Serial, logger *zap.Logger, opts ...Option) (*Inch35, error) {
	if err := serial.Open(&proto.Options{
		DTR:      true,
		RTS:      true,
		BaudRate: 115200,
	}); err != nil {
		return nil, err
	}
	return New(serial, logger, opts...), nil
}

// New drives a panel reachable through w.
func New(w io.Writer, logger *zap.Logger, opts ...Option) *Inch35 {
	dev := &Inch35{
		w:      w,
		conn:   proto.NewConn(w, logger),
		logger: logger,
		width:  Width,
		height: Height,
	}

	for _, opt := range opts {
		opt(dev)
	}

	return dev
}

type Inch35 struct {
	w      io.Writer
	conn   *proto.Conn
	logger *zap.Logger
	width  int
	height int
	chunk  int
}

func (i *Inch35) Bounds() image.Rectangle {
	return image.Rect(0, 0, i.width, i.height)
}

// Close releases the transport if it can be closed.
func (i *Inch35) Close() error {
	if c, ok := i.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (i *Inch35) Clear() error {
	return i.conn.Command(proto.Clear)
}

func (i *Inch35) ScreenOn() error {
	return i.conn.Command(proto.ScreenOn)
}

func (i *Inch35) ScreenOff() error {
	return i.conn.Command(proto.ScreenOff)
}

func (i *Inch35) DrawBitmap(posX uint16, posY uint16, image image.Image) error {
	rect := image.Bounds().Size()
	imgW := rect.X
	imgH := rect.Y

	if imgW <= 0 || imgH <= 0 {
		return errors.Wrap(ErrOverflow, "empty bitmap")
	} else if imgW+int(posX) > i.width {
		return errors.Wrap(ErrOverflow, "width overflow")
	} else if imgH+int(posY) > i.height {
		return errors.Wrap(ErrOverflow, "height overflow")
	}

	r, err := proto.RectAt(posX, posY, imgW, imgH)
	if err != nil {
		return err
	}

	bmp := bitmap.Encode(image)

	i.logger.With(
		zap.Stringer("rect", r),
		zap.Int("bytes", len(bmp)),
	).Debug("draw bitmap")

	return i.conn.Bitmap(r, bmp, i.chunk)
}
