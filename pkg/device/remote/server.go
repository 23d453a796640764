package remote

import (
	"bytes"
	"context"
	"image/png"
	"net"
	"net/http"
	"net/rpc"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"turingscreen/pkg/proto"
)

// Proxy exposes dev over net/rpc on srv for the lifetime of the app.
func Proxy(dev proto.Control, srv *http.Server, logger *zap.Logger, lifecycle fx.Lifecycle) error {
	server := rpc.NewServer()
	if err := server.Register(NewService(dev)); err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.Handle(rpc.DefaultRPCPath, server)
	srv.Handler = mux

	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			logger.With(zap.String("addr", ln.Addr().String())).Info("render proxy listening")
			go func() {
				if err := srv.Serve(ln); err != http.ErrServerClosed {
					logger.With(zap.Error(err)).Error("render proxy stopped")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})

	return nil
}

func NewService(dev proto.Control) *Service {
	return &Service{dev: dev}
}

type Service struct {
	dev proto.Control
}

func (s *Service) Bounds(_ struct{}, resp *BoundsResponse) error {
	b := s.dev.Bounds()
	resp.Width = b.Dx()
	resp.Height = b.Dy()
	return nil
}

func (s *Service) Command(name string, _ *EmptyResponse) error {
	switch name {
	case "clear":
		return s.dev.Clear()
	case "on":
		return s.dev.ScreenOn()
	case "off":
		return s.dev.ScreenOff()
	}

	return errors.Errorf("unknown command %q", name)
}

func (s *Service) DrawBitmap(req *DrawBitmapRequest, _ *EmptyResponse) error {
	img, err := png.Decode(bytes.NewBuffer(req.Image))
	if err != nil {
		return err
	}

	return s.dev.DrawBitmap(req.PosX, req.PosY, img)
}
