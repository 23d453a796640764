package main

import (
	"context"
	"net/http"

	flag "github.com/spf13/pflag"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"turingscreen/pkg/device/inch35"
	"turingscreen/pkg/device/remote"
	"turingscreen/pkg/proto"
)

var serial = flag.String("serial", proto.DefaultSerialNumber, "USB serial number or port name")
var listen = flag.String("listen", ":9123", "listen addr")

func open(serial *proto.Serial, logger *zap.Logger, lifecycle fx.Lifecycle) (proto.Control, error) {
	dev, err := inch35.Open(serial, logger)
	if err != nil {
		return nil, err
	}

	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return dev.ScreenOn()
		},
		OnStop: func(ctx context.Context) error {
			return dev.Close()
		},
	})

	return dev, nil
}

func main() {
	flag.Parse()

	fx.New(
		fx.Provide(
			func() (*proto.Serial, *http.Server) {
				return proto.NewSerial(*serial),
					&http.Server{Addr: *listen}
			},
			zap.NewDevelopment,
			open,
		),
		fx.Invoke(
			remote.Proxy,
		),
	).Run()
}
