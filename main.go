package main

import (
	"log"

	"github.com/disintegration/imaging"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"turingscreen/pkg/device/inch35"
	"turingscreen/pkg/proto"
)

var serial = flag.String("serial", proto.DefaultSerialNumber, "USB serial number or port name")
var imagePath = flag.String("image", "", "image file drawn full screen")
var clearScreen = flag.Bool("clear", false, "clear the screen first")
var on = flag.Bool("on", false, "turn the screen on")
var off = flag.Bool("off", false, "turn the screen off")
var chunk = flag.Int("chunk", 0, "pixel stream write size in bytes, 0 for one write")
var debug = flag.Bool("debug", false, "set debug")

func main() {
	flag.Parse()

	logger, _ := zap.NewProduction()
	if *debug {
		logger, _ = zap.NewDevelopment()
	}
	defer func() { _ = logger.Sync() }()

	dev, err := inch35.Open(proto.NewSerial(*serial), logger, inch35.WithChunkSize(*chunk))
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = dev.Close() }()

	if *on {
		if err := dev.ScreenOn(); err != nil {
			log.Fatal(err)
		}
	}

	if *clearScreen {
		if err := dev.Clear(); err != nil {
			log.Fatal(err)
		}
	}

	if *imagePath != "" {
		img, err := imaging.Open(*imagePath, imaging.AutoOrientation(true))
		if err != nil {
			log.Fatal(err)
		}

		b := dev.Bounds()
		filled := imaging.Fill(img, b.Dx(), b.Dy(), imaging.Center, imaging.Lanczos)
		if err := dev.DrawBitmap(0, 0, filled); err != nil {
			log.Fatal(err)
		}
	}

	if *off {
		if err := dev.ScreenOff(); err != nil {
			log.Fatal(err)
		}
	}
}
