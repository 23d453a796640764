package main

import (
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"turingscreen/pkg/album"
	"turingscreen/pkg/device/inch35"
	"turingscreen/pkg/device/remote"
	"turingscreen/pkg/mixer"
	"turingscreen/pkg/proto"
)

var serial = flag.String("serial", proto.DefaultSerialNumber, "serial number, port name or remote addr")
var dir = flag.String("dir", ".", "pictures directory")
var cacheDir = flag.String("cache", "", "filled pictures cache directory")
var landscape = flag.Bool("landscape", false, "set landscape")
var invert = flag.Bool("invert", false, "set invert")
var shuffle = flag.Bool("shuffle", false, "pick pictures at random")
var effects = flag.StringSlice("effect", nil, "transition effects: block, lines")
var interval = flag.Duration("interval", 5*time.Minute, "draw interval")
var debug = flag.Bool("debug", false, "set debug")
var tgToken = flag.String("tg-token", "", "telegram bot token")

type device interface {
	proto.Control
	Close() error
}

func effectsByName(names []string) []mixer.Effect {
	var effs []mixer.Effect
	for _, name := range names {
		switch name {
		case "block":
			effs = append(effs, mixer.EffectBlock())
		case "lines":
			effs = append(effs, mixer.EffectLines(40))
		default:
			log.Fatalf("unknown effect %q", name)
		}
	}
	return effs
}

func main() {
	flag.Parse()

	logger, _ := zap.NewProduction()
	if *debug {
		logger, _ = zap.NewDevelopment()
	}

	var dev device
	var devErr error

	if strings.Contains(*serial, ":") {
		dev, devErr = remote.New(*serial)
	} else {
		dev, devErr = inch35.Open(proto.NewSerial(*serial), logger)
	}

	if devErr != nil {
		log.Fatal(devErr)
	}

	if err := dev.ScreenOn(); err != nil {
		log.Fatal(err)
	}

	b := dev.Bounds()
	params := album.NewParams(b.Dx(), b.Dy())
	params.SetInterval(*interval)
	params.SetLandscape(*landscape, *invert)

	lib, err := album.NewLibrary(*dir)
	if err != nil {
		log.Fatal(err)
	}

	cache, err := album.NewCache(*cacheDir)
	if err != nil {
		log.Fatal(err)
	}

	history := album.NewHistory(3)
	drawer := album.NewDrawer(
		mixer.NewDrawer(dev, mixer.WithEffect(effectsByName(*effects)...)),
		params,
		lib,
		cache,
		history,
		logger,
	)

	var opts []album.Option
	if *shuffle {
		opts = append(opts, album.WithShuffle())
	}
	a := album.New(lib, drawer, opts...)

	var bot *album.Bot
	if *tgToken != "" {
		var botErr error
		bot, botErr = album.NewBot(*tgToken, dev, params, a, drawer, history, album.NewDownloader(lib, logger))
		if botErr != nil {
			log.Fatal(botErr)
		}
		bot.Start()
	}

	shutdown := make(chan struct{})
	exited := make(chan struct{})

	go func() {
		timer := time.NewTimer(time.Nanosecond)

		defer func() {
			timer.Stop()
			if bot != nil {
				bot.Stop()
			}
			if err := dev.ScreenOff(); err != nil {
				logger.With(zap.Error(err)).Info("screen off failed")
			}
			if err := dev.Close(); err != nil {
				logger.With(zap.Error(err)).Info("close failed")
			}
			exited <- struct{}{}
		}()

		wakeupChan := params.WakeupChan()
		resetChan := params.ResetChan()

		for {
			select {
			case <-shutdown:
				return
			case <-wakeupChan:
				timer.Reset(time.Millisecond)
				continue
			case d := <-resetChan:
				timer.Reset(d)
				continue
			case <-timer.C:
				if params.Paused() {
					logger.Info("switch paused, skip...")
					continue
				}
				if err := a.Drawing(); err != nil {
					logger.With(zap.Error(err)).Info("drawing failed")
					timer.Reset(params.ErrorWait)
				} else {
					timer.Reset(params.Interval())
				}
			}
		}
	}()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM)

	<-signals
	logger.Info("shutting down")
	shutdown <- struct{}{}
	<-exited
	logger.Info("exited")
}
