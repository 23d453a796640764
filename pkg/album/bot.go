package album

import (
	"fmt"
	"strings"
	"time"

	"github.com/inhies/go-bytesize"
	tele "gopkg.in/telebot.v3"

	"turingscreen/pkg/proto"
)

func NewBot(token string, dev proto.Control, params *Params, a *Album, d *Drawer, h *History, dl *Downloader) (*Bot, error) {
	pref := tele.Settings{
		Token: token,
		Poller: &tele.LongPoller{
			Timeout: 30 * time.Second,
		},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, err
	}

	return &Bot{
		b:      b,
		dev:    dev,
		params: params,
		a:      a,
		d:      d,
		h:      h,
		dl:     dl,
	}, nil
}

type Bot struct {
	b      *tele.Bot
	dev    proto.Control
	params *Params
	a      *Album
	d      *Drawer
	h      *History
	dl     *Downloader
}

func (b *Bot) handleBase() {
	b.b.Handle("/open", func(context tele.Context) error {
		if err := b.dev.ScreenOn(); err != nil {
			return context.Reply(fmt.Sprintf("open failed: %s", err))
		}

		b.params.Wakeup()
		return context.Reply("OK")
	})

	b.b.Handle("/close", func(context tele.Context) error {
		if err := b.dev.ScreenOff(); err != nil {
			return context.Reply(fmt.Sprintf("close failed: %s", err))
		}

		b.params.Pause()
		return context.Reply("OK")
	})

	b.b.Handle("/clear", func(context tele.Context) error {
		b.d.Lock()
		defer b.d.Unlock()

		if err := b.dev.Clear(); err != nil {
			return context.Reply(fmt.Sprintf("clear failed: %s", err))
		}

		b.params.Pause()
		return context.Reply("OK")
	})

	b.b.Handle("/pause", func(context tele.Context) error {
		b.params.Pause()
		return context.Reply("OK")
	})

	b.b.Handle("/resume", func(context tele.Context) error {
		b.params.Wakeup()
		return context.Reply("OK")
	})
}

func (b *Bot) handleConfig() {
	b.b.Handle("/interval", func(context tele.Context) error {
		in := context.Message().Payload
		if in == "" {
			return context.Reply(b.params.Interval().String())
		}

		duration, err := time.ParseDuration(in)
		if err != nil {
			return context.Reply(fmt.Sprintf("change failed: %s", err))
		}

		b.params.SetInterval(duration)
		b.params.Reset(duration)
		return context.Reply("OK")
	})
}

func (b *Bot) handleAction() {
	b.b.Handle("/info", func(context tele.Context) error {
		log := b.h.Curr()
		if log == nil {
			return context.Reply("Current no picture")
		}

		lines := []string{
			fmt.Sprintf("Name: %s", log.Pic.Name),
			fmt.Sprintf("File size: %s", bytesize.New(float64(log.Pic.Size)).String()),
			fmt.Sprintf("Modified at: %s", log.Pic.ModTime.Format(time.RFC3339)),
			fmt.Sprintf("Drawn at: %s", log.At.Format(time.RFC3339)),
		}

		return context.Reply(strings.Join(lines, "\n"))
	})

	b.b.Handle("/logs", func(context tele.Context) error {
		var lines []string
		for _, log := range b.h.Logs() {
			lines = append(lines, fmt.Sprintf("%s %s", log.ID, log.Pic.Name))
		}
		if len(lines) == 0 {
			return context.Reply("No logs")
		}

		return context.Reply(strings.Join(lines, "\n"))
	})

	b.b.Handle("/next", func(context tele.Context) error {
		if err := b.a.Drawing(); err != nil {
			return context.Reply(fmt.Sprintf("draw failed: %s", err))
		}

		b.params.Reset(b.params.Interval())
		return context.Reply("OK")
	})

	b.b.Handle("/prev", func(context tele.Context) error {
		log := b.h.Prev()
		if log == nil {
			return context.Reply("Previous no item")
		}

		b.d.Lock()
		defer b.d.Unlock()

		if err := b.d.Canvas(log.filled); err != nil {
			return context.Reply(fmt.Sprintf("draw canvas failed: %s", err))
		}

		b.params.Reset(b.params.Interval())
		b.h.Push(log)

		return context.Reply("OK")
	})

	b.b.Handle("/fetch", func(context tele.Context) error {
		in := strings.TrimSpace(context.Message().Payload)
		if in == "" {
			return context.Reply("Usage: /fetch <url>")
		}

		pic, err := b.dl.Fetch(in)
		if err != nil {
			return context.Reply(fmt.Sprintf("fetch failed: %s", err))
		}

		return context.Reply(fmt.Sprintf("Saved as %s (%s)", pic.Name, bytesize.New(float64(pic.Size))))
	})
}

func (b *Bot) Start() {
	b.handleBase()
	b.handleConfig()
	b.handleAction()
	go b.b.Start()
}

func (b *Bot) Stop() {
	// TODO telebot stop will freezes for next response
	go b.b.Stop()
}
