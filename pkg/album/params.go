package album

import (
	"sync"
	"time"
)

func NewParams(width, height int) *Params {
	p := &Params{
		ErrorWait:  3 * time.Second,
		changeWait: 30 * time.Second,
		wakeup:     make(chan struct{}, 1),
		reset:      make(chan time.Duration, 1),
		width:      width,
		height:     height,
	}
	return p
}

// Params holds the runtime-tunable state of a slideshow.
type Params struct {
	l sync.RWMutex

	ErrorWait  time.Duration
	changeWait time.Duration

	wakeup chan struct{}
	reset  chan time.Duration
	paused bool
	width  int
	height int

	landscape bool
	invert    bool
}

func (p *Params) Paused() bool {
	p.l.RLock()
	defer p.l.RUnlock()
	return p.paused
}

func (p *Params) WakeupChan() <-chan struct{} {
	return p.wakeup
}

func (p *Params) ResetChan() <-chan time.Duration {
	return p.reset
}

func (p *Params) Pause() {
	p.l.Lock()
	defer p.l.Unlock()
	p.paused = true
}

// Wakeup resumes the slideshow and asks for an immediate redraw.
func (p *Params) Wakeup() {
	p.l.Lock()
	p.paused = false
	p.l.Unlock()

	select {
	case p.wakeup <- struct{}{}:
	default:
	}
}

// Reset restarts the change timer with dur.
func (p *Params) Reset(dur time.Duration) {
	select {
	case p.reset <- dur:
	default:
	}
}

func (p *Params) Interval() time.Duration {
	p.l.RLock()
	defer p.l.RUnlock()
	return p.changeWait
}

func (p *Params) SetInterval(d time.Duration) {
	p.l.Lock()
	p.changeWait = d
	p.l.Unlock()
}

// SetLandscape lays pictures out on the long axis; they are rotated a
// quarter turn before being sent to the portrait panel.
func (p *Params) SetLandscape(landscape, invert bool) {
	p.l.Lock()
	defer p.l.Unlock()
	p.landscape = landscape
	p.invert = invert
}

// Layout returns the picture size and the rotation applied before drawing.
func (p *Params) Layout() (w, h int, landscape, invert bool) {
	p.l.RLock()
	defer p.l.RUnlock()
	if p.landscape {
		return p.height, p.width, true, p.invert
	}
	return p.width, p.height, false, p.invert
}
