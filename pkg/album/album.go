package album

import (
	"errors"
	"fmt"
	"sync"

	"github.com/samber/lo"
)

var ErrEmptyLibrary = errors.New("no pictures in library")

func New(lib *Library, d *Drawer, opts ...Option) *Album {
	a := &Album{
		lib: lib,
		d:   d,
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

type Album struct {
	mu   sync.Mutex
	lib  *Library
	d    *Drawer
	last string
	// options
	shuffle bool
}

// pickImage returns the picture after the last drawn one by name, wrapping
// around, or a random other one when shuffling.
func (a *Album) pickImage() (*Picture, error) {
	pics, err := a.lib.List()
	if err != nil {
		return nil, fmt.Errorf("list library failed: %w", err)
	}
	if len(pics) == 0 {
		return nil, ErrEmptyLibrary
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	var pic *Picture
	if a.shuffle {
		others := lo.Filter(pics, func(p *Picture, _ int) bool { return p.Name != a.last })
		pic = lo.Sample(lo.Ternary(len(others) > 0, others, pics))
	} else {
		next, ok := lo.Find(pics, func(p *Picture) bool { return p.Name > a.last })
		pic = lo.Ternary(ok, next, pics[0])
	}

	a.last = pic.Name
	return pic, nil
}

// Drawing renders the next picture onto the panel.
func (a *Album) Drawing() error {
	pic, err := a.pickImage()
	if err != nil {
		return fmt.Errorf("pick image failed: %w", err)
	}

	a.d.Lock()
	defer a.d.Unlock()

	filled, err := a.d.Filled(pic)
	if err != nil {
		return fmt.Errorf("fill %s failed: %w", pic.Name, err)
	}

	if err := a.d.Canvas(filled); err != nil {
		return fmt.Errorf("draw bitmap failed: %w", err)
	}

	a.d.history.Add(pic, filled)
	return nil
}
