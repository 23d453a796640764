package album

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/spf13/afero"
)

func NewCache(dir string) (*Cache, error) {
	c := &Cache{}

	if dir == "" {
		return c, nil
	}

	if fs, err := newFs(dir); err != nil {
		return nil, fmt.Errorf("create cache failed: %w", err)
	} else {
		c.fs = fs
	}

	return c, nil
}

func NewCacheFs(fs afero.Fs) *Cache {
	return &Cache{fs: fs}
}

// Cache keeps images already filled to a screen size, as PNG.
type Cache struct {
	fs afero.Fs
}

func (c *Cache) dirname(w, h int) string {
	return fmt.Sprintf("%dx%d", w, h)
}

func (c *Cache) filename(pic *Picture, w, h int) string {
	return fmt.Sprintf("%s/%s.png", c.dirname(w, h), pic.Name)
}

func (c *Cache) LoadImage(pic *Picture, w, h int) (bool, image.Image, error) {
	if c.fs == nil {
		return false, nil, nil
	}

	file := c.filename(pic, w, h)
	fi, err := c.fs.Stat(file)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil, nil
		}
		return false, nil, err
	}

	// the source changed after it was cached
	if fi.ModTime().Before(pic.ModTime) {
		return false, nil, nil
	}

	bs, err := afero.ReadFile(c.fs, file)
	if err != nil {
		return false, nil, err
	}

	img, err := png.Decode(bytes.NewBuffer(bs))
	if err != nil {
		return false, nil, err
	}

	return true, img, nil
}

func (c *Cache) SaveImage(pic *Picture, img image.Image) error {
	if c.fs == nil {
		return nil
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return err
	}

	w := img.Bounds().Dx()
	h := img.Bounds().Dy()

	dir := c.dirname(w, h)
	file := c.filename(pic, w, h)

	if exists, err := afero.DirExists(c.fs, dir); err != nil {
		return err
	} else if !exists {
		if err2 := c.fs.MkdirAll(dir, 0755); err2 != nil {
			return err2
		}
	}

	return afero.WriteFile(c.fs, file, buf.Bytes(), 0644)
}
