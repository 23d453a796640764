package album

import (
	"errors"
	"fmt"
	"os"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/spf13/afero"
)

func newFs(path string) (afero.Fs, error) {
	fs := afero.NewOsFs()
	if exists, err := afero.DirExists(fs, path); err != nil {
		return nil, err
	} else if !exists {
		return nil, errors.New("dir not exists")
	}
	return afero.NewBasePathFs(fs, path), nil
}

var imageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

func isImage(name string) bool {
	return imageExts[strings.ToLower(path.Ext(name))]
}

// Picture is one image file of the library.
type Picture struct {
	Name    string
	Size    int64
	ModTime time.Time
}

func NewLibrary(dir string) (*Library, error) {
	fs, err := newFs(dir)
	if err != nil {
		return nil, fmt.Errorf("open library failed: %w", err)
	}
	return NewLibraryFs(fs), nil
}

func NewLibraryFs(fs afero.Fs) *Library {
	return &Library{fs: fs}
}

// Library is a flat directory of images.
type Library struct {
	fs afero.Fs
}

// List returns the pictures sorted by name.
func (l *Library) List() ([]*Picture, error) {
	infos, err := afero.ReadDir(l.fs, "/")
	if err != nil {
		return nil, err
	}

	var pics []*Picture
	for _, fi := range infos {
		if fi.IsDir() || !isImage(fi.Name()) {
			continue
		}
		pics = append(pics, &Picture{Name: fi.Name(), Size: fi.Size(), ModTime: fi.ModTime()})
	}

	sort.Slice(pics, func(i, j int) bool { return pics[i].Name < pics[j].Name })
	return pics, nil
}

func (l *Library) Read(pic *Picture) ([]byte, error) {
	return afero.ReadFile(l.fs, pic.Name)
}

func (l *Library) Exists(name string) (bool, error) {
	return afero.Exists(l.fs, name)
}

// Add stores bs under name, refusing to overwrite.
func (l *Library) Add(name string, bs []byte) (*Picture, error) {
	if !isImage(name) {
		return nil, fmt.Errorf("not an image: %s", name)
	}

	if exists, err := l.Exists(name); err != nil {
		return nil, err
	} else if exists {
		return nil, os.ErrExist
	}

	if err := afero.WriteFile(l.fs, name, bs, 0644); err != nil {
		return nil, err
	}

	fi, err := l.fs.Stat(name)
	if err != nil {
		return nil, err
	}

	return &Picture{Name: fi.Name(), Size: fi.Size(), ModTime: fi.ModTime()}, nil
}
