package album

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"net/url"
	"path"

	"github.com/go-resty/resty/v2"
	"github.com/rs/xid"
	"github.com/samber/lo"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
)

func NewDownloader(lib *Library, logger *zap.Logger) *Downloader {
	return &Downloader{
		lib: lib,
		cli: resty.New().SetDoNotParseResponse(true),
		log: logger,
	}
}

// Downloader adds pictures to the library from URLs.
type Downloader struct {
	lib *Library
	cli *resty.Client
	log *zap.Logger
}

// filename keeps the URL's base name when it looks like an image, otherwise
// makes one up from the content type.
func (d *Downloader) filename(rawURL, contentType string) string {
	if u, err := url.Parse(rawURL); err == nil {
		if base := path.Base(u.Path); isImage(base) {
			return base
		}
	}

	exts, _ := mime.ExtensionsByType(contentType)
	ext, ok := lo.Find(exts, isImage)
	return xid.New().String() + lo.Ternary(ok, ext, ".png")
}

func (d *Downloader) Get(rawURL string) ([]byte, string, error) {
	resp, err := d.cli.R().Get(rawURL)
	if err != nil {
		return nil, "", err
	}

	defer func() {
		_ = resp.RawBody().Close()
	}()

	if resp.IsError() {
		return nil, "", fmt.Errorf("download %s: %s", rawURL, resp.Status())
	}

	bar := progressbar.DefaultBytes(resp.RawResponse.ContentLength, fmt.Sprintf("Downloading %s", rawURL))

	var buf bytes.Buffer
	if _, err := io.Copy(io.MultiWriter(&buf, bar), resp.RawBody()); err != nil {
		return nil, "", err
	}

	return buf.Bytes(), d.filename(rawURL, resp.Header().Get("Content-Type")), nil
}

// Fetch downloads rawURL into the library.
func (d *Downloader) Fetch(rawURL string) (*Picture, error) {
	bs, name, err := d.Get(rawURL)
	if err != nil {
		return nil, err
	}

	pic, err := d.lib.Add(name, bs)
	if err != nil {
		return nil, fmt.Errorf("save %s failed: %w", name, err)
	}

	d.log.With(zap.String("url", rawURL), zap.String("name", pic.Name)).Debug("picture saved")
	return pic, nil
}
