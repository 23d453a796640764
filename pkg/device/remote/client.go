package remote

import (
	"bytes"
	"image"
	"image/png"
	"net/rpc"

	"turingscreen/pkg/proto"
)

// New dials a render proxy started with Proxy.
func New(addr string) (*Client, error) {
	client, err := rpc.DialHTTP("tcp", addr)
	if err != nil {
		return nil, err
	}

	return NewClient(client)
}

// NewClient wraps an established rpc connection and fetches the remote size.
func NewClient(client *rpc.Client) (*Client, error) {
	c := &Client{rpc: client}

	var size BoundsResponse
	if err := client.Call("Service.Bounds", struct{}{}, &size); err != nil {
		return nil, err
	}
	c.bounds = image.Rect(0, 0, size.Width, size.Height)

	return c, nil
}

type Client struct {
	rpc    *rpc.Client
	bounds image.Rectangle
}

var _ proto.Control = (*Client)(nil)

func (c *Client) Close() error {
	return c.rpc.Close()
}

func (c *Client) Bounds() image.Rectangle {
	return c.bounds
}

func (c *Client) Clear() error {
	return c.rpc.Call("Service.Command", "clear", &EmptyResponse{})
}

func (c *Client) ScreenOn() error {
	return c.rpc.Call("Service.Command", "on", &EmptyResponse{})
}

func (c *Client) ScreenOff() error {
	return c.rpc.Call("Service.Command", "off", &EmptyResponse{})
}

func (c *Client) DrawBitmap(posX uint16, posY uint16, image image.Image) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, image); err != nil {
		return err
	}

	return c.rpc.Call("Service.DrawBitmap", &DrawBitmapRequest{
		PosX:  posX,
		PosY:  posY,
		Image: buf.Bytes(),
	}, &EmptyResponse{})
}
