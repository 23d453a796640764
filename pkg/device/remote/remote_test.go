package remote

import (
	"image"
	"image/color"
	"net"
	"net/rpc"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"turingscreen/pkg/bitmap"
	"turingscreen/pkg/device/inch35"
	"turingscreen/pkg/device/virtual"
)

func pipe(t *testing.T) (*Client, *virtual.Screen) {
	t.Helper()

	screen := virtual.NewScreen(inch35.Width, inch35.Height, zap.NewNop())
	dev := inch35.New(screen, zap.NewNop())

	server := rpc.NewServer()
	require.NoError(t, server.Register(NewService(dev)))

	c1, c2 := net.Pipe()
	go server.ServeConn(c1)

	client, err := NewClient(rpc.NewClient(c2))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return client, screen
}

func TestClientBounds(t *testing.T) {
	t.Parallel()

	client, _ := pipe(t)
	assert.Equal(t, image.Rect(0, 0, inch35.Width, inch35.Height), client.Bounds())
}

func TestClientCommands(t *testing.T) {
	t.Parallel()

	client, screen := pipe(t)

	require.NoError(t, client.ScreenOn())
	assert.True(t, screen.On())

	require.NoError(t, client.Clear())
	require.NoError(t, client.ScreenOff())
	assert.False(t, screen.On())
	assert.Len(t, screen.Frames(), 3)
}

func TestClientDrawBitmap(t *testing.T) {
	t.Parallel()

	client, screen := pipe(t)

	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(1, 1, color.NRGBA{R: 255, G: 255, B: 255, A: 255})

	require.NoError(t, client.DrawBitmap(10, 20, img))

	got := screen.Image()
	assert.Equal(t, bitmap.Color{0xFF, 0xFF}, got.RGB565At(11, 21))
	assert.Equal(t, bitmap.Color{}, got.RGB565At(10, 20))
}

func TestClientDrawBitmapOverflow(t *testing.T) {
	t.Parallel()

	client, screen := pipe(t)

	err := client.DrawBitmap(319, 0, image.NewNRGBA(image.Rect(0, 0, 2, 1)))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "width overflow")
	assert.Empty(t, screen.Frames())
}

func TestServiceUnknownCommand(t *testing.T) {
	t.Parallel()

	svc := NewService(virtual.Mock(zap.NewNop(), image.Rect(0, 0, 1, 1)))
	assert.Error(t, svc.Command("reboot", nil))
}
