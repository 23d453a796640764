package proto

import (
	"bytes"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.bug.st/serial"
	"go.bug.st/serial/enumerator"
)

type fakePort struct {
	bytes.Buffer
	dtr, rts bool
	closed   bool
}

func (p *fakePort) SetMode(*serial.Mode) error         { return nil }
func (p *fakePort) Drain() error                       { return nil }
func (p *fakePort) ResetInputBuffer() error            { return nil }
func (p *fakePort) ResetOutputBuffer() error           { return nil }
func (p *fakePort) SetDTR(dtr bool) error              { p.dtr = dtr; return nil }
func (p *fakePort) SetRTS(rts bool) error              { p.rts = rts; return nil }
func (p *fakePort) SetReadTimeout(time.Duration) error { return nil }
func (p *fakePort) Break(time.Duration) error          { return nil }
func (p *fakePort) Close() error                       { p.closed = true; return nil }
func (p *fakePort) GetModemStatusBits() (*serial.ModemStatusBits, error) {
	return &serial.ModemStatusBits{}, nil
}

func testPorts() []*enumerator.PortDetails {
	return []*enumerator.PortDetails{
		{Name: "/dev/ttyS0"},
		{Name: "/dev/ttyACM0", IsUSB: true, VID: "2341", PID: "0043", SerialNumber: "85736323838351F0E1C1"},
		{Name: "/dev/ttyACM1", IsUSB: true, VID: "1a86", PID: "5722", SerialNumber: DefaultSerialNumber},
	}
}

func TestFindPortBySerialNumber(t *testing.T) {
	t.Parallel()

	name, err := findPort(testPorts(), MatchSerialNumber(DefaultSerialNumber), MatchName(DefaultSerialNumber))
	require.NoError(t, err)
	assert.Equal(t, "/dev/ttyACM1", name)
}

func TestFindPortByName(t *testing.T) {
	t.Parallel()

	name, err := findPort(testPorts(), MatchSerialNumber("ttyACM0"), MatchName("ttyACM0"))
	require.NoError(t, err)
	assert.Equal(t, "/dev/ttyACM0", name)
}

func TestFindPortNotFound(t *testing.T) {
	t.Parallel()

	_, err := findPort(testPorts(), MatchSerialNumber("USB50INCH"))
	assert.True(t, errors.Is(err, ErrPortNotFound))
}

func TestSerialOpenNotFound(t *testing.T) {
	t.Parallel()

	s := NewSerial(DefaultSerialNumber)
	s.list = func() ([]*enumerator.PortDetails, error) {
		return testPorts()[:2], nil
	}

	err := s.Open(&Options{BaudRate: 115200, RTS: true})
	assert.True(t, errors.Is(err, ErrPortNotFound))

	_, err = s.Write([]byte{0})
	assert.Error(t, err)
	assert.NoError(t, s.Close())
}

func TestSerialListError(t *testing.T) {
	t.Parallel()

	boom := errors.New("enumeration failed")
	s := NewSerial(DefaultSerialNumber)
	s.list = func() ([]*enumerator.PortDetails, error) {
		return nil, boom
	}

	_, err := s.Find()
	assert.Same(t, boom, err)
}

func TestSerialOpen(t *testing.T) {
	t.Parallel()

	port := &fakePort{}
	var opened string
	var mode *serial.Mode

	s := NewSerial(DefaultSerialNumber)
	s.list = func() ([]*enumerator.PortDetails, error) {
		return testPorts(), nil
	}
	s.open = func(name string, m *serial.Mode) (serial.Port, error) {
		opened, mode = name, m
		return port, nil
	}

	require.NoError(t, s.Open(&Options{BaudRate: 115200, RTS: true}))
	assert.Equal(t, "/dev/ttyACM1", opened)
	assert.Equal(t, 115200, mode.BaudRate)
	assert.True(t, port.rts)
	assert.False(t, port.dtr)

	f, err := EncodeStateless(Clear)
	require.NoError(t, err)
	_, err = s.Write(f[:])
	require.NoError(t, err)
	assert.Equal(t, f[:], port.Bytes())

	require.NoError(t, s.Close())
	assert.True(t, port.closed)
}
