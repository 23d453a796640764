package proto

import (
	"strings"

	"github.com/pkg/errors"
	"go.bug.st/serial"
	"go.bug.st/serial/enumerator"
)

var ErrPortNotFound = errors.New("USB port not found")

// DefaultSerialNumber identifies the 3.5" panel on the USB bus.
const DefaultSerialNumber = "USB35INCHIPSV2"

type Options struct {
	DTR      bool
	RTS      bool
	BaudRate int
}

// Matcher selects the display among the enumerated ports.
type Matcher func(port *enumerator.PortDetails) bool

// MatchSerialNumber matches a USB port by its exact serial number.
func MatchSerialNumber(sn string) Matcher {
	return func(port *enumerator.PortDetails) bool {
		return port.IsUSB && port.SerialNumber == sn
	}
}

// MatchName matches any port whose name contains s, e.g. "ttyACM0".
func MatchName(s string) Matcher {
	return func(port *enumerator.PortDetails) bool {
		return strings.Contains(port.Name, s)
	}
}

// NewSerial looks the port up by USB serial number, falling back to the
// port name.
func NewSerial(name string) *Serial {
	return &Serial{
		name:  name,
		match: []Matcher{MatchSerialNumber(name), MatchName(name)},
		list:  enumerator.GetDetailedPortsList,
		open:  serial.Open,
	}
}

type Serial struct {
	name  string
	match []Matcher
	list  func() ([]*enumerator.PortDetails, error)
	open  func(name string, mode *serial.Mode) (serial.Port, error)
	port  serial.Port
}

func (s *Serial) Ports() ([]*enumerator.PortDetails, error) {
	return s.list()
}

// Find returns the name of the first port accepted by a matcher, trying
// matchers in order.
func (s *Serial) Find() (string, error) {
	ports, err := s.Ports()
	if err != nil {
		return "", err
	}

	return findPort(ports, s.match...)
}

func findPort(ports []*enumerator.PortDetails, match ...Matcher) (string, error) {
	for _, m := range match {
		for _, port := range ports {
			if m(port) {
				return port.Name, nil
			}
		}
	}
	return "", ErrPortNotFound
}

func (s *Serial) Open(opts *Options) error {
	matched, err := s.Find()
	if err != nil {
		return err
	}

	port, err := s.open(matched, &serial.Mode{
		BaudRate: opts.BaudRate,
		InitialStatusBits: &serial.ModemOutputBits{
			DTR: opts.DTR,
			RTS: opts.RTS,
		},
	})
	if err != nil {
		return err
	}

	if err := port.SetDTR(opts.DTR); err != nil {
		_ = port.Close()
		return err
	}

	if err := port.SetRTS(opts.RTS); err != nil {
		_ = port.Close()
		return err
	}

	s.port = port
	return nil
}

func (s *Serial) Close() error {
	if s.port == nil {
		return nil
	}
	return s.port.Close()
}

func (s *Serial) Write(p []byte) (n int, err error) {
	if s.port == nil {
		return 0, errors.New("serial port not opened")
	}
	return s.port.Write(p)
}
