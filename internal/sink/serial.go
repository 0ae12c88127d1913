package sink

import (
	"fmt"
	"io"

	"github.com/jacobsa/go-serial/serial"

	"igc2csv/internal/nmea"
	"igc2csv/internal/track"
)

var openPort = func(opts serial.OpenOptions) (io.ReadWriteCloser, error) {
	return serial.Open(opts)
}

// Serial writes NMEA sentences to a serial device, the way a flight recorder
// feeds an external flight computer.
type Serial struct {
	device string
	port   io.WriteCloser
}

func NewSerial(device string, baud uint) (*Serial, error) {
	opts := serial.OpenOptions{
		PortName:        device,
		BaudRate:        baud,
		DataBits:        8,
		StopBits:        1,
		MinimumReadSize: 1,
		ParityMode:      serial.PARITY_NONE,
	}
	port, err := openPort(opts)
	if err != nil {
		return nil, fmt.Errorf("open serial %s: %w", device, err)
	}
	return &Serial{device: device, port: port}, nil
}

func (s *Serial) Send(r track.Row) error {
	_, err := s.port.Write(nmea.Lines(r))
	return err
}

func (s *Serial) Close() error {
	if s.port == nil {
		return nil
	}
	return s.port.Close()
}
