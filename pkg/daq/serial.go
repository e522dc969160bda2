package daq

import (
	"fmt"
	"time"

	"go.bug.st/serial"
)

const (
	// DefaultBaudRate is the standard baud rate for the sampling MCU.
	DefaultBaudRate = 115200
	// DefaultReadTimeout bounds a single blocking read on the port.
	DefaultReadTimeout = 2 * time.Second
)

// Port represents a serial port.
type Port struct {
	Name        string
	Description string
}

// Serial is a Transport backed by a physical serial port.
type Serial struct {
	port    string
	baud    int
	timeout time.Duration

	conn serial.Port
}

var _ Transport = (*Serial)(nil)

// NewSerial creates a serial transport for the given port name. The port is
// not opened until Connect is called.
func NewSerial(port string, baudRate int, readTimeout time.Duration) *Serial {
	if baudRate == 0 {
		baudRate = DefaultBaudRate
	}
	if readTimeout == 0 {
		readTimeout = DefaultReadTimeout
	}

	return &Serial{
		port:    port,
		baud:    baudRate,
		timeout: readTimeout,
	}
}

// Ports returns a list of available serial ports.
func Ports() ([]Port, error) {
	names, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("failed to list serial ports: %w", err)
	}

	result := make([]Port, 0, len(names))
	for _, name := range names {
		result = append(result, Port{
			Name:        name,
			Description: name,
		})
	}

	return result, nil
}

// Connect opens the serial port and arms the read timeout.
func (s *Serial) Connect() error {
	if s.conn != nil {
		return fmt.Errorf("already connected")
	}

	mode := &serial.Mode{
		BaudRate: s.baud,
	}

	conn, err := serial.Open(s.port, mode)
	if err != nil {
		return fmt.Errorf("failed to open serial port %s: %w", s.port, err)
	}

	if err := conn.SetReadTimeout(s.timeout); err != nil {
		conn.Close()
		return fmt.Errorf("failed to set read timeout on %s: %w", s.port, err)
	}

	s.conn = conn
	return nil
}

// Read reads from the port. A timed-out read returns (0, nil), which the
// frame reader reports as ErrAcquisitionTimeout.
func (s *Serial) Read(p []byte) (int, error) {
	if s.conn == nil {
		return 0, fmt.Errorf("not connected")
	}
	return s.conn.Read(p)
}

// Close closes the serial port.
func (s *Serial) Close() error {
	if s.conn == nil {
		return nil
	}
	err := s.conn.Close()
	s.conn = nil
	return err
}
