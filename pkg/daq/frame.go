package daq

import "fmt"

// ReadFrame accumulates exactly n bytes from the transport, tolerating
// partial reads. It fails with ErrAcquisitionTimeout as soon as a read
// yields zero bytes, returning no partial buffer: a frame is delivered
// whole or not at all.
func ReadFrame(t Transport, n int) ([]byte, error) {
	if n <= 0 {
		return nil, fmt.Errorf("invalid frame size %d", n)
	}

	buf := make([]byte, n)
	got := 0
	for got < n {
		nr, err := t.Read(buf[got:])
		if err != nil {
			return nil, fmt.Errorf("frame read failed after %d/%d bytes: %w", got, n, err)
		}
		if nr == 0 {
			return nil, fmt.Errorf("frame truncated at %d/%d bytes: %w", got, n, ErrAcquisitionTimeout)
		}
		got += nr
	}

	return buf, nil
}
