// Package daq handles byte-level acquisition from the sampling MCU:
// transport abstraction, frame synchronization and frame reads.
package daq

import "errors"

// ErrAcquisitionTimeout indicates the transport stalled (a read yielded
// zero bytes) before the requested data was collected. It is fatal to the
// current acquisition cycle, not to the process.
var ErrAcquisitionTimeout = errors.New("acquisition timed out")

// Transport is a byte-oriented link to the sampling MCU. Reads may return
// fewer bytes than requested; a read returning (0, nil) means the
// transport's own timeout expired with no data.
type Transport interface {
	Read(p []byte) (n int, err error)
	Close() error
}
