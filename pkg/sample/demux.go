// Package sample turns raw acquisition frames into calibrated per-channel
// voltage series.
package sample

import "encoding/binary"

// Codes interprets a frame as little-endian uint16 ADC codes. A trailing
// odd byte cannot form a code and is dropped.
func Codes(frame []byte) []uint16 {
	n := len(frame) / 2
	codes := make([]uint16, n)
	for i := 0; i < n; i++ {
		codes[i] = binary.LittleEndian.Uint16(frame[2*i:])
	}
	return codes
}

// Demux splits an interleaved two-channel frame: codes at even positions
// belong to channel A, odd positions to channel B, both in original order.
// A trailing element without a partner stays on channel A.
func Demux(frame []byte) (a, b []uint16) {
	codes := Codes(frame)
	a = make([]uint16, 0, (len(codes)+1)/2)
	b = make([]uint16, 0, len(codes)/2)
	for i, c := range codes {
		if i%2 == 0 {
			a = append(a, c)
		} else {
			b = append(b, c)
		}
	}
	return a, b
}

// Interleave is the inverse of Demux, used to verify round trips.
func Interleave(a, b []uint16) []uint16 {
	out := make([]uint16, 0, len(a)+len(b))
	for i := 0; i < len(a) || i < len(b); i++ {
		if i < len(a) {
			out = append(out, a[i])
		}
		if i < len(b) {
			out = append(out, b[i])
		}
	}
	return out
}
