package daq

import (
	"context"
	"fmt"
	"strings"
)

// StartToken is the sentinel line the MCU sends immediately before a
// binary frame.
const StartToken = "START"

// maxLineLen caps line accumulation so binary garbage without newlines
// cannot grow the buffer without bound.
const maxLineLen = 4096

// AwaitToken discards newline-terminated lines from the transport until one
// trims to StartToken. Lines that fail to decode cleanly simply never match
// and are discarded; they are not errors. Bytes are consumed one at a time
// so no payload byte after the token line is ever buffered away.
//
// AwaitToken has no timeout of its own: a transport read that yields zero
// bytes is reported as ErrAcquisitionTimeout.
func AwaitToken(ctx context.Context, t Transport) error {
	var line []byte
	buf := make([]byte, 1)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		n, err := t.Read(buf)
		if err != nil {
			return fmt.Errorf("token wait failed: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("token wait: %w", ErrAcquisitionTimeout)
		}

		if buf[0] != '\n' {
			if len(line) < maxLineLen {
				line = append(line, buf[0])
			}
			continue
		}

		if strings.TrimSpace(string(line)) == StartToken {
			return nil
		}
		line = line[:0]
	}
}
