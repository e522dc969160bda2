package daq

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"

	"respira/pkg/config"
)

// Fake simulates the MCU side of the link for testing and development.
// It replays scripted byte chunks; each Read consumes at most one chunk,
// so partial reads are exercised the way a real port exercises them. An
// empty chunk replays as a zero-byte read, i.e. a transport timeout.
type Fake struct {
	mu     sync.Mutex
	chunks [][]byte
	closed bool

	// Refill, when set, is called once the script runs out and its result
	// is appended. It lets the fake produce an endless stream of cycles.
	Refill func() [][]byte
}

var _ Transport = (*Fake)(nil)

// NewFake creates a fake transport that replays the given chunks in order.
func NewFake(chunks ...[]byte) *Fake {
	return &Fake{chunks: chunks}
}

// Read copies bytes from the current script chunk.
func (f *Fake) Read(p []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return 0, fmt.Errorf("transport closed")
	}

	if len(f.chunks) == 0 && f.Refill != nil {
		f.chunks = append(f.chunks, f.Refill()...)
	}
	if len(f.chunks) == 0 {
		// Script exhausted: behave like a stalled port.
		return 0, nil
	}

	head := f.chunks[0]
	if len(head) == 0 {
		// Scripted timeout.
		f.chunks = f.chunks[1:]
		return 0, nil
	}

	n := copy(p, head)
	if n == len(head) {
		f.chunks = f.chunks[1:]
	} else {
		f.chunks[0] = head[n:]
	}
	return n, nil
}

// Close stops the fake; subsequent reads fail.
func (f *Fake) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

// TokenLine returns the sentinel line as sent by the MCU.
func TokenLine() []byte {
	return []byte(StartToken + "\n")
}

// EncodeFrame packs ADC codes as little-endian uint16, the MCU wire format.
func EncodeFrame(codes []uint16) []byte {
	buf := make([]byte, 2*len(codes))
	for i, c := range codes {
		binary.LittleEndian.PutUint16(buf[2*i:], c)
	}
	return buf
}

// NewFakeStream creates a fake transport that endlessly produces streaming
// cycles: a token line followed by an interleaved two-channel frame of a
// synthetic breathing waveform.
func NewFakeStream(cfg *config.Config) *Fake {
	cycle := 0
	f := NewFake()
	f.Refill = func() [][]byte {
		codes := BreathCodes(cfg, cycle)
		cycle++
		return [][]byte{TokenLine(), EncodeFrame(codes)}
	}
	return f
}

// NewFakeBurst creates a fake transport scripted with cfg.Burst.Count
// decaying-oscillation bursts.
func NewFakeBurst(cfg *config.Config) *Fake {
	chunks := make([][]byte, 0, 2*cfg.Burst.Count)
	for i := 0; i < cfg.Burst.Count; i++ {
		chunks = append(chunks, TokenLine(), EncodeFrame(BurstCodes(cfg, i)))
	}
	return NewFake(chunks...)
}

// BreathCodes synthesizes one interleaved streaming frame. Channel A is a
// slow sinusoid at the configured breathing rate around the calibration
// center; channel B carries the same waveform pre-inverted so that the
// converter's mirror transform restores it.
func BreathCodes(cfg *config.Config, cycle int) []uint16 {
	total := cfg.Acquisition.TotalSamples
	perChannel := total / 2
	fs := cfg.Acquisition.SamplingRate
	freq := cfg.Fake.BreathRateBPM / 60.0
	phase := 2 * math.Pi * freq * float64(cycle*perChannel) / fs

	codes := make([]uint16, 0, total)
	for i := 0; i < perChannel; i++ {
		t := float64(i) / fs
		breath := cfg.Fake.AmplitudeMV * math.Sin(2*math.Pi*freq*t+phase)
		noise := fakeNoise(i, cfg.Fake.NoiseMV)

		a := cfg.Calibration.CenterMV + breath + noise
		b := 2*cfg.Calibration.CenterMV - (cfg.Calibration.CenterMV + breath - noise)
		codes = append(codes, voltToCode(a, cfg.Calibration), voltToCode(b, cfg.Calibration))
	}
	return codes
}

// BurstCodes synthesizes one single-channel burst frame: an exponentially
// decaying oscillation at the configured resonance frequency.
func BurstCodes(cfg *config.Config, burst int) []uint16 {
	total := cfg.Burst.TotalSamples
	fs := cfg.Burst.SamplingRate
	// Later bursts ring slightly weaker, as repeated taps do.
	amp := cfg.Fake.AmplitudeMV / (1 + 0.2*float64(burst))

	codes := make([]uint16, total)
	for i := 0; i < total; i++ {
		t := float64(i) / fs
		v := cfg.Calibration.CenterMV +
			amp*math.Exp(-cfg.Fake.BurstDecay*t)*math.Sin(2*math.Pi*cfg.Fake.BurstFreqHz*t) +
			fakeNoise(i, cfg.Fake.NoiseMV)
		codes[i] = voltToCode(v, cfg.Calibration)
	}
	return codes
}

// fakeNoise is deterministic pseudo-noise so fake runs are reproducible.
func fakeNoise(i int, level float64) float64 {
	return (math.Sin(float64(i)*0.71) + math.Cos(float64(i)*1.13)) * level * 0.5
}

func voltToCode(mv float64, cal config.CalibrationConfig) uint16 {
	code := mv / cal.FullScaleMV * float64(cal.MaxCode)
	if code < 0 {
		return 0
	}
	if code > float64(cal.MaxCode) {
		return cal.MaxCode
	}
	return uint16(code + 0.5)
}
