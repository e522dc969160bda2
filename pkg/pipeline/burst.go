package pipeline

import (
	"context"
	"fmt"

	"respira/pkg/config"
	"respira/pkg/daq"
	"respira/pkg/filter"
	"respira/pkg/sample"
	"respira/pkg/spectral"
)

// BurstSession captures exactly cfg.Burst.Count single-channel bursts, one
// per start token, and spectrally analyzes each. Unlike the streaming
// variant, an acquisition timeout aborts the whole session: a missing
// burst would desynchronize the capture/label pairing.
type BurstSession struct {
	cfg       *config.Config
	transport daq.Transport
}

// NewBurstSession builds a burst session over the given transport.
func NewBurstSession(cfg *config.Config, t daq.Transport) *BurstSession {
	return &BurstSession{cfg: cfg, transport: t}
}

// Run acquires all configured bursts and returns one record per burst, in
// capture order. Records already collected are discarded on failure; no
// partial session is reported as complete.
func (b *BurstSession) Run(ctx context.Context) ([]spectral.Record, error) {
	records := make([]spectral.Record, 0, b.cfg.Burst.Count)

	for i := 0; i < b.cfg.Burst.Count; i++ {
		rec, err := b.captureOne(ctx)
		if err != nil {
			return nil, fmt.Errorf("burst %d/%d: %w", i+1, b.cfg.Burst.Count, err)
		}
		rec.Label = b.label(i)
		records = append(records, rec)
	}

	return records, nil
}

func (b *BurstSession) captureOne(ctx context.Context) (spectral.Record, error) {
	if err := daq.AwaitToken(ctx, b.transport); err != nil {
		return spectral.Record{}, err
	}

	frame, err := daq.ReadFrame(b.transport, b.cfg.Burst.TotalSamples*2)
	if err != nil {
		return spectral.Record{}, err
	}

	mv := sample.Voltage(sample.Codes(frame), b.cfg.Calibration)
	flattened := filter.DeadBand(mv, b.cfg.Burst.DeadBandMV)

	return spectral.Analyze(flattened, b.cfg.Burst.SamplingRate), nil
}

func (b *BurstSession) label(i int) string {
	if i < len(b.cfg.Burst.Labels) {
		return b.cfg.Burst.Labels[i]
	}
	return fmt.Sprintf("burst %d", i+1)
}
