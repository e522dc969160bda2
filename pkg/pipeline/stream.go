// Package pipeline drives acquisition cycles over a transport: token wait,
// frame read, then the processing chain from raw codes to rate metrics
// (streaming) or spectral records (burst). The transport is exclusively
// owned by the running pipeline; processing is synchronous and
// single-threaded by design.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"

	"respira/pkg/config"
	"respira/pkg/daq"
	"respira/pkg/filter"
	"respira/pkg/peaks"
	"respira/pkg/sample"
)

// StreamResult holds everything derived from one streaming cycle. Channel 1
// is the pressure sensor; channel 2 is the mirrored (inverted polarity)
// sensor, already corrected.
type StreamResult struct {
	Time         []float64 // per-channel time axis, seconds
	FilteredTime []float64 // prefix of Time when the filter trims the series

	Raw1, Raw2           []float64 // calibrated raw series, mV
	Filtered1, Filtered2 []float64 // conditioned series, mV

	Peaks1, Peaks2 []int
	Rate1, Rate2   peaks.Rate

	// Mean conditioned voltage at the detected peaks, mV. Zero when no
	// peaks were found.
	AvgPeakMV1, AvgPeakMV2 float64
}

// Stream runs the endless streaming variant: every cycle waits for the
// start token, reads one interleaved two-channel frame and processes it.
type Stream struct {
	cfg       *config.Config
	transport daq.Transport
	cond      filter.Conditioner

	callbacks []func(*StreamResult)
}

// NewStream builds a streaming pipeline over the given transport.
func NewStream(cfg *config.Config, t daq.Transport) (*Stream, error) {
	cond, err := filter.FromConfig(cfg.Filter, cfg.Acquisition.SamplingRate)
	if err != nil {
		return nil, err
	}
	return &Stream{
		cfg:       cfg,
		transport: t,
		cond:      cond,
	}, nil
}

// OnResult registers a callback invoked with every fully processed cycle.
func (s *Stream) OnResult(cb func(*StreamResult)) {
	s.callbacks = append(s.callbacks, cb)
}

// Run acquires and processes cycles until the context is cancelled. An
// acquisition timeout aborts only the current cycle: the loop re-enters
// token wait. A cycle whose series is too short for the configured filter
// is reported and its metrics suppressed. Any other transport failure is
// fatal.
func (s *Stream) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		result, err := s.RunOnce(ctx)
		switch {
		case err == nil:
			for _, cb := range s.callbacks {
				cb(result)
			}
		case errors.Is(err, daq.ErrAcquisitionTimeout):
			log.Printf("Acquisition timeout, waiting for next frame: %v", err)
		case errors.Is(err, filter.ErrInsufficientData):
			log.Printf("Cycle skipped: %v", err)
		case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
			return err
		default:
			return err
		}
	}
}

// RunOnce performs a single acquisition cycle: token wait, frame read and
// the full processing chain.
func (s *Stream) RunOnce(ctx context.Context) (*StreamResult, error) {
	if err := daq.AwaitToken(ctx, s.transport); err != nil {
		return nil, err
	}

	frame, err := daq.ReadFrame(s.transport, s.cfg.Acquisition.TotalSamples*2)
	if err != nil {
		return nil, err
	}

	return s.process(frame)
}

// process runs the pure part of the chain. Feeding the same frame twice
// yields bit-identical results.
func (s *Stream) process(frame []byte) (*StreamResult, error) {
	codesA, codesB := sample.Demux(frame)
	if len(codesA) != len(codesB) {
		// Odd code count: sample.Demux leaves the unpaired trailing
		// element on channel A. Drop it so the channels stay aligned.
		codesA = codesA[:len(codesB)]
	}

	raw1 := sample.Voltage(codesA, s.cfg.Calibration)
	raw2 := sample.Mirror(sample.Voltage(codesB, s.cfg.Calibration), s.cfg.Calibration)

	filt1, err := s.cond(raw1)
	if err != nil {
		return nil, fmt.Errorf("channel 1: %w", err)
	}
	filt2, err := s.cond(raw2)
	if err != nil {
		return nil, fmt.Errorf("channel 2: %w", err)
	}

	timeAxis := sample.TimeAxis(len(raw1), s.cfg.Acquisition.SamplingRate)
	filteredTime := timeAxis[:len(filt1)]

	p1 := peaks.Detect(filt1, s.cfg.Peaks.MinDistance, s.cfg.Peaks.MinProminence)
	p2 := peaks.Detect(filt2, s.cfg.Peaks.MinDistance, s.cfg.Peaks.MinProminence)

	return &StreamResult{
		Time:         timeAxis,
		FilteredTime: filteredTime,
		Raw1:         raw1,
		Raw2:         raw2,
		Filtered1:    filt1,
		Filtered2:    filt2,
		Peaks1:       p1,
		Peaks2:       p2,
		Rate1:        peaks.EstimateRate(p1, filteredTime),
		Rate2:        peaks.EstimateRate(p2, filteredTime),
		AvgPeakMV1:   peaks.MeanValueAt(filt1, p1),
		AvgPeakMV2:   peaks.MeanValueAt(filt2, p2),
	}, nil
}
