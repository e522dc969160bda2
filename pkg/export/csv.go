// Package export writes computed series and burst records as flat CSV,
// the only persistence this tool has.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"respira/pkg/spectral"
)

// cycleHeader matches the column layout consumers of the capture files
// already expect.
var cycleHeader = []string{"Raw_V1", "Raw_V2", "Filtered_V1", "Filtered_V2"}

// WriteCycle writes one acquisition cycle as CSV: one row per aligned
// sample index, three decimal places, truncated to the shortest series so
// strategies that trim the smoothed series still line up.
func WriteCycle(w io.Writer, raw1, raw2, filt1, filt2 []float64) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(cycleHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	n := len(raw1)
	for _, s := range [][]float64{raw2, filt1, filt2} {
		if len(s) < n {
			n = len(s)
		}
	}

	row := make([]string, 4)
	for i := 0; i < n; i++ {
		row[0] = fmt.Sprintf("%.3f", raw1[i])
		row[1] = fmt.Sprintf("%.3f", raw2[i])
		row[2] = fmt.Sprintf("%.3f", filt1[i])
		row[3] = fmt.Sprintf("%.3f", filt2[i])
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteBursts writes one row of metrics per burst record.
func WriteBursts(w io.Writer, records []spectral.Record) error {
	cw := csv.NewWriter(w)
	header := []string{"Label", "Resonance_Hz", "Total_Energy", "PeakToPeak_mV", "Peak_mV", "Peak_Time_s"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for i, rec := range records {
		row := []string{
			rec.Label,
			fmt.Sprintf("%.3f", rec.ResonanceHz),
			fmt.Sprintf("%.6e", rec.TotalEnergy),
			fmt.Sprintf("%.3f", rec.PeakToPeakMV),
			fmt.Sprintf("%.3f", rec.PeakMV),
			fmt.Sprintf("%.4f", rec.PeakTime),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// CreateFile opens dir/prefix_name.csv for writing, creating dir if needed.
func CreateFile(dir, prefix, name string) (*os.File, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.csv", prefix, name))
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", path, err)
	}
	return f, nil
}
