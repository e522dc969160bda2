package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Serial      SerialConfig      `yaml:"serial"`
	Acquisition AcquisitionConfig `yaml:"acquisition"`
	Calibration CalibrationConfig `yaml:"calibration"`
	Filter      FilterConfig      `yaml:"filter"`
	Peaks       PeaksConfig       `yaml:"peaks"`
	Burst       BurstConfig       `yaml:"burst"`
	Export      ExportConfig      `yaml:"export"`
	Fake        FakeConfig        `yaml:"fake"`
}

// SerialConfig contains serial port configuration.
type SerialConfig struct {
	Port        string        `yaml:"port"`
	BaudRate    int           `yaml:"baud_rate"`
	ReadTimeout time.Duration `yaml:"read_timeout"` // Bounds every blocking read
}

// AcquisitionConfig contains streaming capture parameters.
type AcquisitionConfig struct {
	TotalSamples int     `yaml:"total_samples"` // Interleaved sample count per frame (both channels)
	SamplingRate float64 `yaml:"sampling_rate"` // Per-channel sampling rate (Hz)
}

// CalibrationConfig contains ADC-to-millivolt conversion constants.
type CalibrationConfig struct {
	FullScaleMV float64 `yaml:"full_scale_mv"` // Voltage at max ADC code (mV)
	MaxCode     uint16  `yaml:"max_code"`      // Highest ADC code (4095 for 12-bit)
	CenterMV    float64 `yaml:"center_mv"`     // Mirror center for the inverted channel (mV)
}

// FilterConfig selects and parameterizes the smoothing strategy.
type FilterConfig struct {
	Strategy string  `yaml:"strategy"`  // "moving_average", "lowpass" or "savgol"
	Window   int     `yaml:"window"`    // Moving average width (samples)
	Order    int     `yaml:"order"`     // Low-pass filter order (must be even)
	CutoffHz float64 `yaml:"cutoff_hz"` // Low-pass cutoff frequency (Hz)
	SGWindow int     `yaml:"sg_window"` // Savitzky-Golay window (odd, samples)
	SGOrder  int     `yaml:"sg_order"`  // Savitzky-Golay polynomial order
}

// PeaksConfig contains peak detection thresholds.
type PeaksConfig struct {
	MinDistance   int     `yaml:"min_distance"`   // Minimum spacing between peaks (samples)
	MinProminence float64 `yaml:"min_prominence"` // Minimum peak prominence (mV)
}

// BurstConfig contains burst capture parameters.
type BurstConfig struct {
	Count        int      `yaml:"count"`         // Number of bursts per session
	TotalSamples int      `yaml:"total_samples"` // Samples per burst (single channel)
	SamplingRate float64  `yaml:"sampling_rate"` // Burst sampling rate (Hz)
	DeadBandMV   float64  `yaml:"dead_band_mv"`  // Dead-band threshold around the mean (mV)
	Labels       []string `yaml:"labels"`        // Optional per-burst labels (len must equal count)
}

// ExportConfig contains CSV export settings.
type ExportConfig struct {
	Dir        string `yaml:"dir"`
	FilePrefix string `yaml:"file_prefix"`
}

// FakeConfig contains fake device waveform parameters.
type FakeConfig struct {
	BreathRateBPM float64 `yaml:"breath_rate_bpm"` // Simulated breathing rate
	AmplitudeMV   float64 `yaml:"amplitude_mv"`    // Breathing waveform amplitude (mV)
	NoiseMV       float64 `yaml:"noise_mv"`        // Additive noise amplitude (mV)
	BurstFreqHz   float64 `yaml:"burst_freq_hz"`   // Simulated burst resonance frequency
	BurstDecay    float64 `yaml:"burst_decay"`     // Burst exponential decay constant (1/s)
}

// Default returns a default configuration with sensible values.
func Default() *Config {
	return &Config{
		Serial: SerialConfig{
			Port:        "/dev/ttyACM0",
			BaudRate:    115200,
			ReadTimeout: 2 * time.Second,
		},
		Acquisition: AcquisitionConfig{
			TotalSamples: 6000, // 3000 per channel
			SamplingRate: 100,
		},
		Calibration: CalibrationConfig{
			FullScaleMV: 3300,
			MaxCode:     4095,
			CenterMV:    1650,
		},
		Filter: FilterConfig{
			Strategy: "moving_average",
			Window:   20,
			Order:    4,
			CutoffHz: 0.6,
			SGWindow: 101,
			SGOrder:  3,
		},
		Peaks: PeaksConfig{
			MinDistance:   40, // ~0.4 s at 100 Hz
			MinProminence: 100,
		},
		Burst: BurstConfig{
			Count:        4,
			TotalSamples: 20000, // 2 s at 10 kS/s
			SamplingRate: 10000,
			DeadBandMV:   100,
		},
		Export: ExportConfig{
			Dir:        "./data",
			FilePrefix: "respira",
		},
		Fake: FakeConfig{
			BreathRateBPM: 15,
			AmplitudeMV:   400,
			NoiseMV:       20,
			BurstFreqHz:   440,
			BurstDecay:    8,
		},
	}
}

// Load loads configuration from a YAML file. If the file doesn't exist or
// fields are missing, it uses default values.
func Load(filename string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			// File doesn't exist, return defaults
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.ensureDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save saves the configuration to a YAML file.
func (c *Config) Save(filename string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate rejects parameter combinations the pipeline cannot run with.
func (c *Config) Validate() error {
	if c.Acquisition.TotalSamples <= 0 {
		return fmt.Errorf("acquisition.total_samples must be positive, got %d", c.Acquisition.TotalSamples)
	}
	if c.Acquisition.SamplingRate <= 0 {
		return fmt.Errorf("acquisition.sampling_rate must be positive, got %g", c.Acquisition.SamplingRate)
	}
	switch c.Filter.Strategy {
	case "moving_average", "lowpass", "savgol":
	default:
		return fmt.Errorf("unknown filter strategy %q (must be moving_average, lowpass or savgol)", c.Filter.Strategy)
	}
	if c.Filter.Strategy == "lowpass" && c.Filter.Order%2 != 0 {
		return fmt.Errorf("filter.order must be even, got %d", c.Filter.Order)
	}
	if c.Filter.Strategy == "savgol" && c.Filter.SGWindow%2 == 0 {
		return fmt.Errorf("filter.sg_window must be odd, got %d", c.Filter.SGWindow)
	}
	if c.Burst.Count <= 0 {
		return fmt.Errorf("burst.count must be positive, got %d", c.Burst.Count)
	}
	if len(c.Burst.Labels) > 0 && len(c.Burst.Labels) != c.Burst.Count {
		return fmt.Errorf("burst.labels has %d entries for %d bursts", len(c.Burst.Labels), c.Burst.Count)
	}
	return nil
}

// ensureDefaults ensures that all required fields have default values if missing.
func (c *Config) ensureDefaults() {
	def := Default()

	if c.Serial.Port == "" {
		c.Serial.Port = def.Serial.Port
	}
	if c.Serial.BaudRate == 0 {
		c.Serial.BaudRate = def.Serial.BaudRate
	}
	if c.Serial.ReadTimeout == 0 {
		c.Serial.ReadTimeout = def.Serial.ReadTimeout
	}

	if c.Acquisition.TotalSamples == 0 {
		c.Acquisition.TotalSamples = def.Acquisition.TotalSamples
	}
	if c.Acquisition.SamplingRate == 0 {
		c.Acquisition.SamplingRate = def.Acquisition.SamplingRate
	}

	if c.Calibration.FullScaleMV == 0 {
		c.Calibration.FullScaleMV = def.Calibration.FullScaleMV
	}
	if c.Calibration.MaxCode == 0 {
		c.Calibration.MaxCode = def.Calibration.MaxCode
	}
	if c.Calibration.CenterMV == 0 {
		c.Calibration.CenterMV = def.Calibration.CenterMV
	}

	if c.Filter.Strategy == "" {
		c.Filter.Strategy = def.Filter.Strategy
	}
	if c.Filter.Window == 0 {
		c.Filter.Window = def.Filter.Window
	}
	if c.Filter.Order == 0 {
		c.Filter.Order = def.Filter.Order
	}
	if c.Filter.CutoffHz == 0 {
		c.Filter.CutoffHz = def.Filter.CutoffHz
	}
	if c.Filter.SGWindow == 0 {
		c.Filter.SGWindow = def.Filter.SGWindow
	}
	if c.Filter.SGOrder == 0 {
		c.Filter.SGOrder = def.Filter.SGOrder
	}

	if c.Peaks.MinDistance == 0 {
		c.Peaks.MinDistance = def.Peaks.MinDistance
	}
	if c.Peaks.MinProminence == 0 {
		c.Peaks.MinProminence = def.Peaks.MinProminence
	}

	if c.Burst.Count == 0 {
		c.Burst.Count = def.Burst.Count
	}
	if c.Burst.TotalSamples == 0 {
		c.Burst.TotalSamples = def.Burst.TotalSamples
	}
	if c.Burst.SamplingRate == 0 {
		c.Burst.SamplingRate = def.Burst.SamplingRate
	}
	if c.Burst.DeadBandMV == 0 {
		c.Burst.DeadBandMV = def.Burst.DeadBandMV
	}

	if c.Export.Dir == "" {
		c.Export.Dir = def.Export.Dir
	}
	if c.Export.FilePrefix == "" {
		c.Export.FilePrefix = def.Export.FilePrefix
	}

	if c.Fake.BreathRateBPM == 0 {
		c.Fake.BreathRateBPM = def.Fake.BreathRateBPM
	}
	if c.Fake.AmplitudeMV == 0 {
		c.Fake.AmplitudeMV = def.Fake.AmplitudeMV
	}
	if c.Fake.BurstFreqHz == 0 {
		c.Fake.BurstFreqHz = def.Fake.BurstFreqHz
	}
	if c.Fake.BurstDecay == 0 {
		c.Fake.BurstDecay = def.Fake.BurstDecay
	}
}
