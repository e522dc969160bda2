// Command respira acquires two-channel breathing-sensor data (stream) or
// single-channel impact bursts (burst) from an MCU over a serial link,
// processes them and exports CSV captures.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"respira/pkg/config"
	"respira/pkg/daq"
	"respira/pkg/export"
	"respira/pkg/pipeline"
)

var (
	version = "dev"

	cfgFile string

	rootCmd = &cobra.Command{
		Use:     "respira",
		Short:   "Serial ADC acquisition and breathing/impact analysis",
		Long:    "Respira reads framed ADC captures from an MCU over a serial port,\nconverts them to millivolts, smooths them and derives breathing-rate or\nimpact-resonance metrics.",
		Version: version,
	}

	streamCmd = &cobra.Command{
		Use:   "stream",
		Short: "Continuously acquire two-channel cycles and report breathing rate",
		RunE:  runStream,
	}

	burstCmd = &cobra.Command{
		Use:   "burst",
		Short: "Capture a fixed number of impact bursts and report their spectra",
		RunE:  runBurst,
	}

	portsCmd = &cobra.Command{
		Use:   "ports",
		Short: "List available serial ports",
		RunE:  runPorts,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "respira.yaml", "configuration file path")
	rootCmd.PersistentFlags().StringP("port", "p", "", "serial port (overrides config)")
	rootCmd.PersistentFlags().Int("baud", 0, "baud rate (overrides config)")
	rootCmd.PersistentFlags().Bool("fake", false, "use a simulated device instead of a serial port")
	rootCmd.PersistentFlags().StringP("output", "o", "", "CSV output directory (overrides config)")

	viper.BindPFlag("port", rootCmd.PersistentFlags().Lookup("port"))
	viper.BindPFlag("baud", rootCmd.PersistentFlags().Lookup("baud"))
	viper.BindPFlag("fake", rootCmd.PersistentFlags().Lookup("fake"))
	viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))

	streamCmd.Flags().Int("cycles", 0, "stop after this many cycles (0 = run until interrupted)")
	viper.BindPFlag("cycles", streamCmd.Flags().Lookup("cycles"))

	rootCmd.AddCommand(streamCmd, burstCmd, portsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the YAML config and applies flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if p := viper.GetString("port"); p != "" {
		cfg.Serial.Port = p
	}
	if b := viper.GetInt("baud"); b != 0 {
		cfg.Serial.BaudRate = b
	}
	if o := viper.GetString("output"); o != "" {
		cfg.Export.Dir = o
	}
	return cfg, nil
}

// openStreamTransport connects the configured source for the stream command.
func openStreamTransport(cfg *config.Config) (daq.Transport, error) {
	if viper.GetBool("fake") {
		log.Println("Using simulated device")
		return daq.NewFakeStream(cfg), nil
	}
	return openSerial(cfg)
}

func openBurstTransport(cfg *config.Config) (daq.Transport, error) {
	if viper.GetBool("fake") {
		log.Println("Using simulated device")
		return daq.NewFakeBurst(cfg), nil
	}
	return openSerial(cfg)
}

func openSerial(cfg *config.Config) (daq.Transport, error) {
	s := daq.NewSerial(cfg.Serial.Port, cfg.Serial.BaudRate, cfg.Serial.ReadTimeout)
	if err := s.Connect(); err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", cfg.Serial.Port, err)
	}
	log.Printf("Connected to %s at %d baud", cfg.Serial.Port, cfg.Serial.BaudRate)
	return s, nil
}

func runStream(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	transport, err := openStreamTransport(cfg)
	if err != nil {
		return err
	}
	defer transport.Close()

	stream, err := pipeline.NewStream(cfg, transport)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	maxCycles := viper.GetInt("cycles")
	cycle := 0
	stream.OnResult(func(r *pipeline.StreamResult) {
		cycle++
		printStreamResult(cycle, r)

		name := fmt.Sprintf("cycle_%s", time.Now().Format("20060102_150405"))
		if err := exportCycle(cfg, name, r); err != nil {
			log.Printf("CSV export failed: %v", err)
		}

		if maxCycles > 0 && cycle >= maxCycles {
			stop()
		}
	})

	log.Printf("Streaming %d samples per frame at %g Hz, filter=%s",
		cfg.Acquisition.TotalSamples, cfg.Acquisition.SamplingRate, cfg.Filter.Strategy)

	err = stream.Run(ctx)
	if errors.Is(err, context.Canceled) {
		log.Println("Stopped")
		return nil
	}
	return err
}

func printStreamResult(cycle int, r *pipeline.StreamResult) {
	fmt.Printf("--- Cycle %d ---\n", cycle)
	fmt.Printf("Channel 1: %d peaks, rate %s, avg peak %.1f mV\n", len(r.Peaks1), r.Rate1, r.AvgPeakMV1)
	fmt.Printf("Channel 2: %d peaks, rate %s, avg peak %.1f mV\n", len(r.Peaks2), r.Rate2, r.AvgPeakMV2)
}

func exportCycle(cfg *config.Config, name string, r *pipeline.StreamResult) error {
	f, err := export.CreateFile(cfg.Export.Dir, cfg.Export.FilePrefix, name)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := export.WriteCycle(f, r.Raw1, r.Raw2, r.Filtered1, r.Filtered2); err != nil {
		return err
	}
	log.Printf("Wrote %s", f.Name())
	return nil
}

func runBurst(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	transport, err := openBurstTransport(cfg)
	if err != nil {
		return err
	}
	defer transport.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("Capturing %d bursts of %d samples at %g Hz",
		cfg.Burst.Count, cfg.Burst.TotalSamples, cfg.Burst.SamplingRate)

	session := pipeline.NewBurstSession(cfg, transport)
	records, err := session.Run(ctx)
	if err != nil {
		return err
	}

	for _, rec := range records {
		fmt.Printf("%s: resonance %.1f Hz, energy %.3e, p-p %.1f mV, peak %.1f mV at %.4f s\n",
			rec.Label, rec.ResonanceHz, rec.TotalEnergy, rec.PeakToPeakMV, rec.PeakMV, rec.PeakTime)
	}

	f, err := export.CreateFile(cfg.Export.Dir, cfg.Export.FilePrefix,
		fmt.Sprintf("bursts_%s", time.Now().Format("20060102_150405")))
	if err != nil {
		return err
	}
	defer f.Close()
	if err := export.WriteBursts(f, records); err != nil {
		return err
	}
	log.Printf("Wrote %s", f.Name())
	return nil
}

func runPorts(cmd *cobra.Command, args []string) error {
	ports, err := daq.Ports()
	if err != nil {
		return err
	}
	if len(ports) == 0 {
		fmt.Println("No serial ports found")
		return nil
	}
	for _, p := range ports {
		fmt.Println(p.Name)
	}
	return nil
}
