package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"go406/internal/app"
)

func main() {
	config := app.DefaultConfig()
	var configFile string

	rootCmd := &cobra.Command{
		Use:   "go406",
		Short: "Aviation emergency beacon signal generator",
		Long: `Aviation emergency beacon signal generator.

Builds the 121-bit BCH-protected beacon frame and synthesizes the
phase-modulated 40 kHz carrier at a 200 kHz sample rate: 160 ms of
unmodulated preamble, the frame at 400 baud PSK, and a guard interval,
repeating. Renders the sample stream to a WAV or raw file, or drives it
in real time until interrupted.

Example usage:
  go406 --aircraft-id 0xA5F3C --position 0x1A5F3 --cycles 2 --output wav --output-path beacon.wav`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if config.ShowVersion {
				app.ShowVersion()
				return nil
			}

			if configFile != "" {
				fileConfig := app.DefaultConfig()
				if err := fileConfig.LoadFile(configFile); err != nil {
					return err
				}
				// Flags set on the command line override file values.
				applyFlagOverrides(cmd, &fileConfig, config)
				config = fileConfig
			}

			application := app.NewApplication(config)
			return application.Start()
		},
	}

	rootCmd.Flags().StringVarP(&configFile, "config", "c", "", "YAML configuration file")
	rootCmd.Flags().Uint32Var(&config.CountryCode, "country-code", app.DefaultCountryCode, "Country code (10 bits, truncated)")
	rootCmd.Flags().Uint32Var(&config.AircraftID, "aircraft-id", app.DefaultAircraftID, "Aircraft ID (24 bits, truncated)")
	rootCmd.Flags().Uint32Var(&config.Position, "position", app.DefaultPosition, "Encoded position (21 bits, truncated)")
	rootCmd.Flags().Uint32Var(&config.PositionOffset, "position-offset", app.DefaultPositionOffset, "Position offset (20 bits, truncated)")
	rootCmd.Flags().StringVarP(&config.Output, "output", "o", app.OutputWAV, "Output format: wav, raw or none")
	rootCmd.Flags().StringVarP(&config.OutputPath, "output-path", "p", "beacon.wav", "Output file path")
	rootCmd.Flags().Uint64Var(&config.Cycles, "cycles", 1, "Transmission cycles to render offline")
	rootCmd.Flags().BoolVarP(&config.Realtime, "realtime", "r", false, "Drive the sample clock in real time until interrupted")
	rootCmd.Flags().BoolVarP(&config.Verbose, "verbose", "v", false, "Verbose logging")
	rootCmd.Flags().BoolVar(&config.ShowVersion, "version", false, "Show version information")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// applyFlagOverrides copies values the user set explicitly on the command
// line from flagConfig over fileConfig.
func applyFlagOverrides(cmd *cobra.Command, fileConfig *app.Config, flagConfig app.Config) {
	if cmd.Flags().Changed("country-code") {
		fileConfig.CountryCode = flagConfig.CountryCode
	}
	if cmd.Flags().Changed("aircraft-id") {
		fileConfig.AircraftID = flagConfig.AircraftID
	}
	if cmd.Flags().Changed("position") {
		fileConfig.Position = flagConfig.Position
	}
	if cmd.Flags().Changed("position-offset") {
		fileConfig.PositionOffset = flagConfig.PositionOffset
	}
	if cmd.Flags().Changed("output") {
		fileConfig.Output = flagConfig.Output
	}
	if cmd.Flags().Changed("output-path") {
		fileConfig.OutputPath = flagConfig.OutputPath
	}
	if cmd.Flags().Changed("cycles") {
		fileConfig.Cycles = flagConfig.Cycles
	}
	if cmd.Flags().Changed("realtime") {
		fileConfig.Realtime = flagConfig.Realtime
	}
	if cmd.Flags().Changed("verbose") {
		fileConfig.Verbose = flagConfig.Verbose
	}
}
