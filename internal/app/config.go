package app

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Default frame content, matching the reference beacon.
const (
	DefaultCountryCode    = 0x2A5     // France
	DefaultAircraftID     = 0x00A5F3C // Example platform ID
	DefaultPosition       = 0x1A5F3   // Encoded coordinate
	DefaultPositionOffset = 0x0A5F3   // Fine position refinement
)

// Output formats.
const (
	OutputWAV  = "wav"
	OutputRaw  = "raw"
	OutputNone = "none"
)

// Config holds application configuration. Frame content values wider than
// their frame field are truncated to the field width, never rejected.
type Config struct {
	CountryCode    uint32 `yaml:"country_code"`
	AircraftID     uint32 `yaml:"aircraft_id"`
	Position       uint32 `yaml:"position"`
	PositionOffset uint32 `yaml:"position_offset"`

	Output     string `yaml:"output"`      // wav, raw or none
	OutputPath string `yaml:"output_path"` // rendered sample file
	Cycles     uint64 `yaml:"cycles"`      // transmission cycles to render offline

	Realtime    bool `yaml:"realtime"` // drive from the wall clock until interrupted
	Verbose     bool `yaml:"verbose"`
	ShowVersion bool `yaml:"-"`
}

// DefaultConfig returns the configuration used when no flags or file are
// given: one cycle rendered to beacon.wav.
func DefaultConfig() Config {
	return Config{
		CountryCode:    DefaultCountryCode,
		AircraftID:     DefaultAircraftID,
		Position:       DefaultPosition,
		PositionOffset: DefaultPositionOffset,
		Output:         OutputWAV,
		OutputPath:     "beacon.wav",
		Cycles:         1,
	}
}

// LoadFile overlays YAML configuration from path onto c.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// Validate checks the output selection. Frame content needs no validation:
// every numeric value is legal after truncation.
func (c *Config) Validate() error {
	switch c.Output {
	case OutputWAV, OutputRaw, OutputNone:
	default:
		return fmt.Errorf("unknown output format %q (want wav, raw or none)", c.Output)
	}
	if c.Output != OutputNone && c.OutputPath == "" {
		return fmt.Errorf("output format %q requires an output path", c.Output)
	}
	if !c.Realtime && c.Cycles == 0 {
		return fmt.Errorf("offline rendering requires at least one cycle")
	}
	return nil
}
