package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDefaultConfig checks the defaults validate and match the reference
// beacon content.
func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	require.NoError(t, config.Validate())
	assert.Equal(t, uint32(0x2A5), config.CountryCode)
	assert.Equal(t, uint32(0x00A5F3C), config.AircraftID)
	assert.Equal(t, uint32(0x1A5F3), config.Position)
	assert.Equal(t, uint32(0x0A5F3), config.PositionOffset)
	assert.Equal(t, OutputWAV, config.Output)
	assert.Equal(t, uint64(1), config.Cycles)
	assert.False(t, config.Realtime)
}

// TestLoadFile checks YAML values overlay the defaults.
func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "beacon.yaml")
	content := `
country_code: 0x0C7
aircraft_id: 0x123456
position: 0x0FF00
output: raw
output_path: out.raw
cycles: 3
verbose: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	config := DefaultConfig()
	require.NoError(t, config.LoadFile(path))
	require.NoError(t, config.Validate())

	assert.Equal(t, uint32(0x0C7), config.CountryCode)
	assert.Equal(t, uint32(0x123456), config.AircraftID)
	assert.Equal(t, uint32(0x0FF00), config.Position)
	assert.Equal(t, OutputRaw, config.Output)
	assert.Equal(t, "out.raw", config.OutputPath)
	assert.Equal(t, uint64(3), config.Cycles)
	assert.True(t, config.Verbose)

	// Keys absent from the file keep their defaults.
	assert.Equal(t, uint32(DefaultPositionOffset), config.PositionOffset)
}

// TestLoadFileErrors checks missing and malformed files are reported.
func TestLoadFileErrors(t *testing.T) {
	config := DefaultConfig()
	assert.Error(t, config.LoadFile(filepath.Join(t.TempDir(), "missing.yaml")))

	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cycles: [not a number"), 0o644))
	assert.Error(t, config.LoadFile(path))
}

// TestValidate checks the output selection rules.
func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"Defaults", func(c *Config) {}, false},
		{"Raw output", func(c *Config) { c.Output = OutputRaw; c.OutputPath = "x.raw" }, false},
		{"No output", func(c *Config) { c.Output = OutputNone; c.OutputPath = "" }, false},
		{"Unknown format", func(c *Config) { c.Output = "flac" }, true},
		{"Missing path", func(c *Config) { c.OutputPath = "" }, true},
		{"Zero cycles offline", func(c *Config) { c.Cycles = 0 }, true},
		{"Zero cycles realtime", func(c *Config) { c.Cycles = 0; c.Realtime = true }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.mutate(&config)

			err := config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// TestFrameContentNotRejected checks over-wide frame content passes
// validation: it is truncated at build time, never rejected.
func TestFrameContentNotRejected(t *testing.T) {
	config := DefaultConfig()
	config.CountryCode = 0xFFFFFFFF
	config.AircraftID = 0xFFFFFFFF
	config.Position = 0xFFFFFFFF
	config.PositionOffset = 0xFFFFFFFF

	assert.NoError(t, config.Validate())
}
