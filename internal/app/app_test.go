package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go406/internal/beacon"
)

// TestOfflineRun renders one full transmission cycle through the synthetic
// tick source and checks the scheduler ran to completion.
func TestOfflineRun(t *testing.T) {
	config := DefaultConfig()
	config.Output = OutputNone
	config.Cycles = 1

	application := NewApplication(config)
	require.NoError(t, application.Start())

	assert.Equal(t, uint64(1), application.scheduler.Cycles())
	assert.Equal(t, uint64(beacon.CycleTicks), application.scheduler.Ticks())
	assert.Equal(t, beacon.PhasePreamble, application.scheduler.Phase())
}

// TestOfflineRunWAV checks a rendered cycle lands on disk with the
// expected size: header plus one 16-bit sample per tick.
func TestOfflineRunWAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "beacon.wav")

	config := DefaultConfig()
	config.Output = OutputWAV
	config.OutputPath = path
	config.Cycles = 2

	application := NewApplication(config)
	require.NoError(t, application.Start())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(44+2*beacon.CycleTicks*2), info.Size())
}

// TestStartRejectsInvalidConfig checks Start fails before enabling the
// tick source when the configuration is unusable.
func TestStartRejectsInvalidConfig(t *testing.T) {
	config := DefaultConfig()
	config.Output = "flac"

	application := NewApplication(config)
	assert.Error(t, application.Start())
}
