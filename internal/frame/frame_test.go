package frame

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"go406/internal/bch"
)

// Reference frame content from the original beacon.
const (
	testCountryCode    = 0x2A5
	testAircraftID     = 0x00A5F3C
	testPosition       = 0x1A5F3
	testPositionOffset = 0x0A5F3
)

// TestBuildLayout checks the field order and total length invariants.
func TestBuildLayout(t *testing.T) {
	f := Build(testCountryCode, testAircraftID, testPosition, testPositionOffset)

	require.Equal(t, 121, MessageBits)
	require.Equal(t, MessageBits, IDParityOffset+IDParityBits)

	// Sync: 15 ones.
	for i := 0; i < SyncBits; i++ {
		assert.Equal(t, byte(1), f[i], "sync bit %d", i)
	}

	// Frame sync: 0b110101100.
	assert.Equal(t, uint32(FrameSync), f.Field(FrameSyncOffset, FrameSyncBits))

	assert.Equal(t, uint32(testCountryCode), f.Field(CountryOffset, CountryBits))
	assert.Equal(t, uint32(testAircraftID), f.Field(AircraftOffset, AircraftBits))
	assert.Equal(t, uint32(testPosition), f.Field(PositionOffset, PositionBits))
	assert.Equal(t, uint32(testPositionOffset), f.Field(OffsetOffset, OffsetBits))
}

// TestBuildParityFields checks the end-to-end parity scenario: the position
// parity is the BCH(31,21) encoding of the position, and the ID parity is
// the low 12 bits of the aircraft ID.
func TestBuildParityFields(t *testing.T) {
	f := Build(testCountryCode, testAircraftID, testPosition, testPositionOffset)

	assert.Equal(t, uint32(bch.EncodePosition(testPosition)), f.Field(PositionParityOffset, PositionParityBits))
	assert.Equal(t, uint32(0x14F), f.Field(PositionParityOffset, PositionParityBits))
	assert.Equal(t, uint32(0xF3C), f.Field(IDParityOffset, IDParityBits))
}

// TestBuildBitsValid checks that every element is a single bit, for
// arbitrary inputs.
func TestBuildBitsValid(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		f := Build(
			rapid.Uint16().Draw(t, "countryCode"),
			rapid.Uint32().Draw(t, "aircraftID"),
			rapid.Uint32().Draw(t, "position"),
			rapid.Uint32().Draw(t, "positionOffset"),
		)

		for i, b := range f {
			if b > 1 {
				t.Fatalf("frame bit %d is %d, want 0 or 1", i, b)
			}
		}

		// Sync and frame sync never depend on the inputs.
		for i := 0; i < SyncBits; i++ {
			if f[i] != 1 {
				t.Fatalf("sync bit %d is %d", i, f[i])
			}
		}
		if f.Field(FrameSyncOffset, FrameSyncBits) != FrameSync {
			t.Fatalf("frame sync field is %#x", f.Field(FrameSyncOffset, FrameSyncBits))
		}
	})
}

// TestBuildTruncation checks that inputs wider than their field are
// truncated to the low-order bits, not rejected.
func TestBuildTruncation(t *testing.T) {
	wide := Build(0xFEA5, 0xFFA5F3C1, 0xFFFA5F31, 0xFFFA5F31)

	assert.Equal(t, uint32(0xFEA5&0x3FF), wide.Field(CountryOffset, CountryBits))
	assert.Equal(t, uint32(0xFFA5F3C1&0xFFFFFF), wide.Field(AircraftOffset, AircraftBits))
	assert.Equal(t, uint32(0xFFFA5F31&0x1FFFFF), wide.Field(PositionOffset, PositionBits))
	assert.Equal(t, uint32(0xFFFA5F31&0xFFFFF), wide.Field(OffsetOffset, OffsetBits))

	// Truncated and pre-masked inputs produce identical frames.
	masked := Build(0xFEA5&0x3FF, 0xFFA5F3C1&0xFFFFFF, 0xFFFA5F31&0x1FFFFF, 0xFFFA5F31&0xFFFFF)
	assert.Equal(t, masked, wide)
}

// TestBitGuard checks that reads past the frame end yield symbol 0.
func TestBitGuard(t *testing.T) {
	f := Build(testCountryCode, testAircraftID, testPosition, testPositionOffset)

	assert.Equal(t, f[0], f.Bit(0))
	assert.Equal(t, f[MessageBits-1], f.Bit(MessageBits-1))
	assert.Equal(t, byte(0), f.Bit(MessageBits))
	assert.Equal(t, byte(0), f.Bit(MessageBits+500))
}
