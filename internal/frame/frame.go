// Package frame builds the 121-bit beacon frame transmitted by the beacon.
package frame

import "go406/internal/bch"

// Frame field widths, in transmission order.
const (
	SyncBits           = 15 // All-ones marker
	FrameSyncBits      = 9  // Fixed frame sync pattern
	CountryBits        = 10 // Country code
	AircraftBits       = 24 // Aircraft ID
	PositionBits       = 21 // Encoded position
	OffsetBits         = 20 // Fine position offset
	PositionParityBits = 10 // BCH(31,21) parity of the position field
	IDParityBits       = 12 // Parity of the low 12 bits of the aircraft ID

	// MessageBits is the total frame length.
	MessageBits = SyncBits + FrameSyncBits + CountryBits + AircraftBits +
		PositionBits + OffsetBits + PositionParityBits + IDParityBits // 121
)

// FrameSync is the fixed 9-bit frame sync pattern 0b110101100.
const FrameSync = 0x1AC

// Bit offsets of each field within the frame, for inspection and tests.
const (
	SyncOffset           = 0
	FrameSyncOffset      = SyncOffset + SyncBits
	CountryOffset        = FrameSyncOffset + FrameSyncBits
	AircraftOffset       = CountryOffset + CountryBits
	PositionOffset       = AircraftOffset + AircraftBits
	OffsetOffset         = PositionOffset + PositionBits
	PositionParityOffset = OffsetOffset + OffsetBits
	IDParityOffset       = PositionParityOffset + PositionParityBits
)

// Frame is the complete ordered bit sequence, one byte per bit (0 or 1).
// It is built once before transmission starts and never mutated afterwards.
type Frame [MessageBits]byte

// Bit returns frame bit idx, or 0 for any index at or past the end. Guard
// symbols after the last frame bit are transmitted as symbol 0.
func (f *Frame) Bit(idx int) byte {
	if idx < 0 || idx >= MessageBits {
		return 0
	}
	return f[idx]
}

// Field extracts width bits starting at offset as an MSB-first integer.
func (f *Frame) Field(offset, width int) uint32 {
	var v uint32
	for i := 0; i < width; i++ {
		v = v<<1 | uint32(f[offset+i])
	}
	return v
}

// Build assembles the beacon frame from its content fields. Inputs wider
// than their field are truncated to the low-order bits of the field width.
// Parity fields are computed here: BCH(31,21) over the position, and the
// identity parity over the low 12 bits of the aircraft ID.
func Build(countryCode uint16, aircraftID, position, positionOffset uint32) Frame {
	var f Frame
	idx := 0

	put := func(value uint32, width int) {
		for i := width - 1; i >= 0; i-- {
			f[idx] = byte((value >> uint(i)) & 1)
			idx++
		}
	}

	// Sync: 15 ones.
	for i := 0; i < SyncBits; i++ {
		f[idx] = 1
		idx++
	}

	put(FrameSync, FrameSyncBits)
	put(uint32(countryCode), CountryBits)
	put(aircraftID, AircraftBits)
	put(position, PositionBits)
	put(positionOffset, OffsetBits)

	put(uint32(bch.EncodePosition(position)), PositionParityBits)
	put(uint32(bch.EncodeID(uint16(aircraftID&0xFFF))), IDParityBits)

	return f
}
