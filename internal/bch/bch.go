// Package bch implements the bit-serial BCH parity encoders protecting the
// beacon frame fields.
package bch

// BCH(31,21) parameters for the position field.
const (
	GenPoly          = 0x3B3 // Generator polynomial
	PositionDataBits = 21    // Protected data length
	PositionParity   = 10    // Parity length
	IDParityBits     = 12    // Aircraft ID parity field length
)

// EncodePosition computes the 10-bit BCH(31,21) parity for a 21-bit position
// word. Bits are processed MSB first through a 10-bit shift register:
// shift, OR in the data bit, and XOR with the generator polynomial whenever
// the shifted-out bit differs from the incoming one.
func EncodePosition(data uint32) uint16 {
	var reg uint32
	data &= (1 << PositionDataBits) - 1

	for i := PositionDataBits - 1; i >= 0; i-- {
		bit := (data >> uint(i)) & 1
		msb := (reg >> (PositionParity - 1)) & 1
		reg = reg<<1 | bit

		if msb^bit != 0 {
			reg ^= GenPoly
		}
	}

	return uint16(reg & ((1 << PositionParity) - 1))
}

// EncodeID computes the parity field for the low 12 bits of the aircraft ID.
//
// The reference firmware's "BCH(12,12)" is the identity transform: no
// redundancy is added. This is a known gap in the frame design, preserved
// here because replacing it would change the on-air frame.
func EncodeID(data uint16) uint16 {
	return data & ((1 << IDParityBits) - 1)
}
