// Package dac models the sample-output boundary: a fixed-width DAC that
// latches one unsigned sample per tick, plus the concrete sinks the
// rendered samples can go to.
package dac

// SampleBits is the DAC register width.
const SampleBits = 12

// Sink accepts one latched sample per tick. Implementations must not
// block: the scheduler calls Write from the tick path.
type Sink interface {
	Write(sample uint16)
}

// DAC masks samples to the register width and hands them to a sink,
// mirroring the split high/low register write of the reference hardware.
type DAC struct {
	sink Sink
	mask uint16
}

// New returns a DAC latching bits-wide samples into sink.
func New(sink Sink, bits int) *DAC {
	return &DAC{sink: sink, mask: uint16(1<<uint(bits)) - 1}
}

// Latch writes the low SampleBits of sample to the sink.
func (d *DAC) Latch(sample uint16) {
	d.sink.Write(sample & d.mask)
}

// Buffer is an in-memory sink capturing every latched sample.
type Buffer struct {
	samples []uint16
}

// NewBuffer returns a Buffer with capacity for n samples.
func NewBuffer(n int) *Buffer {
	return &Buffer{samples: make([]uint16, 0, n)}
}

// Write appends the sample.
func (b *Buffer) Write(sample uint16) {
	b.samples = append(b.samples, sample)
}

// Samples returns the captured samples.
func (b *Buffer) Samples() []uint16 {
	return b.samples
}

// Discard drops every sample.
type Discard struct{}

func (Discard) Write(uint16) {}
