package dac

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"
)

// midScale is the DAC value representing zero amplitude.
const midScale = 1 << (SampleBits - 1)

// RawWriter streams latched samples to a file as little-endian uint16
// words. Writes are buffered; errors surface on Close.
type RawWriter struct {
	f   *os.File
	w   *bufio.Writer
	err error
}

// NewRawWriter creates path and returns a writer sink for it.
func NewRawWriter(path string) (*RawWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create raw sample file: %w", err)
	}
	return &RawWriter{f: f, w: bufio.NewWriter(f)}, nil
}

// Write appends one sample. The first IO error is retained for Close.
func (r *RawWriter) Write(sample uint16) {
	if r.err != nil {
		return
	}
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], sample)
	if _, err := r.w.Write(buf[:]); err != nil {
		r.err = err
	}
}

// Close flushes and closes the file.
func (r *RawWriter) Close() error {
	if r.err != nil {
		r.f.Close()
		return fmt.Errorf("failed to write raw samples: %w", r.err)
	}
	if err := r.w.Flush(); err != nil {
		r.f.Close()
		return fmt.Errorf("failed to flush raw samples: %w", err)
	}
	return r.f.Close()
}

// WAVWriter renders latched samples as a mono 16-bit PCM WAV file at the
// beacon sample rate, so a rendered transmission can be opened in an audio
// editor or fed to an SDR toolchain. The header is patched with the final
// sizes on Close.
type WAVWriter struct {
	f       *os.File
	w       *bufio.Writer
	rate    uint32
	samples uint32
	err     error
}

const wavHeaderSize = 44

// NewWAVWriter creates path and writes a provisional WAV header.
func NewWAVWriter(path string, sampleRate int) (*WAVWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create WAV file: %w", err)
	}

	wav := &WAVWriter{f: f, w: bufio.NewWriter(f), rate: uint32(sampleRate)}
	if err := wav.writeHeader(); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write WAV header: %w", err)
	}
	return wav, nil
}

func (wav *WAVWriter) writeHeader() error {
	var hdr [wavHeaderSize]byte

	dataBytes := wav.samples * 2

	copy(hdr[0:4], "RIFF")
	binary.LittleEndian.PutUint32(hdr[4:8], 36+dataBytes)
	copy(hdr[8:12], "WAVE")

	copy(hdr[12:16], "fmt ")
	binary.LittleEndian.PutUint32(hdr[16:20], 16)        // fmt chunk size
	binary.LittleEndian.PutUint16(hdr[20:22], 1)         // PCM
	binary.LittleEndian.PutUint16(hdr[22:24], 1)         // mono
	binary.LittleEndian.PutUint32(hdr[24:28], wav.rate)  // sample rate
	binary.LittleEndian.PutUint32(hdr[28:32], wav.rate*2) // byte rate
	binary.LittleEndian.PutUint16(hdr[32:34], 2)         // block align
	binary.LittleEndian.PutUint16(hdr[34:36], 16)        // bits per sample

	copy(hdr[36:40], "data")
	binary.LittleEndian.PutUint32(hdr[40:44], dataBytes)

	_, err := wav.w.Write(hdr[:])
	return err
}

// Write appends one sample, converting the offset-binary DAC value to a
// signed 16-bit PCM sample.
func (wav *WAVWriter) Write(sample uint16) {
	if wav.err != nil {
		return
	}

	pcm := (int32(sample) - midScale) << 4

	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], uint16(int16(pcm)))
	if _, err := wav.w.Write(buf[:]); err != nil {
		wav.err = err
		return
	}
	wav.samples++
}

// Close flushes the samples, patches the header sizes, and closes the file.
func (wav *WAVWriter) Close() error {
	if wav.err != nil {
		wav.f.Close()
		return fmt.Errorf("failed to write WAV samples: %w", wav.err)
	}
	if err := wav.w.Flush(); err != nil {
		wav.f.Close()
		return fmt.Errorf("failed to flush WAV samples: %w", err)
	}

	// Rewrite the header now that the sample count is known.
	if _, err := wav.f.Seek(0, 0); err != nil {
		wav.f.Close()
		return fmt.Errorf("failed to seek to WAV header: %w", err)
	}
	wav.w.Reset(wav.f)
	if err := wav.writeHeader(); err != nil {
		wav.f.Close()
		return fmt.Errorf("failed to patch WAV header: %w", err)
	}
	if err := wav.w.Flush(); err != nil {
		wav.f.Close()
		return fmt.Errorf("failed to flush WAV header: %w", err)
	}

	return wav.f.Close()
}
