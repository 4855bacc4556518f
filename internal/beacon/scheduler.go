// Package beacon implements the transmitter's sample scheduler: the
// tick-driven state machine that emits exactly one correctly-phased DAC
// sample per tick across the repeating preamble/data/guard cycle.
package beacon

import (
	"github.com/sirupsen/logrus"

	"go406/internal/dac"
	"go406/internal/frame"
	"go406/internal/waveform"
)

// Transmission timing.
const (
	PreambleDurationMS = 160 // unmodulated carrier before the data phase
	SymbolRateHz       = 400 // 400 baud PSK

	// PreambleTicks is the preamble tick budget at the sample rate.
	PreambleTicks = PreambleDurationMS * waveform.SampleRateHz / 1000 // 32000

	// TicksPerSymbol is how long each frame bit is held.
	TicksPerSymbol = waveform.SampleRateHz / SymbolRateHz // 500

	// GuardSymbols is the number of symbol-0 periods transmitted after the
	// last frame bit before the cycle restarts.
	GuardSymbols = 2

	// CycleTicks is the length of one complete transmission cycle.
	CycleTicks = PreambleTicks + (frame.MessageBits+GuardSymbols)*TicksPerSymbol
)

// Phase is the coarse transmission stage.
type Phase int

const (
	PhasePreamble Phase = iota
	PhaseData
)

func (p Phase) String() string {
	if p == PhasePreamble {
		return "preamble"
	}
	return "data"
}

// Scheduler owns all mutable transmitter state. It is mutated only inside
// Tick; the tick source guarantees Tick is never re-entered, so no locking
// is needed. The frame and waveform tables are read-only.
type Scheduler struct {
	frame  frame.Frame
	dac    *dac.DAC
	logger *logrus.Logger

	phase           Phase
	carrierPosition int    // index into the 5-sample carrier cycle, never reset
	preambleTicks   uint32 // ticks elapsed in the current preamble
	symbolTicks     uint32 // ticks elapsed in the current bit
	bitIndex        int    // next frame bit, MessageBits during the guard interval
	guardSymbols    int    // guard symbol periods sent after the frame

	cycles     uint64 // completed transmission cycles
	ticks      uint64 // total ticks handled
	lastSample uint16 // debug probe: last sample value written
}

// New returns a scheduler transmitting f through d. The frame must be
// fully built before the first Tick.
func New(f frame.Frame, d *dac.DAC, logger *logrus.Logger) *Scheduler {
	return &Scheduler{frame: f, dac: d, logger: logger}
}

// Tick emits one sample and advances the state machine. It is the periodic
// tick handler: bounded, allocation-free, and branch-light, since it must
// complete well inside one sample period.
func (s *Scheduler) Tick() {
	var sample uint16

	if s.phase == PhasePreamble {
		sample = waveform.Carrier[s.carrierPosition]
	} else {
		sample = waveform.Symbols[s.frame.Bit(s.bitIndex)][s.carrierPosition]
	}

	s.dac.Latch(sample)
	s.lastSample = sample
	s.ticks++

	// The carrier cycle counter advances every tick regardless of phase, so
	// the synthesized carrier stays phase-continuous across every symbol
	// and macro-phase boundary.
	s.carrierPosition++
	if s.carrierPosition == waveform.SamplesPerCycle {
		s.carrierPosition = 0
	}

	if s.phase == PhasePreamble {
		s.preambleTicks++
		if s.preambleTicks >= PreambleTicks {
			s.phase = PhaseData
			s.preambleTicks = 0
			s.symbolTicks = 0
			s.bitIndex = 0
			if s.logger != nil {
				s.logger.WithField("tick", s.ticks).Debug("Data phase started")
			}
		}
		return
	}

	s.symbolTicks++
	if s.symbolTicks < TicksPerSymbol {
		return
	}
	s.symbolTicks = 0

	if s.bitIndex < frame.MessageBits {
		s.bitIndex++
		return
	}

	s.guardSymbols++
	if s.guardSymbols >= GuardSymbols {
		s.phase = PhasePreamble
		s.guardSymbols = 0
		s.bitIndex = 0
		s.cycles++
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{
				"cycle": s.cycles,
				"ticks": s.ticks,
			}).Info("Transmission cycle completed")
		}
	}
}

// Phase returns the current macro-phase.
func (s *Scheduler) Phase() Phase {
	return s.phase
}

// LastSample returns the last sample value written, before the DAC width
// mask. External diagnostics read it without disturbing timing.
func (s *Scheduler) LastSample() uint16 {
	return s.lastSample
}

// Cycles returns the number of completed transmission cycles.
func (s *Scheduler) Cycles() uint64 {
	return s.cycles
}

// Ticks returns the total number of ticks handled.
func (s *Scheduler) Ticks() uint64 {
	return s.ticks
}
