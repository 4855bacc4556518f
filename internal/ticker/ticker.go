// Package ticker provides the periodic tick source that drives the sample
// scheduler: the hardware-timer interrupt of the reference design, recast
// as an injected tick abstraction so the state machine can be driven by
// synthetic ticks in tests and offline rendering.
package ticker

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// Source invokes a tick handler at the configured sample rate. The handler
// is never re-entered: each Run drives it from a single goroutine.
type Source interface {
	// Run invokes tick repeatedly until the context is cancelled or the
	// source is exhausted. Cancellation is the "disable tick source"
	// boundary: no tick is delivered after Run returns.
	Run(ctx context.Context, tick func()) error
}

// Synthetic delivers a fixed number of ticks as fast as possible. Used for
// offline rendering and tests.
type Synthetic struct {
	Ticks uint64
}

// Run invokes tick exactly s.Ticks times, checking for cancellation between
// batches so a render can be interrupted.
func (s Synthetic) Run(ctx context.Context, tick func()) error {
	const batch = 4096

	var n uint64
	for n < s.Ticks {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		end := n + batch
		if end > s.Ticks {
			end = s.Ticks
		}
		for ; n < end; n++ {
			tick()
		}
	}
	return nil
}

// Wall drives the handler from the wall clock at RateHz. The OS cannot
// wake a goroutine every 5 microseconds, so it wakes on a coarse interval
// and delivers however many sample periods have elapsed, computing the
// target tick count from total elapsed time so there is no cumulative
// drift.
type Wall struct {
	RateHz   int
	Interval time.Duration // wakeup interval, default 1ms
	Logger   *logrus.Logger
}

// Run delivers ticks until the context is cancelled.
func (w Wall) Run(ctx context.Context, tick func()) error {
	interval := w.Interval
	if interval <= 0 {
		interval = time.Millisecond
	}

	t := time.NewTicker(interval)
	defer t.Stop()

	start := time.Now()
	var delivered uint64

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-t.C:
			target := uint64(now.Sub(start).Seconds() * float64(w.RateHz))
			behind := target - delivered

			// A long scheduling stall would otherwise burst an unbounded
			// number of ticks; cap at one second of samples and log it.
			if behind > uint64(w.RateHz) {
				if w.Logger != nil {
					w.Logger.WithFields(logrus.Fields{
						"behind_ticks": behind,
						"rate_hz":      w.RateHz,
					}).Warn("Tick source stalled, dropping backlog")
				}
				delivered = target - uint64(w.RateHz)
				behind = uint64(w.RateHz)
			}

			for i := uint64(0); i < behind; i++ {
				tick()
			}
			delivered += behind
		}
	}
}
