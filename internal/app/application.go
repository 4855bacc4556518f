package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"go406/internal/beacon"
	"go406/internal/dac"
	"go406/internal/frame"
	"go406/internal/ticker"
	"go406/internal/waveform"
)

// closableSink is a sample sink that must be flushed when the run ends.
type closableSink interface {
	dac.Sink
	Close() error
}

// Application represents the beacon transmitter application.
type Application struct {
	config    Config
	logger    *logrus.Logger
	scheduler *beacon.Scheduler
	source    ticker.Source
	sink      dac.Sink
}

// NewApplication creates a new application instance
func NewApplication(config Config) *Application {
	logger := logrus.New()
	if config.Verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}

	return &Application{
		config: config,
		logger: logger,
	}
}

// Start runs the transmitter. Startup order is fixed: verify the waveform
// tables, build the frame, open the sample sink, and only then enable the
// tick source.
func (app *Application) Start() error {
	app.logger.WithFields(logrus.Fields{
		"version":    Version,
		"build_time": BuildTime,
		"git_commit": GitCommit,
	}).Info("Starting beacon signal generator")

	if err := app.config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := app.initializeComponents(); err != nil {
		return fmt.Errorf("failed to initialize components: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// SIGINT/SIGTERM disable the tick source; the reference hardware runs
	// forever, so cancellation lives here at the boundary, not in the core.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case sig := <-sigChan:
			app.logger.WithField("signal", sig.String()).Info("Received shutdown signal, disabling tick source")
			cancel()
		case <-ctx.Done():
		}
	}()

	err := app.source.Run(ctx, app.scheduler.Tick)
	if err != nil && err != context.Canceled {
		app.closeSink()
		return fmt.Errorf("tick source failed: %w", err)
	}

	if err := app.closeSink(); err != nil {
		return err
	}

	app.logger.WithFields(logrus.Fields{
		"cycles": app.scheduler.Cycles(),
		"ticks":  app.scheduler.Ticks(),
	}).Info("Transmission finished")

	return nil
}

// initializeComponents builds the frame and wires the scheduler, sample
// sink and tick source.
func (app *Application) initializeComponents() error {
	if err := waveform.Verify(); err != nil {
		return fmt.Errorf("waveform table verification failed: %w", err)
	}

	f := frame.Build(
		uint16(app.config.CountryCode),
		app.config.AircraftID,
		app.config.Position,
		app.config.PositionOffset,
	)

	app.logger.WithFields(logrus.Fields{
		"country_code":    fmt.Sprintf("0x%03X", app.config.CountryCode&0x3FF),
		"aircraft_id":     fmt.Sprintf("0x%06X", app.config.AircraftID&0xFFFFFF),
		"position":        fmt.Sprintf("0x%05X", app.config.Position&0x1FFFFF),
		"position_offset": fmt.Sprintf("0x%05X", app.config.PositionOffset&0xFFFFF),
		"frame_bits":      frame.MessageBits,
	}).Info("Beacon frame built")

	sink, err := app.newSink()
	if err != nil {
		return err
	}
	app.sink = sink

	app.scheduler = beacon.New(f, dac.New(sink, dac.SampleBits), app.logger)

	if app.config.Realtime {
		app.source = ticker.Wall{RateHz: waveform.SampleRateHz, Logger: app.logger}
		app.logger.WithField("rate_hz", waveform.SampleRateHz).Info("Tick source configured for real time")
	} else {
		app.source = ticker.Synthetic{Ticks: app.config.Cycles * beacon.CycleTicks}
		app.logger.WithFields(logrus.Fields{
			"cycles":          app.config.Cycles,
			"ticks_per_cycle": beacon.CycleTicks,
		}).Info("Tick source configured for offline rendering")
	}

	return nil
}

// newSink opens the configured sample sink.
func (app *Application) newSink() (dac.Sink, error) {
	switch app.config.Output {
	case OutputWAV:
		sink, err := dac.NewWAVWriter(app.config.OutputPath, waveform.SampleRateHz)
		if err != nil {
			return nil, fmt.Errorf("failed to open WAV sink: %w", err)
		}
		return sink, nil
	case OutputRaw:
		sink, err := dac.NewRawWriter(app.config.OutputPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open raw sink: %w", err)
		}
		return sink, nil
	default:
		return dac.Discard{}, nil
	}
}

func (app *Application) closeSink() error {
	if c, ok := app.sink.(closableSink); ok {
		if err := c.Close(); err != nil {
			return fmt.Errorf("failed to close sample sink: %w", err)
		}
		app.logger.WithField("path", app.config.OutputPath).Info("Sample file written")
	}
	return nil
}
