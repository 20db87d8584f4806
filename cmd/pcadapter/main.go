package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"codeberg.org/mutker/pcadapter/internal/activity"
	"codeberg.org/mutker/pcadapter/internal/config"
	"codeberg.org/mutker/pcadapter/internal/errors"
	"codeberg.org/mutker/pcadapter/internal/identity"
	"codeberg.org/mutker/pcadapter/internal/journal"
	"codeberg.org/mutker/pcadapter/internal/logger"
	"codeberg.org/mutker/pcadapter/internal/model"
	"codeberg.org/mutker/pcadapter/internal/pid"
	"codeberg.org/mutker/pcadapter/internal/probe"
	"codeberg.org/mutker/pcadapter/internal/sampler"
	"codeberg.org/mutker/pcadapter/internal/telemetry"
	"github.com/spf13/pflag"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Validated by config.Load
	level, _ := logger.ParseLevel(cfg.LogLevel.String())
	logger.Init(level, logger.IsService())
	logger.Debug().Msg("Config loaded")

	if err := run(cfg); err != nil {
		var appErr errors.Error
		if errors.As(err, &appErr) {
			logger.FatalWithCode(appErr).Msg("pcadapter failed")
		}
		logger.Fatal().Err(err).Msg("pcadapter failed")
	}
}

func run(cfg *config.Config) error {
	pidFile := pid.New(cfg.PIDDir)
	if err := pidFile.Write(); err != nil {
		return err
	}
	defer func() {
		if err := pidFile.Remove(); err != nil {
			logger.Warn().Err(err).Str("path", pidFile.Path()).Msg("Failed to remove PID file")
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go handleSignals(cancel)

	id, err := identity.Resolve(ctx, cfg.DeviceName, cfg.StationID, nil)
	if err != nil {
		return err
	}
	logger.Info().
		Str("device_name", id.Name()).
		Str("station_id", id.StationID()).
		Str("device_uuid", id.UUID().String()).
		Msg("Device identity resolved")

	device := model.NewDevice(id)
	tracker := activity.NewTracker(cfg.Boundary())

	jrnl, err := journal.NewService(cfg.JournalConfig(), logger.New("journal"))
	if err != nil {
		return err
	}
	defer closeWithLog(jrnl, "journal")

	pub, err := telemetry.NewService(cfg.TelemetryConfig(), id, logger.New("telemetry"))
	if err != nil {
		return err
	}
	defer closeWithLog(pub, "telemetry")

	sinks := sampler.Sinks{
		sampler.NewLogSink(logger.New("adapter")),
		jrnl,
		pub,
	}

	s, err := sampler.New(cfg.SamplerConfig(), device, tracker, probe.NewHost(), sinks)
	if err != nil {
		return err
	}

	if cfg.InputHook {
		unsubscribe, err := probe.NewInputHook().Subscribe(tracker.RecordActivity)
		if err != nil {
			err := errors.New().Wrap(errors.ErrSubscribe, err)
			logger.Warn().
				Err(err).
				Str("error_code", string(err.Code())).
				Msg("Input hook unavailable, activity comes from pointer movement only")
		} else {
			defer func() {
				if err := unsubscribe(); err != nil {
					logger.ErrorWithCode(errors.New().Wrap(errors.ErrUnsubscribe, err)).Msg("Failed to remove input hook")
				}
			}()
		}
	}

	if err := s.Start(ctx); err != nil {
		return err
	}

	<-ctx.Done()
	s.Stop(nil)

	logger.Info().Msg("Exiting...")

	return nil
}

func handleSignals(cancel context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigs
	logger.Info().Str("signal", sig.String()).Msg("Received termination signal.")
	cancel()
}

func closeWithLog(c io.Closer, name string) {
	if err := c.Close(); err != nil {
		logger.Warn().Err(err).Str("component", name).Msg("Failed to close")
	}
}
