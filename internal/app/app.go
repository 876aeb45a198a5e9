// Package app wires up and runs the exporter services.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/SpikeHD/gpuinfo"
	"github.com/SpikeHD/gpuinfo/internal/api"
	"github.com/SpikeHD/gpuinfo/internal/config"
	"github.com/SpikeHD/gpuinfo/internal/httpserver"
	"github.com/SpikeHD/gpuinfo/internal/poll"
)

const shutdownTimeout = 10 * time.Second

// Run bootstraps the exporter lifecycle.
func Run(ctx context.Context, baseLogger *slog.Logger, cfg config.Config) error {
	appLogger := baseLogger.With("component", "app")

	queryLogger := baseLogger.With("component", "query")
	query := func() ([]*gpuinfo.Device, error) {
		return gpuinfo.Devices(
			gpuinfo.WithLogger(queryLogger),
			gpuinfo.WithSysfsRoot(cfg.SysfsRoot),
			gpuinfo.WithDebugfsRoot(cfg.DebugfsRoot),
		)
	}

	// One probe up front for the startup log. The poller repeats the same
	// query on every tick, so a failure here is not fatal.
	devices, err := query()
	switch {
	case errors.Is(err, gpuinfo.ErrNoDeviceFound):
		appLogger.Warn("no GPUs detected at startup")
	case err != nil:
		appLogger.Warn("initial gpu query failed", "err", err)
	default:
		appLogger.Info("discovered GPUs", "count", len(devices))
	}

	poller, err := poll.New(cfg.PollInterval, query, baseLogger)
	if err != nil {
		return fmt.Errorf("init poller: %w", err)
	}

	pollCtx, pollCancel := context.WithCancel(ctx)
	defer pollCancel()

	pollErrCh := make(chan error, 1)
	go func() {
		pollErrCh <- poller.Run(pollCtx)
	}()

	hostInfo := api.CollectHost(ctx)

	srv := httpserver.New(cfg, baseLogger.With("component", "http"), poller, hostInfo)

	appLogger.Info("starting HTTP server", "listen_addr", cfg.ListenAddr)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	for {
		select {
		case err := <-errCh:
			pollCancel()
			if err != nil {
				return err
			}
			if pollErrCh != nil {
				if pollErr := <-pollErrCh; pollErr != nil && !errors.Is(pollErr, context.Canceled) {
					return pollErr
				}
			}
			return nil
		case err := <-pollErrCh:
			pollErrCh = nil
			if err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
		case <-ctx.Done():
			appLogger.Info("shutdown initiated", "reason", ctx.Err())

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("http shutdown: %w", err)
			}

			if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}

			pollCancel()
			if pollErrCh != nil {
				if pollErr := <-pollErrCh; pollErr != nil && !errors.Is(pollErr, context.Canceled) {
					return pollErr
				}
			}

			appLogger.Info("shutdown complete")
			return nil
		}
	}
}
