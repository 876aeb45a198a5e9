package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/SpikeHD/gpuinfo"
	"github.com/SpikeHD/gpuinfo/internal/api"
)

func newWatchCmd(opts *rootOptions) *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Poll the active GPU and print fresh readings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWatch(cmd, opts, interval)
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", 2*time.Second, "delay between queries")
	return cmd
}

func runWatch(cmd *cobra.Command, opts *rootOptions, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("interval must be > 0")
	}

	queryOpts, err := opts.queryOptions()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()

	// Every tick is a full fresh query, so devices that appear or vanish
	// between ticks are reflected.
	tick := func() {
		now := time.Now().Format("15:04:05")
		selection, err := gpuinfo.ActiveSelection(queryOpts...)
		if err != nil {
			fmt.Fprintf(out, "%s %v\n", now, err)
			return
		}
		if opts.jsonOut {
			_ = json.NewEncoder(out).Encode(api.DevicePayloadFrom(selection.Index, selection.Device))
			return
		}
		d := selection.Device
		fmt.Fprintf(out, "%s %s  load %s  vram %s  temp %s\n",
			now, d.Model, formatLoad(d.Telemetry), formatVRAM(d.Telemetry), formatTemperature(d.Telemetry))
	}

	tick()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			tick()
		}
	}
}
