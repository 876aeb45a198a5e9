package main

import (
	"encoding/json"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/SpikeHD/gpuinfo"
	"github.com/SpikeHD/gpuinfo/internal/api"
	"github.com/SpikeHD/gpuinfo/internal/config"
)

type rootOptions struct {
	jsonOut     bool
	sysfsRoot   string
	debugfsRoot string
	logLevel    string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "gpuinfo",
		Short: "Inspect GPU identity and live telemetry",
		Long: `gpuinfo answers two questions about the GPUs in a machine: what are
they, and what are they doing right now. Without a subcommand it prints
the active GPU with a fresh telemetry reading.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runActive(cmd, opts)
		},
	}

	flags := cmd.PersistentFlags()
	flags.BoolVar(&opts.jsonOut, "json", false, "emit JSON instead of text")
	flags.StringVar(&opts.sysfsRoot, "sysfs-root", "/sys", "path to the sysfs mount")
	flags.StringVar(&opts.debugfsRoot, "debugfs-root", "/sys/kernel/debug", "path to the debugfs mount")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log verbosity (debug, info, warn, error)")

	cmd.AddCommand(newListCmd(opts))
	cmd.AddCommand(newWatchCmd(opts))
	cmd.AddCommand(newVersionCmd(opts))

	return cmd
}

func (o *rootOptions) queryOptions() ([]gpuinfo.Option, error) {
	level, err := config.ParseLogLevel(o.logLevel)
	if err != nil {
		return nil, err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	return []gpuinfo.Option{
		gpuinfo.WithLogger(logger),
		gpuinfo.WithSysfsRoot(o.sysfsRoot),
		gpuinfo.WithDebugfsRoot(o.debugfsRoot),
	}, nil
}

func runActive(cmd *cobra.Command, opts *rootOptions) error {
	queryOpts, err := opts.queryOptions()
	if err != nil {
		return err
	}

	selection, err := gpuinfo.ActiveSelection(queryOpts...)
	if err != nil {
		return err
	}

	if opts.jsonOut {
		return writeJSON(cmd, api.DevicePayloadFrom(selection.Index, selection.Device))
	}

	renderDevice(cmd.OutOrStdout(), selection.Index, selection.Device)
	return nil
}

func writeJSON(cmd *cobra.Command, payload any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}
