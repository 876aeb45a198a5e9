package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/SpikeHD/gpuinfo"
	"github.com/SpikeHD/gpuinfo/internal/api"
)

func newListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every GPU and how the active one was chosen",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, opts)
		},
	}
}

func runList(cmd *cobra.Command, opts *rootOptions) error {
	queryOpts, err := opts.queryOptions()
	if err != nil {
		return err
	}

	devices, err := gpuinfo.Devices(queryOpts...)
	if err != nil {
		return err
	}

	selection, err := gpuinfo.Select(devices)
	if err != nil {
		return err
	}

	if opts.jsonOut {
		payload := make([]api.DevicePayload, 0, len(devices))
		for i, d := range devices {
			payload = append(payload, api.DevicePayloadFrom(i, d))
		}
		return writeJSON(cmd, payload)
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, " \tINDEX\tMODEL\tVENDOR\tTYPE\tTELEMETRY")
	for _, rank := range selection.Ranks {
		d := devices[rank.Index]

		marker := " "
		if rank.Index == selection.Index {
			marker = "*"
		}
		kind := "integrated"
		if rank.Discrete {
			kind = "discrete"
		}
		capable := "no"
		if rank.Telemetry {
			capable = "yes"
		}

		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\n", marker, rank.Index, d.Model, d.Vendor, kind, capable)
	}
	return tw.Flush()
}
