package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SpikeHD/gpuinfo/internal/version"
)

func newVersionCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := version.Current()
			if opts.jsonOut {
				return writeJSON(cmd, info)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "gpuinfo %s", info.Version)
			if info.Commit != "" {
				fmt.Fprintf(out, " (%s)", info.Commit)
			}
			if info.BuildTime != "" {
				fmt.Fprintf(out, " built %s", info.BuildTime)
			}
			fmt.Fprintln(out)
			return nil
		},
	}
}
