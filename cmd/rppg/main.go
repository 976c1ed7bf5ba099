// Command rppg estimates vital signs from per-frame mean RGB traces.
//
// Usage:
//
//	rppg analyze [--fps 30] [--strict] [--json] trace.csv
//	rppg synth [--bpm 72] [--seconds 10] [--fps 30] > trace.csv
//	rppg serve --config rppg.yaml
//
// CSV traces hold one frame per row: timestamp in milliseconds, then the
// red, green and blue means. A header row is skipped.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "rppg",
		Short:         "Remote photoplethysmography vital-sign estimation",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newAnalyzeCmd())
	root.AddCommand(newSynthCmd())
	root.AddCommand(newServeCmd())

	return root
}
