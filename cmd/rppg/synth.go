package main

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-rppg/internal/synth"
)

func newSynthCmd() *cobra.Command {
	cfg := synth.DefaultConfig()
	var bpm, breaths, seconds float64

	cmd := &cobra.Command{
		Use:   "synth",
		Short: "Write a synthetic RGB trace as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cfg.SampleRate <= 0 || seconds <= 0 {
				return fmt.Errorf("fps and seconds must be positive, got %g and %g", cfg.SampleRate, seconds)
			}

			cfg.HeartHz = bpm / 60
			cfg.BreathHz = breaths / 60
			cfg.Samples = int(math.Round(seconds * cfg.SampleRate))

			return writeTrace(cmd.OutOrStdout(), synth.RGB(cfg))
		},
	}

	f := cmd.Flags()
	f.Float64Var(&bpm, "bpm", 72, "heart rate")
	f.Float64Var(&breaths, "breaths", 15, "breathing rate per minute; 0 disables it")
	f.Float64Var(&seconds, "seconds", 10, "duration")
	f.Float64Var(&cfg.SampleRate, "fps", cfg.SampleRate, "frame rate")
	f.Float64Var(&cfg.PulseDepth, "depth", cfg.PulseDepth, "relative pulse modulation depth")
	f.Float64Var(&cfg.NoiseAmp, "noise", cfg.NoiseAmp, "uniform noise amplitude")
	f.Int64Var(&cfg.Seed, "seed", cfg.Seed, "noise seed")

	return cmd
}
