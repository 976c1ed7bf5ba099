package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-rppg/measure/vitals"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#74c7ec"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#a6adc8"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#fab387")).Bold(true)
)

func newAnalyzeCmd() *cobra.Command {
	var (
		fps    float64
		strict bool
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "analyze <trace.csv|->",
		Short: "Estimate vital signs from an RGB trace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			w, err := readTrace(in)
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}

			rep, err := vitals.Analyze(w, vitals.Config{SampleRate: fps, Strict: strict})
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(rep)
			}

			return renderReport(cmd.OutOrStdout(), rep)
		},
	}

	cmd.Flags().Float64Var(&fps, "fps", 0, "frame rate; 0 derives it from the timestamps")
	cmd.Flags().BoolVar(&strict, "strict", false, "use the narrow harmonic range table")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")

	return cmd
}

func renderReport(out io.Writer, rep vitals.Report) error {
	_, _ = fmt.Fprintln(out, titleStyle.Render("Vital signs"))
	_, _ = fmt.Fprintln(out, mutedStyle.Render(fmt.Sprintf("%d samples at %.2f fps", rep.Samples, rep.SampleRate)))
	if rep.Motion {
		_, _ = fmt.Fprintln(out, warnStyle.Render("motion detected, readings may be unreliable"))
	}
	_, _ = fmt.Fprintln(out)

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)

	row := func(name, value string) {
		_, _ = fmt.Fprintf(tw, "%s\t%s\n", name, value)
	}

	if rep.HeartRate != nil {
		method := ""
		if rep.Method != nil {
			method = " (" + rep.Method.String() + ")"
		}
		row("Heart rate", fmt.Sprintf("%.1f BPM%s", *rep.HeartRate, method))
		usable := "usable"
		if !rep.Quality.Usable {
			usable = "poor"
		}
		row("Signal quality", fmt.Sprintf("%d/99 %s, SNR %.2f", rep.Quality.Score, usable, rep.Quality.SNR))
	}
	row("Beats", fmt.Sprintf("%d", rep.Beats))

	if m := rep.HRV; m != nil {
		row("SDNN", fmt.Sprintf("%.1f ms", m.SDNN))
		row("RMSSD", fmt.Sprintf("%.1f ms", m.RMSSD))
		row("pNN50", fmt.Sprintf("%.1f %%", m.PNN50))
		row("LF/HF", fmt.Sprintf("%.2f", m.LFHFRatio))
	}
	if rep.SpO2 != nil {
		row("SpO2", fmt.Sprintf("%.1f %%", *rep.SpO2))
	}
	if rep.BreathingRate != nil {
		row("Breathing", fmt.Sprintf("%.1f breaths/min", *rep.BreathingRate))
	}

	stressStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(rep.Stress.Color))
	row("Stress", stressStyle.Render(rep.Stress.Label))

	if err := tw.Flush(); err != nil {
		return err
	}

	if p := rep.Harmonics; p != nil {
		_, _ = fmt.Fprintln(out)
		_, _ = fmt.Fprintln(out, titleStyle.Render("Pulse harmonics"))
		_, _ = fmt.Fprintln(out, mutedStyle.Render(fmt.Sprintf("fundamental %.2f Hz, %s", p.FundamentalHz, p.Constitution)))

		tw = tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		_, _ = fmt.Fprintln(tw, "#\tMeridian\tShare\tExpected\tStatus")
		for _, h := range p.Harmonics {
			_, _ = fmt.Fprintf(tw, "%d\t%s\t%.1f%%\t%s\t%s\n",
				h.Index, h.Meridian, h.Percentage, h.ExpectedRange, h.Status)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	if len(rep.Skipped) > 0 {
		stages := make([]string, 0, len(rep.Skipped))
		for stage := range rep.Skipped {
			stages = append(stages, stage)
		}
		sort.Strings(stages)

		_, _ = fmt.Fprintln(out)
		for _, stage := range stages {
			_, _ = fmt.Fprintln(out, mutedStyle.Render(fmt.Sprintf("skipped %s: %s", stage, rep.Skipped[stage])))
		}
	}

	return nil
}
