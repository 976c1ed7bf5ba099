package pulse

import (
	"fmt"
	"math"
	"strings"

	timestats "github.com/cwbudde/algo-rppg/stats/time"
)

// MinSamples is the shortest trace the extractors project; shorter input
// yields a copy of the green channel.
const MinSamples = 30

// chromMaxHalfWidth caps the CHROM normalization window at 91 samples.
const chromMaxHalfWidth = 45

// Method selects a pulse extraction algorithm.
type Method int

const (
	MethodPOS Method = iota
	MethodCHROM
)

// String returns the conventional algorithm name.
func (m Method) String() string {
	switch m {
	case MethodPOS:
		return "POS"
	case MethodCHROM:
		return "CHROM"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// MarshalText encodes the method by name.
func (m Method) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText decodes a method name accepted by [ParseMethod].
func (m *Method) UnmarshalText(text []byte) error {
	parsed, err := ParseMethod(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// ParseMethod parses "POS" or "CHROM", case-insensitively.
func ParseMethod(name string) (Method, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "POS":
		return MethodPOS, nil
	case "CHROM":
		return MethodCHROM, nil
	default:
		return 0, fmt.Errorf("unknown pulse method %q", name)
	}
}

// Extract runs the extractor selected by m.
func Extract(m Method, r, g, b []float64, sampleRate float64) []float64 {
	if m == MethodCHROM {
		return CHROM(r, g, b)
	}

	return POS(r, g, b, sampleRate)
}

// CHROM extracts a pulse waveform with the chrominance method.
//
// For each sample the channels are divided by their means over a centred
// window of half-width min(45, n/2). The normalized sample is projected to
// X = 3r - 2g and Y = 1.5r + g - 1.5b, and the output is X - αY with
// α = std(r)/std(g) over the same window (1 when std(g) is 0). Samples whose
// window has a zero channel mean produce 0.
func CHROM(r, g, b []float64) []float64 {
	n := min(len(r), len(g), len(b))
	if n < MinSamples {
		return append([]float64(nil), g[:n]...)
	}

	half := min(chromMaxHalfWidth, n/2)
	out := make([]float64, n)

	for i := 0; i < n; i++ {
		lo, hi := span(i, half, n)

		mr, sr := timestats.MeanStd(r[lo:hi])
		mg, sg := timestats.MeanStd(g[lo:hi])
		mb := timestats.Mean(b[lo:hi])
		if mr == 0 || mg == 0 || mb == 0 {
			continue
		}

		rn, gn, bn := r[i]/mr, g[i]/mg, b[i]/mb
		x := 3*rn - 2*gn
		y := 1.5*rn + gn - 1.5*bn

		alpha := 1.0
		if sg != 0 {
			alpha = sr / sg
		}

		out[i] = x - alpha*y
	}

	return out
}

// POS extracts a pulse waveform with the plane-orthogonal-to-skin method.
//
// The centred window has half-width round(0.8·sampleRate). Inside it the
// channels are divided by their window means and projected to
// S1 = g - b and S2 = g + b - 2r; the output is S1 + αS2 at the centre
// sample with α = std(S1)/std(S2) over the window (1 when std(S2) is 0).
// Samples whose window has a zero channel mean produce 0.
func POS(r, g, b []float64, sampleRate float64) []float64 {
	n := min(len(r), len(g), len(b))
	if n < MinSamples {
		return append([]float64(nil), g[:n]...)
	}

	half := max(1, int(math.Round(1.6*sampleRate/2)))
	out := make([]float64, n)
	s1 := make([]float64, 0, 2*half+1)
	s2 := make([]float64, 0, 2*half+1)

	for i := 0; i < n; i++ {
		lo, hi := span(i, half, n)

		mr := timestats.Mean(r[lo:hi])
		mg := timestats.Mean(g[lo:hi])
		mb := timestats.Mean(b[lo:hi])
		if mr == 0 || mg == 0 || mb == 0 {
			continue
		}

		s1, s2 = s1[:0], s2[:0]
		centre := 0.0
		centre2 := 0.0

		for j := lo; j < hi; j++ {
			rn, gn, bn := r[j]/mr, g[j]/mg, b[j]/mb
			s1 = append(s1, gn-bn)
			s2 = append(s2, gn+bn-2*rn)
			if j == i {
				centre, centre2 = gn-bn, gn+bn-2*rn
			}
		}

		alpha := 1.0
		if sd := timestats.StdDev(s2); sd != 0 {
			alpha = timestats.StdDev(s1) / sd
		}

		out[i] = centre + alpha*centre2
	}

	return out
}

// span returns the half-open window [lo, hi) centred on i, clamped to n.
func span(i, half, n int) (lo, hi int) {
	return max(0, i-half), min(n, i+half+1)
}
