package harmonic

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-rppg/dsp/core"
	"github.com/cwbudde/algo-rppg/dsp/spectrum"
)

func pulseWave(f0, fps float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		x := 2 * math.Pi * f0 * float64(i) / fps
		out[i] = math.Sin(x) + 0.35*math.Sin(2*x+0.6) + 0.1*math.Sin(3*x+1.1)
	}
	return out
}

func TestAnalyzePercentagesSumTo100(t *testing.T) {
	for _, strict := range []bool{false, true} {
		p, err := Analyze(pulseWave(1.2, 30, 300), 30, strict)
		if err != nil {
			t.Fatal(err)
		}

		sum := 0.0
		for _, h := range p.Harmonics {
			sum += h.Percentage
		}
		if math.Abs(sum-100) > 1e-9 {
			t.Fatalf("strict=%v: percentages sum to %v", strict, sum)
		}
		if p.Strict != strict {
			t.Fatalf("Strict=%v, want %v", p.Strict, strict)
		}
	}
}

func TestAnalyzeProfileShape(t *testing.T) {
	p, err := Analyze(pulseWave(1.2, 30, 300), 30, false)
	if err != nil {
		t.Fatal(err)
	}

	// 512-point grid: bin 20 is 1.17 Hz.
	if math.Abs(p.FundamentalHz-1.2) > 30.0/512 {
		t.Fatalf("FundamentalHz=%v, want ≈1.2", p.FundamentalHz)
	}

	c0 := p.Harmonics[0]
	if c0.Name != "C0" || c0.Meridian != "heart" || c0.Normalized != 1 || c0.ExpectedRange != "30-45%" {
		t.Fatalf("unexpected C0: %+v", c0)
	}
	if p.Harmonics[10].Name != "C10" || p.Harmonics[10].Meridian != "small intestine" {
		t.Fatalf("unexpected C10: %+v", p.Harmonics[10])
	}

	if !(c0.Amplitude > p.Harmonics[1].Amplitude && p.Harmonics[1].Amplitude > p.Harmonics[2].Amplitude) {
		t.Fatalf("C0 > C1 > C2 violated: %v %v %v",
			c0.Amplitude, p.Harmonics[1].Amplitude, p.Harmonics[2].Amplitude)
	}
	if p.Constitution == "" {
		t.Fatal("missing constitution")
	}
}

func TestAnalyzeSearchWindowStraddlesNyquist(t *testing.T) {
	const fps = 15.0
	// 256-point grid: bin 26 is the fundamental, so C4 targets bin 130 and
	// its window 128..132 keeps only the Nyquist bin 128. C5 targets 156.
	f0 := 26 * fps / 256
	sig := pulseWave(f0, fps, 200)
	for i := range sig {
		sig[i] += 0.3 * math.Sin(2*math.Pi*7.3*float64(i)/fps)
	}

	p, err := Analyze(sig, fps, false)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(p.FundamentalHz-f0) > 1e-9 {
		t.Fatalf("FundamentalHz=%v, want %v", p.FundamentalHz, f0)
	}

	sp, err := spectrum.Transform(sig, fps)
	if err != nil {
		t.Fatal(err)
	}
	nyquist := sp.Magnitude()[sp.MaxBin()]
	if nyquist == 0 {
		t.Fatal("test signal has no energy at Nyquist")
	}
	if got := p.Harmonics[4].Amplitude; math.Abs(got-nyquist) > 1e-9 {
		t.Fatalf("C4 amplitude=%v, want |X[%d]|=%v", got, sp.MaxBin(), nyquist)
	}
	if got := p.Harmonics[5].Amplitude; got != 0 {
		t.Fatalf("C5 amplitude=%v, want 0", got)
	}
}

func TestAnalyzeAbsent(t *testing.T) {
	if _, err := Analyze(make([]float64, MinSamples-1), 30, false); !errors.Is(err, core.ErrInsufficientData) {
		t.Fatalf("short: err=%v", err)
	}
	if _, err := Analyze(make([]float64, 200), 30, true); !errors.Is(err, core.ErrDegenerateSignal) {
		t.Fatalf("silent: err=%v", err)
	}
}

func TestGrade(t *testing.T) {
	r := normalMode.ranges[0] // 30-45, over 1.3, weak 0.5

	tests := []struct {
		pct  float64
		want Status
	}{
		{60, StatusExcess},
		{58.5, StatusMildlyElevated},
		{50, StatusMildlyElevated},
		{45, StatusNormal},
		{30, StatusNormal},
		{20, StatusMildDeficiency},
		{15, StatusMildDeficiency},
		{10, StatusMarkedDeficiency},
	}

	for _, tt := range tests {
		if got := normalMode.grade(tt.pct, r); got != tt.want {
			t.Errorf("grade(%v)=%v, want %v", tt.pct, got, tt.want)
		}
	}
}

func TestClassifyRuleOrder(t *testing.T) {
	tests := []struct {
		name string
		pct  [Count]float64
		want Constitution
	}{
		// Matches (a) through (e) and the descending-order condition of (f).
		{"cardiac and spleen low wins", [Count]float64{20, 40, 5, 3, 1}, HeartSpleenDeficiency},
		{"liver excess", [Count]float64{35, 40, 5, 3, 1}, LiverQiExcess},
		{"kidney deficiency", [Count]float64{35, 25, 5, 3, 1}, KidneyQiDeficiency},
		{"spleen weakness", [Count]float64{35, 25, 12, 3, 1}, SpleenQiWeakness},
		{"lung deficiency", [Count]float64{35, 25, 12, 8, 1}, LungQiDeficiency},
		{"balanced", [Count]float64{35, 25, 12, 8, 5}, Balanced},
		{"not descending", [Count]float64{35, 12, 15, 8, 5}, SlightDeviation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.pct, false); got != tt.want {
				t.Fatalf("Classify()=%q, want %q", got, tt.want)
			}
		})
	}
}

func TestClassifyStrictRequiresAllNormal(t *testing.T) {
	pct := [Count]float64{38, 23, 14, 9, 5.5, 3.5, 2.5, 1.5, 1, 0.7, 0.5}
	if got := Classify(pct, true); got != Balanced {
		t.Fatalf("strict in-range profile: %q", got)
	}

	pct[10] = 5
	if got := Classify(pct, true); got != SlightDeviation {
		t.Fatalf("strict with C10 excess: %q", got)
	}
	if got := Classify(pct, false); got != Balanced {
		t.Fatalf("normal mode ignores statuses: %q", got)
	}
}

func TestStatusText(t *testing.T) {
	text, _ := StatusMarkedDeficiency.MarshalText()
	if string(text) != "marked deficiency" || Status(42).String() != "Status(42)" {
		t.Fatalf("unexpected status text %q", text)
	}
	if Meridian(4) != "lung" || Meridian(11) != "" {
		t.Fatal("unexpected meridian lookup")
	}
	if r := ExpectedRanges(true)[10]; r.String() != "0.2-0.8%" {
		t.Fatalf("strict C10 range %q", r)
	}
}

func TestStatusTextRoundTrip(t *testing.T) {
	for s := StatusNormal; s <= StatusMarkedDeficiency; s++ {
		text, err := s.MarshalText()
		if err != nil {
			t.Fatal(err)
		}

		var got Status
		if err := got.UnmarshalText(text); err != nil || got != s {
			t.Fatalf("round trip of %v gave %v, %v", s, got, err)
		}
	}

	var s Status
	if err := s.UnmarshalText([]byte("radiant")); err == nil {
		t.Fatal("expected error for unknown status")
	}
}
