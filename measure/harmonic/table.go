package harmonic

import "fmt"

// Count is the number of harmonics in a profile.
const Count = 11

// Range is an expected share of total harmonic energy, in percent.
type Range struct {
	Min float64
	Max float64
}

// String formats the range for display, e.g. "30-45%".
func (r Range) String() string {
	return fmt.Sprintf("%g-%g%%", r.Min, r.Max)
}

// mode bundles a range table with its tolerance multipliers.
type mode struct {
	ranges [Count]Range

	// over scales Max for the excess status, weak scales Min for the
	// marked-deficiency status.
	over, weak float64

	// excess scales Max and deficiency scales Min in the constitution rules.
	excess, deficiency float64
}

var strictMode = mode{
	ranges: [Count]Range{
		{33, 42}, {20, 26}, {12, 16}, {7, 11}, {4, 7}, {2.5, 4.5},
		{1.5, 3.5}, {0.8, 2.5}, {0.5, 1.8}, {0.3, 1.2}, {0.2, 0.8},
	},
	over:       1.1,
	weak:       0.8,
	excess:     1.05,
	deficiency: 0.8,
}

var normalMode = mode{
	ranges: [Count]Range{
		{30, 45}, {18, 28}, {10, 18}, {6, 12}, {3, 8}, {2, 5},
		{1, 4}, {0.5, 3}, {0.3, 2}, {0.2, 1.5}, {0.1, 1},
	},
	over:       1.3,
	weak:       0.5,
	excess:     1.2,
	deficiency: 0.6,
}

func modeFor(strict bool) mode {
	if strict {
		return strictMode
	}
	return normalMode
}

// ExpectedRanges returns the range table used in strict or normal mode.
func ExpectedRanges(strict bool) [Count]Range {
	return modeFor(strict).ranges
}

var meridians = [Count]string{
	"heart",
	"liver",
	"kidney",
	"spleen",
	"lung",
	"stomach",
	"gallbladder",
	"bladder",
	"large intestine",
	"triple burner",
	"small intestine",
}

// Meridian returns the meridian associated with harmonic index h.
func Meridian(h int) string {
	if h < 0 || h >= Count {
		return ""
	}
	return meridians[h]
}

// Status grades one harmonic's share against its expected range.
type Status int

const (
	StatusNormal Status = iota
	StatusMildlyElevated
	StatusExcess
	StatusMildDeficiency
	StatusMarkedDeficiency
)

var statusNames = [...]string{
	StatusNormal:           "normal",
	StatusMildlyElevated:   "mildly elevated",
	StatusExcess:           "excess",
	StatusMildDeficiency:   "mild deficiency",
	StatusMarkedDeficiency: "marked deficiency",
}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return fmt.Sprintf("Status(%d)", int(s))
	}
	return statusNames[s]
}

// MarshalText encodes the status by name.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a status name.
func (s *Status) UnmarshalText(text []byte) error {
	for i, name := range statusNames {
		if name == string(text) {
			*s = Status(i)
			return nil
		}
	}
	return fmt.Errorf("unknown harmonic status %q", text)
}

// grade classifies percentage p against r.
func (m mode) grade(p float64, r Range) Status {
	switch {
	case p > r.Max*m.over:
		return StatusExcess
	case p >= r.Min && p <= r.Max:
		return StatusNormal
	case p >= r.Min*m.weak && p < r.Min:
		return StatusMildDeficiency
	case p < r.Min*m.weak:
		return StatusMarkedDeficiency
	default:
		return StatusMildlyElevated
	}
}
