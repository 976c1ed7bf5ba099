// Package stress maps HRV statistics and heart rate to a coarse stress
// level with fixed, rule-based cut points.
package stress

import "github.com/cwbudde/algo-rppg/measure/hrv"

// Level orders stress states. LevelUnknown marks missing HRV data.
type Level int

const (
	LevelUnknown Level = iota
	LevelVeryLow
	LevelLow
	LevelModerate
	LevelElevated
	LevelHigh
)

// State is a stress classification with its display attributes.
type State struct {
	Label string `json:"label"`
	Level Level  `json:"level"`
	Color string `json:"color"`

	// Score is the accumulated rule score, 0 to 14.
	Score int `json:"score"`
}

// Unknown is returned when HRV metrics are absent.
var Unknown = State{Label: "unknown", Level: LevelUnknown, Color: "#9E9E9E"}

// cut awards the points of the first step whose limit v crosses. above
// selects the direction: higher values are more stressed.
type cut struct {
	above bool
	steps []step
}

type step struct {
	limit  float64
	points int
}

func (c cut) points(v float64) int {
	for _, st := range c.steps {
		if (c.above && v > st.limit) || (!c.above && v < st.limit) {
			return st.points
		}
	}
	return 0
}

var (
	sdnnCut  = cut{steps: []step{{20, 3}, {30, 2}, {50, 1}}}
	rmssdCut = cut{steps: []step{{15, 3}, {25, 2}, {40, 1}}}
	pnn50Cut = cut{steps: []step{{5, 2}, {15, 1}}}
	hrCut    = cut{above: true, steps: []step{{100, 3}, {90, 2}, {80, 1}}}
	lfhfCut  = cut{above: true, steps: []step{{3, 3}, {2, 2}, {1.5, 1}}}
)

type bucket struct {
	maxScore int
	state    State
}

var buckets = []bucket{
	{2, State{Label: "very low", Level: LevelVeryLow, Color: "#4CAF50"}},
	{5, State{Label: "low", Level: LevelLow, Color: "#8BC34A"}},
	{8, State{Label: "moderate", Level: LevelModerate, Color: "#FFC107"}},
	{11, State{Label: "elevated", Level: LevelElevated, Color: "#FF9800"}},
	{1 << 30, State{Label: "high", Level: LevelHigh, Color: "#F44336"}},
}

// Score returns the accumulated points for m and heart rate hr.
//
//	sdnn   < 20 / 30 / 50 ms   → 3 / 2 / 1
//	rmssd  < 15 / 25 / 40 ms   → 3 / 2 / 1
//	pnn50  < 5 / 15 %          → 2 / 1
//	hr     > 100 / 90 / 80 BPM → 3 / 2 / 1
//	lf/hf  > 3 / 2 / 1.5       → 3 / 2 / 1
//
// The LF/HF term uses the time-domain proxy from [hrv.Metrics].
func Score(m hrv.Metrics, hr float64) int {
	return sdnnCut.points(m.SDNN) +
		rmssdCut.points(m.RMSSD) +
		pnn50Cut.points(m.PNN50) +
		hrCut.points(hr) +
		lfhfCut.points(m.LFHFRatio)
}

// Classify maps metrics and heart rate to one of five buckets: 0-2 very
// low, 3-5 low, 6-8 moderate, 9-11 elevated, 12 and above high. A nil m
// yields [Unknown].
func Classify(m *hrv.Metrics, hr float64) State {
	if m == nil {
		return Unknown
	}

	score := Score(*m, hr)
	for _, b := range buckets {
		if score <= b.maxScore {
			s := b.state
			s.Score = score
			return s
		}
	}

	return Unknown
}

func (l Level) String() string {
	switch l {
	case LevelVeryLow:
		return "very low"
	case LevelLow:
		return "low"
	case LevelModerate:
		return "moderate"
	case LevelElevated:
		return "elevated"
	case LevelHigh:
		return "high"
	default:
		return "unknown"
	}
}
