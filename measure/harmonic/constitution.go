package harmonic

// Constitution is the overall pattern read from a harmonic profile.
type Constitution string

const (
	HeartSpleenDeficiency Constitution = "heart-spleen deficiency"
	LiverQiExcess         Constitution = "liver-qi excess"
	KidneyQiDeficiency    Constitution = "kidney-qi deficiency"
	SpleenQiWeakness      Constitution = "spleen-qi weakness"
	LungQiDeficiency      Constitution = "lung-qi deficiency"
	Balanced              Constitution = "balanced"
	SlightDeviation       Constitution = "slight deviation"
)

// shares is what the constitution rules look at.
type shares struct {
	pct    [Count]float64
	status [Count]Status
	mode   mode
	strict bool
}

func (s shares) below(h int) bool {
	return s.pct[h] < s.mode.ranges[h].Min
}

func (s shares) deficient(h int) bool {
	return s.pct[h] < s.mode.ranges[h].Min*s.mode.deficiency
}

type rule struct {
	label Constitution
	match func(shares) bool
}

// rules are evaluated in order and the first match wins. Do not reorder.
var rules = []rule{
	{HeartSpleenDeficiency, func(s shares) bool {
		return s.below(0) && s.below(3)
	}},
	{LiverQiExcess, func(s shares) bool {
		return s.pct[1] > s.mode.ranges[1].Max*s.mode.excess
	}},
	{KidneyQiDeficiency, func(s shares) bool {
		return s.deficient(2)
	}},
	{SpleenQiWeakness, func(s shares) bool {
		return s.deficient(3)
	}},
	{LungQiDeficiency, func(s shares) bool {
		return s.deficient(4)
	}},
	{Balanced, func(s shares) bool {
		descending := s.pct[1] > s.pct[2] && s.pct[2] > s.pct[3] && s.pct[3] > s.pct[4]
		if !descending || s.below(0) {
			return false
		}
		if !s.strict {
			return true
		}
		for _, st := range s.status {
			if st != StatusNormal {
				return false
			}
		}
		return true
	}},
}

// Classify returns the constitution for per-harmonic energy shares in
// percent, using the strict or normal range table.
func Classify(percentages [Count]float64, strict bool) Constitution {
	s := shares{pct: percentages, mode: modeFor(strict), strict: strict}
	for h, p := range percentages {
		s.status[h] = s.mode.grade(p, s.mode.ranges[h])
	}

	return classify(s)
}

func classify(s shares) Constitution {
	for _, r := range rules {
		if r.match(s) {
			return r.label
		}
	}

	return SlightDeviation
}
