package robust

import (
	"math"
	"sort"
)

// MinIQRSamples is the shortest series [RejectOutliersIQR] filters.
const MinIQRSamples = 4

// Quartiles returns Q1 and Q3 of values using sorted-array indexing at
// floor(n*0.25) and floor(n*0.75). ok is false for an empty slice.
func Quartiles(values []float64) (q1, q3 float64, ok bool) {
	if len(values) == 0 {
		return 0, 0, false
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	n := float64(len(sorted))
	q1 = sorted[int(math.Floor(n*0.25))]
	q3 = sorted[int(math.Floor(n*0.75))]

	return q1, q3, true
}

// RejectOutliersIQR keeps the values inside [Q1-1.5*IQR, Q3+1.5*IQR] in
// their original order. Series shorter than [MinIQRSamples] are returned as
// an unfiltered copy.
func RejectOutliersIQR(values []float64) []float64 {
	if len(values) < MinIQRSamples {
		return append([]float64(nil), values...)
	}

	q1, q3, _ := Quartiles(values)
	iqr := q3 - q1
	lo := q1 - 1.5*iqr
	hi := q3 + 1.5*iqr

	out := make([]float64, 0, len(values))
	for _, v := range values {
		if v >= lo && v <= hi {
			out = append(out, v)
		}
	}

	return out
}
