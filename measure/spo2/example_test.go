package spo2_test

import (
	"fmt"

	"github.com/cwbudde/algo-rppg/measure/spo2"
)

func ExampleRatio() {
	red := []float64{99, 101, 99, 101}
	blue := []float64{98, 102, 98, 102}

	fmt.Printf("ratio=%.2f spo2=%.1f\n", spo2.Ratio(red, blue), 110-25*spo2.Ratio(red, blue))
	// Output:
	// ratio=0.50 spo2=97.5
}
