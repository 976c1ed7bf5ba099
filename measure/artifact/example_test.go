package artifact_test

import (
	"fmt"

	"github.com/cwbudde/algo-rppg/measure/artifact"
)

func ExampleDetectMotion() {
	r := []float64{100, 100, 100, 100, 100, 100}
	g := []float64{80, 80, 80, 80, 80, 110}
	b := []float64{60, 60, 60, 60, 60, 60}

	fmt.Println(artifact.DetectMotion(r, g, b, 5))
	fmt.Println(artifact.DetectMotion(r[:5], g[:5], b[:5], 4))
	// Output:
	// true
	// false
}
