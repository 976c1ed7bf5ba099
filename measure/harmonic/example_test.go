package harmonic_test

import (
	"fmt"

	"github.com/cwbudde/algo-rppg/measure/harmonic"
)

func ExampleClassify() {
	pct := [harmonic.Count]float64{35, 25, 12, 8, 5, 4, 3, 2, 1.5, 1, 0.5}

	fmt.Println(harmonic.Classify(pct, false))

	pct[0] = 20
	pct[3] = 4
	fmt.Println(harmonic.Classify(pct, false))
	// Output:
	// balanced
	// heart-spleen deficiency
}
