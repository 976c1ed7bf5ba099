package quality_test

import (
	"fmt"

	"github.com/cwbudde/algo-rppg/measure/quality"
)

func ExampleAssess() {
	_, err := quality.Assess(make([]float64, 30), 30)
	fmt.Println(err)
	// Output:
	// insufficient data: quality needs 60 samples, got 30
}
