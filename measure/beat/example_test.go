package beat_test

import (
	"fmt"

	"github.com/cwbudde/algo-rppg/measure/beat"
)

func ExampleIntervals() {
	fmt.Println(beat.Intervals([]int{10, 34, 58, 85}, 30))
	// Output:
	// [800 800 900]
}
