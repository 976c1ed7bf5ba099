package hrv_test

import (
	"fmt"

	"github.com/cwbudde/algo-rppg/measure/hrv"
)

func ExampleFromIntervals() {
	m, err := hrv.FromIntervals([]float64{800, 800, 800, 800})
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Printf("sdnn=%.0f rmssd=%.0f pnn50=%.0f lf/hf=%.0f\n", m.SDNN, m.RMSSD, m.PNN50, m.LFHFRatio)
	// Output:
	// sdnn=0 rmssd=0 pnn50=0 lf/hf=1
}
