package robust_test

import (
	"fmt"

	"github.com/cwbudde/algo-rppg/stats/robust"
)

func ExampleRejectOutliersIQR() {
	fmt.Println(robust.RejectOutliersIQR([]float64{60, 62, 61, 63, 200, 59}))

	// Output:
	// [60 62 61 63 59]
}
