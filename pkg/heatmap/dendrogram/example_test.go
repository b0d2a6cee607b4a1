package dendrogram_test

import (
	"fmt"

	"github.com/cometsanalytics/heatmatrix/pkg/heatmap/dendrogram"
)

func ExampleSampleTicks() {
	vals := []float64{5, 15, 25, 35, 45, 55, 65}
	text := []string{"a", "b", "c", "d", "e", "f", "g"}

	v, t := dendrogram.SampleTicks(vals, text, 3)
	fmt.Println(v, t)
	// Output:
	// [5 35 65] [a d g]
}
