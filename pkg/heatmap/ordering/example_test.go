package ordering_test

import (
	"fmt"

	"github.com/cometsanalytics/heatmatrix/pkg/heatmap"
	"github.com/cometsanalytics/heatmatrix/pkg/heatmap/ordering"
	"github.com/cometsanalytics/heatmatrix/pkg/results"
)

func Example() {
	records := []results.EffectRecord{
		{"term": "bmi", "outcomespec": "lactate", "corr": 0.30},
		{"term": "age", "outcomespec": "lactate", "corr": 0.10},
		{"term": "age", "outcomespec": "glucose", "corr": -0.20},
		{"term": "bmi", "outcomespec": "urate", "corr": 0.50},
	}
	keys := heatmap.DefaultOptions().Keys()

	columns := ordering.Index(records, keys.X)
	rows := ordering.SortRows(records, columns.Sorted, "age", keys)

	fmt.Println("columns:", columns.Sorted)
	fmt.Println("rows:", rows)
	// Output:
	// columns: [age bmi]
	// rows: [glucose lactate urate]
}
