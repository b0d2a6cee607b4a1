package dendrogram

import "slices"

// DefaultTickBudget is the maximum number of tick labels shown per axis.
const DefaultTickBudget = 40

// ChunkSize returns the sampling stride for n ticks under budget.
// It is 1 when no thinning is needed or the budget is not positive.
func ChunkSize(n, budget int) int {
	if budget <= 0 || n <= budget {
		return 1
	}
	return (n + budget - 1) / budget
}

// Sample keeps the first element of every contiguous chunk of size.
// The result never aliases s.
func Sample[T any](s []T, size int) []T {
	if s == nil {
		return nil
	}
	if size <= 1 {
		return slices.Clone(s)
	}
	out := make([]T, 0, (len(s)+size-1)/size)
	for i := 0; i < len(s); i += size {
		out = append(out, s[i])
	}
	return out
}

// SampleTicks thins a tick value array and its parallel label array to at
// most budget entries, using one chunk size for both.
func SampleTicks(vals []float64, text []string, budget int) ([]float64, []string) {
	size := ChunkSize(max(len(vals), len(text)), budget)
	return Sample(vals, size), Sample(text, size)
}
