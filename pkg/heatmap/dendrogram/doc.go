// Package dendrogram adapts a precomputed hierarchical-clustering figure
// into a heatmap figure the renderer can draw next to the plain heatmap.
//
// The backend sends a figure made of linkage segments (scatter traces) and
// one heatmap trace whose x and y are 1-based indices into the category
// arrays of the layout. The matrix is already in clustering order. The
// adapter does not reorder anything; it re-labels, thins and filters.
//
// # What the Adapter Does
//
// For the heatmap trace it synthesizes a three-line hover label per cell
// (x category, y category, value), resolving x through xaxis and y through
// yaxis2, because the raw trace carries no per-cell labels.
//
// When annotations are enabled it emits one annotation per cell, positioned
// against the x/y2 axis pair the clustered matrix is drawn on.
//
// Linkage segments with fewer than two points are dropped and the rest are
// hidden from the legend.
//
// Only the properties named by [plot.Axis] are carried from each source
// axis. The tick arrays of the two category axes (xaxis for columns,
// yaxis2 for rows) are thinned by [SampleTicks] so that at most a fixed
// budget of labels is shown, default [DefaultTickBudget].
//
// # Tick Sampling
//
// Given n ticks and a budget b, the ticks are split into contiguous chunks
// of ceil(n/b) and the first tick of each chunk is kept. Values and labels
// are sampled with the same chunk size, so the k-th kept value and the
// k-th kept label always come from the same source index:
//
//	vals, text := dendrogram.SampleTicks(tickvals, ticktext, 40)
//
// # Missing Input
//
// A nil descriptor, or one without a heatmap trace, yields [plot.Empty].
package dendrogram
