// Package results defines the input boundary of the heatmap engine.
//
// A results object is produced by the statistical backend and carries a
// long-format list of effect records plus, optionally, a precomputed
// hierarchical-clustering description used by the dendrogram view.
//
// # Effect Records
//
// [EffectRecord] is an opaque mapping from field name to value. The engine
// only ever reads a handful of fields (the x, y, effect and significance
// keys) and passes everything else through untouched:
//
//	{"term": "age", "outcomespec": "lactate", "corr": 0.42, "pvalue": 0.003}
//
// Numeric fields are read with [EffectRecord.Float], which accepts JSON
// numbers, Go numeric types and numeric strings. Non-finite values are
// treated as non-numeric.
//
// # Dendrogram Descriptors
//
// The clustering view arrives as a plotting-library figure: a list of traces
// and a layout. [Descriptor] ingests this figure as a tagged union of
// [HeatmapTrace] and [ConnectorTrace], discriminated by [TraceKind] at decode
// time. Trace kinds the engine does not understand are dropped during
// decoding. Axis layouts are decoded into [Axis], which names every
// property the engine is willing to carry forward. Anything else in the
// source layout is discarded.
//
// # Gating
//
// [Results.HasHeatmap] and [Results.HasDendrogram] report whether the
// backend produced enough data for either view. Callers use them to decide
// which view can be offered at all.
package results
