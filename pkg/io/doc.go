// Package io reads results objects and writes assembled figures.
//
// # Import
//
// A results object arrives in one of three shapes:
//
//   - JSON, as returned by the analysis backend: {"Effects": [...], "heatmap": {...}, "options": {...}}
//   - an XLSX workbook whose "Effects" sheet has one header row and one row per record
//   - a CSV export of the same table
//
// Use [Import] to dispatch on the file extension, or the format-specific
// [ImportResults], [ImportXLSX] and [ImportCSV]. Each has a Read variant
// taking an io.Reader.
//
// Workbook and CSV imports carry no clustering figure. They fill
// heatmap.data with the imported records, so the plain heatmap can be shown.
// Cells that parse as numbers become float64 values and empty cells are
// omitted from the record.
//
// # Export
//
// [WritePlot] and [ExportPlot] write an assembled figure as indented JSON,
// ready for a charting engine. [WriteResults] writes a results object in the
// backend JSON shape, and [ExportXLSX] writes its records to a workbook.
package io
