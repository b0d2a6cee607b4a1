package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/cometsanalytics/heatmatrix/pkg/plot"
	"github.com/cometsanalytics/heatmatrix/pkg/results"
)

// Pair holds both figures computed from one results object.
type Pair struct {
	Heatmap    plot.Plot `json:"heatmap"`
	Dendrogram plot.Plot `json:"dendrogram"`
}

// WritePlot encodes p as indented JSON and writes it to w.
func WritePlot(w io.Writer, p plot.Plot) error {
	return writeJSON(w, p)
}

// ExportPlot writes p to a JSON file at path.
func ExportPlot(p plot.Plot, path string) error {
	return exportJSON(p, path)
}

// WritePair encodes both figures as one indented JSON object.
func WritePair(w io.Writer, pair Pair) error {
	return writeJSON(w, pair)
}

// ExportPair writes both figures to a JSON file at path.
func ExportPair(pair Pair, path string) error {
	return exportJSON(pair, path)
}

// WriteResults encodes res in the backend JSON shape.
func WriteResults(w io.Writer, res *results.Results) error {
	return writeJSON(w, res)
}

// ExportResults writes res to a JSON file at path.
func ExportResults(res *results.Results, path string) error {
	return exportJSON(res, path)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func exportJSON(v any, path string) error {
	f, err := createFile(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return writeJSON(f, v)
}

func createFile(path string) (*os.File, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	return f, nil
}
