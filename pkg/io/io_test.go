package io

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cometsanalytics/heatmatrix/pkg/errors"
	"github.com/cometsanalytics/heatmatrix/pkg/plot"
	"github.com/cometsanalytics/heatmatrix/pkg/results"
)

const resultsJSON = `{
  "Effects": [
    {"term": "age", "outcomespec": "lactate", "corr": 0.31, "pvalue": 0.002, "n": 120},
    {"term": "bmi", "outcomespec": "lactate", "corr": -0.12, "pvalue": 0.4}
  ],
  "heatmap": {
    "data": [{"term": "age"}],
    "dendrogram": {
      "data": [
        {"type": "scatter", "x": [1, 1, 2, 2], "y": [0, 1, 1, 0], "mode": "lines"},
        {"type": "heatmap", "x": [1, 2], "y": [1], "z": [[0.31, null]]}
      ],
      "layout": {"xaxis": {"categoryarray": ["age", "bmi"]}}
    }
  },
  "options": {"name": "Cohort A"},
  "ModelSummary": [{"ignored": true}]
}`

func TestReadResults(t *testing.T) {
	res, err := ReadResults(strings.NewReader(resultsJSON))
	if err != nil {
		t.Fatalf("ReadResults: %v", err)
	}
	if len(res.Effects) != 2 {
		t.Fatalf("len(Effects) = %d, want 2", len(res.Effects))
	}
	if got := res.Effects[0].String("term"); got != "age" {
		t.Errorf("term = %q, want age", got)
	}
	if got, ok := res.Effects[1].Float("corr"); !ok || got != -0.12 {
		t.Errorf("corr = %v, %v, want -0.12", got, ok)
	}
	if !res.HasHeatmap() || !res.HasDendrogram() {
		t.Error("results should have both heatmap and dendrogram")
	}
	if len(res.Heatmap.Dendrogram.Traces) != 2 {
		t.Errorf("dendrogram traces = %d, want 2", len(res.Heatmap.Dendrogram.Traces))
	}
	if res.Title() != "Cohort A" {
		t.Errorf("Title() = %q, want Cohort A", res.Title())
	}
}

func TestReadResultsInvalid(t *testing.T) {
	_, err := ReadResults(strings.NewReader(`{"Effects": 3}`))
	if !errors.Is(err, errors.ErrCodeInvalidResults) {
		t.Errorf("error = %v, want INVALID_RESULTS", err)
	}
}

func TestImportMissingFile(t *testing.T) {
	for _, name := range []string{"missing.json", "missing.csv", "missing.xlsx"} {
		_, err := Import(filepath.Join(t.TempDir(), name), "")
		if !errors.Is(err, errors.ErrCodeFileNotFound) {
			t.Errorf("Import(%s) error = %v, want FILE_NOT_FOUND", name, err)
		}
	}
}

func TestImportUnsupportedExtension(t *testing.T) {
	_, err := Import("results.parquet", "")
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("error = %v, want INVALID_FORMAT", err)
	}
}

func TestReadCSV(t *testing.T) {
	in := "term,outcomespec,corr,pvalue\nage,lactate,0.31,0.002\nbmi,lactate,,0.4\n"
	res, err := ReadCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if len(res.Effects) != 2 {
		t.Fatalf("len(Effects) = %d, want 2", len(res.Effects))
	}
	if v, ok := res.Effects[0]["corr"].(float64); !ok || v != 0.31 {
		t.Errorf("corr = %#v, want float64 0.31", res.Effects[0]["corr"])
	}
	if res.Effects[1].Has("corr") {
		t.Error("empty cell should be omitted")
	}
	if !res.HasHeatmap() {
		t.Error("imported results should pass the heatmap gate")
	}
	if res.HasDendrogram() {
		t.Error("imported results should carry no dendrogram")
	}
}

func TestXLSXRoundTrip(t *testing.T) {
	want := &results.Results{Effects: []results.EffectRecord{
		{"term": "age", "outcomespec": "lactate", "corr": 0.31, "pvalue": 0.002},
		{"term": "bmi", "outcomespec": "glucose", "corr": -0.5, "pvalue": 0.04, "model": "adjusted"},
	}}

	path := filepath.Join(t.TempDir(), "results.xlsx")
	if err := ExportXLSX(want, path); err != nil {
		t.Fatalf("ExportXLSX: %v", err)
	}

	got, err := ImportXLSX(path, "")
	if err != nil {
		t.Fatalf("ImportXLSX: %v", err)
	}
	if len(got.Effects) != len(want.Effects) {
		t.Fatalf("len(Effects) = %d, want %d", len(got.Effects), len(want.Effects))
	}
	for i := range want.Effects {
		w, _ := json.Marshal(want.Effects[i])
		g, _ := json.Marshal(got.Effects[i])
		if string(w) != string(g) {
			t.Errorf("record %d = %s, want %s", i, g, w)
		}
	}
}

func TestReadXLSXMissingSheet(t *testing.T) {
	var buf bytes.Buffer
	res := &results.Results{Effects: []results.EffectRecord{{"term": "age"}}}
	if err := WriteXLSX(&buf, res); err != nil {
		t.Fatalf("WriteXLSX: %v", err)
	}
	_, err := ReadXLSX(&buf, "Models")
	if !errors.Is(err, errors.ErrCodeInvalidResults) {
		t.Errorf("error = %v, want INVALID_RESULTS", err)
	}
	if err != nil && !strings.Contains(err.Error(), "Effects") {
		t.Errorf("error %q should list the available sheets", err)
	}
}

func TestExportPlot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plot.json")
	if err := ExportPlot(plot.Empty(), path); err != nil {
		t.Fatalf("ExportPlot: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, data); err != nil {
		t.Fatal(err)
	}
	if got, want := compact.String(), `{"data":[],"layout":{}}`; got != want {
		t.Errorf("exported = %s, want %s", got, want)
	}
}

func TestWritePair(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePair(&buf, Pair{Heatmap: plot.Empty(), Dendrogram: plot.Empty()}); err != nil {
		t.Fatalf("WritePair: %v", err)
	}
	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	for _, k := range []string{"heatmap", "dendrogram"} {
		if _, ok := decoded[k]; !ok {
			t.Errorf("output missing %q", k)
		}
	}
}
