package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/cometsanalytics/heatmatrix/pkg/errors"
	"github.com/cometsanalytics/heatmatrix/pkg/results"
)

// Import reads a results object from path, choosing the decoder from the
// file extension. sheet names the workbook sheet for XLSX input and is
// ignored otherwise.
func Import(path, sheet string) (*results.Results, error) {
	format, err := errors.DetectFormat(path)
	if err != nil {
		return nil, err
	}
	switch format {
	case errors.FormatXLSX:
		return ImportXLSX(path, sheet)
	case errors.FormatCSV:
		return ImportCSV(path)
	default:
		return ImportResults(path)
	}
}

// ReadResults decodes a backend results object from r.
// ReadResults does not close r.
func ReadResults(r io.Reader) (*results.Results, error) {
	var res results.Results
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&res); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidResults, err, "decode results")
	}
	return &res, nil
}

// ImportResults reads a results JSON file at path.
func ImportResults(path string) (*results.Results, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	res, err := ReadResults(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return res, nil
}

func open(path string) (*os.File, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "file not found: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, nil
}

func exists(path string) error {
	_, err := os.Stat(path)
	if os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeFileNotFound, err, "file not found: %s", path)
	}
	return err
}

// fromTable builds a results object from a header row and data rows.
// Rows shorter than the header are padded with empty cells.
func fromTable(rows [][]string) (*results.Results, error) {
	if len(rows) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidResults, "table has no header row")
	}
	header := rows[0]
	records := make([]results.EffectRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(results.EffectRecord, len(header))
		for i, name := range header {
			if name == "" || i >= len(row) || row[i] == "" {
				continue
			}
			rec[name] = cellValue(row[i])
		}
		if len(rec) > 0 {
			records = append(records, rec)
		}
	}
	return &results.Results{
		Effects: records,
		Heatmap: results.Heatmap{Data: records},
	}, nil
}

// cellValue converts numeric cell text to float64 and keeps everything
// else as a string.
func cellValue(s string) any {
	if f, ok := results.ToFloat(s); ok {
		return f
	}
	return s
}
