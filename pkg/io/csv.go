package io

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/cometsanalytics/heatmatrix/pkg/errors"
	"github.com/cometsanalytics/heatmatrix/pkg/results"
)

// ReadCSV decodes a CSV table with a header row from r.
// ReadCSV does not close r.
func ReadCSV(r io.Reader) (*results.Results, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidResults, err, "read csv")
	}
	return fromTable(rows)
}

// ImportCSV reads a CSV table at path.
func ImportCSV(path string) (*results.Results, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	res, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return res, nil
}
