package io

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/cometsanalytics/heatmatrix/pkg/errors"
	"github.com/cometsanalytics/heatmatrix/pkg/results"
)

// DefaultSheet is the workbook sheet holding effect records.
const DefaultSheet = "Effects"

// ReadXLSX decodes the named sheet of a workbook read from r. An empty
// sheet selects [DefaultSheet]. ReadXLSX does not close r.
func ReadXLSX(r io.Reader, sheet string) (*results.Results, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidResults, err, "open workbook")
	}
	defer f.Close()
	return readSheet(f, sheet)
}

// ImportXLSX reads the named sheet of the workbook at path.
func ImportXLSX(path, sheet string) (*results.Results, error) {
	if err := exists(path); err != nil {
		return nil, err
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidResults, err, "open workbook %s", path)
	}
	defer f.Close()

	res, err := readSheet(f, sheet)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return res, nil
}

func readSheet(f *excelize.File, sheet string) (*results.Results, error) {
	if sheet == "" {
		sheet = DefaultSheet
	}
	sheets := f.GetSheetList()
	if !slices.Contains(sheets, sheet) {
		return nil, errors.New(errors.ErrCodeInvalidResults,
			"sheet %q not found (have: %s)", sheet, strings.Join(sheets, ", "))
	}
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidResults, err, "read sheet %s", sheet)
	}
	return fromTable(rows)
}

// WriteXLSX writes the effect records of res to a single-sheet workbook.
// Columns follow the first-seen order of field names, with each record's
// own fields taken in sorted order.
func WriteXLSX(w io.Writer, res *results.Results) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", DefaultSheet); err != nil {
		return err
	}

	header := columns(res.Effects)
	for i, h := range header {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(DefaultSheet, cell, h); err != nil {
			return err
		}
	}
	for r, rec := range res.Effects {
		for c, h := range header {
			v, ok := rec[h]
			if !ok || v == nil {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(DefaultSheet, cell, xlsxValue(v)); err != nil {
				return err
			}
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// ExportXLSX writes the effect records of res to a workbook at path.
func ExportXLSX(res *results.Results, path string) error {
	f, err := createFile(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteXLSX(f, res)
}

func columns(records []results.EffectRecord) []string {
	var header []string
	seen := make(map[string]bool)
	for _, rec := range records {
		for _, k := range slices.Sorted(maps.Keys(rec)) {
			if !seen[k] {
				seen[k] = true
				header = append(header, k)
			}
		}
	}
	return header
}

func xlsxValue(v any) any {
	if f, ok := results.ToFloat(v); ok {
		if _, isString := v.(string); !isString {
			return f
		}
	}
	return results.FormatValue(v)
}
