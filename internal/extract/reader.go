package extract

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrEmptyWorkbook is returned for a workbook without any worksheet.
var ErrEmptyWorkbook = errors.New("workbook has no worksheets")

// ReadRows reads the first worksheet of a spreadsheet. filename only selects
// the reader: ".csv" files are read as CSV, anything else as an xlsx workbook.
// The first row is the header.
func ReadRows(r io.Reader, filename string) ([]Row, error) {
	if strings.EqualFold(filepath.Ext(filename), ".csv") {
		return readCSV(r)
	}
	return readWorkbook(r)
}

func readWorkbook(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet, err := firstSheet(f.GetSheetList())
	if err != nil {
		return nil, err
	}

	cells, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return toRows(cells), nil
}

func firstSheet(names []string) (string, error) {
	if len(names) == 0 {
		return "", ErrEmptyWorkbook
	}
	return names[0], nil
}

func readCSV(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	cells, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(cells) > 0 && len(cells[0]) > 0 {
		cells[0][0] = strings.TrimPrefix(cells[0][0], "\ufeff")
	}
	return toRows(cells), nil
}

// toRows keys every data row by the header row. Blank header cells are
// dropped, a repeated header keeps its first column, and rows with no
// non-blank cell are skipped.
func toRows(cells [][]string) []Row {
	if len(cells) == 0 {
		return nil
	}

	header := cells[0]
	columns := make(map[int]string, len(header))
	seen := make(map[string]bool, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if h == "" || seen[h] {
			continue
		}
		seen[h] = true
		columns[i] = h
	}

	rows := make([]Row, 0, len(cells)-1)
	for _, line := range cells[1:] {
		row := make(Row, len(columns))
		blank := true
		for i, name := range columns {
			if i >= len(line) {
				continue
			}
			row[name] = line[i]
			if strings.TrimSpace(line[i]) != "" {
				blank = false
			}
		}
		if blank {
			continue
		}
		rows = append(rows, row)
	}
	return rows
}
