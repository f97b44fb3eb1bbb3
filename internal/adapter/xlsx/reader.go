// Package xlsx reads weather tables from the first sheet of an Excel workbook.
package xlsx

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/couchcryptid/climate-history-service/internal/domain"
	"github.com/xuri/excelize/v2"
)

// ErrNoSheets is returned for a workbook without any worksheet.
var ErrNoSheets = errors.New("workbook has no sheets")

// Workbook yields the rows of one worksheet. Cells are read raw; date cells
// stored as Excel serial numbers are rendered as dd/mm/yyyy.
type Workbook struct {
	f    *excelize.File
	rows [][]string
	next int
}

// Open opens the workbook at path and buffers its first sheet.
func Open(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}

	rows, err := firstSheetRows(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	normalizeDates(rows)

	return &Workbook{f: f, rows: rows}, nil
}

// Read returns the next row, or io.EOF after the last one.
func (w *Workbook) Read() ([]string, error) {
	if w.next >= len(w.rows) {
		return nil, io.EOF
	}
	row := w.rows[w.next]
	w.next++
	return row, nil
}

// Close releases the workbook.
func (w *Workbook) Close() error {
	return w.f.Close()
}

func firstSheetRows(f *excelize.File) ([][]string, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheets
	}
	return f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
}

// normalizeDates rewrites numeric cells of the date column in place.
func normalizeDates(rows [][]string) {
	if len(rows) == 0 {
		return
	}
	cols, err := domain.ResolveHeader(rows[0])
	if err != nil {
		return
	}
	col := -1
	for i, h := range rows[0] {
		if h == cols[domain.FieldDate] {
			col = i
			break
		}
	}

	for _, row := range rows[1:] {
		if col < 0 || col >= len(row) {
			continue
		}
		serial, err := strconv.ParseFloat(strings.TrimSpace(row[col]), 64)
		if err != nil {
			continue
		}
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			continue
		}
		row[col] = t.Format("02/01/2006")
	}
}
