package tabular

import (
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"
)

// Workbook is an .xlsx-backed Source. The file is opened and closed
// around every call.
type Workbook struct {
	path string
}

// NewWorkbook returns a workbook source for the given path.
func NewWorkbook(path string) *Workbook {
	return &Workbook{path: path}
}

// ReadSheet reads every populated row of the named worksheet.
func (w *Workbook) ReadSheet(name string) ([][]string, error) {
	sheets, err := w.ReadSheets(name)
	if err != nil {
		return nil, err
	}
	return sheets[name], nil
}

// ReadSheets reads all named worksheets with one open of the file.
func (w *Workbook) ReadSheets(names ...string) (map[string][][]string, error) {
	f, err := excelize.OpenFile(w.path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", w.path, err)
	}
	defer f.Close()

	sheets := make(map[string][][]string, len(names))
	for _, name := range names {
		idx, err := f.GetSheetIndex(name)
		if err != nil {
			return nil, fmt.Errorf("sheet %q: %w", name, err)
		}
		if idx < 0 {
			return nil, &NoSheetError{Sheet: name}
		}
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", name, err)
		}
		sheets[name] = rows
	}
	return sheets, nil
}

// WriteCell overwrites one cell and saves the workbook in place.
func (w *Workbook) WriteCell(sheet string, row, col int, value string) error {
	f, err := excelize.OpenFile(w.path)
	if err != nil {
		return fmt.Errorf("open workbook %s: %w", w.path, err)
	}
	defer f.Close()

	idx, err := f.GetSheetIndex(sheet)
	if err != nil {
		return fmt.Errorf("sheet %q: %w", sheet, err)
	}
	if idx < 0 {
		return &NoSheetError{Sheet: sheet}
	}

	cell, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return fmt.Errorf("cell (%d,%d): %w", row, col, err)
	}
	if err := f.SetCellStr(sheet, cell, value); err != nil {
		return fmt.Errorf("set cell %s!%s: %w", sheet, cell, err)
	}
	if err := f.Save(); err != nil {
		return fmt.Errorf("save workbook %s: %w", w.path, err)
	}
	return nil
}

// WriteSheet replaces the named worksheet with the given rows, creating
// the workbook file if it does not exist yet.
func (w *Workbook) WriteSheet(name string, rows [][]string) error {
	var f *excelize.File
	created := false
	if _, err := os.Stat(w.path); err == nil {
		f, err = excelize.OpenFile(w.path)
		if err != nil {
			return fmt.Errorf("open workbook %s: %w", w.path, err)
		}
	} else {
		f = excelize.NewFile()
		created = true
	}
	defer f.Close()

	// A workbook must keep at least one sheet, and excelize refuses to
	// delete the last one. Park a scratch sheet so the target can be
	// dropped and rebuilt even when it is the only sheet in the file.
	const scratch = "__orderdesk_scratch"
	if _, err := f.NewSheet(scratch); err != nil {
		return fmt.Errorf("create scratch sheet: %w", err)
	}
	if idx, err := f.GetSheetIndex(name); err == nil && idx >= 0 {
		if err := f.DeleteSheet(name); err != nil {
			return fmt.Errorf("replace sheet %q: %w", name, err)
		}
	}
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("create sheet %q: %w", name, err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(name, cell, &values); err != nil {
			return fmt.Errorf("write row %d of %q: %w", i, name, err)
		}
	}

	if err := f.DeleteSheet(scratch); err != nil {
		return fmt.Errorf("drop scratch sheet: %w", err)
	}
	// Drop the placeholder sheet excelize puts in a fresh file.
	if created && name != "Sheet1" {
		_ = f.DeleteSheet("Sheet1")
	}

	if created {
		if err := f.SaveAs(w.path); err != nil {
			return fmt.Errorf("save workbook %s: %w", w.path, err)
		}
		return nil
	}
	if err := f.Save(); err != nil {
		return fmt.Errorf("save workbook %s: %w", w.path, err)
	}
	return nil
}
