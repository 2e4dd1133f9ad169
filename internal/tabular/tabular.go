// Package tabular abstracts the store the order data lives in: named
// sheets of positional text cells. Two backends are provided, an .xlsx
// workbook and a SQLite cell store.
//
// Every operation opens the store, does its work, and closes it again.
// No handle is retained between calls, so a read always observes the
// current on-disk state and a write is a single open/write/save cycle.
package tabular

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Source is a store of named sheets. Rows and columns are zero-based;
// row 0 is the header row. Rows may be ragged: a row ends at its last
// populated cell.
type Source interface {
	// ReadSheet returns every row of the named sheet. A missing sheet
	// yields a *NoSheetError.
	ReadSheet(name string) ([][]string, error)

	// ReadSheets returns all named sheets, keyed by name, in a single
	// open/read/close cycle. The first missing sheet aborts the read
	// with a *NoSheetError.
	ReadSheets(names ...string) (map[string][][]string, error)

	// WriteCell overwrites a single cell and saves the store.
	WriteCell(sheet string, row, col int, value string) error
}

// Seeder is implemented by backends that can (re)create a whole sheet
// at once. Used to build stores and test fixtures.
type Seeder interface {
	WriteSheet(name string, rows [][]string) error
}

// Both backends satisfy both contracts.
var (
	_ Source = (*Workbook)(nil)
	_ Source = (*CellStore)(nil)
	_ Seeder = (*Workbook)(nil)
	_ Seeder = (*CellStore)(nil)
)

// NoSheetError reports a sheet that does not exist in the store.
type NoSheetError struct {
	Sheet string
}

func (e *NoSheetError) Error() string {
	return fmt.Sprintf("sheet %q not found", e.Sheet)
}

// IsNoSheet reports whether err is a missing-sheet error.
// Uses errors.As to handle wrapped errors.
func IsNoSheet(err error) bool {
	var ns *NoSheetError
	return errors.As(err, &ns)
}

// Open selects a backend by file extension. The file does not need to
// exist yet; backends create it on first write.
func Open(path string) (Source, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return NewWorkbook(path), nil
	case ".db", ".sqlite", ".sqlite3":
		return NewCellStore(path), nil
	default:
		return nil, fmt.Errorf("unsupported store type %q (want .xlsx or .sqlite)", filepath.Ext(path))
	}
}
