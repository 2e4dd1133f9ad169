package tabular

import (
	"database/sql"
	_ "embed"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// CellStore is a SQLite-backed Source. Sheets are rows of positional
// text cells in a single pair of tables, so the store honors the same
// "named sheet of cells" contract as a workbook. Like the workbook
// backend, the database is opened and closed around every call.
type CellStore struct {
	path string
}

// NewCellStore returns a cell store source for the given path.
func NewCellStore(path string) *CellStore {
	return &CellStore{path: path}
}

// open opens the database, applies pragmas, and ensures the schema.
// The caller closes the returned handle.
func (s *CellStore) open() (*sql.DB, error) {
	db, err := sql.Open("sqlite3", s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Single connection: SQLite supports one writer at a time, and a
	// store call is a single short transaction anyway.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	return db, nil
}

// ReadSheet reconstructs the named sheet's rows from the cell table.
func (s *CellStore) ReadSheet(name string) ([][]string, error) {
	sheets, err := s.ReadSheets(name)
	if err != nil {
		return nil, err
	}
	return sheets[name], nil
}

// ReadSheets reads all named sheets with one open of the database.
func (s *CellStore) ReadSheets(names ...string) (map[string][][]string, error) {
	db, err := s.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	sheets := make(map[string][][]string, len(names))
	for _, name := range names {
		rows, err := readSheetRows(db, name)
		if err != nil {
			return nil, err
		}
		sheets[name] = rows
	}
	return sheets, nil
}

func readSheetRows(db *sql.DB, name string) ([][]string, error) {
	var exists int
	err := db.QueryRow("SELECT COUNT(*) FROM sheets WHERE name = ?", name).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("lookup sheet %q: %w", name, err)
	}
	if exists == 0 {
		return nil, &NoSheetError{Sheet: name}
	}

	res, err := db.Query(
		"SELECT row, col, value FROM cells WHERE sheet = ? ORDER BY row, col", name)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", name, err)
	}
	defer res.Close()

	var rows [][]string
	for res.Next() {
		var row, col int
		var value string
		if err := res.Scan(&row, &col, &value); err != nil {
			return nil, fmt.Errorf("scan cell of %q: %w", name, err)
		}
		for len(rows) <= row {
			rows = append(rows, nil)
		}
		for len(rows[row]) <= col {
			rows[row] = append(rows[row], "")
		}
		rows[row][col] = value
	}
	if err := res.Err(); err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", name, err)
	}
	return rows, nil
}

// WriteCell overwrites one cell of an existing sheet.
func (s *CellStore) WriteCell(sheet string, row, col int, value string) error {
	db, err := s.open()
	if err != nil {
		return err
	}
	defer db.Close()

	var exists int
	err = db.QueryRow("SELECT COUNT(*) FROM sheets WHERE name = ?", sheet).Scan(&exists)
	if err != nil {
		return fmt.Errorf("lookup sheet %q: %w", sheet, err)
	}
	if exists == 0 {
		return &NoSheetError{Sheet: sheet}
	}

	_, err = db.Exec(
		`INSERT INTO cells (sheet, row, col, value) VALUES (?, ?, ?, ?)
		 ON CONFLICT (sheet, row, col) DO UPDATE SET value = excluded.value`,
		sheet, row, col, value)
	if err != nil {
		return fmt.Errorf("write cell (%d,%d) of %q: %w", row, col, sheet, err)
	}
	return nil
}

// WriteSheet replaces the named sheet with the given rows, creating the
// store file if it does not exist yet.
func (s *CellStore) WriteSheet(name string, rows [][]string) error {
	db, err := s.open()
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin write of %q: %w", name, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("INSERT OR IGNORE INTO sheets (name) VALUES (?)", name); err != nil {
		return fmt.Errorf("create sheet %q: %w", name, err)
	}
	if _, err := tx.Exec("DELETE FROM cells WHERE sheet = ?", name); err != nil {
		return fmt.Errorf("replace sheet %q: %w", name, err)
	}
	for i, row := range rows {
		for j, value := range row {
			_, err := tx.Exec(
				"INSERT INTO cells (sheet, row, col, value) VALUES (?, ?, ?, ?)",
				name, i, j, value)
			if err != nil {
				return fmt.Errorf("write cell (%d,%d) of %q: %w", i, j, name, err)
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save sheet %q: %w", name, err)
	}
	return nil
}
