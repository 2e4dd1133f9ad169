package repository

import (
	"errors"
	"fmt"
)

// MissingSheetError reports that a required sheet is absent from the
// store. The load fails as a whole; no partial repository is returned.
type MissingSheetError struct {
	Sheet string
}

func (e *MissingSheetError) Error() string {
	return fmt.Sprintf("required sheet %q not found in store", e.Sheet)
}

// IsMissingSheet reports whether err is a missing-sheet error.
// Uses errors.As to handle wrapped errors.
func IsMissingSheet(err error) bool {
	var ms *MissingSheetError
	return errors.As(err, &ms)
}

// CellError reports a cell that could not be coerced to its expected
// type. Row and Col are one-based, counted the way a spreadsheet user
// would (the header is row 1).
type CellError struct {
	Sheet   string
	Row     int
	Col     int
	Message string
	Err     error
}

func (e *CellError) Error() string {
	return fmt.Sprintf("sheet %q row %d col %d: %s", e.Sheet, e.Row, e.Col, e.Message)
}

func (e *CellError) Unwrap() error {
	return e.Err
}

// IsBadCell reports whether err is a cell coercion error.
// Uses errors.As to handle wrapped errors.
func IsBadCell(err error) bool {
	var ce *CellError
	return errors.As(err, &ce)
}
