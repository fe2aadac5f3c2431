package leaflet

import (
	"errors"
	"fmt"

	"github.com/ukaji3/leaflet-go/pkg/leaflet/parser"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input is not a readable xlsx workbook.
var ErrInvalidFormat = errors.New("invalid xlsx format")

// ErrNoWorkbooks indicates none of the inputs yielded a workbook.
var ErrNoWorkbooks = errors.New("no .xlsx workbooks found")

// ExtractionError reports a worksheet that could not be loaded.
type ExtractionError struct {
	SheetName string
	// Cell is the offending cell reference, empty when the sheet's rows
	// could not be read at all.
	Cell string
	Err  error
}

func (e *ExtractionError) Error() string {
	if e.Cell == "" {
		return fmt.Sprintf("failed to load sheet %q: %v", e.SheetName, e.Err)
	}
	return fmt.Sprintf("failed to load sheet %q at %s: %v", e.SheetName, e.Cell, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// newExtractionError lifts the cell reference out of a parser.CellError.
func newExtractionError(sheetName string, err error) *ExtractionError {
	e := &ExtractionError{SheetName: sheetName, Err: err}
	var cellErr *parser.CellError
	if errors.As(err, &cellErr) {
		e.Cell = cellErr.Cell
		e.Err = cellErr.Err
	}
	return e
}
