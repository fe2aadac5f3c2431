package parser

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// Sheet is an in-memory snapshot of one worksheet's cell values.
type Sheet struct {
	name   string
	rows   [][]Value
	maxCol int
}

// NewSheet builds a sheet from row-major values. rows[0][0] is cell A1.
func NewSheet(name string, rows [][]Value) *Sheet {
	s := &Sheet{name: name, rows: rows}
	for _, row := range rows {
		if len(row) > s.maxCol {
			s.maxCol = len(row)
		}
	}
	return s
}

// Name returns the worksheet name.
func (s *Sheet) Name() string { return s.name }

// MaxRow returns the last used row (1-based).
func (s *Sheet) MaxRow() int { return len(s.rows) }

// MaxCol returns the last used column (1-based).
func (s *Sheet) MaxCol() int { return s.maxCol }

// Cell returns the value at the 1-based position, empty outside the grid.
func (s *Sheet) Cell(row, col int) Value {
	if row < 1 || row > len(s.rows) {
		return Value{}
	}
	r := s.rows[row-1]
	if col < 1 || col > len(r) {
		return Value{}
	}
	return r[col-1]
}

// LoadSheet reads a worksheet into a Sheet. Formula cells yield their
// cached results; numeric cells with a date number format become dates.
func LoadSheet(f *excelize.File, sheetName string) (*Sheet, error) {
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	r := &cellReader{
		f:          f,
		sheet:      sheetName,
		date1904:   usesDate1904(f),
		dateStyles: make(map[int]bool),
	}

	grid := make([][]Value, len(rows))
	for rowIdx, row := range rows {
		values := make([]Value, len(row))
		for colIdx, raw := range row {
			if raw == "" {
				continue
			}
			cellName, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err != nil {
				return nil, err
			}
			v, err := r.read(cellName, raw)
			if err != nil {
				return nil, &CellError{Cell: cellName, Err: err}
			}
			values[colIdx] = v
		}
		grid[rowIdx] = values
	}

	return NewSheet(sheetName, grid), nil
}

// CellError reports a cell whose type or style could not be read.
type CellError struct {
	Cell string
	Err  error
}

func (e *CellError) Error() string {
	return fmt.Sprintf("cell %s: %v", e.Cell, e.Err)
}

func (e *CellError) Unwrap() error { return e.Err }

// cellReader classifies raw cell strings using the cell type and style.
type cellReader struct {
	f          *excelize.File
	sheet      string
	date1904   bool
	dateStyles map[int]bool
}

func (r *cellReader) read(cell, raw string) (Value, error) {
	typ, err := r.f.GetCellType(r.sheet, cell)
	if err != nil {
		return Value{}, err
	}

	switch typ {
	case excelize.CellTypeBool:
		return parseBool(raw), nil
	case excelize.CellTypeDate:
		if t, ok := parseISOTime(raw); ok {
			return DateValue(t), nil
		}
		return TextValue(raw), nil
	case excelize.CellTypeNumber, excelize.CellTypeUnset:
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return TextValue(raw), nil
		}
		isDate, err := r.hasDateFormat(cell)
		if err != nil {
			return Value{}, err
		}
		if isDate {
			if t, err := excelize.ExcelDateToTime(n, r.date1904); err == nil {
				return DateValue(t), nil
			}
		}
		return NumberValue(n), nil
	default:
		// shared strings, inline strings, formula strings and errors
		return TextValue(raw), nil
	}
}

func (r *cellReader) hasDateFormat(cell string) (bool, error) {
	styleID, err := r.f.GetCellStyle(r.sheet, cell)
	if err != nil {
		return false, err
	}
	if styleID == 0 {
		return false, nil
	}
	if isDate, ok := r.dateStyles[styleID]; ok {
		return isDate, nil
	}

	style, err := r.f.GetStyle(styleID)
	if err != nil {
		return false, err
	}
	isDate := isBuiltInDateFormat(style.NumFmt)
	if style.CustomNumFmt != nil {
		isDate = isDateFormatCode(*style.CustomNumFmt)
	}
	r.dateStyles[styleID] = isDate
	return isDate, nil
}

func usesDate1904(f *excelize.File) bool {
	props, err := f.GetWorkbookProps()
	if err != nil || props.Date1904 == nil {
		return false
	}
	return *props.Date1904
}

// isBuiltInDateFormat reports whether a built-in number format id renders a date or time.
func isBuiltInDateFormat(id int) bool {
	return (id >= 14 && id <= 22) || (id >= 45 && id <= 47)
}

// isDateFormatCode reports whether a custom format code contains date or time tokens
// outside quoted literals, bracketed sections and escaped characters.
func isDateFormatCode(code string) bool {
	var b strings.Builder
	inQuote, inBracket, escaped := false, false, false
	for _, ch := range code {
		switch {
		case escaped:
			escaped = false
		case inQuote:
			inQuote = ch != '"'
		case inBracket:
			inBracket = ch != ']'
		case ch == '\\':
			escaped = true
		case ch == '"':
			inQuote = true
		case ch == '[':
			inBracket = true
		default:
			b.WriteRune(ch)
		}
	}
	return strings.ContainsAny(strings.ToLower(b.String()), "ydmhs")
}

func parseBool(raw string) Value {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "1", "TRUE":
		return BoolValue(true)
	case "0", "FALSE":
		return BoolValue(false)
	}
	return TextValue(raw)
}

var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseISOTime(raw string) (time.Time, bool) {
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, strings.TrimSpace(raw)); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
