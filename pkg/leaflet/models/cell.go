package models

// RawCellRecord is the audit capture of a single non-blank cell.
type RawCellRecord struct {
	// SheetName is the worksheet holding the cell.
	SheetName string `json:"sheet_name"`
	// Row is the row index (1-based).
	Row int `json:"row_idx"`
	// Col is the column index (1-based).
	Col int `json:"col_idx"`
	// RawValue is the trimmed display text of the cell.
	RawValue *string `json:"raw_value,omitempty"`
	// Kind is the native kind of the stored value: number, date, boolean or text.
	Kind string `json:"kind"`
}
