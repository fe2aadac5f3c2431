// Package models defines the records produced by leaflet workbook parsing.
package models

import "time"

// WorkbookMeta holds the leaflet header fields found above the analyte table.
type WorkbookMeta struct {
	// TitleLines are the non-blank column A texts above the first label row.
	TitleLines []string `json:"title_lines"`
	// OrderNo is the value next to the "Order No." label.
	OrderNo *string `json:"order_no,omitempty"`
	// LotNo is the value next to the "Lot No." label.
	LotNo *string `json:"lot_no,omitempty"`
	// ExpDate is the parsed "Exp. Date" value (date only).
	ExpDate *time.Time `json:"exp_date,omitempty"`
	// ConsistingOf is the value next to the "Consisting of" label.
	ConsistingOf *string `json:"consisting_of,omitempty"`
	// DateOfCreation is the parsed "Date of Creation" value (date only).
	DateOfCreation *time.Time `json:"date_of_creation,omitempty"`
	// SheetName is the worksheet the meta and table were read from.
	SheetName string `json:"sheet_name_rows"`
}

// WorkbookParseResult aggregates everything extracted from one workbook.
type WorkbookParseResult struct {
	// SourceFile is the workbook file name (no path).
	SourceFile string `json:"source_file"`
	// Meta is the leaflet header block.
	Meta WorkbookMeta `json:"workbook_meta"`
	// Analytes lists analyte columns in discovery order.
	Analytes []*AnalyteDef `json:"analytes"`
	// Values holds one record per (row, analyte column) of the table.
	Values []MeasurementRecord `json:"normalized_values"`
	// RawCells is the audit capture of every non-blank cell of every sheet.
	RawCells []RawCellRecord `json:"raw_cells,omitempty"`
	// Warnings lists non-fatal structural problems met while parsing.
	Warnings []string `json:"warnings"`
}
