package parser

import "github.com/ukaji3/leaflet-go/pkg/leaflet/models"

// CaptureRawCells lists every non-blank cell of the sheet in row-major order.
func CaptureRawCells(s *Sheet) []models.RawCellRecord {
	var records []models.RawCellRecord
	for row := 1; row <= s.MaxRow(); row++ {
		for col := 1; col <= s.MaxCol(); col++ {
			v := s.Cell(row, col)
			if isBlank(v) {
				continue
			}
			records = append(records, models.RawCellRecord{
				SheetName: s.Name(),
				Row:       row,
				Col:       col,
				RawValue:  DisplayText(v),
				Kind:      v.Kind.String(),
			})
		}
	}
	return records
}
