package parser

import "time"

// grid converts loosely typed rows into sheet values. nil and "" are empty cells.
func grid(rows ...[]any) [][]Value {
	out := make([][]Value, len(rows))
	for i, row := range rows {
		values := make([]Value, len(row))
		for j, cell := range row {
			switch c := cell.(type) {
			case nil:
			case string:
				if c != "" {
					values[j] = TextValue(c)
				}
			case int:
				values[j] = NumberValue(float64(c))
			case float64:
				values[j] = NumberValue(c)
			case bool:
				values[j] = BoolValue(c)
			case time.Time:
				values[j] = DateValue(c)
			default:
				panic("unsupported cell type")
			}
		}
		out[i] = values
	}
	return out
}

// leafletRows is a small sheet with two stacked unit blocks.
func leafletRows() [][]any {
	return [][]any{
		{"Chromsystems Lot Certificate"},
		{"Vitamins A/E in Serum"},
		{"Order No.", "12345"},
		{"Lot No.", " L-0815 "},
		{"Exp. Date", time.Date(2027, 3, 31, 0, 0, 0, 0, time.UTC)},
		{"Consisting of", "3 levels"},
		{"Date of creation", "15.01.2025"},
		{"Group", "", "", "Vitamin Assay", "Vitamin Assay"},
		{"Substance", "", "", "Retinol", "Tocopherol"},
		{"Sample", "Code", "Unit"},
		{"Level I", "11", "mg/L", 0.3, "4,5"},
		{"", "range", "", 0.2, 3.9},
		{"", "", "", "-", "-"},
		{"", "", "", 0.4, 5.1},
		{"Level I", "11", "μmol/L", 1.05, "n.d."},
		{"", "Range", "", 0.7, 9},
	}
}
