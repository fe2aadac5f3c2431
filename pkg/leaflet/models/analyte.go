package models

// AnalyteDef describes one analyte column of the leaflet table.
type AnalyteDef struct {
	// Name is the header text from the "Substance" row.
	Name string `json:"name"`
	// GroupName is the header text from the "Group" row, when present.
	GroupName *string `json:"group_name,omitempty"`
	// ColumnIndex is the 1-based column the analyte was found in.
	ColumnIndex int `json:"column_index"`
	// Units lists units observed for this analyte, first-seen order, no duplicates.
	Units []string `json:"units_seen"`
}

// AddUnit appends unit unless it is already recorded.
func (a *AnalyteDef) AddUnit(unit string) {
	for _, u := range a.Units {
		if u == unit {
			return
		}
	}
	a.Units = append(a.Units, unit)
}
