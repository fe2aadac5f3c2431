package models

// MetricRole is the semantic purpose of a measured value within its unit block.
type MetricRole string

const (
	RoleTarget    MetricRole = "target"
	RoleRangeLow  MetricRole = "range_low"
	RoleRangeSep  MetricRole = "range_sep"
	RoleRangeHigh MetricRole = "range_high"
	RoleOther     MetricRole = "other"
)

// ValueStatus is the outcome class of normalizing one cell.
type ValueStatus string

const (
	StatusOK        ValueStatus = "ok"
	StatusND        ValueStatus = "nd"
	StatusSeparator ValueStatus = "separator"
	StatusBlank     ValueStatus = "blank"
	StatusText      ValueStatus = "text"
)

// MeasurementRecord is one normalized table value.
// NumericValue is only set when Status is StatusOK.
type MeasurementRecord struct {
	SourceFile   string      `json:"source_file"`
	SampleLabel  *string     `json:"sample_label,omitempty"`
	SampleCode   *string     `json:"sample_code,omitempty"`
	Unit         *string     `json:"unit,omitempty"`
	AnalyteName  string      `json:"analyte_name"`
	GroupName    *string     `json:"group_name,omitempty"`
	Role         MetricRole  `json:"metric_role"`
	RawValue     *string     `json:"raw_value,omitempty"`
	NumericValue *float64    `json:"numeric_value,omitempty"`
	Status       ValueStatus `json:"value_status"`
	SheetRow     int         `json:"sheet_row"`
	SheetCol     int         `json:"sheet_col"`
}

// Deref returns the pointed-to string or "".
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
