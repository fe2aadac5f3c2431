package parser

import (
	"github.com/ukaji3/leaflet-go/pkg/leaflet/models"
)

const (
	// firstAnalyteCol is the first column that can hold an analyte (D).
	firstAnalyteCol = 4
	// trailerBlankRows ends the table scan after this many fully blank rows.
	trailerBlankRows = 8

	colLabel = 1
	colCode  = 2
	colUnit  = 3

	codeRange = "range"
)

// unitBlock tracks role assignment for a run of rows sharing one unit.
type unitBlock struct {
	unit              *string
	targetAssigned    bool
	sawRangeLow       bool
	rangeHighAssigned bool
}

// assign derives the metric role of a content row and returns the updated block.
// bNorm is the lower-cased, trimmed column B text.
func (b unitBlock) assign(bNorm string, separator bool) (unitBlock, models.MetricRole) {
	switch {
	case bNorm == codeRange:
		b.sawRangeLow = true
		return b, models.RoleRangeLow
	case separator && b.sawRangeLow && !b.rangeHighAssigned:
		return b, models.RoleRangeSep
	case separator:
		return b, models.RoleOther
	case !b.targetAssigned:
		b.targetAssigned = true
		return b, models.RoleTarget
	case b.sawRangeLow && !b.rangeHighAssigned:
		b.rangeHighAssigned = true
		return b, models.RoleRangeHigh
	}
	return b, models.RoleOther
}

// ExtractTable locates the "Substance" header row, enumerates analyte columns
// and walks the data rows below it, emitting one record per row and analyte.
func ExtractTable(s *Sheet, sourceFile string, warnings *Warnings) ([]*models.AnalyteDef, []models.MeasurementRecord) {
	substanceRow := findRowByLabel(s, labelSubstance)
	if substanceRow == 0 {
		warnings.Add("No 'Substance' row found.")
		return []*models.AnalyteDef{}, []models.MeasurementRecord{}
	}

	analytes := findAnalytes(s, substanceRow, findRowByLabel(s, labelGroup))
	if len(analytes) == 0 {
		warnings.Add("No analytes were discovered in 'Substance' row.")
		return []*models.AnalyteDef{}, []models.MeasurementRecord{}
	}

	records := []models.MeasurementRecord{}
	var (
		block        unitBlock
		haveBlock    bool
		started      bool
		trailerCount int
	)

	for row := substanceRow + 2; row <= s.MaxRow(); row++ {
		values := make([]Value, len(analytes))
		hasContent := false
		for i, a := range analytes {
			values[i] = s.Cell(row, a.ColumnIndex)
			if !isBlank(values[i]) {
				hasContent = true
			}
		}

		if !hasContent {
			if started && isBlank(s.Cell(row, colLabel)) && isBlank(s.Cell(row, colCode)) && isBlank(s.Cell(row, colUnit)) {
				trailerCount++
				if trailerCount >= trailerBlankRows {
					break
				}
			}
			continue
		}
		started = true
		trailerCount = 0

		unitText := DisplayText(s.Cell(row, colUnit))
		if unitText != nil && (!haveBlock || block.unit == nil || *unitText != *block.unit) {
			block = unitBlock{unit: unitText}
			haveBlock = true
		}
		effectiveUnit := unitText
		if effectiveUnit == nil && haveBlock {
			effectiveUnit = block.unit
		}
		if !haveBlock {
			block = unitBlock{unit: effectiveUnit}
			haveBlock = true
		}

		codeText := DisplayText(s.Cell(row, colCode))
		bNorm := ""
		if codeText != nil {
			bNorm = lowerTrim(*codeText)
		}

		var role models.MetricRole
		block, role = block.assign(bNorm, isSeparatorRow(values))

		sampleLabel := DisplayText(s.Cell(row, colLabel))
		sampleCode := codeText
		if bNorm == codeRange || (sampleCode != nil && *sampleCode == "-") {
			sampleCode = nil
		}

		for i, a := range analytes {
			n := Normalize(values[i])
			if effectiveUnit != nil && n.Status != models.StatusBlank {
				a.AddUnit(*effectiveUnit)
			}
			records = append(records, models.MeasurementRecord{
				SourceFile:   sourceFile,
				SampleLabel:  sampleLabel,
				SampleCode:   sampleCode,
				Unit:         effectiveUnit,
				AnalyteName:  a.Name,
				GroupName:    a.GroupName,
				Role:         role,
				RawValue:     n.Text,
				NumericValue: n.Number,
				Status:       n.Status,
				SheetRow:     row,
				SheetCol:     a.ColumnIndex,
			})
		}
	}

	if len(records) == 0 {
		warnings.Add("No measurement rows were extracted.")
	}
	return analytes, records
}

// findAnalytes returns one definition per non-blank header cell right of column C.
func findAnalytes(s *Sheet, substanceRow, groupRow int) []*models.AnalyteDef {
	var analytes []*models.AnalyteDef
	for col := firstAnalyteCol; col <= s.MaxCol(); col++ {
		name := DisplayText(s.Cell(substanceRow, col))
		if name == nil {
			continue
		}
		a := &models.AnalyteDef{
			Name:        *name,
			ColumnIndex: col,
			Units:       []string{},
		}
		if groupRow > 0 {
			a.GroupName = DisplayText(s.Cell(groupRow, col))
		}
		analytes = append(analytes, a)
	}
	return analytes
}

// findRowByLabel returns the first row whose column A text matches label, or 0.
func findRowByLabel(s *Sheet, label string) int {
	for row := 1; row <= s.MaxRow(); row++ {
		v := s.Cell(row, colLabel)
		if v.Kind == KindText && lowerTrim(v.Text) == label {
			return row
		}
	}
	return 0
}

// isSeparatorRow reports whether every non-blank value renders as "-".
func isSeparatorRow(values []Value) bool {
	seen := false
	for _, v := range values {
		text := DisplayText(v)
		if text == nil {
			continue
		}
		if *text != "-" {
			return false
		}
		seen = true
	}
	return seen
}
