package parser

import (
	"fmt"
	"strings"
	"time"

	"github.com/ukaji3/leaflet-go/pkg/leaflet/models"
)

const (
	labelOrderNo        = "order no."
	labelLotNo          = "lot no."
	labelExpDate        = "exp. date"
	labelConsistingOf   = "consisting of"
	labelDateOfCreation = "date of creation"

	labelSubstance = "substance"
	labelGroup     = "group"

	// substanceSearchRows bounds the early "Substance" sanity check.
	substanceSearchRows = 30
)

var metaLabels = map[string]bool{
	labelOrderNo:        true,
	labelLotNo:          true,
	labelExpDate:        true,
	labelConsistingOf:   true,
	labelDateOfCreation: true,
}

var metaDateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"02.01.2006",
}

// Warnings collects non-fatal parse problems.
type Warnings []string

// Add appends a formatted warning.
func (w *Warnings) Add(format string, args ...any) {
	*w = append(*w, fmt.Sprintf(format, args...))
}

// ExtractMeta reads the label/value block in columns A and B and the free-text
// title lines above it.
func ExtractMeta(s *Sheet, warnings *Warnings) models.WorkbookMeta {
	labelRows := make(map[string]int)
	values := make(map[string]Value)
	for row := 1; row <= s.MaxRow(); row++ {
		label := s.Cell(row, 1)
		if label.Kind != KindText {
			continue
		}
		key := lowerTrim(label.Text)
		if metaLabels[key] {
			labelRows[key] = row
			values[key] = s.Cell(row, 2)
		}
	}

	firstLabelRow := 0
	for _, row := range labelRows {
		if firstLabelRow == 0 || row < firstLabelRow {
			firstLabelRow = row
		}
	}

	titleLines := []string{}
	for row := 1; row < firstLabelRow; row++ {
		v := s.Cell(row, 1)
		if v.Kind != KindText {
			continue
		}
		if line := strings.TrimSpace(v.Text); line != "" {
			titleLines = append(titleLines, line)
		}
	}

	if _, ok := labelRows[labelOrderNo]; !ok {
		warnings.Add("Metadata key 'Order No.' was not found.")
	}
	if !hasSubstanceLabel(s) {
		warnings.Add("Could not locate 'Substance' row near the top of rows sheet.")
	}

	return models.WorkbookMeta{
		TitleLines:     titleLines,
		OrderNo:        DisplayText(values[labelOrderNo]),
		LotNo:          DisplayText(values[labelLotNo]),
		ExpDate:        toDate(values[labelExpDate]),
		ConsistingOf:   DisplayText(values[labelConsistingOf]),
		DateOfCreation: toDate(values[labelDateOfCreation]),
		SheetName:      s.Name(),
	}
}

func hasSubstanceLabel(s *Sheet) bool {
	for row := 1; row <= substanceSearchRows; row++ {
		if text := DisplayText(s.Cell(row, 1)); text != nil && strings.ToLower(*text) == labelSubstance {
			return true
		}
	}
	return false
}

// toDate accepts date cells or text in one of metaDateLayouts.
func toDate(v Value) *time.Time {
	switch v.Kind {
	case KindDate:
		d := dateOnly(v.Time)
		return &d
	case KindText:
		text := strings.TrimSpace(v.Text)
		if text == "" {
			return nil
		}
		for _, layout := range metaDateLayouts {
			if t, err := time.Parse(layout, text); err == nil {
				d := dateOnly(t)
				return &d
			}
		}
	}
	return nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
