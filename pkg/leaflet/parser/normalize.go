package parser

import (
	"math"
	"strconv"
	"strings"

	"github.com/ukaji3/leaflet-go/pkg/leaflet/models"
)

// Normalized is the outcome of normalizing one cell.
type Normalized struct {
	// Text is the display text, nil for blank cells.
	Text *string
	// Number is set only when Status is models.StatusOK.
	Number *float64
	Status models.ValueStatus
}

// Normalize classifies a cell value. Type checks come first, then the
// "n.d." and "-" tokens, then decimal-comma numeric coercion, then text.
func Normalize(v Value) Normalized {
	if isBlank(v) {
		return Normalized{Status: models.StatusBlank}
	}

	switch v.Kind {
	case KindBoolean, KindDate:
		text := v.render()
		return Normalized{Text: &text, Status: models.StatusText}
	case KindNumber:
		text := v.render()
		n := v.Number
		return Normalized{Text: &text, Number: &n, Status: models.StatusOK}
	}

	text := strings.TrimSpace(v.Text)
	if strings.ToLower(text) == "n.d." {
		return Normalized{Text: &text, Status: models.StatusND}
	}
	if text == "-" {
		return Normalized{Text: &text, Status: models.StatusSeparator}
	}
	if n, ok := parseDecimal(text); ok {
		return Normalized{Text: &text, Number: &n, Status: models.StatusOK}
	}
	return Normalized{Text: &text, Status: models.StatusText}
}

// DisplayText returns the trimmed text form of v, or nil when blank.
func DisplayText(v Value) *string {
	if isBlank(v) {
		return nil
	}
	text := v.render()
	if v.Kind == KindText {
		text = strings.TrimSpace(text)
	}
	return &text
}

// parseDecimal parses text accepting a comma as decimal separator.
func parseDecimal(text string) (float64, bool) {
	n, err := strconv.ParseFloat(strings.ReplaceAll(text, ",", "."), 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

// lowerTrim is the key form used for label matching.
func lowerTrim(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
