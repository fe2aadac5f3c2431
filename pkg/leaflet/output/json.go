// Package output renders parse results for the command line.
package output

import (
	"encoding/json"

	"github.com/ukaji3/leaflet-go/pkg/leaflet/models"
)

// ToJSON serializes v, indented when pretty is set.
func ToJSON(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

// ResultsToJSON serializes parse results. Raw cell captures are dropped
// unless includeRaw is set; the inputs are not modified.
func ResultsToJSON(results []*models.WorkbookParseResult, includeRaw, pretty bool) ([]byte, error) {
	if includeRaw {
		return ToJSON(results, pretty)
	}
	trimmed := make([]models.WorkbookParseResult, len(results))
	for i, r := range results {
		trimmed[i] = *r
		trimmed[i].RawCells = nil
	}
	return ToJSON(trimmed, pretty)
}
