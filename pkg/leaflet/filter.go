package leaflet

import (
	"sort"

	"github.com/ukaji3/leaflet-go/pkg/leaflet/models"
)

// MergeResults upserts incoming results into existing by source file name.
// The returned slice is sorted by source file.
func MergeResults(existing, incoming []*models.WorkbookParseResult) []*models.WorkbookParseResult {
	bySource := make(map[string]*models.WorkbookParseResult, len(existing)+len(incoming))
	for _, r := range existing {
		bySource[r.SourceFile] = r
	}
	for _, r := range incoming {
		bySource[r.SourceFile] = r
	}

	merged := make([]*models.WorkbookParseResult, 0, len(bySource))
	for _, r := range bySource {
		merged = append(merged, r)
	}
	sort.Slice(merged, func(i, j int) bool {
		return merged[i].SourceFile < merged[j].SourceFile
	})
	return merged
}

// Filter selects measurement records. Empty fields match anything.
type Filter struct {
	Source  string
	Sample  string
	Analyte string
	Unit    string
	Metric  string
}

// IsZero reports whether the filter matches every record.
func (f Filter) IsZero() bool {
	return f == Filter{}
}

// Match reports whether rec satisfies every non-empty field.
func (f Filter) Match(rec models.MeasurementRecord) bool {
	switch {
	case f.Source != "" && rec.SourceFile != f.Source:
		return false
	case f.Sample != "" && models.Deref(rec.SampleLabel) != f.Sample:
		return false
	case f.Analyte != "" && rec.AnalyteName != f.Analyte:
		return false
	case f.Unit != "" && models.Deref(rec.Unit) != f.Unit:
		return false
	case f.Metric != "" && string(rec.Role) != f.Metric:
		return false
	}
	return true
}

// Apply returns the matching records of all results in order.
func (f Filter) Apply(results []*models.WorkbookParseResult) []models.MeasurementRecord {
	out := []models.MeasurementRecord{}
	for _, r := range results {
		for _, rec := range r.Values {
			if f.Match(rec) {
				out = append(out, rec)
			}
		}
	}
	return out
}

// Facets lists the distinct values available for each Filter field.
type Facets struct {
	Sources  []string `json:"source_file"`
	Samples  []string `json:"sample_label"`
	Analytes []string `json:"analyte_name"`
	Units    []string `json:"unit"`
	Metrics  []string `json:"metric_role"`
}

// CollectFacets gathers sorted distinct filter values. Absent sample labels
// and units are left out.
func CollectFacets(results []*models.WorkbookParseResult) Facets {
	sources := newValueSet()
	samples := newValueSet()
	analytes := newValueSet()
	units := newValueSet()
	metrics := newValueSet()

	for _, r := range results {
		sources.add(r.SourceFile)
		for _, rec := range r.Values {
			samples.add(models.Deref(rec.SampleLabel))
			analytes.add(rec.AnalyteName)
			units.add(models.Deref(rec.Unit))
			metrics.add(string(rec.Role))
		}
	}

	return Facets{
		Sources:  sources.sorted(),
		Samples:  samples.sorted(),
		Analytes: analytes.sorted(),
		Units:    units.sorted(),
		Metrics:  metrics.sorted(),
	}
}

type valueSet map[string]struct{}

func newValueSet() valueSet { return make(valueSet) }

func (s valueSet) add(v string) {
	if v != "" {
		s[v] = struct{}{}
	}
}

func (s valueSet) sorted() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
