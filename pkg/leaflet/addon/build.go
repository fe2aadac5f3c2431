package addon

import (
	"sort"
	"strconv"
	"strings"

	"github.com/ukaji3/leaflet-go/pkg/leaflet/config"
	"github.com/ukaji3/leaflet-go/pkg/leaflet/models"
)

// Build creates a single-workbook document: one assay per analyte, ids
// numbered from 1 in analyte order, each analyte and unit referring back to
// its assay's id.
func Build(result *models.WorkbookParseResult, cfg config.XmlConfig) *Document {
	doc := newDocument(1, cfg)
	for i, def := range result.Analytes {
		id := i + 1
		ref := strconv.Itoa(id)

		analyte := Analyte{ID: id, Name: def.Name, AssayRef: ref}
		if len(def.Units) > 0 {
			units := &UnitList{}
			for j, name := range def.Units {
				units.Items = append(units.Items, Unit{ID: j + 1, Name: name, AnalyteRef: ref})
			}
			analyte.Units = units
		}

		doc.Assays.Items = append(doc.Assays.Items, Assay{
			ID:       id,
			Name:     def.Name,
			AddOnRef: 1,
			Analytes: AnalyteList{Items: []Analyte{analyte}},
		})
	}
	return doc
}

// BuildConsolidated folds the measurement records of many workbooks into one
// document. Analytes are grouped into assays by group name and deduplicated by
// case-insensitive trimmed name. A unit counts for an analyte only where it
// has a non-blank value. All ids are 0; an analyte's AssayRef and its
// units' AnalyteRef carry the first non-empty sample code seen for it, or 0.
func BuildConsolidated(results []*models.WorkbookParseResult, cfg config.XmlConfig) *Document {
	groups := make(map[string]*assayGroup)
	for _, result := range results {
		for _, rec := range result.Values {
			name := strings.TrimSpace(rec.AnalyteName)
			if name == "" {
				continue
			}
			groupName := strings.TrimSpace(models.Deref(rec.GroupName))
			g, ok := groups[groupName]
			if !ok {
				g = &assayGroup{byKey: make(map[string]*mergedAnalyte)}
				groups[groupName] = g
			}
			g.add(name, rec)
		}
	}

	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	doc := newDocument(0, cfg)
	for _, name := range names {
		assay := Assay{Name: name}
		for _, a := range groups[name].analytes {
			ref := a.code
			if ref == "" {
				ref = "0"
			}
			analyte := Analyte{Name: a.name, AssayRef: ref}
			if len(a.units) > 0 {
				units := &UnitList{}
				for _, unit := range a.units {
					units.Items = append(units.Items, Unit{Name: unit, AnalyteRef: ref})
				}
				analyte.Units = units
			}
			assay.Analytes.Items = append(assay.Analytes.Items, analyte)
		}
		doc.Assays.Items = append(doc.Assays.Items, assay)
	}
	return doc
}

type assayGroup struct {
	analytes []*mergedAnalyte
	byKey    map[string]*mergedAnalyte
}

type mergedAnalyte struct {
	name  string
	code  string
	units []string
}

func (g *assayGroup) add(name string, rec models.MeasurementRecord) {
	key := strings.ToLower(name)
	a, ok := g.byKey[key]
	if !ok {
		a = &mergedAnalyte{name: name}
		g.byKey[key] = a
		g.analytes = append(g.analytes, a)
	}

	if a.code == "" {
		a.code = strings.TrimSpace(models.Deref(rec.SampleCode))
	}
	if rec.Status == models.StatusBlank {
		return
	}
	if unit := strings.TrimSpace(models.Deref(rec.Unit)); unit != "" && !contains(a.units, unit) {
		a.units = append(a.units, unit)
	}
}

func contains(items []string, s string) bool {
	for _, item := range items {
		if item == s {
			return true
		}
	}
	return false
}
