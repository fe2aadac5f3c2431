package addon

import (
	"encoding/xml"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/leaflet-go/pkg/leaflet/config"
	"github.com/ukaji3/leaflet-go/pkg/leaflet/models"
)

func str(s string) *string { return &s }

func buildResult() *models.WorkbookParseResult {
	return &models.WorkbookParseResult{
		SourceFile: "example.xlsx",
		Analytes: []*models.AnalyteDef{
			{Name: "Retinol", ColumnIndex: 4, Units: []string{"mg/L", "μmol/L"}},
			{Name: "Another", ColumnIndex: 5, Units: []string{}},
		},
	}
}

// decode parses rendered XML back into a Document for assertions.
func decode(t *testing.T, data []byte) Document {
	t.Helper()
	var doc Document
	require.NoError(t, xml.Unmarshal(data, &doc))
	return doc
}

func TestBuildIDs(t *testing.T) {
	data, err := Render(Build(buildResult(), config.Defaults()))
	require.NoError(t, err)

	doc := decode(t, data)
	assert.Equal(t, "AddOn", doc.XMLName.Local)
	assert.Equal(t, 1, doc.ID)
	assert.Equal(t, config.DefaultMethodID, doc.MethodID)
	assert.Equal(t, config.DefaultMethodVersion, doc.MethodVersion)

	require.Len(t, doc.Assays.Items, 2)
	for i, assay := range doc.Assays.Items {
		assert.Equal(t, i+1, assay.ID)
		assert.Equal(t, 1, assay.AddOnRef)
		require.Len(t, assay.Analytes.Items, 1)
		assert.Equal(t, assay.Name, assay.Analytes.Items[0].Name)
	}

	second := doc.Assays.Items[1].Analytes.Items[0]
	assert.Equal(t, 2, second.ID)
	assert.Equal(t, "2", second.AssayRef)
	assert.Nil(t, second.Units)
}

func TestBuildMultiUnitAnalyte(t *testing.T) {
	doc := Build(buildResult(), config.Defaults())

	retinol := doc.Assays.Items[0].Analytes.Items[0]
	require.NotNil(t, retinol.Units)
	assert.Equal(t, []Unit{
		{ID: 1, Name: "mg/L", AnalyteRef: "1"},
		{ID: 2, Name: "μmol/L", AnalyteRef: "1"},
	}, retinol.Units.Items)
}

func TestMarshalLayout(t *testing.T) {
	cfg := config.Defaults()
	cfg.RunResultsExportPath = `C:\results`

	data, err := Marshal(Build(buildResult(), cfg))
	require.NoError(t, err)
	text := string(data)

	assert.True(t, strings.HasPrefix(text, xml.Header+"<AddOn "))
	assert.Contains(t, text, `xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance"`)
	assert.Contains(t, text, `xmlns:xsd="http://www.w3.org/2001/XMLSchema"`)
	assert.Contains(t, text, "\n  <Id>1</Id>\n")
	assert.Contains(t, text, `<RunResultsExportPath>C:\results</RunResultsExportPath>`)
	assert.True(t, strings.HasSuffix(text, "</AddOn>\n"))
}

func TestMarshalEmptyDocument(t *testing.T) {
	data, err := Render(Build(&models.WorkbookParseResult{SourceFile: "empty.xlsx"}, config.Defaults()))
	require.NoError(t, err)

	text := string(data)
	assert.Contains(t, text, "<Assays></Assays>")
	assert.NotContains(t, text, "RunResultsExportPath")
}

func TestBuildConsolidated(t *testing.T) {
	results := []*models.WorkbookParseResult{
		{
			SourceFile: "one.xlsx",
			Values: []models.MeasurementRecord{
				{SourceFile: "one.xlsx", SampleLabel: str("S1"), SampleCode: str("11"), Unit: str("mg/L"),
					AnalyteName: "Retinol", GroupName: str("Vitamin Assay"), Role: models.RoleTarget, Status: models.StatusOK},
			},
		},
		{
			SourceFile: "two.xlsx",
			Values: []models.MeasurementRecord{
				{SourceFile: "two.xlsx", SampleLabel: str("S2"), SampleCode: str("ABC"), Unit: str("μmol/L"),
					AnalyteName: "Retinol", GroupName: str("Vitamin Assay"), Role: models.RoleTarget, Status: models.StatusOK},
				{SourceFile: "two.xlsx", SampleLabel: str("S2"), AnalyteName: "B12", Role: models.RoleTarget, Status: models.StatusOK},
			},
		},
	}

	data, err := Render(BuildConsolidated(results, config.Defaults()))
	require.NoError(t, err)
	doc := decode(t, data)

	assert.Equal(t, 0, doc.ID)
	require.Len(t, doc.Assays.Items, 2)
	assert.Equal(t, "", doc.Assays.Items[0].Name)
	assert.Equal(t, "Vitamin Assay", doc.Assays.Items[1].Name)
	for _, assay := range doc.Assays.Items {
		assert.Equal(t, 0, assay.ID)
		assert.Equal(t, 0, assay.AddOnRef)
	}

	retinol := doc.Assays.Items[1].Analytes.Items[0]
	assert.Equal(t, "11", retinol.AssayRef)
	require.NotNil(t, retinol.Units)
	assert.Equal(t, []Unit{
		{ID: 0, Name: "mg/L", AnalyteRef: "11"},
		{ID: 0, Name: "μmol/L", AnalyteRef: "11"},
	}, retinol.Units.Items)

	b12 := doc.Assays.Items[0].Analytes.Items[0]
	assert.Equal(t, "B12", b12.Name)
	assert.Equal(t, "0", b12.AssayRef)
	assert.Nil(t, b12.Units)
}

func TestBuildConsolidatedDeduplicatesAnalytes(t *testing.T) {
	result := &models.WorkbookParseResult{
		SourceFile: "mix.xlsx",
		Values: []models.MeasurementRecord{
			{SampleCode: str(""), Unit: str("mg/L"), AnalyteName: " Retinol ", GroupName: str("Vitamin Assay")},
			{SampleCode: str("27"), Unit: str("μmol/L"), AnalyteName: "retinol", GroupName: str("Vitamin Assay")},
			{SampleCode: str("31"), Unit: str(" mg/L "), AnalyteName: "RETINOL", GroupName: str(" Vitamin Assay ")},
			{AnalyteName: "  "},
		},
	}

	doc := BuildConsolidated([]*models.WorkbookParseResult{result}, config.Defaults())

	require.Len(t, doc.Assays.Items, 1)
	analytes := doc.Assays.Items[0].Analytes.Items
	require.Len(t, analytes, 1)
	assert.Equal(t, "Retinol", analytes[0].Name)
	assert.Equal(t, "27", analytes[0].AssayRef)

	var names []string
	for _, u := range analytes[0].Units.Items {
		names = append(names, u.Name)
	}
	assert.Equal(t, []string{"mg/L", "μmol/L"}, names)
}

func TestBuildConsolidatedSkipsUnitsOfBlankValues(t *testing.T) {
	record := func(analyte, unit string, status models.ValueStatus) models.MeasurementRecord {
		return models.MeasurementRecord{
			SampleCode: str("11"), Unit: str(unit), AnalyteName: analyte,
			GroupName: str("Vitamin Assay"), Role: models.RoleTarget, Status: status,
		}
	}
	result := &models.WorkbookParseResult{
		SourceFile: "lot.xlsx",
		Values: []models.MeasurementRecord{
			record("Retinol", "mg/L", models.StatusOK),
			record("Tocopherol", "mg/L", models.StatusOK),
			record("Retinol", "μmol/L", models.StatusBlank),
			record("Tocopherol", "μmol/L", models.StatusOK),
		},
	}

	doc := BuildConsolidated([]*models.WorkbookParseResult{result}, config.Defaults())

	require.Len(t, doc.Assays.Items, 1)
	units := map[string][]string{}
	for _, a := range doc.Assays.Items[0].Analytes.Items {
		require.NotNil(t, a.Units)
		for _, u := range a.Units.Items {
			units[a.Name] = append(units[a.Name], u.Name)
		}
	}
	assert.Equal(t, map[string][]string{
		"Retinol":    {"mg/L"},
		"Tocopherol": {"mg/L", "μmol/L"},
	}, units)
}

func TestRenderRejectsNonIntegerSampleCode(t *testing.T) {
	result := &models.WorkbookParseResult{
		Values: []models.MeasurementRecord{
			{SampleCode: str("ABC"), AnalyteName: "Retinol"},
		},
	}

	_, err := Render(BuildConsolidated([]*models.WorkbookParseResult{result}, config.Defaults()))

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "AssayRef", verr.Element)
	assert.Equal(t, "Analyte", verr.Parent)
	assert.Equal(t, "must be an integer", verr.Reason)
	assert.Equal(t, "generated AddOn XML failed schema validation: AssayRef must be an integer under Analyte", err.Error())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		xml     string
		element string
		reason  string
	}{
		{
			name:   "malformed",
			xml:    "<AddOn><Id>1</Id>",
			reason: "document is not well-formed XML",
		},
		{
			name:   "wrong root",
			xml:    "<Other><Id>1</Id></Other>",
			reason: "root element must be AddOn",
		},
		{
			name:    "missing root id",
			xml:     "<AddOn><Assays/></AddOn>",
			element: "Id",
			reason:  "is missing",
		},
		{
			name:    "missing assays",
			xml:     "<AddOn><Id>1</Id></AddOn>",
			element: "Assays",
			reason:  "is missing",
		},
		{
			name:    "assay without AddOnRef",
			xml:     "<AddOn><Id>1</Id><Assays><Assay><Id>1</Id></Assay></Assays></AddOn>",
			element: "AddOnRef",
			reason:  "is missing",
		},
		{
			name: "unit ref not integer",
			xml: "<AddOn><Id>1</Id><Assays><Assay><Id>1</Id><AddOnRef>1</AddOnRef><Analytes><Analyte>" +
				"<Id>1</Id><AssayRef>1</AssayRef><AnalyteUnits><AnalyteUnit><Id>1</Id><AnalyteRef>x</AnalyteRef>" +
				"</AnalyteUnit></AnalyteUnits></Analyte></Analytes></Assay></Assays></AddOn>",
			element: "AnalyteRef",
			reason:  "must be an integer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate([]byte(tt.xml))
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.Equal(t, tt.element, verr.Element)
			assert.Equal(t, tt.reason, verr.Reason)
		})
	}
}

func TestValidateAcceptsMinimalDocument(t *testing.T) {
	assert.NoError(t, Validate([]byte("<AddOn><Id>0</Id><Assays></Assays></AddOn>")))
}

func TestWriteFile(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "out")

	path, err := WriteFile(buildResult(), config.Defaults(), outDir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outDir, "example.xml"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NoError(t, Validate(data))
}

func TestWriteConsolidatedFailureLeavesNoFile(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), DefaultConsolidatedName)
	result := &models.WorkbookParseResult{
		Values: []models.MeasurementRecord{{SampleCode: str("L-1"), AnalyteName: "Retinol"}},
	}

	err := WriteConsolidated([]*models.WorkbookParseResult{result}, config.Defaults(), outPath)
	require.Error(t, err)

	_, statErr := os.Stat(outPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestSchemaMatchesTemplate(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("..", "..", "..", "template", "AddOn.xsd"))
	require.NoError(t, err)

	template := strings.TrimPrefix(string(data), "\ufeff")
	assert.Equal(t, template, Schema())
	assert.Contains(t, Schema(), `name="AddOn"`)
}
