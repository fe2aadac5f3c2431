package addon

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ukaji3/leaflet-go/pkg/leaflet/config"
	"github.com/ukaji3/leaflet-go/pkg/leaflet/models"
)

// DefaultConsolidatedName is the file name used for consolidated exports.
const DefaultConsolidatedName = "AddOn.xml"

// Render marshals doc and validates the result.
func Render(doc *Document) ([]byte, error) {
	data, err := Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal AddOn XML: %w", err)
	}
	if err := Validate(data); err != nil {
		return nil, err
	}
	return data, nil
}

// WriteFile exports one workbook result to outDir as <source stem>.xml.
func WriteFile(result *models.WorkbookParseResult, cfg config.XmlConfig, outDir string) (string, error) {
	stem := strings.TrimSuffix(result.SourceFile, filepath.Ext(result.SourceFile))
	outPath := filepath.Join(outDir, stem+".xml")
	if err := write(Build(result, cfg), outPath); err != nil {
		return "", err
	}
	return outPath, nil
}

// WriteConsolidated exports all results folded into a single document at outPath.
func WriteConsolidated(results []*models.WorkbookParseResult, cfg config.XmlConfig, outPath string) error {
	return write(BuildConsolidated(results, cfg), outPath)
}

func write(doc *Document, outPath string) error {
	data, err := Render(doc)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(outPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}
	return nil
}
