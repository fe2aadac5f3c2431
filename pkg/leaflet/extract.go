package leaflet

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ukaji3/leaflet-go/pkg/leaflet/models"
	"github.com/ukaji3/leaflet-go/pkg/leaflet/parser"
	"github.com/xuri/excelize/v2"
)

// ParseWorkbook parses one leaflet workbook from disk.
// Structural problems are reported as warnings on the result; only I/O and
// format failures return an error.
func ParseWorkbook(path string, opts Options) (*models.WorkbookParseResult, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidFormat, path, err)
	}
	defer f.Close()

	return parseFile(f, filepath.Base(path), opts)
}

// ParseReader parses a workbook read from r. name becomes the result's SourceFile.
func ParseReader(r io.Reader, name string, opts Options) (*models.WorkbookParseResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidFormat, name, err)
	}
	defer f.Close()

	return parseFile(f, name, opts)
}

// ParseFolder parses every workbook in dir in file name order.
// Lock files ("~$...") are skipped. The first failing workbook aborts the scan.
func ParseFolder(dir string, opts Options) ([]*models.WorkbookParseResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var results []*models.WorkbookParseResult
	for _, entry := range entries {
		if entry.IsDir() || !IsWorkbookFile(entry.Name()) {
			continue
		}
		result, err := ParseWorkbook(filepath.Join(dir, entry.Name()), opts)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, nil
}

// IsWorkbookFile reports whether a file name is an .xlsx workbook and not an
// Office lock file.
func IsWorkbookFile(name string) bool {
	base := filepath.Base(name)
	return strings.HasSuffix(base, ".xlsx") && !strings.HasPrefix(base, "~$")
}

func parseFile(f *excelize.File, sourceFile string, opts Options) (*models.WorkbookParseResult, error) {
	log := opts.logger().With("source", sourceFile)

	var sheets []*parser.Sheet
	for _, sheetName := range f.GetSheetList() {
		sheet, err := parser.LoadSheet(f, sheetName)
		if err != nil {
			return nil, newExtractionError(sheetName, err)
		}
		sheets = append(sheets, sheet)
	}

	result := &models.WorkbookParseResult{
		SourceFile: sourceFile,
		Meta:       models.WorkbookMeta{TitleLines: []string{}},
		Analytes:   []*models.AnalyteDef{},
		Values:     []models.MeasurementRecord{},
		RawCells:   []models.RawCellRecord{},
		Warnings:   []string{},
	}
	for _, sheet := range sheets {
		result.RawCells = append(result.RawCells, parser.CaptureRawCells(sheet)...)
	}

	var warnings parser.Warnings
	rows := findRowsSheet(sheets, opts.sheetPattern())
	if rows == nil {
		warnings.Add("No sheet matching '%s' was found.", opts.sheetPattern())
		result.Warnings = append(result.Warnings, warnings...)
		log.Debug("no rows sheet", "sheets", len(sheets), "raw_cells", len(result.RawCells))
		return result, nil
	}
	log.Debug("selected rows sheet", "sheet", rows.Name())

	result.Meta = parser.ExtractMeta(rows, &warnings)
	result.Analytes, result.Values = parser.ExtractTable(rows, sourceFile, &warnings)
	result.Warnings = append(result.Warnings, warnings...)

	log.Debug("parsed workbook",
		"analytes", len(result.Analytes),
		"values", len(result.Values),
		"raw_cells", len(result.RawCells),
		"warnings", len(result.Warnings))
	return result, nil
}

// findRowsSheet returns the first sheet whose name contains pattern, ignoring case.
func findRowsSheet(sheets []*parser.Sheet, pattern string) *parser.Sheet {
	pattern = strings.ToLower(pattern)
	for _, sheet := range sheets {
		if strings.Contains(strings.ToLower(sheet.Name()), pattern) {
			return sheet
		}
	}
	return nil
}
