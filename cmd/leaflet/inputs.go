package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/ukaji3/leaflet-go/pkg/leaflet"
	"github.com/ukaji3/leaflet-go/pkg/leaflet/config"
	"github.com/ukaji3/leaflet-go/pkg/leaflet/models"
)

// loadResults parses every file or folder argument and merges the results by
// source file name.
func loadResults(paths []string) ([]*models.WorkbookParseResult, error) {
	opts := leaflet.DefaultOptions()
	opts.Logger = slog.Default()

	var results []*models.WorkbookParseResult
	for _, path := range paths {
		info, err := os.Stat(path)
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", leaflet.ErrFileNotFound, path)
		}
		if err != nil {
			return nil, err
		}

		if info.IsDir() {
			got, err := leaflet.ParseFolder(path, opts)
			if err != nil {
				return nil, fmt.Errorf("import folder %s: %w", path, err)
			}
			if len(got) == 0 {
				slog.Warn("no .xlsx files found in folder", "folder", path)
				continue
			}
			slog.Info("imported folder", "folder", path, "workbooks", len(got))
			results = leaflet.MergeResults(results, got)
			continue
		}

		result, err := leaflet.ParseWorkbook(path, opts)
		if err != nil {
			return nil, fmt.Errorf("import file %s: %w", path, err)
		}
		slog.Info("imported file", "source", result.SourceFile)
		results = leaflet.MergeResults(results, []*models.WorkbookParseResult{result})
	}

	if len(results) == 0 {
		return nil, leaflet.ErrNoWorkbooks
	}
	for _, r := range results {
		logWarnings(r)
	}
	return results, nil
}

func logWarnings(r *models.WorkbookParseResult) {
	for _, w := range r.Warnings {
		slog.Warn("workbook warning", "source", r.SourceFile, "warning", w)
	}
}

// settingFlags holds the XML setting overrides shared by export and config.
type settingFlags struct {
	methodID               string
	methodVersion          string
	runResultsExportPath   string
	sampleTubeTypes        string
	measurementSampleLists string
}

func (s *settingFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&s.methodID, "method-id", "", "AddOn MethodId")
	cmd.Flags().StringVar(&s.methodVersion, "method-version", "", "AddOn MethodVersion")
	cmd.Flags().StringVar(&s.runResultsExportPath, "run-results-path", "", "AddOn RunResultsExportPath")
	cmd.Flags().StringVar(&s.sampleTubeTypes, "sample-tube-types", "", "Sample tube types (comma-separated)")
	cmd.Flags().StringVar(&s.measurementSampleLists, "measurement-sample-lists", "", "Measurement sample lists (comma-separated)")
}

// apply loads the saved settings and overrides the fields whose flags were set.
func (s *settingFlags) apply(cmd *cobra.Command) config.XmlConfig {
	cfg := config.Load(configPath)
	flags := cmd.Flags()
	if flags.Changed("method-id") {
		cfg.MethodID = s.methodID
	}
	if flags.Changed("method-version") {
		cfg.MethodVersion = s.methodVersion
	}
	if flags.Changed("run-results-path") {
		cfg.RunResultsExportPath = s.runResultsExportPath
	}
	if flags.Changed("sample-tube-types") {
		cfg.SampleTubeTypes = config.SplitList(s.sampleTubeTypes)
	}
	if flags.Changed("measurement-sample-lists") {
		cfg.MeasurementSampleLists = config.SplitList(s.measurementSampleLists)
	}
	return cfg.Normalize()
}

func writeOutput(data []byte, path string) error {
	if path == "" {
		fmt.Println(strings.TrimRight(string(data), "\n"))
		return nil
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
