package main

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/ukaji3/leaflet-go/pkg/leaflet/addon"
	"github.com/ukaji3/leaflet-go/pkg/leaflet/config"
)

var (
	exportOutDir       string
	exportConsolidated bool
	exportName         string
	exportSaveDefaults bool
	exportSettings     settingFlags
)

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <file.xlsx|folder>...",
		Short: "Export leaflet workbooks as AddOn XML",
		Long: `Export writes one <workbook>.xml per input workbook, or with --consolidated
a single document folding all workbooks together.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runExport,
	}

	cmd.Flags().StringVarP(&exportOutDir, "out-dir", "d", "", "Output directory for XML files")
	cmd.Flags().BoolVar(&exportConsolidated, "consolidated", false, "Fold all workbooks into one AddOn document")
	cmd.Flags().StringVar(&exportName, "name", addon.DefaultConsolidatedName, "File name of the consolidated document")
	cmd.Flags().BoolVar(&exportSaveDefaults, "save-defaults", false, "Store the effective settings as new defaults")
	exportSettings.register(cmd)
	_ = cmd.MarkFlagRequired("out-dir")

	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	results, err := loadResults(args)
	if err != nil {
		return err
	}

	cfg := exportSettings.apply(cmd)
	if exportSaveDefaults {
		if err := config.Save(cfg, configPath); err != nil {
			return err
		}
		slog.Info("saved defaults")
	}

	if exportConsolidated {
		outPath := filepath.Join(exportOutDir, exportName)
		if err := addon.WriteConsolidated(results, cfg, outPath); err != nil {
			return fmt.Errorf("consolidated export failed: %w", err)
		}
		slog.Info("exported consolidated XML", "path", outPath, "workbooks", len(results))
		return nil
	}

	for _, result := range results {
		outPath, err := addon.WriteFile(result, cfg, exportOutDir)
		if err != nil {
			return fmt.Errorf("export of %s failed: %w", result.SourceFile, err)
		}
		slog.Debug("exported XML", "source", result.SourceFile, "path", outPath)
	}
	slog.Info("exported XML files", "count", len(results), "dir", exportOutDir)
	return nil
}
