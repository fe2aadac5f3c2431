package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/ukaji3/leaflet-go/pkg/leaflet"
	"github.com/ukaji3/leaflet-go/pkg/leaflet/addon"
	"github.com/ukaji3/leaflet-go/pkg/leaflet/config"
)

// watchQuietPeriod is how long a workbook must stay unchanged before export.
const watchQuietPeriod = 500 * time.Millisecond

var (
	watchOutDir   string
	watchSettings settingFlags
)

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <folder>",
		Short: "Export AddOn XML whenever a workbook in a folder is created or changed",
		Args:  cobra.ExactArgs(1),
		RunE:  runWatch,
	}

	cmd.Flags().StringVarP(&watchOutDir, "out-dir", "d", "", "Output directory for XML files")
	watchSettings.register(cmd)
	_ = cmd.MarkFlagRequired("out-dir")

	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	dir := args[0]
	cfg := watchSettings.apply(cmd)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	slog.Info("watching folder", "folder", dir, "out_dir", watchOutDir)

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigs)

	ticker := time.NewTicker(watchQuietPeriod / 2)
	defer ticker.Stop()

	// pending maps a workbook path to its last change
	pending := make(map[string]time.Time)
	for {
		select {
		case <-sigs:
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 || !leaflet.IsWorkbookFile(event.Name) {
				continue
			}
			pending[event.Name] = time.Now()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watcher error", "error", err)
		case now := <-ticker.C:
			for path, changed := range pending {
				if now.Sub(changed) < watchQuietPeriod {
					continue
				}
				delete(pending, path)
				exportWatched(path, cfg)
			}
		}
	}
}

// exportWatched parses and exports one workbook, logging instead of failing
// so the watch loop keeps running.
func exportWatched(path string, cfg config.XmlConfig) {
	opts := leaflet.DefaultOptions()
	opts.Logger = slog.Default()

	result, err := leaflet.ParseWorkbook(path, opts)
	if err != nil {
		slog.Error("parse failed", "path", path, "error", err)
		return
	}
	logWarnings(result)

	outPath, err := addon.WriteFile(result, cfg, watchOutDir)
	if err != nil {
		slog.Error("export failed", "source", result.SourceFile, "error", err)
		return
	}
	slog.Info("exported XML", "source", result.SourceFile, "path", outPath)
}
