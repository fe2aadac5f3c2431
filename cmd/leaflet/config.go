package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/ukaji3/leaflet-go/pkg/leaflet/config"
	"github.com/ukaji3/leaflet-go/pkg/leaflet/output"
)

var (
	configSave     bool
	configSettings settingFlags
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or save the AddOn export settings",
		Args:  cobra.NoArgs,
		RunE:  runConfig,
	}

	cmd.Flags().BoolVar(&configSave, "save", false, "Save the effective settings as defaults")
	configSettings.register(cmd)

	return cmd
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg := configSettings.apply(cmd)

	if configSave {
		if err := config.Save(cfg, configPath); err != nil {
			return err
		}
		slog.Info("saved defaults", "path", settingsPath())
	}

	data, err := output.ToJSON(cfg, true)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	return writeOutput(data, "")
}

func settingsPath() string {
	if configPath == "" {
		return config.DefaultPath
	}
	return configPath
}
