// Package config loads and saves the AddOn export settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// DefaultPath is where settings are kept relative to the working directory.
const DefaultPath = "config/gui_defaults.json"

const (
	DefaultMethodID      = "Beta Therapeutic Drug Monitoring"
	DefaultMethodVersion = "1.2"

	// EnvPrefix prefixes environment overrides, e.g. LEAFLET_METHOD_ID.
	EnvPrefix = "LEAFLET"
)

const (
	keyMethodID               = "method_id"
	keyMethodVersion          = "method_version"
	keySampleTubeTypes        = "sample_tube_types"
	keyMeasurementSampleLists = "measurement_sample_lists"
	keyRunResultsExportPath   = "run_results_export_path"
)

// XmlConfig holds the export-time AddOn settings.
type XmlConfig struct {
	MethodID               string   `json:"method_id"`
	MethodVersion          string   `json:"method_version"`
	SampleTubeTypes        []string `json:"sample_tube_types"`
	MeasurementSampleLists []string `json:"measurement_sample_lists"`
	RunResultsExportPath   string   `json:"run_results_export_path"`
}

// Defaults returns the built-in settings.
func Defaults() XmlConfig {
	return XmlConfig{
		MethodID:               DefaultMethodID,
		MethodVersion:          DefaultMethodVersion,
		SampleTubeTypes:        []string{},
		MeasurementSampleLists: []string{},
	}
}

// Load reads settings from path (DefaultPath if empty). A missing or
// malformed file yields the defaults. Scalar settings can be overridden
// through LEAFLET_* environment variables.
func Load(path string) XmlConfig {
	if path == "" {
		path = DefaultPath
	}

	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		// missing or malformed settings fall back to defaults
		v = newViper()
	}

	return XmlConfig{
		MethodID:               v.GetString(keyMethodID),
		MethodVersion:          v.GetString(keyMethodVersion),
		SampleTubeTypes:        normalizeList(v.Get(keySampleTubeTypes)),
		MeasurementSampleLists: normalizeList(v.Get(keyMeasurementSampleLists)),
		RunResultsExportPath:   v.GetString(keyRunResultsExportPath),
	}
}

// newViper returns an instance carrying defaults and env bindings only.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault(keyMethodID, DefaultMethodID)
	v.SetDefault(keyMethodVersion, DefaultMethodVersion)
	v.SetDefault(keyRunResultsExportPath, "")

	v.SetEnvPrefix(EnvPrefix)
	for _, key := range []string{keyMethodID, keyMethodVersion, keyRunResultsExportPath} {
		_ = v.BindEnv(key)
	}
	return v
}

// Save writes cfg as indented JSON to path (DefaultPath if empty),
// creating the parent directory.
func Save(cfg XmlConfig, path string) error {
	if path == "" {
		path = DefaultPath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigType("json")
	v.Set(keyMethodID, cfg.MethodID)
	v.Set(keyMethodVersion, cfg.MethodVersion)
	v.Set(keySampleTubeTypes, nonNil(cfg.SampleTubeTypes))
	v.Set(keyMeasurementSampleLists, nonNil(cfg.MeasurementSampleLists))
	v.Set(keyRunResultsExportPath, cfg.RunResultsExportPath)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// SplitList splits a comma-separated setting, dropping blank items.
func SplitList(raw string) []string {
	out := []string{}
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// Normalize fills blank scalar settings with defaults and cleans list items.
func (c XmlConfig) Normalize() XmlConfig {
	c.MethodID = strings.TrimSpace(c.MethodID)
	if c.MethodID == "" {
		c.MethodID = DefaultMethodID
	}
	c.MethodVersion = strings.TrimSpace(c.MethodVersion)
	if c.MethodVersion == "" {
		c.MethodVersion = DefaultMethodVersion
	}
	c.RunResultsExportPath = strings.TrimSpace(c.RunResultsExportPath)
	c.SampleTubeTypes = normalizeList(c.SampleTubeTypes)
	c.MeasurementSampleLists = normalizeList(c.MeasurementSampleLists)
	return c
}

// normalizeList keeps non-blank trimmed items of a list value.
// Anything that is not a list yields an empty list.
func normalizeList(value any) []string {
	out := []string{}
	switch items := value.(type) {
	case []any:
		for _, item := range items {
			if item == nil {
				continue
			}
			if text := strings.TrimSpace(fmt.Sprint(item)); text != "" {
				out = append(out, text)
			}
		}
	case []string:
		for _, item := range items {
			if text := strings.TrimSpace(item); text != "" {
				out = append(out, text)
			}
		}
	}
	return out
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
