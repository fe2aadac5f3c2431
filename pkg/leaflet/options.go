// Package leaflet parses Chromsystems leaflet workbooks into normalized records.
package leaflet

import (
	"io"
	"log/slog"
)

// DefaultSheetPattern selects the worksheet holding the row-sorted table.
const DefaultSheetPattern = "sorted by rows"

// Options configures workbook parsing.
type Options struct {
	// SheetPattern is matched case-insensitively as a substring of sheet names.
	// If empty, DefaultSheetPattern is used.
	SheetPattern string
	// Logger receives debug records about sheet selection and counts.
	// If nil, nothing is logged.
	Logger *slog.Logger
}

// DefaultOptions returns default parse options.
func DefaultOptions() Options {
	return Options{
		SheetPattern: DefaultSheetPattern,
	}
}

func (o Options) sheetPattern() string {
	if o.SheetPattern == "" {
		return DefaultSheetPattern
	}
	return o.SheetPattern
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o.Logger
}
