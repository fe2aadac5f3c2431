package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/ukaji3/leaflet-go/pkg/leaflet"
	"github.com/ukaji3/leaflet-go/pkg/leaflet/output"
)

var (
	parseOutput   string
	parsePretty   bool
	parseRawCells bool
	parseFacets   bool
	parseFilter   leaflet.Filter
)

func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse <file.xlsx|folder>...",
		Short: "Parse leaflet workbooks and print normalized records as JSON",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runParse,
	}

	cmd.Flags().StringVarP(&parseOutput, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().BoolVar(&parsePretty, "pretty", false, "Pretty-print JSON output")
	cmd.Flags().BoolVar(&parseRawCells, "raw-cells", false, "Include the raw cell capture")
	cmd.Flags().BoolVar(&parseFacets, "facets", false, "Print the distinct filter values instead of records")
	cmd.Flags().StringVar(&parseFilter.Source, "source", "", "Only records from this source file")
	cmd.Flags().StringVar(&parseFilter.Sample, "sample", "", "Only records with this sample label")
	cmd.Flags().StringVar(&parseFilter.Analyte, "analyte", "", "Only records for this analyte")
	cmd.Flags().StringVar(&parseFilter.Unit, "unit", "", "Only records with this unit")
	cmd.Flags().StringVar(&parseFilter.Metric, "metric", "", "Only records with this metric role")

	return cmd
}

func runParse(cmd *cobra.Command, args []string) error {
	results, err := loadResults(args)
	if err != nil {
		return err
	}

	var data []byte
	switch {
	case parseFacets:
		data, err = output.ToJSON(leaflet.CollectFacets(results), parsePretty)
	case !parseFilter.IsZero():
		data, err = output.ToJSON(parseFilter.Apply(results), parsePretty)
	default:
		data, err = output.ResultsToJSON(results, parseRawCells, parsePretty)
	}
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}

	return writeOutput(data, parseOutput)
}
