package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/parquet-go/parquet-go"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pkgtrust/pkg/pipeline"
)

// NetScore bands used for report labels.
const (
	trustedThreshold = 0.7
	reviewThreshold  = 0.4
)

var (
	trustedColor = color.New(color.FgGreen, color.Bold)
	reviewColor  = color.New(color.FgYellow)
	riskyColor   = color.New(color.FgRed, color.Bold)
)

// scoreLabel returns the plain band name for a NetScore.
func scoreLabel(net float64) string {
	switch {
	case net >= trustedThreshold:
		return "Trusted"
	case net >= reviewThreshold:
		return "Review"
	default:
		return "Risky"
	}
}

// colorLabel returns the band name colored for terminal output.
func colorLabel(net float64) string {
	label := scoreLabel(net)
	switch label {
	case "Trusted":
		return trustedColor.Sprint(label)
	case "Review":
		return reviewColor.Sprint(label)
	default:
		return riskyColor.Sprint(label)
	}
}

// reportCommand creates the report command.
func (c *CLI) reportCommand() *cobra.Command {
	var parquetPath string
	var noColor bool

	cmd := &cobra.Command{
		Use:   "report <export.ndjson>",
		Short: "Render an export as a table",
		Long: `Render an NDJSON export as a table with NetScore labels.

With --parquet the records are also written as a Parquet file.`,
		Args: usageArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			recs, err := readExport(args[0])
			if err != nil {
				return err
			}
			if len(recs) == 0 {
				printWarning("No records in %s", args[0])
				return nil
			}
			if noColor {
				color.NoColor = true
			}
			if err := writeReportTable(cmd.OutOrStdout(), recs); err != nil {
				return err
			}
			if parquetPath != "" {
				if err := writeReportParquet(parquetPath, recs); err != nil {
					return err
				}
				printSuccess("Wrote %d records", len(recs))
				printFile(parquetPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&parquetPath, "parquet", "", "also write the records to this Parquet file")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored labels")
	return cmd
}

func readExport(path string) ([]pipeline.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open export: %w", err)
	}
	defer f.Close()
	return pipeline.ReadRecords(f)
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}

// writeReportTable renders one row per record.
func writeReportTable(w io.Writer, recs []pipeline.Record) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"URL", "NetScore", "Label", "BusFactor", "Responsive", "RampUp", "Correctness", "License"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, r := range recs {
		data = append(data, []string{
			r.URL,
			formatScore(r.NetScore),
			colorLabel(r.NetScore),
			formatScore(r.BusFactor),
			formatScore(r.ResponsiveMaintainer),
			formatScore(r.RampUp),
			formatScore(r.Correctness),
			formatScore(r.License),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	trusted := 0
	for _, r := range recs {
		if r.NetScore >= trustedThreshold {
			trusted++
		}
	}
	_, err := fmt.Fprintf(w, "%d packages, %d trusted\n", len(recs), trusted)
	return err
}

// reportRow is the Parquet schema of an export record.
type reportRow struct {
	URL                         string  `parquet:"url,snappy"`
	NetScore                    float64 `parquet:"net_score,snappy"`
	NetScoreLatency             float64 `parquet:"net_score_latency,snappy"`
	Label                       string  `parquet:"label,snappy"`
	BusFactor                   float64 `parquet:"bus_factor,snappy"`
	BusFactorLatency            float64 `parquet:"bus_factor_latency,snappy"`
	ResponsiveMaintainer        float64 `parquet:"responsive_maintainer,snappy"`
	ResponsiveMaintainerLatency float64 `parquet:"responsive_maintainer_latency,snappy"`
	RampUp                      float64 `parquet:"ramp_up,snappy"`
	RampUpLatency               float64 `parquet:"ramp_up_latency,snappy"`
	Correctness                 float64 `parquet:"correctness,snappy"`
	CorrectnessLatency          float64 `parquet:"correctness_latency,snappy"`
	License                     float64 `parquet:"license,snappy"`
	LicenseLatency              float64 `parquet:"license_latency,snappy"`
}

func toReportRows(recs []pipeline.Record) []reportRow {
	rows := make([]reportRow, len(recs))
	for i, r := range recs {
		rows[i] = reportRow{
			URL:                         r.URL,
			NetScore:                    r.NetScore,
			NetScoreLatency:             r.NetScoreLatency,
			Label:                       scoreLabel(r.NetScore),
			BusFactor:                   r.BusFactor,
			BusFactorLatency:            r.BusFactorLatency,
			ResponsiveMaintainer:        r.ResponsiveMaintainer,
			ResponsiveMaintainerLatency: r.ResponsiveMaintainerLatency,
			RampUp:                      r.RampUp,
			RampUpLatency:               r.RampUpLatency,
			Correctness:                 r.Correctness,
			CorrectnessLatency:          r.CorrectnessLatency,
			License:                     r.License,
			LicenseLatency:              r.LicenseLatency,
		}
	}
	return rows
}

// writeReportParquet writes the records to a Parquet file.
func writeReportParquet(path string, recs []pipeline.Record) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[reportRow](file)
	if _, err := writer.Write(toReportRows(recs)); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}
