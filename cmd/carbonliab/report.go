package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/carbonliab/internal/output"
	"github.com/spf13/cobra"
)

var (
	reportOutputDir string
	reportBins      int
	reportTop       int
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Produce the full liability report for a scenario",
	Long: `Run every analysis for one scenario (liability, Monte Carlo, sensitivity,
insights, facilities and markets) and render it.

Formats: ` + strings.Join(output.AvailableFormatterNames(), ", ") + `
Aliases: ` + strings.Join(output.AvailableFormatAliases(), ", ") + `

With --output-dir the report is written to carbon_report_<timestamp>.<ext>
instead of stdout.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		set, ns, engine, err := setup(cmd)
		if err != nil {
			return err
		}

		f := output.GetFormatterByName(outputFormat)
		if f == nil {
			return fmt.Errorf("unsupported format %q (available: %s)", outputFormat, strings.Join(output.AvailableFormatterNames(), ", "))
		}

		builder := output.NewReportBuilder(engine)
		builder.SensitivityFactor = set.SensitivityFactor
		builder.SensitivityRange = set.SensitivityRange
		if reportBins > 0 {
			builder.HistogramBins = reportBins
		}
		if reportTop > 0 {
			builder.TopFacilities = reportTop
		}

		report, err := builder.Build(cmd.Context(), ns.Scenario)
		if err != nil {
			return err
		}
		if ns.Name != "" {
			report.Title = "Carbon Liability Report: " + ns.Name
		}

		if reportOutputDir != "" {
			path, err := output.WriteFormatted(f, report, reportOutputDir, extensionFor(f.Name()))
			if err != nil {
				return err
			}
			logger.Sugar().Infof("report %s written to %s", report.ID, path)
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		}

		data, err := f.Format(report)
		if err != nil {
			return fmt.Errorf("failed to format report: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func extensionFor(format string) string {
	switch format {
	case "console", "terminal":
		return "txt"
	case "markdown":
		return "md"
	default:
		return format
	}
}

func init() {
	reportCmd.Flags().StringVarP(&reportOutputDir, "output-dir", "o", "", "Write the report into this directory")
	reportCmd.Flags().IntVar(&reportBins, "bins", 0, "Histogram bins (default 30)")
	reportCmd.Flags().IntVar(&reportTop, "top", 0, "Facilities listed (default 5)")
	rootCmd.AddCommand(reportCmd)
}
