// Package main provides the normalizer command-line tool that cleans the raw car listings dataset.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"carprice/internal/config"
	"carprice/internal/dataset"
	"carprice/internal/formatter"
	"carprice/internal/logger"
	"carprice/internal/models"
	"carprice/internal/normalizer"
)

type options struct {
	configPath string
	input      string
	output     string
	report     string
	preview    int
	logLevel   string
	logFormat  string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:          "normalizer",
		Short:        "Clean the raw car listings CSV into the model training dataset",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}

			return run(cmd, cfg)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "Path to YAML config file")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.StringVar(&opts.logFormat, "log-format", "", "Log format: text or json")

	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "Path to the raw dataset CSV")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Path of the cleaned dataset CSV")
	cmd.Flags().StringVar(&opts.report, "report", "", "Write a markdown summary report to this path")
	cmd.Flags().IntVar(&opts.preview, "preview", 0, "Print the first N cleaned rows as a table")

	cmd.AddCommand(newInspectCmd(opts))

	return cmd
}

func newInspectCmd(opts *options) *cobra.Command {
	var rows int

	cmd := &cobra.Command{
		Use:   "inspect <cleaned.csv>",
		Short: "Preview a cleaned dataset and print its missing-value summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}

			log := newLogger(cfg)

			records, err := dataset.ReadNormalizedFile(args[0])
			if err != nil {
				return err
			}

			summary := normalizer.Summarize(records)
			log.Info("dataset loaded", "path", args[0], "rows", summary.Rows, "missing_cells", summary.Missing())

			writePreview(cmd, records, rows)
			fmt.Fprint(cmd.OutOrStdout(), summary.Markdown(args[0], args[0]))

			return nil
		},
	}

	cmd.Flags().IntVarP(&rows, "rows", "n", 10, "Number of rows to preview")

	return cmd
}

// loadConfig starts from the config file (or defaults) and applies flags
// the user set explicitly.
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg := config.Default()

	if opts.configPath != "" {
		var err error

		cfg, err = config.ReadConfig(opts.configPath)
		if err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("input") {
		cfg.Normalizer.Input = opts.input
	}

	if flags.Changed("output") {
		cfg.Normalizer.Output = opts.output
	}

	if flags.Changed("report") {
		cfg.Normalizer.Report = opts.report
	}

	if flags.Changed("preview") {
		cfg.Normalizer.PreviewRows = opts.preview
	}

	if flags.Changed("log-level") {
		cfg.Logging.Level = opts.logLevel
	}

	if flags.Changed("log-format") {
		cfg.Logging.Format = opts.logFormat
	}

	if err := cfg.ValidateNormalizer(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func newLogger(cfg *config.Config) *logger.Logger {
	return logger.NewLoggerWithWriter(cfg.Logging.Level, cfg.Logging.Format, os.Stderr)
}

func run(cmd *cobra.Command, cfg *config.Config) error {
	n := cfg.Normalizer
	log := newLogger(cfg).With("input", n.Input)

	table, err := dataset.ReadRawFile(n.Input)
	if err != nil {
		return err
	}

	log.Debug("raw dataset loaded", "rows", table.Len(), "columns", len(table.Header))

	result, err := normalizer.NewProcessor().Process(table)
	if err != nil {
		return err
	}

	if len(result.IgnoredColumns) > 0 {
		log.Warn("ignoring columns outside the output schema", "columns", result.IgnoredColumns)
	}

	if err := dataset.WriteFile(n.Output, result.Records); err != nil {
		return err
	}

	summary := normalizer.Summarize(result.Records)
	log.Info("dataset normalized",
		"output", n.Output,
		"rows", summary.Rows,
		"missing_cells", summary.Missing(),
	)

	if n.Report != "" {
		if err := os.WriteFile(n.Report, []byte(summary.Markdown(n.Input, n.Output)), 0644); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}

		log.Info("report written", "path", n.Report)
	}

	writePreview(cmd, result.Records, n.PreviewRows)

	return nil
}

func writePreview(cmd *cobra.Command, records []models.CarRecord, limit int) {
	if limit <= 0 {
		return
	}

	limit = min(limit, len(records))

	rows := make([][]string, limit)
	for i := range rows {
		rows[i] = records[i].Cells()
	}

	formatter.WritePreview(cmd.OutOrStdout(), models.NormalizedColumns, rows)
}
