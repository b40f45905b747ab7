// Package main provides the CLI entry point for lumetric-go.
package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/ukaji3/lumetric-go/internal/config"
	"github.com/ukaji3/lumetric-go/internal/logging"
	"github.com/ukaji3/lumetric-go/pkg/lumetric"
	"github.com/ukaji3/lumetric-go/pkg/lumetric/history"
	"github.com/ukaji3/lumetric-go/pkg/lumetric/models"
	"github.com/ukaji3/lumetric-go/pkg/lumetric/output"
	"github.com/ukaji3/lumetric-go/pkg/lumetric/parser"
	"golang.org/x/sync/errgroup"
)

type globalFlags struct {
	password string
}

type parseFlags struct {
	outputPath string
	pretty     bool
	format     string
	duplicates string
	headerScan int
}

type inspectFlags struct {
	pretty bool
	raw    bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		var de *lumetric.DecodeError
		var ve *lumetric.ValidationError
		if errors.As(err, &de) || errors.As(err, &ve) {
			fmt.Fprintln(os.Stderr, lumetric.FormatHint)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "lumetric",
		Short: "Turn spreadsheet uploads into chart-ready tables",
		Long: `lumetric-go reads .xlsx, .xls, .csv and RTF-wrapped CSV files and
normalizes the first sheet into a category/series table.`,
		SilenceUsage: true,
	}

	global := &globalFlags{}
	rootCmd.PersistentFlags().StringVar(&global.password, "password", "", "Password for encrypted xlsx files (default from LUMETRIC_XLSX_PASSWORD)")

	rootCmd.AddCommand(newParseCmd(global), newInspectCmd(global))
	return rootCmd
}

func newParseCmd(global *globalFlags) *cobra.Command {
	var flags parseFlags

	cmd := &cobra.Command{
		Use:   "parse FILE...",
		Short: "Parse files and print the normalized table",
		Long: `Parse one or more files. A single file prints its table; several files
are parsed concurrently and printed as history, most recent first.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args, global, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.outputPath, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().BoolVar(&flags.pretty, "pretty", false, "Pretty-print JSON output")
	cmd.Flags().StringVar(&flags.format, "format", "json", "Output format: json, csv")
	cmd.Flags().StringVar(&flags.duplicates, "duplicates", "", "Repeated category policy: last, sum, keep (default from LUMETRIC_DUPLICATES)")
	cmd.Flags().IntVar(&flags.headerScan, "header-scan", 0, "Rows searched for the header, 0 for all (default from LUMETRIC_HEADER_SCAN_LIMIT)")

	return cmd
}

func newInspectCmd(global *globalFlags) *cobra.Command {
	var flags inspectFlags

	cmd := &cobra.Command{
		Use:   "inspect FILE",
		Short: "Report detected format, sheets, table bounds and header candidates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, args[0], global, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.pretty, "pretty", false, "Pretty-print JSON output")
	cmd.Flags().BoolVar(&flags.raw, "raw", false, "Print the decoded workbook instead of the report")

	return cmd
}

// loadOptions reads config, sets up logging and applies flag overrides.
func loadOptions(cmd *cobra.Command, global *globalFlags, flags *parseFlags) (lumetric.Options, error) {
	cfg, err := config.Load()
	if err != nil {
		return lumetric.Options{}, err
	}
	logger := logging.Setup(cfg.LogLevel, cfg.LogFormat)

	if cmd.Flags().Changed("password") {
		cfg.XLSXPassword = global.password
	}

	if flags != nil {
		if cmd.Flags().Changed("duplicates") {
			cfg.Duplicates = flags.duplicates
		}
		if cmd.Flags().Changed("header-scan") {
			if flags.headerScan < 0 {
				return lumetric.Options{}, fmt.Errorf("invalid header-scan: %d (must be >= 0)", flags.headerScan)
			}
			cfg.HeaderScanLimit = flags.headerScan
		}
	}

	opts, err := cfg.Options()
	if err != nil {
		return lumetric.Options{}, err
	}
	opts.Logger = logger
	return opts, nil
}

func runParse(cmd *cobra.Command, paths []string, global *globalFlags, flags parseFlags) error {
	if flags.format != "json" && flags.format != "csv" {
		return fmt.Errorf("invalid format: %s (must be json or csv)", flags.format)
	}
	if flags.format == "csv" && len(paths) > 1 {
		return errors.New("csv format supports a single file")
	}

	opts, err := loadOptions(cmd, global, &flags)
	if err != nil {
		return err
	}

	tables, err := parseAll(paths, opts)
	if err != nil {
		return err
	}

	var data []byte
	switch {
	case flags.format == "csv":
		var buf bytes.Buffer
		if err := output.WriteCSV(&buf, tables[0]); err != nil {
			return fmt.Errorf("serialization failed: %w", err)
		}
		data = buf.Bytes()
	case len(paths) == 1:
		data, err = output.ToJSON(tables[0], flags.pretty)
	default:
		store := history.NewStore()
		for i, path := range paths {
			store.Add(filepath.Base(path), tables[i])
		}
		data, err = output.HistoryToJSON(store.List(), flags.pretty)
	}
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}

	return writeOutput(cmd.OutOrStdout(), flags.outputPath, data)
}

// parseAll parses every path concurrently; results keep argument order.
func parseAll(paths []string, opts lumetric.Options) ([]models.Table, error) {
	tables := make([]models.Table, len(paths))

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			table, err := lumetric.ParseFile(path, opts)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			opts.Logger.Info("parsed file",
				"file", filepath.Base(path), "series", len(table.Series), "categories", len(table.Categories))
			tables[i] = table
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return tables, nil
}

func runInspect(cmd *cobra.Command, path string, global *globalFlags, flags inspectFlags) error {
	opts, err := loadOptions(cmd, global, nil)
	if err != nil {
		return err
	}

	data, err := lumetric.ReadFile(path, opts)
	if err != nil {
		return err
	}

	var out []byte
	if flags.raw {
		wb, err := parser.NewDecoder(opts.Codecs...).WithLogger(opts.Logger).Decode(data)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		out, err = output.WorkbookToJSON(&wb, flags.pretty)
		if err != nil {
			return fmt.Errorf("serialization failed: %w", err)
		}
	} else {
		report, err := lumetric.Inspect(data, opts)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		out, err = output.ReportToJSON(report, flags.pretty)
		if err != nil {
			return fmt.Errorf("serialization failed: %w", err)
		}
	}

	return writeOutput(cmd.OutOrStdout(), "", out)
}

func writeOutput(w io.Writer, path string, data []byte) error {
	if path != "" {
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	_, err := fmt.Fprintln(w, string(bytes.TrimRight(data, "\n")))
	return err
}
