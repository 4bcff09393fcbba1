package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"edakit/adapters/reader"
	"edakit/domain/table"
	"edakit/internal/config"
	"edakit/internal/eda"
	"edakit/ports"
	"edakit/report"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "edakit",
		Short: "EDA toolkit for CSV and Excel datasets",
	}

	rootCmd.AddCommand(
		newOverviewCmd(),
		newHeadCmd(),
		newReportCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openTable reads a dataset by extension: .xlsx through the Excel reader,
// everything else as CSV.
func openTable(path, sep, encoding string) (*table.View, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("file %q not found: %w", path, err)
	}
	defer f.Close()

	var r ports.TableReader
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		r = reader.NewExcelReader()
	} else {
		separator := ','
		if sep != "" {
			runes := []rune(sep)
			if len(runes) != 1 {
				return nil, fmt.Errorf("separator must be a single character, got %q", sep)
			}
			separator = runes[0]
		}
		r = reader.NewCSVReader(separator, encoding)
	}
	return r.Read(f)
}

func newOverviewCmd() *cobra.Command {
	var sep, encoding string

	cmd := &cobra.Command{
		Use:   "overview [path]",
		Short: "Print dataset shape, column types and per-column summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := openTable(args[0], sep, encoding)
			if err != nil {
				return err
			}

			fmt.Printf("Rows: %d\n", view.NumRows())
			fmt.Printf("Columns: %d\n\n", view.NumCols())

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "name\ttype\tmissing_share\tdistinct\tmean\tstd")
			for _, s := range eda.Profile(view) {
				mean, std := "-", "-"
				if s.Numeric != nil {
					mean = fmt.Sprintf("%.4g", s.Numeric.Mean)
					std = fmt.Sprintf("%.4g", s.Numeric.Std)
				}
				fmt.Fprintf(w, "%s\t%s\t%.3f\t%d\t%s\t%s\n",
					s.Name, s.Type, s.MissingShare, s.DistinctCount, mean, std)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&sep, "sep", ",", "CSV field separator")
	cmd.Flags().StringVar(&encoding, "encoding", "utf-8", "CSV encoding")
	return cmd
}

func newHeadCmd() *cobra.Command {
	var n int
	var sep, encoding string
	var showHeader bool

	cmd := &cobra.Command{
		Use:   "head [path]",
		Short: "Print the first n rows of a dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if n < 0 {
				return fmt.Errorf("n must be >= 0, got %d", n)
			}

			view, err := openTable(args[0], sep, encoding)
			if err != nil {
				return err
			}
			if n > view.NumRows() {
				n = view.NumRows()
			}

			fmt.Printf("File: %s\n", filepath.Base(args[0]))
			fmt.Printf("Rows: %d, columns: %d\n", view.NumRows(), view.NumCols())
			fmt.Printf("First %d rows:\n\n", n)

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			if showHeader {
				fmt.Fprintln(w, strings.Join(view.Columns(), "\t"))
			}
			for row := 0; row < n; row++ {
				fields := make([]string, 0, view.NumCols())
				for _, name := range view.Columns() {
					cells, _ := view.Column(name)
					if cells[row].IsMissing() {
						fields = append(fields, "")
					} else {
						fields = append(fields, cells[row].Str)
					}
				}
				fmt.Fprintln(w, strings.Join(fields, "\t"))
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&n, "n", 5, "number of rows to print")
	cmd.Flags().StringVar(&sep, "sep", ",", "CSV field separator")
	cmd.Flags().StringVar(&encoding, "encoding", "utf-8", "CSV encoding")
	cmd.Flags().BoolVar(&showHeader, "show-header", true, "print the header row")
	return cmd
}

// resolveRules loads the rules file and applies the missing-share flag on top,
// but only when the flag was actually passed; otherwise the file value wins.
func resolveRules(rulesFile string, minMissingShare float64, flagSet bool) (eda.RuleConfig, error) {
	rules, err := config.LoadRules(rulesFile)
	if err != nil {
		return rules, err
	}
	if flagSet {
		rules.MinMissingShare = minMissingShare
	}
	return rules, nil
}

func newReportCmd() *cobra.Command {
	var (
		outDir, sep, encoding, title, rulesFile string
		maxHistColumns, topKCategories          int
		minMissingShare                         float64
	)

	cmd := &cobra.Command{
		Use:   "report [path]",
		Short: "Generate a full EDA report (Markdown + CSV artifacts + histograms)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reportCfg := config.ReportConfig{
				OutDir:          outDir,
				Title:           title,
				MaxHistColumns:  maxHistColumns,
				TopKCategories:  topKCategories,
				MinMissingShare: minMissingShare,
			}
			if err := reportCfg.Validate(); err != nil {
				return err
			}

			rules, err := resolveRules(rulesFile, minMissingShare, cmd.Flags().Changed("min-missing-share"))
			if err != nil {
				return err
			}

			view, err := openTable(args[0], sep, encoding)
			if err != nil {
				return err
			}

			assembler := report.NewAssembler(reportCfg, rules)
			artifacts := assembler.Assemble(view, filepath.Base(args[0]))
			if err := assembler.WriteAll(outDir, artifacts, view); err != nil {
				return err
			}

			fmt.Printf("Report generated in: %s\n", outDir)
			fmt.Printf("- Markdown: %s\n", filepath.Join(outDir, "report.md"))
			fmt.Println("- Tables: summary.csv, missing.csv, correlation.csv, top_categories/*.csv")
			fmt.Println("- Histograms: hist_*.txt")
			fmt.Printf("Quality score: %.2f/1.0\n", artifacts.Result.Score)
			return nil
		},
	}

	defaults := config.DefaultReportConfig()
	cmd.Flags().StringVar(&outDir, "out-dir", defaults.OutDir, "output directory for the report")
	cmd.Flags().StringVar(&sep, "sep", ",", "CSV field separator")
	cmd.Flags().StringVar(&encoding, "encoding", "utf-8", "CSV encoding")
	cmd.Flags().StringVar(&title, "title", defaults.Title, "report title")
	cmd.Flags().StringVar(&rulesFile, "rules", "", "optional rules.yml overriding quality thresholds")
	cmd.Flags().IntVar(&maxHistColumns, "max-hist-columns", defaults.MaxHistColumns, "max numeric columns rendered as histograms")
	cmd.Flags().IntVar(&topKCategories, "top-k-categories", defaults.TopKCategories, "top values kept per categorical column")
	cmd.Flags().Float64Var(&minMissingShare, "min-missing-share", defaults.MinMissingShare, "missing-share threshold marking problematic columns")
	return cmd
}
