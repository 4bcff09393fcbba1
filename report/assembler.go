// Package report renders engine output into a Markdown report plus CSV and
// text-histogram artifacts on disk.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"edakit/domain/table"
	"edakit/internal"
	"edakit/internal/config"
	"edakit/internal/eda"

	domaineda "edakit/domain/eda"

	"github.com/nao1215/markdown"
)

// Artifacts carries everything the assembler computed for one dataset
type Artifacts struct {
	Source         string
	GeneratedAt    time.Time
	Summaries      []domaineda.ColumnSummary
	Missing        domaineda.MissingnessReport
	Correlation    domaineda.CorrelationMatrix
	HasCorrelation bool
	TopCategories  map[string]domaineda.CategoryFrequency
	Features       domaineda.QualityFeatures
	Result         domaineda.QualityResult
}

// Assembler runs the engine over a table view and writes the report files
type Assembler struct {
	config config.ReportConfig
	rules  eda.RuleConfig
	logger *internal.Logger
}

// NewAssembler creates an assembler with validated report options
func NewAssembler(cfg config.ReportConfig, rules eda.RuleConfig) *Assembler {
	return &Assembler{config: cfg, rules: rules, logger: internal.NewDefaultLogger()}
}

// Assemble computes all engine outputs for the view. It does no I/O.
func (a *Assembler) Assemble(view *table.View, source string) *Artifacts {
	artifacts := &Artifacts{
		Source:      source,
		GeneratedAt: time.Now(),
		Summaries:   eda.Profile(view),
		Missing:     eda.Missingness(view),
	}
	artifacts.Correlation, artifacts.HasCorrelation = eda.Correlate(view)
	artifacts.TopCategories = eda.TopCategories(view, a.config.TopKCategories)
	artifacts.Features = eda.FeaturesFromTable(view, artifacts.Summaries, artifacts.Missing, a.rules)
	artifacts.Result = eda.AssessQuality(artifacts.Features, a.rules)
	return artifacts
}

// WriteAll writes report.md, summary.csv, missing.csv, correlation.csv,
// top_categories/*.csv and hist_*.txt under outDir. Artifact writers run
// concurrently; the first failure wins.
func (a *Assembler) WriteAll(outDir string, artifacts *Artifacts, view *table.View) error {
	if err := os.MkdirAll(filepath.Join(outDir, "top_categories"), 0o755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}

	var g errgroup.Group

	g.Go(func() error { return a.writeMarkdown(filepath.Join(outDir, "report.md"), artifacts) })
	g.Go(func() error { return a.writeSummaryCSV(filepath.Join(outDir, "summary.csv"), artifacts.Summaries) })
	g.Go(func() error { return a.writeMissingCSV(filepath.Join(outDir, "missing.csv"), artifacts.Missing) })

	if artifacts.HasCorrelation {
		g.Go(func() error {
			return a.writeCorrelationCSV(filepath.Join(outDir, "correlation.csv"), artifacts.Correlation)
		})
	}

	for _, freq := range artifacts.TopCategories {
		freq := freq
		g.Go(func() error {
			name := fmt.Sprintf("%s.csv", sanitizeFilename(freq.Column))
			return a.writeCategoriesCSV(filepath.Join(outDir, "top_categories", name), freq)
		})
	}

	numeric := view.NumericColumns()
	if len(numeric) > a.config.MaxHistColumns {
		numeric = numeric[:a.config.MaxHistColumns]
	}
	for _, column := range numeric {
		column := column
		values := view.NumericValues(column)
		g.Go(func() error {
			name := fmt.Sprintf("hist_%s.txt", sanitizeFilename(column))
			return a.writeHistogram(filepath.Join(outDir, name), column, values)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	a.logger.Info("[Report] wrote report for %s to %s", artifacts.Source, outDir)
	return nil
}

func (a *Assembler) writeMarkdown(path string, artifacts *Artifacts) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	md := markdown.NewMarkdown(f)
	md.H1(a.config.Title)
	md.PlainText("")
	md.PlainTextf("**Generated:** %s", artifacts.GeneratedAt.Format("2006-01-02 15:04:05"))
	md.PlainText("")
	md.PlainTextf("**Source file:** `%s`", artifacts.Source)
	md.PlainText("")
	md.PlainTextf("**Rows:** %d, **columns:** %d", artifacts.Features.NRows, artifacts.Features.NCols)
	md.PlainText("")

	md.H2("Analysis parameters")
	md.PlainText("")
	md.BulletList(
		fmt.Sprintf("max histogram columns: `%d`", a.config.MaxHistColumns),
		fmt.Sprintf("top categories per column: `%d`", a.config.TopKCategories),
		fmt.Sprintf("problematic missing-share threshold: `%.2f`", a.rules.MinMissingShare),
	)
	md.PlainText("")

	a.writeQualitySection(md, artifacts)
	a.writeMissingSection(md, artifacts)
	a.writeCorrelationSection(md, artifacts)
	a.writeCategoriesSection(md, artifacts)

	return md.Build()
}

func (a *Assembler) writeQualitySection(md *markdown.Markdown, artifacts *Artifacts) {
	md.H2("Data quality (heuristics)")
	md.PlainText("")

	result := artifacts.Result
	rows := [][]string{
		{"Quality score", fmt.Sprintf("%.2f / 1.0", result.Score)},
		{"Max missing share", fmt.Sprintf("%.1f%%", artifacts.Features.MaxMissingShare*100)},
		{"Too few rows", boolCell(result.TooFewRows)},
		{"Too many columns", boolCell(result.TooManyColumns)},
		{"Too many missing values", boolCell(result.TooManyMissing)},
		{"Constant columns", boolCell(result.HasConstantColumns)},
		{"High-cardinality categoricals", boolCell(result.HasHighCardinalityCategoricals)},
		{"Suspicious ID duplicates", boolCell(result.HasSuspiciousIDDuplicates)},
		{"Zero-dominated numeric columns", boolCell(result.HasManyZeroValues)},
	}
	md.Table(markdown.TableSet{Header: []string{"Check", "Result"}, Rows: rows})
	md.PlainText("")

	details := [][2]string{
		{"Constant columns", joinColumns(artifacts.Features.ConstantColumns)},
		{"High-cardinality columns", joinColumns(artifacts.Features.HighCardinalityColumns)},
		{"Duplicate ID columns", joinColumns(artifacts.Features.DuplicateIDColumns)},
		{"Zero-heavy columns", joinColumns(artifacts.Features.ZeroHeavyColumns)},
	}
	for _, detail := range details {
		if detail[1] != "" {
			md.PlainTextf("- **%s:** %s", detail[0], detail[1])
		}
	}
	md.PlainText("")
}

func (a *Assembler) writeMissingSection(md *markdown.Markdown, artifacts *Artifacts) {
	md.H2(fmt.Sprintf("Columns above the missing-share threshold (%.2f)", a.rules.MinMissingShare))
	md.PlainText("")

	problematic := 0
	for _, column := range artifacts.Missing.Columns {
		share := artifacts.Missing.Share(column)
		if share > a.rules.MinMissingShare {
			md.PlainTextf("- `%s`: %.1f%% missing", column, share*100)
			problematic++
		}
	}
	if problematic == 0 {
		md.PlainText("No columns exceed the threshold.")
	} else {
		md.PlainText("")
		md.PlainTextf("Problematic columns: **%d**", problematic)
	}
	md.PlainText("")

	md.H2("Missingness")
	md.PlainText("")
	md.PlainTextf("Overall missing share: %.1f%%. Per-column shares in `missing.csv`.", artifacts.Missing.Overall*100)
	md.PlainText("")
}

func (a *Assembler) writeCorrelationSection(md *markdown.Markdown, artifacts *Artifacts) {
	md.H2("Correlation")
	md.PlainText("")
	if !artifacts.HasCorrelation {
		md.PlainText("Not applicable: fewer than 2 numeric columns.")
	} else {
		md.PlainTextf("Pearson matrix over %d numeric columns in `correlation.csv`.",
			len(artifacts.Correlation.Columns))
	}
	md.PlainText("")
}

func (a *Assembler) writeCategoriesSection(md *markdown.Markdown, artifacts *Artifacts) {
	md.H2("Categorical columns")
	md.PlainText("")
	if len(artifacts.TopCategories) == 0 {
		md.PlainText("No categorical columns detected.")
	} else {
		md.PlainTextf("Top-%d values per categorical column in `top_categories/`.", a.config.TopKCategories)
	}
	md.PlainText("")
}

func (a *Assembler) writeSummaryCSV(path string, summaries []domaineda.ColumnSummary) error {
	rows := [][]string{{"name", "type", "rows", "missing_count", "missing_share",
		"distinct_count", "mean", "std", "min", "max", "q25", "median", "q75"}}
	for _, s := range summaries {
		row := []string{
			s.Name, string(s.Type), strconv.Itoa(s.Rows), strconv.Itoa(s.MissingCount),
			formatShare(s.MissingShare), strconv.Itoa(s.DistinctCount),
		}
		if s.Numeric != nil {
			row = append(row,
				formatFloat(s.Numeric.Mean), formatFloat(s.Numeric.Std),
				formatFloat(s.Numeric.Min), formatFloat(s.Numeric.Max),
				formatFloat(s.Numeric.Q25), formatFloat(s.Numeric.Median), formatFloat(s.Numeric.Q75))
		} else {
			row = append(row, "", "", "", "", "", "", "")
		}
		rows = append(rows, row)
	}
	return writeCSV(path, rows)
}

func (a *Assembler) writeMissingCSV(path string, missing domaineda.MissingnessReport) error {
	rows := [][]string{{"column", "missing_share"}}
	for _, column := range missing.Columns {
		rows = append(rows, []string{column, formatShare(missing.Share(column))})
	}
	rows = append(rows, []string{"__overall__", formatShare(missing.Overall)})
	return writeCSV(path, rows)
}

func (a *Assembler) writeCorrelationCSV(path string, matrix domaineda.CorrelationMatrix) error {
	header := append([]string{""}, matrix.Columns...)
	rows := [][]string{header}
	for _, x := range matrix.Columns {
		row := []string{x}
		for _, y := range matrix.Columns {
			row = append(row, formatFloat(matrix.At(x, y)))
		}
		rows = append(rows, row)
	}
	return writeCSV(path, rows)
}

func (a *Assembler) writeCategoriesCSV(path string, freq domaineda.CategoryFrequency) error {
	rows := [][]string{{"value", "count"}}
	for _, entry := range freq.Top {
		rows = append(rows, []string{entry.Value, strconv.Itoa(entry.Count)})
	}
	return writeCSV(path, rows)
}

func (a *Assembler) writeHistogram(path, column string, values []float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return RenderHistogram(f, column, BuildHistogram(values, defaultHistogramBins))
}

func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

var filenameSanitizer = regexp.MustCompile(`[^A-Za-z0-9_.-]+`)

func sanitizeFilename(name string) string {
	return filenameSanitizer.ReplaceAllString(name, "_")
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

func formatShare(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

func boolCell(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func joinColumns(columns []string) string {
	out := ""
	for i, column := range columns {
		if i > 0 {
			out += ", "
		}
		out += "`" + column + "`"
	}
	return out
}
