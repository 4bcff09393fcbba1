package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"edakit/adapters/reader"
	"edakit/domain/table"
	"edakit/internal/config"
	"edakit/internal/eda"
)

const fixtureCSV = `user_id,age,salary,city,score
1,34,50000,Moscow,0
2,29,62000,Kazan,0
3,41,,Moscow,1
4,,55000,,0
5,37,48000,Omsk,0
`

func fixtureView(t *testing.T) *table.View {
	t.Helper()
	view, err := reader.NewCSVReader(',', "utf-8").Read(strings.NewReader(fixtureCSV))
	if err != nil {
		t.Fatalf("fixture parse failed: %v", err)
	}
	return view
}

func newTestAssembler() *Assembler {
	return NewAssembler(config.DefaultReportConfig(), eda.DefaultRuleConfig())
}

func TestAssemble(t *testing.T) {
	view := fixtureView(t)
	artifacts := newTestAssembler().Assemble(view, "users.csv")

	if artifacts.Source != "users.csv" {
		t.Errorf("source = %s", artifacts.Source)
	}
	if len(artifacts.Summaries) != 5 {
		t.Errorf("summaries = %d, want 5", len(artifacts.Summaries))
	}
	if !artifacts.HasCorrelation {
		t.Error("four numeric columns should produce a correlation matrix")
	}
	if artifacts.Result.Score <= 0 || artifacts.Result.Score >= 1 {
		t.Errorf("score = %f, want inside (0,1) for this fixture", artifacts.Result.Score)
	}
	if !artifacts.Result.TooFewRows {
		t.Error("5 rows should trigger the row minimum")
	}
}

func TestWriteAllArtifacts(t *testing.T) {
	view := fixtureView(t)
	assembler := newTestAssembler()
	artifacts := assembler.Assemble(view, "users.csv")

	outDir := t.TempDir()
	if err := assembler.WriteAll(outDir, artifacts, view); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	for _, name := range []string{
		"report.md",
		"summary.csv",
		"missing.csv",
		"correlation.csv",
		filepath.Join("top_categories", "city.csv"),
		"hist_user_id.txt",
		"hist_age.txt",
	} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Errorf("missing artifact %s: %v", name, err)
		}
	}
}

func TestWriteAllReportContent(t *testing.T) {
	view := fixtureView(t)
	assembler := newTestAssembler()
	artifacts := assembler.Assemble(view, "users.csv")

	outDir := t.TempDir()
	if err := assembler.WriteAll(outDir, artifacts, view); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(outDir, "report.md"))
	if err != nil {
		t.Fatal(err)
	}
	md := string(raw)

	for _, want := range []string{
		"# Dataset analysis",
		"## Data quality (heuristics)",
		"## Missingness",
		"## Correlation",
		"## Categorical columns",
		"`users.csv`",
		"Quality score",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("report.md missing %q", want)
		}
	}
}

func TestWriteAllSummaryCSV(t *testing.T) {
	view := fixtureView(t)
	assembler := newTestAssembler()
	artifacts := assembler.Assemble(view, "users.csv")

	outDir := t.TempDir()
	if err := assembler.WriteAll(outDir, artifacts, view); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	f, err := os.Open(filepath.Join(outDir, "summary.csv"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("summary.csv unparseable: %v", err)
	}
	if len(records) != 6 {
		t.Fatalf("summary.csv rows = %d, want header + 5", len(records))
	}
	if records[0][0] != "name" || records[1][0] != "user_id" {
		t.Errorf("unexpected layout: %v / %v", records[0], records[1])
	}
}

func TestWriteAllMissingCSVOverallRow(t *testing.T) {
	view := fixtureView(t)
	assembler := newTestAssembler()
	artifacts := assembler.Assemble(view, "users.csv")

	outDir := t.TempDir()
	if err := assembler.WriteAll(outDir, artifacts, view); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(outDir, "missing.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(raw), "__overall__") {
		t.Error("missing.csv should close with the overall aggregate row")
	}
}

func TestWriteAllSkipsCorrelationWhenAbsent(t *testing.T) {
	view, err := reader.NewCSVReader(',', "utf-8").Read(strings.NewReader("city\nA\nB\n"))
	if err != nil {
		t.Fatal(err)
	}
	assembler := newTestAssembler()
	artifacts := assembler.Assemble(view, "cities.csv")

	outDir := t.TempDir()
	if err := assembler.WriteAll(outDir, artifacts, view); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(outDir, "correlation.csv")); !os.IsNotExist(err) {
		t.Error("correlation.csv should not exist without a matrix")
	}
}

func TestSanitizeFilename(t *testing.T) {
	for _, tc := range []struct{ in, want string }{
		{"city", "city"},
		{"столбец один", "_"},
		{"a/b c", "a_b_c"},
		{"x-1.y_z", "x-1.y_z"},
	} {
		if got := sanitizeFilename(tc.in); got != tc.want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
