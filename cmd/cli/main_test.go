package main

import (
	"os"
	"path/filepath"
	"testing"

	"edakit/internal/eda"
)

func writeRulesFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rules.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestResolveRulesFileValueWinsWithoutFlag(t *testing.T) {
	path := writeRulesFile(t, "min_missing_share: 0.6\n")

	rules, err := resolveRules(path, eda.DefaultMinMissingShare, false)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if rules.MinMissingShare != 0.6 {
		t.Errorf("min missing share = %f, want the file value 0.6", rules.MinMissingShare)
	}
}

func TestResolveRulesFlagOverridesFile(t *testing.T) {
	path := writeRulesFile(t, "min_missing_share: 0.6\n")

	rules, err := resolveRules(path, 0.1, true)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if rules.MinMissingShare != 0.1 {
		t.Errorf("min missing share = %f, want the flag value 0.1", rules.MinMissingShare)
	}
}

func TestResolveRulesDefaults(t *testing.T) {
	rules, err := resolveRules("", eda.DefaultMinMissingShare, false)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if rules != eda.DefaultRuleConfig() {
		t.Errorf("rules = %+v, want defaults", rules)
	}
}
