package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{"ALLOT_CONFIG", "PORT", "DATABASE_URL", "DATA_PATH", "DEFAULT_DEPARTMENT", "METRICS_ENABLED", "EXCLUDE_SUNDAYS"} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaultsWhenMissing(t *testing.T) {
	clearEnv(t)

	c, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if c.Port != "8000" {
		t.Fatalf("expected default port 8000, got %q", c.Port)
	}
	if c.DataPath != "allotment.db" {
		t.Fatalf("expected default data path, got %q", c.DataPath)
	}
	if !c.ExcludeSundays || !c.MetricsEnabled {
		t.Fatalf("expected sundays excluded and metrics on by default, got %+v", c)
	}
	if c.Path != "" {
		t.Fatalf("expected no config path, got %q", c.Path)
	}
}

func TestLoadParsesYaml(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	body := strings.TrimSpace(`
port: "9090"
data_path: exams.db
metrics_enabled: false
exclude_sundays: false
default_department: GENERAL
halls:
  Main Block:
    - "101"
    - "102"
  Annex:
    - A1
`)
	path := filepath.Join(dir, "allot.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if c.Port != "9090" || c.DataPath != "exams.db" || c.DefaultDept != "GENERAL" {
		t.Fatalf("unexpected config: %+v", c)
	}
	if c.MetricsEnabled || c.ExcludeSundays {
		t.Fatalf("expected booleans from file, got %+v", c)
	}
	if got := c.Halls["Main Block"]; len(got) != 2 || got[0] != "101" {
		t.Fatalf("unexpected halls: %v", c.Halls)
	}
	if c.Path != path {
		t.Fatalf("expected Path %q, got %q", path, c.Path)
	}
}

func TestEnvironmentOverridesFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "allot.yaml")
	if err := os.WriteFile(path, []byte("port: \"9090\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("ALLOT_CONFIG", path)
	t.Setenv("PORT", "7000")
	t.Setenv("DATABASE_URL", "postgres://localhost/exams")
	t.Setenv("METRICS_ENABLED", "false")

	c, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if c.Port != "7000" {
		t.Fatalf("expected env port, got %q", c.Port)
	}
	if c.DatabaseURL != "postgres://localhost/exams" {
		t.Fatalf("expected env database url, got %q", c.DatabaseURL)
	}
	if c.MetricsEnabled {
		t.Fatal("expected metrics disabled by env")
	}
}

func TestLoadErrors(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatal("expected error for explicit missing file")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("port: [unterminated\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Fatal("expected parse error")
	}

	t.Setenv("METRICS_ENABLED", "sometimes")
	if _, err := Load(""); err == nil {
		t.Fatal("expected error for bad METRICS_ENABLED")
	}
}
