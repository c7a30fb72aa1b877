package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hpungsan/sapling/internal/errors"
	"github.com/hpungsan/sapling/internal/plan"
	"github.com/hpungsan/sapling/internal/species"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestLoad_DefaultWhenMissing(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.NoteMaxChars != DefaultConfig().NoteMaxChars {
		t.Fatalf("NoteMaxChars = %d, want %d", cfg.NoteMaxChars, DefaultConfig().NoteMaxChars)
	}
	if cfg.Bounds() != plan.DefaultBounds() {
		t.Fatalf("Bounds() = %+v, want %+v", cfg.Bounds(), plan.DefaultBounds())
	}
}

func TestLoad_OverridesFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, `{"max_trees": 250, "result_cap": 5, "note_max_chars": 80}`)

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	b := cfg.Bounds()
	if b.MaxTrees != 250 || b.ResultCap != 5 {
		t.Errorf("Bounds() = %+v, want max_trees 250 and result_cap 5", b)
	}
	if b.MaxYears != plan.MaxYears || b.CoverageThreshold != plan.CoverageThreshold {
		t.Errorf("unset bounds should keep defaults, got %+v", b)
	}
	if cfg.NoteMaxChars != 80 {
		t.Errorf("NoteMaxChars = %d, want 80", cfg.NoteMaxChars)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, `{not json}`)

	if _, err := Load(tmpDir); err == nil {
		t.Fatalf("Load() expected error, got nil")
	}
}

func TestLoad_RelativeCatalogPath(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, `{"catalog_path": "species.yaml"}`)

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := filepath.Join(tmpDir, "species.yaml")
	if cfg.CatalogPath != want {
		t.Errorf("CatalogPath = %q, want %q", cfg.CatalogPath, want)
	}
}

func TestLoadWithRepo_BothPresent(t *testing.T) {
	globalDir := t.TempDir()
	repoRoot := t.TempDir()

	writeConfig(t, globalDir, `{"max_years": 8, "disabled_tools": ["pledge_delete"]}`)
	writeConfig(t, filepath.Join(repoRoot, DirName), `{"max_years": 5, "disabled_tools": ["pledge_store"]}`)

	// Start below the repo root to exercise the upward walk
	start := filepath.Join(repoRoot, "a", "b")
	if err := os.MkdirAll(start, 0755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}

	cfg, err := LoadWithRepo(globalDir, start)
	if err != nil {
		t.Fatalf("LoadWithRepo() error = %v", err)
	}

	if cfg.MaxYears != 5 {
		t.Errorf("MaxYears = %d, want 5 (repo override)", cfg.MaxYears)
	}
	if len(cfg.DisabledTools) != 2 {
		t.Errorf("DisabledTools = %v, want 2 merged entries", cfg.DisabledTools)
	}
}

func TestLoadWithRepo_NeitherPresent(t *testing.T) {
	cfg, err := LoadWithRepo(t.TempDir(), t.TempDir())
	if err != nil {
		t.Fatalf("LoadWithRepo() error = %v", err)
	}
	if cfg.Bounds() != plan.DefaultBounds() {
		t.Errorf("Bounds() = %+v, want defaults", cfg.Bounds())
	}
	if len(cfg.DisabledTools) != 0 {
		t.Errorf("DisabledTools = %v, want empty", cfg.DisabledTools)
	}
}

func TestFindRepoConfig(t *testing.T) {
	repoRoot := t.TempDir()
	want := writeConfig(t, filepath.Join(repoRoot, DirName), `{}`)

	nested := filepath.Join(repoRoot, "x", "y", "z")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}

	if got := FindRepoConfig(nested); got != want {
		t.Errorf("FindRepoConfig() = %q, want %q", got, want)
	}
	if got := FindRepoConfig(""); got != "" {
		t.Errorf("FindRepoConfig(\"\") = %q, want empty", got)
	}
}

func TestMerge_ScalarOverride(t *testing.T) {
	base := &Config{MaxTrees: 100, DBMaxOpenConns: 5, CatalogPath: "/a.yaml"}
	overlay := &Config{MaxTrees: 40}

	result := Merge(base, overlay)

	if result.MaxTrees != 40 {
		t.Errorf("MaxTrees = %d, want 40 (overlay)", result.MaxTrees)
	}
	if result.DBMaxOpenConns != 5 {
		t.Errorf("DBMaxOpenConns = %d, want 5 (base, overlay is zero)", result.DBMaxOpenConns)
	}
	if result.CatalogPath != "/a.yaml" {
		t.Errorf("CatalogPath = %q, want base value", result.CatalogPath)
	}
}

func TestMerge_ArrayMergeDedup(t *testing.T) {
	base := &Config{DisabledTypes: []string{"pledge", " species "}}
	overlay := &Config{DisabledTypes: []string{"species", "", "offset"}}

	result := Merge(base, overlay)

	want := []string{"pledge", "species", "offset"}
	if len(result.DisabledTypes) != len(want) {
		t.Fatalf("DisabledTypes = %v, want %v", result.DisabledTypes, want)
	}
	for i := range want {
		if result.DisabledTypes[i] != want[i] {
			t.Errorf("DisabledTypes[%d] = %q, want %q", i, result.DisabledTypes[i], want[i])
		}
	}
}

func TestBounds_NilConfig(t *testing.T) {
	var cfg *Config
	if cfg.Bounds() != plan.DefaultBounds() {
		t.Errorf("nil Bounds() = %+v, want defaults", cfg.Bounds())
	}
}

func TestLoadCatalog(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		cat, err := DefaultConfig().LoadCatalog()
		if err != nil {
			t.Fatalf("LoadCatalog() error = %v", err)
		}
		if cat != species.Default() {
			t.Error("LoadCatalog() should return the built-in catalog")
		}
	})

	t.Run("from file", func(t *testing.T) {
		tmpDir := t.TempDir()
		yamlPath := filepath.Join(tmpDir, "species.yaml")
		content := "species:\n  - id: oak\n    display_name: Oak\n    annual_sequestration_kg: 22\n    typical_lifetime_years: 300\n"
		if err := os.WriteFile(yamlPath, []byte(content), 0600); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}
		writeConfig(t, tmpDir, `{"catalog_path": "species.yaml"}`)

		cfg, err := Load(tmpDir)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		cat, err := cfg.LoadCatalog()
		if err != nil {
			t.Fatalf("LoadCatalog() error = %v", err)
		}
		if _, ok := cat.Lookup("oak"); !ok {
			t.Error("custom catalog missing oak")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		cfg := &Config{CatalogPath: filepath.Join(t.TempDir(), "nope.yaml")}
		if _, err := cfg.LoadCatalog(); !errors.Is(err, errors.ErrInvalidCatalog) {
			t.Errorf("LoadCatalog() error = %v, want INVALID_CATALOG", err)
		}
	})
}
