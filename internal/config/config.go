package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/hpungsan/sapling/internal/plan"
	"github.com/hpungsan/sapling/internal/species"
)

// DirName is the name of the global (~/.sapling) and repo (.sapling) config directories.
const DirName = ".sapling"

// Config holds application configuration.
type Config struct {
	// CatalogPath points to a YAML species catalog that replaces the built-in one.
	// Relative paths are resolved against the directory of the config file that set it.
	CatalogPath string `json:"catalog_path,omitempty"`

	// Plan bounds. Zero means use the built-in default.
	CoverageThreshold float64 `json:"coverage_threshold,omitempty"`
	MaxTrees          int     `json:"max_trees,omitempty"`
	MaxYears          int     `json:"max_years,omitempty"`
	ResultCap         int     `json:"result_cap,omitempty"`

	// NoteMaxChars is the maximum character count for a pledge note
	NoteMaxChars int `json:"note_max_chars"`

	// DBMaxOpenConns limits the maximum number of open database connections.
	// 0 means use sql.DB default (unlimited).
	DBMaxOpenConns int `json:"db_max_open_conns,omitempty"`

	// DBMaxIdleConns limits the maximum number of idle database connections.
	DBMaxIdleConns int `json:"db_max_idle_conns,omitempty"`

	// DisabledTools is a list of MCP tool names to exclude from registration.
	// Unknown tool names are logged as warnings.
	DisabledTools []string `json:"disabled_tools,omitempty"`

	// DisabledTypes is a list of tool groups to disable entirely.
	// Known types: "offset", "species", "pledge".
	DisabledTypes []string `json:"disabled_types,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	b := plan.DefaultBounds()
	return &Config{
		CoverageThreshold: b.CoverageThreshold,
		MaxTrees:          b.MaxTrees,
		MaxYears:          b.MaxYears,
		ResultCap:         b.ResultCap,
		NoteMaxChars:      500,
	}
}

// Bounds resolves the plan bounds, falling back to defaults for unset fields.
func (c *Config) Bounds() plan.Bounds {
	b := plan.DefaultBounds()
	if c == nil {
		return b
	}
	if c.CoverageThreshold != 0 {
		b.CoverageThreshold = c.CoverageThreshold
	}
	if c.MaxTrees != 0 {
		b.MaxTrees = c.MaxTrees
	}
	if c.MaxYears != 0 {
		b.MaxYears = c.MaxYears
	}
	if c.ResultCap != 0 {
		b.ResultCap = c.ResultCap
	}
	return b
}

// LoadCatalog returns the configured species catalog, or the built-in one
// when no catalog_path is set.
func (c *Config) LoadCatalog() (*species.Catalog, error) {
	if c == nil || strings.TrimSpace(c.CatalogPath) == "" {
		return species.Default(), nil
	}
	return species.LoadFile(c.CatalogPath)
}

// Load loads configuration from baseDir/config.json.
// Returns default config if the file doesn't exist.
// The baseDir parameter allows tests to use t.TempDir() instead of ~/.sapling.
func Load(baseDir string) (*Config, error) {
	return loadFile(filepath.Join(baseDir, "config.json"))
}

// LoadWithRepo loads configuration from both global (~/.sapling) and repo (.sapling) directories.
// Repo config is found by walking upward from startDir to find the nearest .sapling/config.json.
// Repo config takes precedence for scalar values; arrays are merged (deduplicated).
// Either or both configs may be missing.
func LoadWithRepo(globalDir, startDir string) (*Config, error) {
	global, err := loadFileRaw(filepath.Join(globalDir, "config.json"))
	if err != nil {
		return nil, err
	}

	repo, err := loadFileRaw(FindRepoConfig(startDir))
	if err != nil {
		return nil, err
	}

	// Apply defaults, then global, then repo
	return Merge(Merge(DefaultConfig(), global), repo), nil
}

// FindRepoConfig walks upward from startDir to find the nearest .sapling/config.json.
// Returns the path if found, or empty string if not found.
func FindRepoConfig(startDir string) string {
	if startDir == "" {
		return ""
	}
	dir := startDir
	for {
		configPath := filepath.Join(dir, DirName, "config.json")
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// loadFileRaw loads configuration from a specific file path.
// Returns zero-valued config if the file doesn't exist (not defaults).
func loadFileRaw(configPath string) (*Config, error) {
	if configPath == "" {
		return &Config{}, nil
	}
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if p := strings.TrimSpace(cfg.CatalogPath); p != "" && !filepath.IsAbs(p) {
		cfg.CatalogPath = filepath.Join(filepath.Dir(configPath), p)
	}

	return cfg, nil
}

// loadFile loads configuration from a specific file path.
// Returns default config if the file doesn't exist.
func loadFile(configPath string) (*Config, error) {
	cfg, err := loadFileRaw(configPath)
	if err != nil {
		return nil, err
	}
	return Merge(DefaultConfig(), cfg), nil
}

// Merge combines base and overlay configs.
// Overlay values take precedence for scalars; arrays are merged and deduplicated.
func Merge(base, overlay *Config) *Config {
	result := &Config{
		CatalogPath:       pick(overlay.CatalogPath, base.CatalogPath),
		CoverageThreshold: pick(overlay.CoverageThreshold, base.CoverageThreshold),
		MaxTrees:          pick(overlay.MaxTrees, base.MaxTrees),
		MaxYears:          pick(overlay.MaxYears, base.MaxYears),
		ResultCap:         pick(overlay.ResultCap, base.ResultCap),
		NoteMaxChars:      pick(overlay.NoteMaxChars, base.NoteMaxChars),
		DBMaxOpenConns:    pick(overlay.DBMaxOpenConns, base.DBMaxOpenConns),
		DBMaxIdleConns:    pick(overlay.DBMaxIdleConns, base.DBMaxIdleConns),
	}

	result.DisabledTools = mergeStringSlice(base.DisabledTools, overlay.DisabledTools)
	result.DisabledTypes = mergeStringSlice(base.DisabledTypes, overlay.DisabledTypes)

	return result
}

// pick returns overlay if non-zero, else base.
func pick[T comparable](overlay, base T) T {
	var zero T
	if overlay != zero {
		return overlay
	}
	return base
}

// mergeStringSlice combines two slices, trims whitespace, and removes duplicates.
func mergeStringSlice(a, b []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(a)+len(b))

	for _, s := range append(append([]string{}, a...), b...) {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}

	if len(result) == 0 {
		return nil
	}
	return result
}
