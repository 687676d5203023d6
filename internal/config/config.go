package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/quantumfamily/archetype/internal/roles"
	"github.com/quantumfamily/archetype/internal/scene"
)

// DefaultConfigPath is the path to the canonical defaults file.
const DefaultConfigPath = "config/archetype.defaults.json"

// Source kinds.
const (
	SourceSheet  = "sheet"
	SourceSQLite = "sqlite"
)

// Config is the service configuration. Pointer fields are optional in the
// file; the Get* methods supply defaults for anything left unset.
type Config struct {
	Source       *string  `json:"source,omitempty"` // "sheet" or "sqlite"
	SheetURL     *string  `json:"sheet_url,omitempty"`
	DBPath       *string  `json:"db_path,omitempty"`
	Listen       *string  `json:"listen,omitempty"`
	ParentOrigin *string  `json:"parent_origin,omitempty"`
	AssetsHost   *string  `json:"assets_host,omitempty"`
	RoleOrder    []string `json:"role_order,omitempty"`
	CacheTTL     *string  `json:"cache_ttl,omitempty"`     // duration string like "30s"
	FetchTimeout *string  `json:"fetch_timeout,omitempty"` // duration string like "10s"

	// Scene fields omitted from the file keep their defaults.
	Scene scene.Options `json:"scene"`
}

func ptrString(v string) *string { return &v }

// EmptyConfig returns a Config with every optional field unset and the
// default scene.
func EmptyConfig() *Config {
	return &Config{Scene: scene.DefaultOptions()}
}

// LoadConfig loads a Config from a JSON file.
// The file is validated to ensure it has a .json extension and is under the max file size.
func LoadConfig(path string) (*Config, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	// Check file size for safety (max 1MB)
	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// MustLoadDefaultConfig loads the canonical defaults from DefaultConfigPath.
// It searches for the file in the current directory and common parent directories.
// Panics if the file cannot be loaded, intended for test setup.
func MustLoadDefaultConfig() *Config {
	candidates := []string{
		DefaultConfigPath,
		"../" + DefaultConfigPath,
		"../../" + DefaultConfigPath, // from internal/config/
		"../../../" + DefaultConfigPath,
	}
	for _, path := range candidates {
		if cfg, err := LoadConfig(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}

// envOverrides are the environment variables honoured on top of the file.
// Empty values leave the file setting alone.
type envOverrides struct {
	SheetURL     string   `env:"ARCHETYPE_SHEET_URL"`
	Port         string   `env:"PORT"`
	Listen       string   `env:"ARCHETYPE_LISTEN"`
	Source       string   `env:"ARCHETYPE_SOURCE"`
	DBPath       string   `env:"ARCHETYPE_DB_PATH"`
	ParentOrigin string   `env:"ARCHETYPE_PARENT_ORIGIN"`
	CacheTTL     string   `env:"ARCHETYPE_CACHE_TTL"`
	RoleOrder    []string `env:"ARCHETYPE_ROLE_ORDER" envSeparator:","`
}

// ApplyEnv overlays environment variables on c and revalidates. PORT sets
// the listen address to ":PORT" unless ARCHETYPE_LISTEN is also set.
func (c *Config) ApplyEnv() error {
	var e envOverrides
	if err := env.Parse(&e); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	set := func(dst **string, v string) {
		if v != "" {
			*dst = ptrString(v)
		}
	}
	set(&c.SheetURL, e.SheetURL)
	set(&c.Source, e.Source)
	set(&c.DBPath, e.DBPath)
	set(&c.ParentOrigin, e.ParentOrigin)
	set(&c.CacheTTL, e.CacheTTL)
	if e.Port != "" {
		set(&c.Listen, ":"+e.Port)
	}
	set(&c.Listen, e.Listen)
	if len(e.RoleOrder) > 0 {
		c.RoleOrder = e.RoleOrder
	}
	return c.Validate()
}

// Validate checks that the configuration values are valid.
func (c *Config) Validate() error {
	switch src := c.GetSource(); src {
	case SourceSheet, SourceSQLite:
	default:
		return fmt.Errorf("source must be %q or %q, got %q", SourceSheet, SourceSQLite, src)
	}

	if c.SheetURL != nil && *c.SheetURL != "" {
		if u, err := url.Parse(*c.SheetURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			return fmt.Errorf("sheet_url must be an http(s) URL, got %q", *c.SheetURL)
		}
	}

	if c.ParentOrigin != nil && *c.ParentOrigin != "" {
		u, err := url.Parse(*c.ParentOrigin)
		if err != nil || u.Scheme == "" || u.Host == "" || (u.Path != "" && u.Path != "/") {
			return fmt.Errorf("parent_origin must be a scheme://host origin, got %q", *c.ParentOrigin)
		}
	}

	for name, v := range map[string]*string{"cache_ttl": c.CacheTTL, "fetch_timeout": c.FetchTimeout} {
		if v == nil || *v == "" {
			continue
		}
		d, err := time.ParseDuration(*v)
		if err != nil {
			return fmt.Errorf("invalid %s '%s': %w", name, *v, err)
		}
		if d < 0 {
			return fmt.Errorf("%s must not be negative, got %s", name, *v)
		}
	}

	if len(c.RoleOrder) > 0 {
		if _, err := roles.NewCatalog(c.RoleOrder); err != nil {
			return fmt.Errorf("role_order: %w", err)
		}
	}

	if err := c.Scene.Validate(); err != nil {
		return fmt.Errorf("scene: %w", err)
	}
	return nil
}

// GetSource returns the configured source kind, defaulting to "sheet".
func (c *Config) GetSource() string {
	if c.Source == nil || *c.Source == "" {
		return SourceSheet
	}
	return strings.ToLower(*c.Source)
}

// GetSheetURL returns the sheet endpoint, or "" when unset.
func (c *Config) GetSheetURL() string {
	if c.SheetURL == nil {
		return ""
	}
	return *c.SheetURL
}

// GetDBPath returns the SQLite file path, defaulting to "archetype.db".
func (c *Config) GetDBPath() string {
	if c.DBPath == nil || *c.DBPath == "" {
		return "archetype.db"
	}
	return *c.DBPath
}

// GetListen returns the listen address, defaulting to ":8080".
func (c *Config) GetListen() string {
	if c.Listen == nil || *c.Listen == "" {
		return ":8080"
	}
	return *c.Listen
}

// GetParentOrigin returns the embedding site's origin.
func (c *Config) GetParentOrigin() string {
	if c.ParentOrigin == nil {
		return "https://thequantumfamily.com"
	}
	return strings.TrimSuffix(*c.ParentOrigin, "/")
}

// GetAssetsHost returns the URL prefix for echarts scripts.
func (c *Config) GetAssetsHost() string {
	if c.AssetsHost == nil || *c.AssetsHost == "" {
		return "https://go-echarts.github.io/go-echarts-assets/assets/"
	}
	return *c.AssetsHost
}

// GetRoleOrder returns the band order of role names.
func (c *Config) GetRoleOrder() []string {
	if len(c.RoleOrder) == 0 {
		return roles.DefaultOrder
	}
	return c.RoleOrder
}

// GetCacheTTL returns how long fetched rows are reused. Zero disables caching.
func (c *Config) GetCacheTTL() time.Duration {
	return durationOr(c.CacheTTL, 30*time.Second)
}

// GetFetchTimeout returns the upstream request timeout.
func (c *Config) GetFetchTimeout() time.Duration {
	return durationOr(c.FetchTimeout, 10*time.Second)
}

func durationOr(v *string, def time.Duration) time.Duration {
	if v == nil || *v == "" {
		return def
	}
	d, err := time.ParseDuration(*v)
	if err != nil {
		return def
	}
	return d
}
