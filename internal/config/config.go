package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/keshon/minigit/internal/store"
)

const (
	AppDir     = ".minigit"
	ConfigFile = "config.yaml"
	HistoryDir = "history"
)

const (
	DefaultBranch     = "main"
	DefaultRepository = "default"
)

// Store kinds.
const (
	StoreJSON   = "json"
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Server ServerConfig `yaml:"server"`
	Store  StoreConfig  `yaml:"store"`
	Log    LogConfig    `yaml:"log"`
	Repo   RepoConfig   `yaml:"repo"`
}

// ServerConfig configures the HTTP API. ExportDir enables export to disk
// under that directory; empty disables it.
type ServerConfig struct {
	Addr      string `yaml:"addr"`
	ExportDir string `yaml:"export_dir"`
}

type StoreConfig struct {
	Kind     string `yaml:"kind"`
	Dir      string `yaml:"dir"`
	Compress bool   `yaml:"compress"`
	DSN      string `yaml:"dsn"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type RepoConfig struct {
	DefaultBranch string `yaml:"default_branch"`
	DefaultName   string `yaml:"default_name"`
}

func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: ":8000",
		},
		Store: StoreConfig{
			Kind: StoreJSON,
			Dir:  filepath.Join(AppDir, HistoryDir),
			DSN:  filepath.Join(AppDir, "history.db"),
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Repo: RepoConfig{
			DefaultBranch: DefaultBranch,
			DefaultName:   DefaultRepository,
		},
	}
}

// Load reads a yaml config over the defaults. A missing file yields defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %q: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg as yaml, creating parent directories.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create dir for %q: %w", path, err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate checks the store, log and repository settings.
func (c *Config) Validate() error {
	switch c.Store.Kind {
	case StoreJSON, StoreMemory:
	case StoreSQLite:
		if c.Store.DSN == "" {
			return fmt.Errorf("%w: store.dsn required for sqlite", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown store.kind %q", ErrInvalidConfig, c.Store.Kind)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: unknown log.format %q", ErrInvalidConfig, c.Log.Format)
	}
	if c.Repo.DefaultBranch == "" || c.Repo.DefaultName == "" {
		return fmt.Errorf("%w: repo.default_branch and repo.default_name must be set", ErrInvalidConfig)
	}
	if err := store.ValidateName(c.Repo.DefaultName); err != nil {
		return fmt.Errorf("%w: repo.default_name: %v", ErrInvalidConfig, err)
	}
	return nil
}

// DefaultPath returns the config path inside the app dir.
func DefaultPath() string {
	return filepath.Join(AppDir, ConfigFile)
}
