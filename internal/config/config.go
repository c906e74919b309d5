package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	domainerrors "github.com/justyntemme/inkreader/internal/errors"
)

const (
	DefaultDocument      = "novel.json"
	DefaultStore         = "file"
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "pretty"
	DefaultFrameInterval = 16 * time.Millisecond

	configFileName = "config.json"
	configDirName  = "inkreader"
)

// Config holds the application configuration
type Config struct {
	// Document is the last opened book (path or http(s) URL)
	Document  string `json:"document,omitempty"`
	Store     string `json:"store" validate:"oneof=file sqlite badger memory"`
	DataDir   string `json:"data_dir,omitempty"`
	LogLevel  string `json:"log_level" validate:"oneof=debug info warn warning error"`
	LogFormat string `json:"log_format" validate:"oneof=pretty json"`
	// FrameInterval is the render/scroll frame period, e.g. "16ms"
	FrameInterval string `json:"frame_interval,omitempty"`

	// Path to config file (not persisted)
	path string `json:"-"`
	// saved is the document as last read from or written to disk
	saved string `json:"-"`
}

// Load loads configuration from the config file
func Load() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(configPath)
}

// LoadFrom loads configuration from an explicit path. A missing file
// yields defaults.
func LoadFrom(configPath string) (*Config, error) {
	cfg := defaults()
	cfg.path = configPath

	data, err := os.ReadFile(configPath)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", configPath, err)
	}

	cfg.path = configPath
	cfg.saved = cfg.Document
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Document:  DefaultDocument,
		Store:     DefaultStore,
		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
	}
}

// Save persists the configuration to disk
func (c *Config) Save() error {
	if c.path == "" {
		return fmt.Errorf("config has no path")
	}
	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	if err := os.WriteFile(c.path, data, 0600); err != nil {
		return err
	}
	c.saved = c.Document
	return nil
}

// Path returns where the config is read from and saved to
func (c *Config) Path() string {
	return c.path
}

// SetDocument remembers the opened document and saves it unless the
// file already holds it. A command-line override sets Document without
// saving, so comparing against Document alone is not enough.
func (c *Config) SetDocument(location string) error {
	if location == "" || (location == c.Document && location == c.saved) {
		return nil
	}
	c.Document = location
	return c.Save()
}

// ResolvedDataDir returns the directory holding settings and logs. It
// defaults to the directory of the config file.
func (c *Config) ResolvedDataDir() string {
	if c.DataDir != "" {
		return c.DataDir
	}
	if c.path != "" {
		return filepath.Dir(c.path)
	}
	return "."
}

// Frame returns the parsed frame interval, falling back to the default
func (c *Config) Frame() time.Duration {
	if c.FrameInterval == "" {
		return DefaultFrameInterval
	}
	d, err := time.ParseDuration(c.FrameInterval)
	if err != nil || d <= 0 {
		return DefaultFrameInterval
	}
	return d
}

// Validate checks enumerated fields.
func (c *Config) Validate() error {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" {
			return fld.Name
		}
		return name
	})

	err := v.Struct(c)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !domainerrors.As(err, &validationErrs) {
		return err
	}
	fields := make(map[string]string, len(validationErrs))
	for _, e := range validationErrs {
		fields[e.Field()] = fmt.Sprintf("must be one of: %s", e.Param())
	}
	return domainerrors.ValidationWithDetails("invalid configuration", fields)
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(home, ".config")
	}

	return filepath.Join(configDir, configDirName, configFileName), nil
}
