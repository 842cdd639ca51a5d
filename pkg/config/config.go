// Package config handles csvplot configuration loading.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	csverrors "github.com/r3d91ll/csvplot/pkg/errors"
	"github.com/r3d91ll/csvplot/pkg/export"
	"github.com/r3d91ll/csvplot/pkg/plot"
)

// Config is the root configuration structure.
type Config struct {
	Chart   ChartConfig   `yaml:"chart"`
	Export  ExportConfig  `yaml:"export"`
	Viewer  ViewerConfig  `yaml:"viewer"`
	Shell   ShellConfig   `yaml:"shell"`
	Logging LoggingConfig `yaml:"logging"`
}

// ChartConfig holds rendering settings.
type ChartConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	// Palette is the color cycle for interactive charts. Entries are color
	// names or "#rrggbb".
	Palette []string `yaml:"palette"`
}

// ExportConfig holds file output settings.
type ExportConfig struct {
	// Dir is where exported files are written. Empty means the working
	// directory.
	Dir string `yaml:"dir"`

	// Format is used when the save prompt is left empty.
	Format string `yaml:"format"`
}

// ViewerConfig holds settings for the chart window.
type ViewerConfig struct {
	// Command replaces the built-in window. "{file}" and "{title}" are
	// substituted; the file is appended when "{file}" is absent.
	Command []string `yaml:"command,omitempty"`
}

// ShellConfig holds prompt settings.
type ShellConfig struct {
	HistoryFile string `yaml:"history_file"`
	Spinner     bool   `yaml:"spinner"`
}

// LoggingConfig holds log settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

var (
	validLevels  = []string{"debug", "info", "warn", "warning", "error"}
	validFormats = []string{"text", "logfmt", "json"}
)

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Chart: ChartConfig{
			Width:   1024,
			Height:  640,
			Palette: append([]string(nil), plot.DefaultPalette...),
		},
		Export: ExportConfig{
			Format: export.DefaultFormat.String(),
		},
		Shell: ShellConfig{
			HistoryFile: defaultHistoryFile(),
			Spinner:     true,
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// Load loads configuration from a file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, csverrors.ConfigNotFound(path)
		}
		return nil, csverrors.ConfigReadFailed(path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, parseError(path, err)
	}

	if err := cfg.Validate(); err != nil {
		if ce, ok := csverrors.AsCSVPlotError(err); ok {
			ce.WithContext("path", path)
		}
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault loads config from path, or returns default if not found.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}

	return Load(path)
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	if c.Chart.Width < 0 {
		return csverrors.ConfigInvalid("chart.width", fmt.Sprintf("width must not be negative, got %d", c.Chart.Width))
	}
	if c.Chart.Height < 0 {
		return csverrors.ConfigInvalid("chart.height", fmt.Sprintf("height must not be negative, got %d", c.Chart.Height))
	}
	if _, err := plot.ParsePalette(c.Chart.Palette); err != nil {
		if ce, ok := csverrors.AsCSVPlotError(err); ok {
			ce.WithContext("field", "chart.palette")
		}
		return err
	}
	if _, err := export.ParseFormat(c.Export.Format); err != nil {
		return csverrors.ConfigInvalid("export.format", "unknown export format "+c.Export.Format).
			WithSuggestion("Valid formats: " + strings.Join(export.SupportedFormats(), ", "))
	}
	if c.Logging.Level != "" && !isValidOption(strings.ToLower(c.Logging.Level), validLevels) {
		return csverrors.ConfigInvalid("logging.level", "unknown log level "+c.Logging.Level).
			WithSuggestion("Valid levels: " + strings.Join(validLevels, ", "))
	}
	if c.Logging.Format != "" && !isValidOption(strings.ToLower(c.Logging.Format), validFormats) {
		return csverrors.ConfigInvalid("logging.format", "unknown log format "+c.Logging.Format).
			WithSuggestion("Valid formats: " + strings.Join(validFormats, ", "))
	}
	return nil
}

// Save saves configuration to a file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return csverrors.ConfigWriteFailed(path, err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return csverrors.ConfigWriteFailed(path, err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return csverrors.ConfigWriteFailed(path, err)
	}
	return nil
}

// DefaultConfigPath returns ~/.csvplot/config.yaml, or config.yaml in the
// working directory when the home directory is unknown.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(home, ".csvplot", "config.yaml")
}

func defaultHistoryFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".csvplot", "history")
}

// InitConfig creates a default config file if it doesn't exist. It
// reports whether a file was written.
func InitConfig(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}

	cfg := Default()
	if err := cfg.Save(path); err != nil {
		return false, err
	}
	return true, nil
}

// -----------------------------------------------------------------------------
// YAML Error Helpers
// -----------------------------------------------------------------------------

func parseError(path string, err error) error {
	ce := csverrors.ConfigParseError(path, err)

	msg := err.Error()
	if line, col := extractYAMLErrorLocation(msg); line > 0 {
		ce.WithContext("line", strconv.Itoa(line))
		if col > 0 {
			ce.WithContext("column", strconv.Itoa(col))
		}
	}
	if typ := extractExpectedType(msg); typ != "" {
		ce.WithContext("expected_type", typ)
	}
	return ce
}

var (
	yamlLocationRe = regexp.MustCompile(`line (\d+)(?::(\d+))?`)
	yamlTypeRe     = regexp.MustCompile(`into \*?([\w\[\]]+)`)
)

// extractYAMLErrorLocation finds the first "line N" or "line N:C" in a
// yaml error message.
func extractYAMLErrorLocation(msg string) (line, col int) {
	m := yamlLocationRe.FindStringSubmatch(msg)
	if m == nil {
		return 0, 0
	}
	line, _ = strconv.Atoi(m[1])
	if m[2] != "" {
		col, _ = strconv.Atoi(m[2])
	}
	return line, col
}

// extractExpectedType finds the Go type a value failed to unmarshal into.
func extractExpectedType(msg string) string {
	m := yamlTypeRe.FindStringSubmatch(msg)
	if m == nil {
		return ""
	}
	return m[1]
}

func isValidOption(value string, options []string) bool {
	for _, o := range options {
		if value == o {
			return true
		}
	}
	return false
}
