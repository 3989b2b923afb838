// Package config holds settings for the metainfo command. Settings come from
// an optional YAML file, then METAINFO_* environment variables, then flags.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/reoring/metainfo/internal/logging"
)

// Output formats understood by the report package.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Config is the full command configuration.
type Config struct {
	// SuffixList is a public suffix list file replacing the bundled list.
	SuffixList string `yaml:"suffix_list"`
	// LicenseRefs are extra license identifiers accepted next to SPDX ones.
	LicenseRefs []string `yaml:"license_refs"`
	// Collect reports every failing field instead of the first.
	Collect bool `yaml:"collect"`
	// Format is text, json or yaml.
	Format string `yaml:"format"`
	// Jobs bounds concurrent file validations.
	Jobs int `yaml:"jobs"`
	// LogLevel is debug, info, warn or error.
	LogLevel string `yaml:"log_level"`
	// LogFormat is text or json.
	LogFormat string `yaml:"log_format"`
	// Debounce delays re-validation in watch mode.
	Debounce time.Duration `yaml:"debounce"`
}

// Default returns the built-in settings.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills zero values.
func ApplyDefaults(cfg *Config) {
	if cfg.Format == "" {
		cfg.Format = FormatText
	}
	if cfg.Jobs <= 0 {
		cfg.Jobs = runtime.GOMAXPROCS(0)
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "warn"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = 100 * time.Millisecond
	}
}

// Load reads a YAML file and applies defaults. Unknown keys are rejected.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML configuration and applies defaults.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	ApplyDefaults(&cfg)
	return &cfg, nil
}

// ApplyEnv overrides settings from METAINFO_* variables. Values that fail to
// parse are ignored.
func ApplyEnv(cfg *Config, getenv func(string) string) {
	if getenv == nil {
		getenv = os.Getenv
	}
	if v := getenv("METAINFO_SUFFIX_LIST"); v != "" {
		cfg.SuffixList = v
	}
	if v := getenv("METAINFO_LICENSE_REFS"); v != "" {
		cfg.LicenseRefs = splitList(v)
	}
	if v := getenv("METAINFO_COLLECT"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Collect = b
		}
	}
	if v := getenv("METAINFO_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := getenv("METAINFO_JOBS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Jobs = n
		}
	}
	if v := getenv("METAINFO_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := getenv("METAINFO_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := getenv("METAINFO_DEBOUNCE"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Debounce = d
		}
	}
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	switch c.Format {
	case FormatText, FormatJSON, FormatYAML:
	default:
		errs = append(errs, fmt.Errorf("format must be one of text, json, yaml: got %q", c.Format))
	}
	if c.Jobs < 1 {
		errs = append(errs, fmt.Errorf("jobs must be at least 1: got %d", c.Jobs))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		errs = append(errs, fmt.Errorf("log_format must be text or json: got %q", c.LogFormat))
	}
	if c.Debounce < 0 {
		errs = append(errs, fmt.Errorf("debounce must not be negative: got %s", c.Debounce))
	}
	for _, ref := range c.LicenseRefs {
		if strings.TrimSpace(ref) == "" || strings.ContainsAny(ref, " \t()") {
			errs = append(errs, fmt.Errorf("license_refs: invalid identifier %q", ref))
		}
	}
	return errors.Join(errs...)
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
