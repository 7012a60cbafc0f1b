package migrate

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/gnoswap-labs/junitmig/internal/rewrite"
	tt "github.com/gnoswap-labs/junitmig/internal/types"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the configuration file looked up when none is given.
const DefaultConfigFile = ".junitmig.yaml"

// Config represents the configuration file: a name, per-rule severities
// and the file selection.
type Config struct {
	Name       string                   `yaml:"name"`
	Rules      map[string]tt.ConfigRule `yaml:"rules"`
	Workers    int                      `yaml:"workers,omitempty"`
	Extensions []string                 `yaml:"extensions,omitempty"`
	Exclude    []string                 `yaml:"exclude,omitempty"`
}

// DefaultConfig enables every rule at error severity.
func DefaultConfig() Config {
	rules := make(map[string]tt.ConfigRule, len(rewrite.Rules()))
	for _, rule := range rewrite.Rules() {
		rules[rule] = tt.ConfigRule{Severity: tt.SeverityError}
	}
	return Config{
		Name:       "junitmig",
		Rules:      rules,
		Extensions: []string{".java"},
	}
}

// Disabled returns the rules whose severity is off.
func (c Config) Disabled() []string {
	var disabled []string
	for _, rule := range rewrite.Rules() {
		if r, ok := c.Rules[rule]; ok && r.Severity == tt.SeverityOff {
			disabled = append(disabled, rule)
		}
	}
	return disabled
}

// Severities returns the configured severity of each known rule.
func (c Config) Severities() map[string]tt.Severity {
	out := make(map[string]tt.Severity, len(c.Rules))
	for name, rule := range c.Rules {
		out[name] = rule.Severity
	}
	return out
}

// LoadConfig reads the configuration file at path on top of the defaults.
// An empty path or a missing file yields the defaults.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()
	if path == "" {
		return config, nil
	}

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return config, err
	}
	defer f.Close()

	var file Config
	if err := yaml.NewDecoder(f).Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return config, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if file.Workers < 0 {
		return config, fmt.Errorf("%s: workers must not be negative, got %d", path, file.Workers)
	}

	if file.Name != "" {
		config.Name = file.Name
	}
	for name, rule := range file.Rules {
		// unknown rules are ignored
		if _, ok := config.Rules[name]; ok {
			config.Rules[name] = rule
		}
	}
	if file.Workers > 0 {
		config.Workers = file.Workers
	}
	if len(file.Extensions) > 0 {
		config.Extensions = file.Extensions
	}
	config.Exclude = file.Exclude
	return config, nil
}

// WriteConfig writes config as yaml to path.
func WriteConfig(path string, config Config) error {
	d, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(d)
	return err
}
