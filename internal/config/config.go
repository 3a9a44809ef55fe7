// Package config resolves the run configuration from an optional settings
// file and command-line flags. Flags always win over file values.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
)

// Output selector values.
const (
	OutputTable = "table"
	OutputHTML  = "html"
	OutputCSV   = "csv"
)

// defaultConfigFile is tried when neither an organization argument nor an
// explicit --config path is given.
const defaultConfigFile = "settings.json"

// Config is the resolved run configuration consumed by the engine and the
// presentation layer.
type Config struct {
	Org    string   `json:"org" yaml:"org"`
	Output string   `json:"output" yaml:"output"`
	Ignore []string `json:"ignore" yaml:"ignore"`
	Open   *bool    `json:"open" yaml:"open"`
}

// Flags carries the command-line values that override file settings.
type Flags struct {
	Org        string
	ConfigPath string
	Output     string
	Ignore     string
}

// Resolve loads the settings file (if any) and applies flag overrides.
func Resolve(flags Flags) (Config, error) {
	path := flags.ConfigPath
	if path == "" && flags.Org == "" {
		if _, err := os.Stat(defaultConfigFile); err != nil {
			return Config{}, fmt.Errorf("no organization given and %s not found", defaultConfigFile)
		}
		path = defaultConfigFile
	}

	var cfg Config
	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	if flags.Org != "" {
		cfg.Org = flags.Org
	}
	if cfg.Org == "" {
		return Config{}, fmt.Errorf("organization is required (argument or config file)")
	}

	if flags.Output != "" {
		cfg.Output = flags.Output
	}
	if cfg.Output == "" {
		cfg.Output = OutputTable
	}
	switch cfg.Output {
	case OutputTable, OutputHTML, OutputCSV:
	default:
		return Config{}, fmt.Errorf("invalid output %q (expected table, html, or csv)", cfg.Output)
	}

	if flags.Ignore != "" {
		cfg.Ignore = splitIgnore(flags.Ignore)
	}

	return cfg, nil
}

// ShouldOpen reports whether the HTML report should be opened in a browser.
// The --no-open flag wins over the config file; the default is to open.
func (c Config) ShouldOpen(noOpenFlag bool) bool {
	if noOpenFlag {
		return false
	}
	if c.Open != nil {
		return *c.Open
	}
	return true
}

// splitIgnore parses a comma-separated repo list, trimming whitespace and
// dropping empty entries.
func splitIgnore(list string) []string {
	parts := strings.Split(list, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if name := strings.TrimSpace(p); name != "" {
			names = append(names, name)
		}
	}
	return names
}
