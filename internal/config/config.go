// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. ATS_MIN_SCORE.
const EnvPrefix = "ATS"

const (
	DefaultSerializer  = "json"
	DefaultPort        = 8080
	DefaultConcurrency = 4
)

// Config represents settings loaded from a JSON or YAML file and the environment.
// All fields are optional; CLI flags take precedence after merging.
type Config struct {
	// Inputs
	Resumes []string `mapstructure:"resumes" json:"resumes,omitempty"` // Resume JSON files to analyze
	Job     string   `mapstructure:"job" json:"job,omitempty"`         // Path to job description text file
	JobURL  string   `mapstructure:"job_url" json:"job_url,omitempty"` // URL to fetch job description from

	// Output
	Output string `mapstructure:"output" json:"output,omitempty"` // Path to write the JSON result
	Label  string `mapstructure:"label" json:"label,omitempty"`   // Label recorded with each result

	// Behavior
	Serializer  string `mapstructure:"serializer" json:"serializer,omitempty"`   // Resume text form: json or text
	UseBrowser  bool   `mapstructure:"use_browser" json:"use_browser,omitempty"` // Use headless browser for SPA job boards
	Verbose     bool   `mapstructure:"verbose" json:"verbose,omitempty"`         // Print the boxed summary
	Concurrency int    `mapstructure:"concurrency" json:"concurrency,omitempty"` // Parallel analyses in a batch
	MinScore    int    `mapstructure:"min_score" json:"min_score,omitempty"`     // Fail when a total score is lower

	// Storage and serving
	HistoryPath string `mapstructure:"history_path" json:"history_path,omitempty"` // SQLite score history file
	DatabaseURL string `mapstructure:"database_url" json:"database_url,omitempty"` // PostgreSQL connection URL
	Port        int    `mapstructure:"port" json:"port,omitempty"`                 // HTTP API port
}

var configKeys = []string{
	"resumes", "job", "job_url", "output", "label", "serializer", "use_browser",
	"verbose", "concurrency", "min_score", "history_path", "database_url", "port",
}

// LoadConfig reads path (JSON or YAML, by extension) and applies ATS_*
// environment overrides. DATABASE_URL and PORT are honored unprefixed too.
// An empty path loads defaults and environment only.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("serializer", DefaultSerializer)
	v.SetDefault("port", DefaultPort)
	v.SetDefault("concurrency", DefaultConcurrency)

	v.SetEnvPrefix(EnvPrefix)
	for _, key := range configKeys {
		var err error
		switch key {
		case "database_url":
			err = v.BindEnv(key, EnvPrefix+"_DATABASE_URL", "DATABASE_URL")
		case "port":
			err = v.BindEnv(key, EnvPrefix+"_PORT", "PORT")
		default:
			err = v.BindEnv(key)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to bind environment for %s: %w", key, err)
		}
	}

	if path != "" {
		// Resolve path relative to current directory if not absolute
		if !filepath.IsAbs(path) {
			cwd, err := os.Getwd()
			if err != nil {
				return nil, fmt.Errorf("failed to get current directory: %w", err)
			}
			path = filepath.Join(cwd, path)
		}

		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Required inputs are checked by the command that needs them.
func (c *Config) Validate() error {
	if c.Job != "" && c.JobURL != "" {
		return fmt.Errorf("config error: 'job' and 'job_url' are mutually exclusive")
	}

	if c.Concurrency < 0 {
		return fmt.Errorf("config error: 'concurrency' must be non-negative")
	}
	if c.MinScore < 0 || c.MinScore > 100 {
		return fmt.Errorf("config error: 'min_score' must be between 0 and 100")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}

	switch strings.ToLower(c.Serializer) {
	case "", "json", "text":
	default:
		return fmt.Errorf("config error: 'serializer' must be json or text, got %q", c.Serializer)
	}

	if c.Job != "" {
		if _, err := os.Stat(c.Job); os.IsNotExist(err) {
			return fmt.Errorf("config error: job file not found: %s", c.Job)
		}
	}

	for _, r := range c.Resumes {
		if _, err := os.Stat(r); os.IsNotExist(err) {
			return fmt.Errorf("config error: resume file not found: %s", r)
		}
	}

	return nil
}
