package bigquery

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultLocation is the query execution region when none is configured.
	DefaultLocation = "US"

	// DefaultMaxBytesBilled caps a single query at one gigabyte scanned.
	DefaultMaxBytesBilled = int64(1 << 30)
)

// projectIDPattern matches valid Google Cloud project ids: 6-30 characters,
// lowercase letters, digits and hyphens, starting with a letter and not
// ending with a hyphen.
var projectIDPattern = regexp.MustCompile(`^[a-z][a-z0-9-]{4,28}[a-z0-9]$`)

// Config holds warehouse connection configuration.
type Config struct {
	ProjectID       string `yaml:"project_id"`
	Location        string `yaml:"location"`
	CredentialsFile string `yaml:"credentials_file"`
	MaxBytesBilled  int64  `yaml:"max_bytes_billed"`
}

// LoadConfig reads configuration from an optional YAML file and applies
// environment overrides. A missing path loads from environment only.
func LoadConfig(path string) (Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path) // #nosec G304 -- path is operator-supplied
		if err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv overrides file values with environment variables when set.
func (c *Config) applyEnv() {
	if v := os.Getenv("BQ_PROJECT_ID"); v != "" {
		c.ProjectID = v
	}
	if v := os.Getenv("BQ_LOCATION"); v != "" {
		c.Location = v
	}
	if v := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); v != "" && c.CredentialsFile == "" {
		c.CredentialsFile = v
	}
}

// Validate checks the required configuration fields. A failure here is an
// initialization fault: the process must not start serving.
func (c Config) Validate() error {
	if c.ProjectID == "" {
		return fmt.Errorf("project id is required")
	}
	if !projectIDPattern.MatchString(c.ProjectID) {
		return fmt.Errorf("invalid project id %q", c.ProjectID)
	}
	if c.CredentialsFile != "" {
		info, err := os.Stat(c.CredentialsFile)
		if err != nil {
			return fmt.Errorf("credentials file: %w", err)
		}
		if info.IsDir() {
			return fmt.Errorf("credentials file %q is a directory", c.CredentialsFile)
		}
	}
	return nil
}

// ApplyDefaults fills unset fields with defaults.
func (c Config) ApplyDefaults() Config {
	if c.Location == "" {
		c.Location = DefaultLocation
	}
	if c.MaxBytesBilled == 0 {
		c.MaxBytesBilled = DefaultMaxBytesBilled
	}
	return c
}
