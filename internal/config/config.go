/*
PURPOSE:
  Defines the configuration structure and loading logic for Gateway Probe.
  Adheres to "Config IS Code" philosophy.

REQUIREMENTS:
  User-specified:
  - Allow configuration of gateway URLs, timeouts, prompt and output.
  - The probe run and the status display target different default ports.

  Implementation-discovered:
  - Needs to support YAML parsing.
  - Needs to support a .env file and environment overrides (GATEWAY_...).
  - The model catalog can be replaced from the config file.

ARCHITECTURE INTEGRATION:
  - Used by: internal/cli, internal/engine
  - Dependencies: gopkg.in/yaml.v3, github.com/joho/godotenv

ERROR HANDLING:
  - Returns explicit error if config file is invalid.
  - Missing default config files fall back to defaults.

IMPLEMENTATION RULES:
  - Config struct tags should support yaml.
  - Defaults mirror the behaviour the gateway team expects (5s/60s/1s).

USAGE:
  cfg, err := config.Load("gateway_probe.yaml")

SELF-HEALING INSTRUCTIONS:
  - If new fields are needed, add to Config struct and update DefaultConfig().

RELATED FILES:
  - internal/cli/root.go
  - internal/assets/gateway_probe.example.yaml

MAINTENANCE:
  - Update when adding new tuning parameters.
*/

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/daryltucker/gateway-probe/internal/catalog"
)

// DefaultPrompt is sent to every model during a probe run.
const DefaultPrompt = "Hello! Please respond with a simple greeting and confirm you're working."

// MaxConnectTimeout bounds the connectivity check that gates a run.
const MaxConnectTimeout = 5 * time.Second

// DefaultFiles are searched, in order, when no --config path is given.
var DefaultFiles = []string{"gateway_probe.yaml", "gateway-probe.yaml"}

// Config represents the full configuration for Gateway Probe.
type Config struct {
	// BaseURL is the gateway probed by `run`.
	BaseURL string `yaml:"base_url"`
	// StatusURL is the gateway queried by `status`. Independent of BaseURL.
	StatusURL string `yaml:"status_url"`
	Prompt    string `yaml:"prompt"`

	ConnectTimeout time.Duration `yaml:"connect_timeout"`
	ProbeTimeout   time.Duration `yaml:"probe_timeout"`
	StatusTimeout  time.Duration `yaml:"status_timeout"`
	Delay          time.Duration `yaml:"delay"`

	OutputDir   string `yaml:"output_dir"`
	Save        bool   `yaml:"save"`
	CSV         bool   `yaml:"csv"`
	MetricsFile string `yaml:"metrics_file"`
	HistoryPath string `yaml:"history_path"`

	Gemini GeminiConfig `yaml:"gemini"`

	// Models replaces the built-in catalog when non-empty.
	Models []catalog.Entry `yaml:"models"`
}

// GeminiConfig drives the direct Gemini probe.
type GeminiConfig struct {
	Model  string `yaml:"model"`
	APIKey string `yaml:"api_key"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:        "http://localhost:3001",
		StatusURL:      "http://localhost:3000",
		Prompt:         DefaultPrompt,
		ConnectTimeout: MaxConnectTimeout,
		ProbeTimeout:   60 * time.Second,
		StatusTimeout:  10 * time.Second,
		Delay:          1 * time.Second,
		OutputDir:      ".",
		Save:           true,
		HistoryPath:    ".gateway-probe/history.db",
		Gemini: GeminiConfig{
			Model: "gemini-2.5-flash",
		},
	}
}

// Load reads configuration from a file.
// If path is specified, it attempts to load that file.
// If path is empty, it searches DefaultFiles in order.
// A .env file in the working directory is loaded first, then environment
// overrides are applied on top of whatever the file produced.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := DefaultConfig()

	var data []byte
	var err error

	if path != "" {
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, err
		}
	} else {
		for _, name := range DefaultFiles {
			data, err = os.ReadFile(name)
			if err == nil {
				path = name
				break
			}
		}
	}

	if path != "" {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("GATEWAY_PROBE_URL"); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv("GATEWAY_STATUS_URL"); v != "" {
		c.StatusURL = v
	}
	if v := os.Getenv("GATEWAY_PROBE_PROMPT"); v != "" {
		c.Prompt = v
	}
	if v := os.Getenv("GATEWAY_PROBE_OUTPUT_DIR"); v != "" {
		c.OutputDir = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		c.Gemini.APIKey = v
	}
}

// Validate checks the values the engine relies on.
func (c *Config) Validate() error {
	var problems []string
	if strings.TrimSpace(c.BaseURL) == "" {
		problems = append(problems, "base_url is required")
	}
	if strings.TrimSpace(c.StatusURL) == "" {
		problems = append(problems, "status_url is required")
	}
	if c.ConnectTimeout <= 0 {
		problems = append(problems, "connect_timeout must be positive")
	} else if c.ConnectTimeout > MaxConnectTimeout {
		problems = append(problems, fmt.Sprintf("connect_timeout must not exceed %s", MaxConnectTimeout))
	}
	if c.ProbeTimeout <= 0 {
		problems = append(problems, "probe_timeout must be positive")
	}
	if c.StatusTimeout <= 0 {
		problems = append(problems, "status_timeout must be positive")
	}
	if c.Delay < 0 {
		problems = append(problems, "delay cannot be negative")
	}
	for i, m := range c.Models {
		if strings.TrimSpace(m.ID) == "" {
			problems = append(problems, fmt.Sprintf("models[%d].id is required", i))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}

// Catalog returns the configured model table, or the built-in one.
func (c *Config) Catalog() *catalog.Catalog {
	if len(c.Models) > 0 {
		return catalog.New(c.Models)
	}
	return catalog.Default()
}
