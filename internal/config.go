package internal

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration
type Config struct {
	// Query service settings
	QueryURL string `yaml:"query_url"`

	// Storage settings
	DataDir string `yaml:"data_dir"`

	// History bounds. Zero disables a bound.
	MaxSessions int `yaml:"max_sessions"`
	MaxMessages int `yaml:"max_messages"`

	// Swap widget settings
	RPCEndpoint string `yaml:"rpc_endpoint"`

	// Wallet settings
	WalletAddress string `yaml:"wallet_address"`

	Verbose bool `yaml:"verbose"`
}

// NewConfig creates a configuration with default values
func NewConfig() *Config {
	return &Config{
		QueryURL:    DefaultQueryURL,
		RPCEndpoint: DefaultRPCEndpoint,
		MaxSessions: 50,
		MaxMessages: 500,
	}
}

// LoadConfig builds the effective configuration: defaults, then the YAML
// file (if present), then environment overrides. A missing file is fine;
// a malformed one is an error.
func LoadConfig(path string) (*Config, error) {
	cfg := NewConfig()

	if path == "" {
		if dir, err := DefaultDataDir(); err == nil {
			path = filepath.Join(dir, "config.yaml")
		}
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	cfg.ApplyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from the environment.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("DEEPSENSE_QUERY_URL"); v != "" {
		c.QueryURL = v
	}
	if v := os.Getenv("DEEPSENSE_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("DEEPSENSE_RPC_ENDPOINT"); v != "" {
		c.RPCEndpoint = v
	}
	if v := os.Getenv("DEEPSENSE_WALLET_ADDRESS"); v != "" {
		c.WalletAddress = v
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.QueryURL == "" {
		return fmt.Errorf("query URL cannot be empty")
	}
	if c.MaxSessions < 0 {
		return fmt.Errorf("max sessions cannot be negative")
	}
	if c.MaxMessages < 0 {
		return fmt.Errorf("max messages cannot be negative")
	}
	return nil
}
