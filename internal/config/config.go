package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/vitos/coingecko_coins/internal/domain"
	"github.com/vitos/coingecko_coins/internal/infrastructure/coingecko"
	"github.com/vitos/coingecko_coins/internal/usecase"
	"gopkg.in/yaml.v3"
)

type Config struct {
	CoinGecko struct {
		BaseURL         string        `yaml:"base_url"`
		APIKey          string        `yaml:"api_key"`
		APIKeyEnv       string        `yaml:"api_key_env"`
		APIKeyHeader    string        `yaml:"api_key_header"`
		IncludePlatform *bool         `yaml:"include_platform"`
		Status          *string       `yaml:"status"`
		Timeout         time.Duration `yaml:"timeout"` // zero means no deadline
	} `yaml:"coingecko"`
	AllowList []string `yaml:"allow_list"`
	Output    string   `yaml:"output"`
	Logging   struct {
		Level    string `yaml:"level"`
		Encoding string `yaml:"encoding"`
	} `yaml:"logging"`
	Storage struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"storage"`
}

// Default mirrors the values the tool runs with when no file is given.
func Default() *Config {
	includePlatform := false

	var cfg Config
	cfg.CoinGecko.BaseURL = coingecko.CoinGeckoBaseURL
	cfg.CoinGecko.APIKeyEnv = "API_KEY"
	cfg.CoinGecko.APIKeyHeader = coingecko.DefaultAPIKeyHeader
	cfg.CoinGecko.IncludePlatform = &includePlatform
	cfg.AllowList = append([]string(nil), usecase.DefaultAllowList...)
	cfg.Output = "table"
	cfg.Logging.Level = "info"
	cfg.Logging.Encoding = "console"
	return &cfg
}

// Load reads the optional yaml file at path over the defaults, then the
// optional env file, then resolves the API key from the environment.
// An empty path skips the yaml file; a missing env file is ignored.
func Load(path, envFile string) (*Config, error) {
	cfg := Default()

	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open config: %w", err)
		}
		defer f.Close()

		if err := yaml.NewDecoder(f).Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	}

	if cfg.CoinGecko.APIKeyEnv != "" {
		if key := os.Getenv(cfg.CoinGecko.APIKeyEnv); key != "" {
			cfg.CoinGecko.APIKey = key
		}
	}

	return cfg, nil
}

// Validate checks everything except the API key, whose absence is reported
// by the client when the request is made.
func (c *Config) Validate() error {
	if c.CoinGecko.BaseURL == "" {
		return fmt.Errorf("%w: coingecko.base_url is required", domain.ErrConfiguration)
	}
	if len(c.AllowList) == 0 {
		return fmt.Errorf("%w: allow_list is empty", domain.ErrConfiguration)
	}
	switch c.Output {
	case "table", "json":
	default:
		return fmt.Errorf("%w: unknown output %q", domain.ErrInvalidArgument, c.Output)
	}
	if c.CoinGecko.Timeout < 0 {
		return fmt.Errorf("%w: negative timeout %s", domain.ErrInvalidArgument, c.CoinGecko.Timeout)
	}
	_, err := c.ClientConfig()
	return err
}

// ClientConfig builds the request description for the coins list call.
func (c *Config) ClientConfig() (domain.ClientConfig, error) {
	return domain.NewClientConfig(c.CoinGecko.BaseURL, c.CoinGecko.IncludePlatform, c.CoinGecko.Status)
}
