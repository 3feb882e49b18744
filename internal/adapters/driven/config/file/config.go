// Package file loads configuration from a TOML file plus environment
// credentials. The API key never lives in the config file.
package file

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/clearbrook-labs/supportrag/internal/core/domain"
	"github.com/clearbrook-labs/supportrag/internal/logger"
)

// DefaultPath is the config file looked up when none is given.
const DefaultPath = "supportrag.toml"

// Config is the full application configuration.
type Config struct {
	Site   SiteConfig   `toml:"site"`
	Data   DataConfig   `toml:"data"`
	OpenAI OpenAIConfig `toml:"openai"`
	Server ServerConfig `toml:"server"`

	// APIKey comes from the OPENAI_API_KEY environment variable,
	// optionally loaded from a .env file.
	APIKey string `toml:"-"`
}

// SiteConfig bounds the support-site crawl.
type SiteConfig struct {
	// SupportRoot is the URL prefix of the crawlable support section.
	SupportRoot string `toml:"support_root"`

	// StartURL is the first page fetched. Defaults to SupportRoot.
	StartURL string `toml:"start_url"`

	MaxDepth     int `toml:"max_depth"`
	MaxPages     int `toml:"max_pages"`
	DelaySeconds int `toml:"delay_seconds"`
}

// DataConfig locates local document directories and the index.
type DataConfig struct {
	PDFDir     string `toml:"pdf_dir"`
	DOCXDir    string `toml:"docx_dir"`
	ScrapedDir string `toml:"scraped_dir"`
	IndexDir   string `toml:"index_dir"`
}

// OpenAIConfig selects the models and endpoint.
type OpenAIConfig struct {
	BaseURL        string `toml:"base_url"`
	EmbeddingModel string `toml:"embedding_model"`
	ChatModel      string `toml:"chat_model"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// Delay returns the politeness delay as a duration.
func (c SiteConfig) Delay() time.Duration {
	return time.Duration(c.DelaySeconds) * time.Second
}

// Addr returns the host:port listen address.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load reads the config file at path (DefaultPath when empty; a missing
// file just means defaults) and the OPENAI_API_KEY environment variable,
// consulting a .env file if present.
func Load(path string) (*Config, error) {
	// Missing .env is the common case outside development.
	if err := godotenv.Load(); err == nil {
		logger.Debug("Loaded environment from .env")
	}

	cfg := defaults()

	if path == "" {
		path = DefaultPath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	} else {
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
		logger.Debug("Loaded config from %s", path)
	}

	if cfg.Site.StartURL == "" {
		cfg.Site.StartURL = cfg.Site.SupportRoot
	}
	cfg.APIKey = os.Getenv("OPENAI_API_KEY")

	return cfg, nil
}

// Validate checks the one fatal configuration condition.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return domain.ErrMissingAPIKey
	}
	return nil
}

func defaults() *Config {
	return &Config{
		Site: SiteConfig{
			MaxDepth:     2,
			MaxPages:     200,
			DelaySeconds: 2,
		},
		Data: DataConfig{
			PDFDir:     filepath.Join("data", "pdfs"),
			DOCXDir:    filepath.Join("data", "docx"),
			ScrapedDir: filepath.Join("data", "scraped"),
			IndexDir:   filepath.Join("data", "index"),
		},
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8000,
		},
	}
}
