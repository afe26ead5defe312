package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultListen  = ":14392"
	defaultFormTTL = 30 * time.Minute
)

// Brand holds the decorative content of the marketing pane.
type Brand struct {
	Name         string `yaml:"name"`
	Logo         string `yaml:"logo"`
	Testimonial  string `yaml:"testimonial"` // markdown
	Author       string `yaml:"author"`
	AuthorRole   string `yaml:"author_role"`
	Stars        int    `yaml:"stars"`
	PreviewImage string `yaml:"preview_image"`
}

type Config struct {
	Listen      string        `yaml:"listen"`
	Secret      string        `yaml:"secret"`
	LogDir      string        `yaml:"log_dir"`
	LogLevel    string        `yaml:"log_level"`
	AssetsDir   string        `yaml:"assets_dir"`
	OptionsFile string        `yaml:"options_file"`
	FormTTL     time.Duration `yaml:"form_ttl"`
	CORSOrigins []string      `yaml:"cors_origins"` // for /api; empty allows none
	Brand       Brand         `yaml:"brand"`
}

func DefaultPath() string {
	return filepath.Join("/signalist_data", "config.yaml")
}

// Default returns the configuration used when no file is present.
func Default() Config {
	var c Config
	c.applyDefaults()
	return c
}

// Load reads a YAML config file. A missing file yields Default().
func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, err
	}
	var cfg Config
	if len(b) > 0 {
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	cfg.applyDefaults()
	return cfg, nil
}

// LoadFromEnv loads the file and then applies SIGNALIST_* overrides.
func LoadFromEnv(path string) (Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return Config{}, err
	}
	cfg.Listen = getenvDefault("SIGNALIST_LISTEN", cfg.Listen)
	cfg.Secret = getenvDefault("SIGNALIST_SECRET", cfg.Secret)
	cfg.LogDir = getenvDefault("SIGNALIST_LOG_DIR", cfg.LogDir)
	cfg.LogLevel = getenvDefault("SIGNALIST_LOG_LEVEL", cfg.LogLevel)
	cfg.AssetsDir = getenvDefault("SIGNALIST_ASSETS_DIR", cfg.AssetsDir)
	cfg.OptionsFile = getenvDefault("SIGNALIST_OPTIONS_FILE", cfg.OptionsFile)
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Listen == "" {
		c.Listen = defaultListen
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.AssetsDir == "" {
		c.AssetsDir = "/usr/local/share/signalist/assets"
	}
	if c.FormTTL <= 0 {
		c.FormTTL = defaultFormTTL
	}
	b := &c.Brand
	if b.Name == "" {
		b.Name = "Signalist"
	}
	if b.Logo == "" {
		b.Logo = "/assets/icons/logo.svg"
	}
	if b.Testimonial == "" {
		b.Testimonial = "Signalist turned my watchlist into a winning list. The alerts are spot-on, and I feel more confident making moves in the market"
		if b.Author == "" {
			b.Author = "Ethan R."
		}
		if b.AuthorRole == "" {
			b.AuthorRole = "Retail Investor"
		}
	}
	if b.Stars <= 0 || b.Stars > 5 {
		b.Stars = 5
	}
	if b.PreviewImage == "" {
		b.PreviewImage = "/assets/images/dashboard.png"
	}
}

func getenvDefault(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}
