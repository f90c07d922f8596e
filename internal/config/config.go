package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	SourceFile     = "file"
	SourcePostgres = "postgres"
	SourceGoI18n   = "goi18n"
)

// Config holds the CLI settings read from the environment.
type Config struct {
	Source      string
	CatalogDir  string
	Domain      string
	Locale      string
	DatabaseURL string
	LogFormat   string
}

// Load reads .env files (all optional), then the environment, and validates
// the result. Without files, ".env" in the working directory is tried.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: load env file: %w", err)
	}

	cfg := &Config{
		Source:      os.Getenv("TEXTDOMAIN_SOURCE"),
		CatalogDir:  os.Getenv("TEXTDOMAIN_CATALOG_DIR"),
		Domain:      os.Getenv("TEXTDOMAIN_DOMAIN"),
		Locale:      os.Getenv("TEXTDOMAIN_LOCALE"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		LogFormat:   os.Getenv("TEXTDOMAIN_LOG_FORMAT"),
	}
	if cfg.Locale == "" {
		cfg.Locale = LocaleFromEnv()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate fills defaults and checks the source specific settings.
func (c *Config) Validate() error {
	c.Source = strings.ToLower(strings.TrimSpace(c.Source))
	if c.Source == "" {
		c.Source = SourceFile
	}
	if strings.TrimSpace(c.CatalogDir) == "" {
		c.CatalogDir = "locales"
	}

	switch c.Source {
	case SourceFile, SourceGoI18n:
		return nil
	case SourcePostgres:
		return c.validateDatabaseURL()
	default:
		return fmt.Errorf("config: TEXTDOMAIN_SOURCE %q is not one of file, postgres, goi18n", c.Source)
	}
}

func (c *Config) validateDatabaseURL() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return errors.New("config: DATABASE_URL is required for the postgres source")
	}

	parsed, err := url.Parse(c.DatabaseURL)
	if err != nil {
		return fmt.Errorf("config: invalid DATABASE_URL (%q): %w", c.DatabaseURL, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("config: invalid DATABASE_URL (%q): missing scheme or host", c.DatabaseURL)
	}
	return nil
}

// LocaleFromEnv returns the message locale gettext would use: the first of
// LANGUAGE, LC_ALL, LC_MESSAGES and LANG, without codeset or modifier.
// "C" and "POSIX" map to the empty locale.
func LocaleFromEnv() string {
	for _, name := range []string{"LANGUAGE", "LC_ALL", "LC_MESSAGES", "LANG"} {
		value := os.Getenv(name)
		if value == "" {
			continue
		}
		// LANGUAGE is a priority list
		value, _, _ = strings.Cut(value, ":")
		return stripLocale(value)
	}
	return ""
}

func stripLocale(value string) string {
	value, _, _ = strings.Cut(value, ".")
	value, _, _ = strings.Cut(value, "@")
	if value == "C" || value == "POSIX" {
		return ""
	}
	return strings.ReplaceAll(value, "_", "-")
}
