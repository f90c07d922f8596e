package textdomain

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
)

// Config captures translator setup for a default domain and locale.
type Config struct {
	Domain   string
	Locale   string
	Loader   Loader
	Store    Store
	Resolver FallbackResolver
	Rule     PluralRule
	Hooks    []TranslationHook
	Logger   *slog.Logger

	catalogDir    string
	domainLoaders map[string]Loader
}

// Option mutates Config during construction
type Option func(*Config) error

// NewConfig builds Config via supplied options
func NewConfig(opts ...Option) (*Config, error) {
	cfg := &Config{}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if cfg.Domain == "" {
		cfg.Domain = DefaultDomain
	}
	cfg.Locale = normalizeLocale(cfg.Locale)

	if cfg.Logger == nil {
		cfg.Logger = discardLogger()
	}

	if cfg.Store == nil {
		loader := cfg.Loader
		if loader == nil {
			loader = cfg.domainLoader(cfg.Domain)
		}
		store, err := NewStaticStoreFromLoader(loader)
		if err != nil {
			return nil, err
		}
		cfg.Store = store
	}

	if cfg.Resolver == nil {
		cfg.Resolver = NewStaticFallbackResolver()
	}

	return cfg, nil
}

// WithDomain sets the domain served by BuildTranslator.
func WithDomain(domain string) Option {
	return func(c *Config) error {
		c.Domain = domain
		return nil
	}
}

// WithLocale sets the locale translators are bound to.
func WithLocale(locale string) Option {
	return func(c *Config) error {
		c.Locale = locale
		return nil
	}
}

func WithLoader(loader Loader) Option {
	return func(c *Config) error {
		c.Loader = loader
		return nil
	}
}

func WithStore(store Store) Option {
	return func(c *Config) error {
		c.Store = store
		return nil
	}
}

// WithDomainLoader registers the loader used by Factory for domain.
func WithDomainLoader(domain string, loader Loader) Option {
	return func(c *Config) error {
		if domain == "" || loader == nil {
			return nil
		}
		if c.domainLoaders == nil {
			c.domainLoaders = make(map[string]Loader)
		}
		c.domainLoaders[domain] = loader
		return nil
	}
}

// WithCatalogDir makes Factory load "<dir>/<domain>.{json,yaml,yml,toml}" for
// domains without an explicit loader.
func WithCatalogDir(dir string) Option {
	return func(c *Config) error {
		if dir == "" {
			return nil
		}
		info, err := os.Stat(dir)
		if err != nil {
			return fmt.Errorf("textdomain: catalog dir: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("textdomain: catalog dir %s is not a directory", dir)
		}
		c.catalogDir = dir
		return nil
	}
}

func WithFallbackResolver(resolver FallbackResolver) Option {
	return func(c *Config) error {
		c.Resolver = resolver
		return nil
	}
}

// WithFallback registers locales consulted after locale, in order.
func WithFallback(locale string, fallbacks ...string) Option {
	return func(c *Config) error {
		if locale == "" {
			return nil
		}
		resolver, ok := c.Resolver.(*StaticFallbackResolver)
		if !ok {
			if c.Resolver != nil {
				return errors.New("textdomain: WithFallback requires the static fallback resolver")
			}
			resolver = NewStaticFallbackResolver()
			c.Resolver = resolver
		}
		resolver.Set(locale, fallbacks...)
		return nil
	}
}

// WithPluralRule overrides the per-locale plural rules of loaded catalogs.
func WithPluralRule(rule PluralRule) Option {
	return func(c *Config) error {
		c.Rule = rule
		return nil
	}
}

func WithTranslatorHooks(hooks ...TranslationHook) Option {
	return func(c *Config) error {
		for _, hook := range hooks {
			if hook == nil {
				continue
			}
			c.Hooks = append(c.Hooks, hook)
		}
		return nil
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) error {
		c.Logger = logger
		return nil
	}
}

// BuildTranslator returns the translator for the configured domain.
func (cfg *Config) BuildTranslator() (Translator, error) {
	if cfg == nil {
		return nil, errors.New("textdomain: nil config")
	}
	return cfg.newTranslator(cfg.Domain, cfg.Store)
}

// Factory returns a TranslatorFactory for a Registry. The configured domain is
// served from the config store; other domains use their registered loader,
// the catalog dir, or an empty store.
func (cfg *Config) Factory() TranslatorFactory {
	return TranslatorFactoryFunc(func(domain string) (Translator, error) {
		if cfg == nil {
			return nil, errors.New("textdomain: nil config")
		}
		if domain == cfg.Domain {
			return cfg.newTranslator(domain, cfg.Store)
		}

		loader := cfg.domainLoader(domain)
		if loader == nil {
			cfg.logger().Debug("textdomain.domain.empty", "domain", domain)
		}

		store, err := NewStaticStoreFromLoader(loader)
		if err != nil {
			return nil, fmt.Errorf("textdomain: load domain %q: %w", domain, err)
		}
		return cfg.newTranslator(domain, store)
	})
}

func (cfg *Config) newTranslator(domain string, store Store) (Translator, error) {
	base, err := NewCatalogTranslator(store,
		WithTranslatorDomain(domain),
		WithTranslatorLocale(cfg.Locale),
		WithTranslatorFallbackResolver(cfg.Resolver),
		WithTranslatorPluralRule(cfg.Rule),
	)
	if err != nil {
		return nil, err
	}

	var translator Translator = base
	if len(cfg.Hooks) > 0 {
		translator = WrapTranslatorWithHooks(domain, translator, cfg.Hooks...)
	}

	cfg.logger().Debug("textdomain.translator.built",
		"domain", domain,
		"locale", cfg.Locale,
		"locales", store.Locales(),
	)
	return translator, nil
}

func (cfg *Config) domainLoader(domain string) Loader {
	if loader, ok := cfg.domainLoaders[domain]; ok {
		return loader
	}
	if cfg.catalogDir == "" {
		return nil
	}

	paths := catalogFiles(cfg.catalogDir, domain)
	if len(paths) == 0 {
		return nil
	}
	return NewFileLoader(paths...).WithDomain(domain)
}

var catalogExtensions = []string{".json", ".yaml", ".yml", ".toml"}

func catalogFiles(dir, domain string) []string {
	if domain == "" || domain != filepath.Base(domain) || domain == ".." {
		return nil
	}

	var paths []string
	for _, ext := range catalogExtensions {
		path := filepath.Join(dir, domain+ext)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			paths = append(paths, path)
		}
	}
	sort.Strings(paths)
	return paths
}

func (cfg *Config) logger() *slog.Logger {
	if cfg.Logger == nil {
		return discardLogger()
	}
	return cfg.Logger
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}
