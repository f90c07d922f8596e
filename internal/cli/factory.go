package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/goliatone/go-textdomain"
	"github.com/goliatone/go-textdomain/internal/config"
	"github.com/goliatone/go-textdomain/modules/goi18n"
	"github.com/goliatone/go-textdomain/modules/pgcatalog"
)

type sourceSettings struct {
	source      string
	catalogDir  string
	locale      string
	databaseURL string
	fallbacks   map[string][]string
}

// newFactory returns the translator factory for the configured source and a
// cleanup func releasing its resources.
func (a *app) newFactory(ctx context.Context, s sourceSettings) (textdomain.TranslatorFactory, func(), error) {
	missing := textdomain.NewMissingTranslationLogger(a.logger)
	opts := []textdomain.Option{
		textdomain.WithLocale(s.locale),
		textdomain.WithLogger(a.logger),
		textdomain.WithTranslatorHooks(missing),
	}
	for locale, chain := range s.fallbacks {
		opts = append(opts, textdomain.WithFallback(locale, chain...))
	}
	with := func(extra ...textdomain.Option) []textdomain.Option {
		return append(append([]textdomain.Option(nil), opts...), extra...)
	}

	switch s.source {
	case config.SourceFile:
		cfg, err := textdomain.NewConfig(with(textdomain.WithCatalogDir(s.catalogDir))...)
		if err != nil {
			return nil, nil, err
		}
		return cfg.Factory(), func() {}, nil

	case config.SourcePostgres:
		pool, err := pgcatalog.NewPool(ctx, s.databaseURL)
		if err != nil {
			return nil, nil, err
		}
		factory := textdomain.TranslatorFactoryFunc(func(domain string) (textdomain.Translator, error) {
			cfg, err := textdomain.NewConfig(with(
				textdomain.WithDomain(domain),
				textdomain.WithLoader(pgcatalog.NewLoader(pool, domain)),
			)...)
			if err != nil {
				return nil, err
			}
			return cfg.BuildTranslator()
		})
		return factory, pool.Close, nil

	case config.SourceGoI18n:
		factory := textdomain.TranslatorFactoryFunc(func(domain string) (textdomain.Translator, error) {
			translator, err := goi18n.New(s.locale, goi18n.WithDomain(domain), goi18n.WithLogger(a.logger))
			if err != nil {
				return nil, err
			}
			dir := filepath.Join(s.catalogDir, domain)
			files, err := messageFiles(dir)
			if err != nil {
				return nil, err
			}
			if err := translator.LoadMessageFilesFS(os.DirFS(dir), files...); err != nil {
				return nil, err
			}
			return textdomain.WrapTranslatorWithHooks(domain, translator, missing), nil
		})
		return factory, func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown source %q", s.source)
	}
}

func messageFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch filepath.Ext(entry.Name()) {
		case ".toml", ".yaml", ".json":
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}
