package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-textdomain"
)

var errNoTranslation = errors.New("no translation")

type lookupOptions struct {
	domain      string
	locale      string
	source      string
	catalogDir  string
	databaseURL string
	context     string
	plural      string
	count       int
	fallbacks   []string
	gettext     bool

	hasContext bool
	hasCount   bool
}

func newLookupCmd(a *app) *cobra.Command {
	opts := &lookupOptions{}

	cmd := &cobra.Command{
		Use:   "lookup MESSAGE",
		Short: "Translate a message",
		Long: `Translate a message from the configured catalogs.

Without --gettext a missing translation is an error. With --gettext the
original message is printed instead (the plural text when --count is not 1).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.hasContext = cmd.Flags().Changed("context")
			opts.hasCount = cmd.Flags().Changed("count")
			return a.runLookup(cmd, opts, args[0])
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.domain, "domain", "d", "", "text domain (default TEXTDOMAIN_DOMAIN or messages)")
	flags.StringVarP(&opts.locale, "locale", "l", "", "locale (default TEXTDOMAIN_LOCALE or the gettext environment)")
	flags.StringVar(&opts.source, "source", "", "catalog source: file, postgres or goi18n")
	flags.StringVar(&opts.catalogDir, "catalog-dir", "", "directory holding catalogs")
	flags.StringVar(&opts.databaseURL, "database-url", "", "PostgreSQL URL for the postgres source")
	flags.StringVarP(&opts.context, "context", "c", "", "message context")
	flags.StringVar(&opts.plural, "plural", "", "plural source text used by --gettext")
	flags.IntVarP(&opts.count, "count", "n", 0, "count selecting the plural form")
	flags.StringArrayVar(&opts.fallbacks, "fallback", nil, "fallback chain as locale=fallback[,fallback...]")
	flags.BoolVar(&opts.gettext, "gettext", false, "fall back to the original message like gettext")
	return cmd
}

func (a *app) runLookup(cmd *cobra.Command, opts *lookupOptions, message string) error {
	settings, err := a.settings(opts.source, opts.catalogDir, opts.locale, opts.databaseURL)
	if err != nil {
		return err
	}
	if settings.fallbacks, err = parseFallbacks(opts.fallbacks); err != nil {
		return err
	}

	factory, cleanup, err := a.newFactory(cmd.Context(), settings)
	if err != nil {
		return err
	}
	defer cleanup()

	registry := textdomain.NewRegistry(factory)
	domain := firstNonEmpty(opts.domain, a.cfg.Domain)
	if domain != "" {
		registry.SetDefaultDomain(domain)
	}

	a.logger.Debug("textdomain.lookup",
		"domain", registry.DefaultDomain(),
		"locale", settings.locale,
		"source", settings.source,
	)

	if opts.gettext {
		fmt.Fprintln(a.stdout, gettextLookup(textdomain.NewGettext(registry, a.logger), opts, message))
		return nil
	}

	translator, err := registry.Translator("")
	if err != nil {
		return err
	}

	var contextArgs []string
	if opts.hasContext {
		contextArgs = []string{opts.context}
	}

	var (
		text string
		ok   bool
	)
	if opts.hasCount {
		text, ok, err = translator.TranslatePlural(opts.count, message, contextArgs...)
	} else {
		text, ok, err = translator.Translate(message, contextArgs...)
	}
	if err != nil {
		return err
	}
	if !ok {
		key, _ := textdomain.NewKey(message, contextArgs...)
		return fmt.Errorf("%w for %s in domain %q", errNoTranslation, key, registry.DefaultDomain())
	}

	fmt.Fprintln(a.stdout, text)
	return nil
}

func gettextLookup(g *textdomain.Gettext, opts *lookupOptions, message string) string {
	plural := firstNonEmpty(opts.plural, message)
	switch {
	case opts.hasCount && opts.hasContext:
		return g.NPGettext(opts.context, message, plural, opts.count)
	case opts.hasCount:
		return g.NGettext(message, plural, opts.count)
	case opts.hasContext:
		return g.PGettext(opts.context, message)
	default:
		return g.Gettext(message)
	}
}

func (a *app) settings(source, catalogDir, locale, databaseURL string) (sourceSettings, error) {
	s := sourceSettings{
		source:      firstNonEmpty(source, a.cfg.Source),
		catalogDir:  firstNonEmpty(catalogDir, a.cfg.CatalogDir),
		locale:      firstNonEmpty(locale, a.cfg.Locale),
		databaseURL: firstNonEmpty(databaseURL, a.cfg.DatabaseURL),
	}
	if s.source != a.cfg.Source || s.databaseURL != a.cfg.DatabaseURL {
		check := *a.cfg
		check.Source = s.source
		check.DatabaseURL = s.databaseURL
		if err := check.Validate(); err != nil {
			return sourceSettings{}, err
		}
		s.source = check.Source
	}
	return s, nil
}

// parseFallbacks reads "es-MX=es,en" values into locale chains.
func parseFallbacks(values []string) (map[string][]string, error) {
	if len(values) == 0 {
		return nil, nil
	}

	chains := make(map[string][]string, len(values))
	for _, value := range values {
		locale, list, ok := strings.Cut(value, "=")
		locale = strings.TrimSpace(locale)
		if !ok || locale == "" {
			return nil, fmt.Errorf("invalid --fallback %q, want locale=fallback[,fallback...]", value)
		}
		for _, fallback := range strings.Split(list, ",") {
			if fallback = strings.TrimSpace(fallback); fallback != "" {
				chains[locale] = append(chains[locale], fallback)
			}
		}
	}
	return chains, nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
