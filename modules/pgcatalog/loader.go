// Package pgcatalog loads textdomain catalogs from PostgreSQL.
//
// Each row of the translations table is either a simple translation
// (category '') or one form of a plural set. Rows are grouped by locale and
// key into textdomain entries.
package pgcatalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/goliatone/go-textdomain"
)

const selectTranslations = `
SELECT locale, message, has_context, context, category, text
FROM translations
WHERE domain = $1
ORDER BY locale, message, context, category`

const selectTranslationsForLocales = `
SELECT locale, message, has_context, context, category, text
FROM translations
WHERE domain = $1 AND locale = ANY($2)
ORDER BY locale, message, context, category`

// DefaultTimeout bounds Load when no deadline is given.
const DefaultTimeout = 10 * time.Second

// Querier is the subset of pgxpool.Pool and pgx.Conn the loader needs.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

var _ textdomain.Loader = (*Loader)(nil)

// Loader reads the catalogs of one domain.
type Loader struct {
	db      Querier
	domain  string
	locales []string
	timeout time.Duration
}

// Option configures a Loader.
type Option func(*Loader)

// WithLocales restricts loading to locales.
func WithLocales(locales ...string) Option {
	return func(l *Loader) {
		l.locales = append(l.locales, locales...)
	}
}

// WithTimeout bounds Load. Zero or negative disables the bound.
func WithTimeout(timeout time.Duration) Option {
	return func(l *Loader) {
		l.timeout = timeout
	}
}

func NewLoader(db Querier, domain string, opts ...Option) *Loader {
	if domain == "" {
		domain = textdomain.DefaultDomain
	}
	loader := &Loader{db: db, domain: domain, timeout: DefaultTimeout}
	for _, opt := range opts {
		if opt != nil {
			opt(loader)
		}
	}
	return loader
}

// Load implements textdomain.Loader.
func (l *Loader) Load() (textdomain.Translations, error) {
	ctx := context.Background()
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}
	return l.LoadContext(ctx)
}

// LoadContext reads every row of the loader's domain and groups them into catalogs.
func (l *Loader) LoadContext(ctx context.Context) (textdomain.Translations, error) {
	if l == nil || l.db == nil {
		return nil, errors.New("pgcatalog: loader has no database")
	}

	var (
		rows pgx.Rows
		err  error
	)
	if len(l.locales) > 0 {
		rows, err = l.db.Query(ctx, selectTranslationsForLocales, l.domain, l.locales)
	} else {
		rows, err = l.db.Query(ctx, selectTranslations, l.domain)
	}
	if err != nil {
		return nil, fmt.Errorf("pgcatalog: query %s: %w", l.domain, err)
	}
	defer rows.Close()

	builder := newCatalogBuilder(l.domain)
	for rows.Next() {
		var r row
		if err := rows.Scan(&r.locale, &r.message, &r.hasContext, &r.context, &r.category, &r.text); err != nil {
			return nil, fmt.Errorf("pgcatalog: scan: %w", err)
		}
		if err := builder.add(r); err != nil {
			return nil, err
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgcatalog: rows: %w", err)
	}

	return builder.build()
}

type row struct {
	locale     string
	message    string
	hasContext bool
	context    string
	category   string
	text       string
}

func (r row) key() textdomain.Key {
	if r.hasContext {
		return textdomain.ContextKey(r.context, r.message)
	}
	return textdomain.MessageKey(r.message)
}

type pendingEntry struct {
	text   *string
	forms  map[textdomain.PluralCategory]string
	source string
}

type catalogBuilder struct {
	domain  string
	pending map[string]map[textdomain.Key]*pendingEntry
}

func newCatalogBuilder(domain string) *catalogBuilder {
	return &catalogBuilder{
		domain:  domain,
		pending: make(map[string]map[textdomain.Key]*pendingEntry),
	}
}

func (b *catalogBuilder) add(r row) error {
	key := r.key()
	if err := key.Validate(); err != nil {
		return fmt.Errorf("pgcatalog: %s: %w", r.locale, err)
	}

	entries := b.pending[r.locale]
	if entries == nil {
		entries = make(map[textdomain.Key]*pendingEntry)
		b.pending[r.locale] = entries
	}

	entry := entries[key]
	if entry == nil {
		entry = &pendingEntry{source: "postgres:" + b.domain}
		entries[key] = entry
	}

	if r.category == "" {
		text := r.text
		entry.text = &text
	} else {
		category, err := textdomain.ParsePluralCategory(r.category)
		if err != nil {
			return fmt.Errorf("pgcatalog: %s %s: %w", r.locale, key, err)
		}
		if entry.forms == nil {
			entry.forms = make(map[textdomain.PluralCategory]string)
		}
		entry.forms[category] = r.text
	}

	if entry.text != nil && entry.forms != nil {
		return fmt.Errorf("pgcatalog: %s %s: both simple and plural rows", r.locale, key)
	}
	return nil
}

func (b *catalogBuilder) build() (textdomain.Translations, error) {
	translations := make(textdomain.Translations, len(b.pending))
	for locale, entries := range b.pending {
		catalog := textdomain.NewCatalog(b.domain, locale)
		for key, pending := range entries {
			var entry textdomain.Entry
			if pending.forms != nil {
				built, err := textdomain.BuildPluralEntry(key, pending.forms)
				if err != nil {
					return nil, fmt.Errorf("pgcatalog: %s %s: %w", locale, key, err)
				}
				entry = built
			} else {
				entry = textdomain.NewEntry(key, *pending.text)
			}
			entry.Source = pending.source
			catalog.Set(entry)
		}
		translations[locale] = catalog
	}
	return translations, nil
}
