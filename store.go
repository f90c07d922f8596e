package textdomain

import (
	"errors"
	"sort"
)

// Store exposes read only access to catalog entries.
type Store interface {
	// Entry returns the entry for locale/key and ok=false if missing
	Entry(locale string, key Key) (Entry, bool)
	// PluralRule returns the rule of the catalog registered for locale
	PluralRule(locale string) PluralRule
	// Locales returns the list of locales known to the store
	Locales() []string
}

// Loader retrieves the translations used to seed a Store
type Loader interface {
	Load() (Translations, error)
}

// LoaderFunc adapters allow bare functions to implement Loader interface
type LoaderFunc func() (Translations, error)

// Load implements Loader for LoaderFunc
func (fn LoaderFunc) Load() (Translations, error) {
	return fn()
}

// StaticStore is an in memory store, read only after construction
type StaticStore struct {
	catalogs map[string]*Catalog
	rules    map[string]PluralRule
	locales  []string
}

var _ Store = &StaticStore{}

// NewStaticStore builds an immutable snapshot from the given translations
func NewStaticStore(data Translations) *StaticStore {
	store := &StaticStore{
		catalogs: make(map[string]*Catalog, len(data)),
		rules:    make(map[string]PluralRule, len(data)),
	}

	for locale, catalog := range data {
		if catalog == nil {
			continue
		}
		clone := catalog.Clone()
		if clone.Locale == "" {
			clone.Locale = locale
		}

		code := normalizeLocale(locale)
		store.catalogs[code] = clone
		store.rules[code] = clone.PluralRule()
		store.locales = append(store.locales, code)
	}

	// make locales deterministic
	sort.Strings(store.locales)

	return store
}

// NewStaticStoreFromLoader hydrates a StaticStore using the provided loader
func NewStaticStoreFromLoader(loader Loader) (*StaticStore, error) {
	if loader == nil {
		return NewStaticStore(nil), nil
	}

	translations, err := loader.Load()
	if err != nil {
		return nil, err
	}

	return NewStaticStore(translations), nil
}

func (s *StaticStore) Entry(locale string, key Key) (Entry, bool) {
	if s == nil {
		return Entry{}, false
	}

	entry, ok := s.catalogs[normalizeLocale(locale)].Lookup(key)
	if !ok {
		return Entry{}, false
	}
	return entry.Clone(), true
}

func (s *StaticStore) PluralRule(locale string) PluralRule {
	if s == nil {
		return RuleForLocale(locale)
	}
	if rule, ok := s.rules[normalizeLocale(locale)]; ok {
		return rule
	}
	return RuleForLocale(locale)
}

// Locales returns a slice with all locale codes
func (s *StaticStore) Locales() []string {
	if s == nil || len(s.locales) == 0 {
		return nil
	}
	out := make([]string, len(s.locales))
	copy(out, s.locales)
	return out
}

// CatalogTranslator answers lookups for one domain and locale from a Store,
// walking the locale fallback chain until a catalog holds the key.
type CatalogTranslator struct {
	domain string
	locale string
	store  Store
	rule   PluralRule
	chain  []string
}

var _ Translator = &CatalogTranslator{}

type translatorOptions struct {
	domain   string
	locale   string
	resolver FallbackResolver
	rule     PluralRule
}

// TranslatorOption configures a CatalogTranslator.
type TranslatorOption func(*translatorOptions)

func WithTranslatorDomain(domain string) TranslatorOption {
	return func(o *translatorOptions) {
		o.domain = domain
	}
}

func WithTranslatorLocale(locale string) TranslatorOption {
	return func(o *translatorOptions) {
		o.locale = locale
	}
}

func WithTranslatorFallbackResolver(resolver FallbackResolver) TranslatorOption {
	return func(o *translatorOptions) {
		o.resolver = resolver
	}
}

// WithTranslatorPluralRule overrides the plural rule of every catalog in the store.
func WithTranslatorPluralRule(rule PluralRule) TranslatorOption {
	return func(o *translatorOptions) {
		o.rule = rule
	}
}

// NewCatalogTranslator binds store to a domain and locale. The fallback chain
// is resolved once, at construction.
func NewCatalogTranslator(store Store, opts ...TranslatorOption) (*CatalogTranslator, error) {
	if store == nil {
		return nil, errors.New("textdomain: catalog translator requires a store")
	}

	options := translatorOptions{domain: DefaultDomain}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}

	return &CatalogTranslator{
		domain: options.domain,
		locale: normalizeLocale(options.locale),
		store:  store,
		rule:   options.rule,
		chain:  localeChain(options.locale, options.resolver),
	}, nil
}

// NewMapTranslator builds a translator over an in-memory set of entries.
func NewMapTranslator(domain, locale string, entries ...Entry) *CatalogTranslator {
	store := NewStaticStore(Translations{
		locale: NewCatalog(domain, locale, entries...),
	})
	translator, _ := NewCatalogTranslator(store,
		WithTranslatorDomain(domain),
		WithTranslatorLocale(locale),
	)
	return translator
}

// Domain returns the domain the translator is bound to.
func (t *CatalogTranslator) Domain() string {
	return t.domain
}

// Locale returns the requested locale.
func (t *CatalogTranslator) Locale() string {
	return t.locale
}

func (t *CatalogTranslator) Translate(message string, context ...string) (string, bool, error) {
	key, err := NewKey(message, context...)
	if err != nil {
		return "", false, err
	}

	entry, _, ok := t.lookup(key)
	if !ok {
		return "", false, nil
	}

	text, ok := entry.Singular()
	return text, ok, nil
}

func (t *CatalogTranslator) TranslatePlural(count int, message string, context ...string) (string, bool, error) {
	key, err := NewKey(message, context...)
	if err != nil {
		return "", false, err
	}

	entry, locale, ok := t.lookup(key)
	if !ok || !entry.IsPlural() {
		return "", false, nil
	}

	rule := t.rule
	if rule == nil {
		rule = t.store.PluralRule(locale)
	}

	text, ok := entry.Form(rule.Category(count))
	return text, ok, nil
}

func (t *CatalogTranslator) lookup(key Key) (Entry, string, bool) {
	for _, locale := range t.chain {
		if entry, ok := t.store.Entry(locale, key); ok {
			return entry, locale, true
		}
	}
	return Entry{}, "", false
}
