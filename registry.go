package textdomain

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// DefaultDomain is the domain a new Registry starts with, as in gettext.
const DefaultDomain = "messages"

// TranslatorFactory creates the translator for a domain on first use.
type TranslatorFactory interface {
	NewTranslator(domain string) (Translator, error)
}

// TranslatorFactoryFunc adapts a function to TranslatorFactory.
type TranslatorFactoryFunc func(domain string) (Translator, error)

func (fn TranslatorFactoryFunc) NewTranslator(domain string) (Translator, error) {
	return fn(domain)
}

// Registry maps domain names to translators and tracks the default domain.
// It is owned by the caller; there is no process wide instance.
type Registry struct {
	mu            sync.RWMutex
	factory       TranslatorFactory
	translators   map[string]Translator
	defaultDomain string
}

// NewRegistry returns a registry creating missing translators with factory.
// factory may be nil, in which case only registered domains resolve.
func NewRegistry(factory TranslatorFactory) *Registry {
	return &Registry{
		factory:       factory,
		translators:   make(map[string]Translator),
		defaultDomain: DefaultDomain,
	}
}

// Register binds translator to domain, replacing any previous binding.
func (r *Registry) Register(domain string, translator Translator) {
	if domain == "" || translator == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.translators[domain] = translator
}

// Translator returns the translator for domain, creating it on first use.
// An empty domain selects the default domain.
func (r *Registry) Translator(domain string) (Translator, error) {
	if domain == "" {
		domain = r.DefaultDomain()
	}

	r.mu.RLock()
	translator, ok := r.translators[domain]
	r.mu.RUnlock()
	if ok {
		return translator, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if translator, ok := r.translators[domain]; ok {
		return translator, nil
	}
	if r.factory == nil {
		return nil, fmt.Errorf("%w: domain %q", ErrNoFactory, domain)
	}

	translator, err := r.factory.NewTranslator(domain)
	if err != nil {
		return nil, fmt.Errorf("textdomain: create translator for domain %q: %w", domain, err)
	}
	if translator == nil {
		return nil, fmt.Errorf("textdomain: factory returned no translator for domain %q", domain)
	}
	r.translators[domain] = translator
	return translator, nil
}

// Domains returns the domains with a translator, sorted.
func (r *Registry) Domains() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	domains := make([]string, 0, len(r.translators))
	for domain := range r.translators {
		domains = append(domains, domain)
	}
	sort.Strings(domains)
	return domains
}

func (r *Registry) DefaultDomain() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.defaultDomain
}

// SetDefaultDomain changes the default domain and returns the previous one.
// An empty domain resets it to DefaultDomain.
func (r *Registry) SetDefaultDomain(domain string) string {
	if domain == "" {
		domain = DefaultDomain
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	previous := r.defaultDomain
	r.defaultDomain = domain
	return previous
}

type registryContextKey struct{}

// NewRegistryContext returns a copy of ctx carrying registry.
func NewRegistryContext(ctx context.Context, registry *Registry) context.Context {
	return context.WithValue(ctx, registryContextKey{}, registry)
}

// RegistryFromContext returns the registry stored by NewRegistryContext.
func RegistryFromContext(ctx context.Context) (*Registry, bool) {
	if ctx == nil {
		return nil, false
	}
	registry, ok := ctx.Value(registryContextKey{}).(*Registry)
	return registry, ok && registry != nil
}
