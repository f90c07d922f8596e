package textdomain

import "sync"

// FallbackResolver resolves the locales consulted after the requested one.
type FallbackResolver interface {
	Resolve(locale string) []string
}

// StaticFallbackResolver keeps explicit fallback chains per locale.
type StaticFallbackResolver struct {
	mu     sync.RWMutex
	chains map[string][]string
}

var _ FallbackResolver = &StaticFallbackResolver{}

func NewStaticFallbackResolver() *StaticFallbackResolver {
	return &StaticFallbackResolver{chains: make(map[string][]string)}
}

// Set replaces the chain for locale. Duplicates and the locale itself are dropped.
func (r *StaticFallbackResolver) Set(locale string, fallbacks ...string) {
	if r == nil {
		return
	}
	locale = normalizeLocale(locale)
	if locale == "" {
		return
	}

	seen := map[string]struct{}{locale: {}}
	chain := make([]string, 0, len(fallbacks))
	for _, fallback := range fallbacks {
		fallback = normalizeLocale(fallback)
		if fallback == "" {
			continue
		}
		if _, ok := seen[fallback]; ok {
			continue
		}
		seen[fallback] = struct{}{}
		chain = append(chain, fallback)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.chains == nil {
		r.chains = make(map[string][]string)
	}
	if len(chain) == 0 {
		delete(r.chains, locale)
		return
	}
	r.chains[locale] = chain
}

func (r *StaticFallbackResolver) Resolve(locale string) []string {
	if r == nil {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	chain, ok := r.chains[normalizeLocale(locale)]
	if !ok {
		return nil
	}
	out := make([]string, len(chain))
	copy(out, chain)
	return out
}
