package textdomain

import (
	"strings"

	"golang.org/x/text/language"
)

// normalizeLocale turns POSIX style identifiers (pt_BR) into BCP 47 (pt-BR).
func normalizeLocale(locale string) string {
	return strings.ReplaceAll(strings.TrimSpace(locale), "_", "-")
}

// localeParents returns the ancestors of locale, nearest first. Locales x/text
// cannot parse are truncated at their last subtag instead.
func localeParents(locale string) []string {
	if locale == "" {
		return nil
	}

	if tag, err := language.Parse(locale); err == nil {
		var parents []string
		for parent := tag.Parent(); parent != language.Und; parent = parent.Parent() {
			value := parent.String()
			if value == "" || value == "und" {
				break
			}
			parents = append(parents, value)
		}
		return parents
	}

	var parents []string
	for idx := strings.LastIndex(locale, "-"); idx > 0; idx = strings.LastIndex(locale, "-") {
		locale = locale[:idx]
		parents = append(parents, locale)
	}
	return parents
}

// localeChain returns locale, its configured fallbacks, then its parents,
// without duplicates. An empty locale yields the single empty locale.
func localeChain(locale string, resolver FallbackResolver) []string {
	locale = normalizeLocale(locale)
	if locale == "" {
		return []string{""}
	}

	seen := make(map[string]struct{}, 4)
	var chain []string
	add := func(candidate string) {
		if candidate == "" {
			return
		}
		if _, ok := seen[candidate]; ok {
			return
		}
		seen[candidate] = struct{}{}
		chain = append(chain, candidate)
	}

	add(locale)
	if resolver != nil {
		for _, fallback := range resolver.Resolve(locale) {
			add(normalizeLocale(fallback))
		}
	}
	for _, parent := range localeParents(locale) {
		add(parent)
	}
	return chain
}
