// Package textdomain looks up message translations, simple and pluralized,
// optionally scoped by a context, for a single domain at a time.
//
// A Translator answers two questions: what is the translation of a message
// (Translate) and which plural form applies to a count (TranslatePlural). A
// missing translation is reported with ok=false and is never replaced by the
// message itself. Callers that want gettext behaviour use Gettext, which owns
// the fallback to the original text and dispatches to per-domain translators
// held by a caller-owned Registry.
//
//	cfg, err := textdomain.NewConfig(
//		textdomain.WithLocale("es"),
//		textdomain.WithCatalogDir("locales"),
//	)
//	registry := textdomain.NewRegistry(cfg.Factory())
//	g := textdomain.NewGettext(registry, nil)
//	g.NPGettext("cart", "File", "Files", 3)
package textdomain
