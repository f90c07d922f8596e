package textdomain

// Translator resolves translations for a single domain.
//
// Both lookups return ok=false when nothing is registered for the key. An empty
// string with ok=true is a registered empty translation. Implementations never
// substitute the message for a missing translation; that fallback belongs to
// callers such as Gettext.
//
// context is optional: no argument means "no context", which is a different key
// from any present context, the empty string included.
type Translator interface {
	// Translate returns the translation registered for (message, context).
	Translate(message string, context ...string) (string, bool, error)
	// TranslatePlural selects the plural form for count from the plural set
	// registered for (message, context). message is the singular source text.
	TranslatePlural(count int, message string, context ...string) (string, bool, error)
}
