package textdomain

import "log/slog"

// Gettext is a gettext style facade over a Registry. Unlike a Translator it
// always returns a string: when a lookup is absent or fails, the original
// message is returned, or for plural lookups the singular message when n == 1
// and the plural message otherwise.
type Gettext struct {
	registry *Registry
	logger   *slog.Logger
}

// NewGettext returns a facade dispatching to registry.
func NewGettext(registry *Registry, logger *slog.Logger) *Gettext {
	if logger == nil {
		logger = discardLogger()
	}
	return &Gettext{registry: registry, logger: logger}
}

// Registry returns the registry the facade dispatches to.
func (g *Gettext) Registry() *Registry {
	return g.registry
}

func (g *Gettext) Gettext(message string) string {
	return g.dcgettext("", message, nil)
}

func (g *Gettext) DGettext(domain, message string) string {
	return g.dcgettext(domain, message, nil)
}

func (g *Gettext) PGettext(context, message string) string {
	return g.dcgettext("", message, []string{context})
}

func (g *Gettext) DPGettext(domain, context, message string) string {
	return g.dcgettext(domain, message, []string{context})
}

func (g *Gettext) NGettext(singular, plural string, n int) string {
	return g.dcngettext("", singular, plural, n, nil)
}

func (g *Gettext) DNGettext(domain, singular, plural string, n int) string {
	return g.dcngettext(domain, singular, plural, n, nil)
}

func (g *Gettext) NPGettext(context, singular, plural string, n int) string {
	return g.dcngettext("", singular, plural, n, []string{context})
}

func (g *Gettext) DNPGettext(domain, context, singular, plural string, n int) string {
	return g.dcngettext(domain, singular, plural, n, []string{context})
}

func (g *Gettext) dcgettext(domain, message string, context []string) string {
	translator := g.translator(domain)
	if translator == nil {
		return message
	}

	text, ok, err := translator.Translate(message, context...)
	if err != nil {
		g.logger.Debug("textdomain.gettext.failed", "domain", domain, "message", message, "error", err)
		return message
	}
	if !ok {
		return message
	}
	return text
}

func (g *Gettext) dcngettext(domain, singular, plural string, n int, context []string) string {
	fallback := plural
	if n == 1 {
		fallback = singular
	}

	translator := g.translator(domain)
	if translator == nil {
		return fallback
	}

	text, ok, err := translator.TranslatePlural(n, singular, context...)
	if err != nil {
		g.logger.Debug("textdomain.gettext.failed", "domain", domain, "message", singular, "count", n, "error", err)
		return fallback
	}
	if !ok {
		return fallback
	}
	return text
}

func (g *Gettext) translator(domain string) Translator {
	if g == nil || g.registry == nil {
		return nil
	}

	translator, err := g.registry.Translator(domain)
	if err != nil {
		g.logger.Warn("textdomain.gettext.domain", "domain", domain, "error", err)
		return nil
	}
	return translator
}
