package textdomain

import "log/slog"

type TranslationHook interface {
	BeforeTranslate(ctx *TranslatorHookContext)
	AfterTranslate(ctx *TranslatorHookContext)
}

// TranslatorHookContext describes one lookup. Hooks may rewrite Message,
// Context and Count before the lookup and Result, Found and Error after it.
type TranslatorHookContext struct {
	Domain     string
	Message    string
	Context    string
	HasContext bool
	Plural     bool
	Count      int
	Result     string
	Found      bool
	Error      error
	Metadata   map[string]any
}

func (ctx *TranslatorHookContext) SetMetadata(key string, value any) {
	if ctx == nil || key == "" {
		return
	}
	if ctx.Metadata == nil {
		ctx.Metadata = make(map[string]any)
	}
	ctx.Metadata[key] = value
}

func (ctx *TranslatorHookContext) MetadataValue(key string) (any, bool) {
	if ctx == nil || ctx.Metadata == nil {
		return nil, false
	}
	val, ok := ctx.Metadata[key]
	return val, ok
}

// Key returns the lookup key described by the context.
func (ctx *TranslatorHookContext) Key() Key {
	if ctx.HasContext {
		return ContextKey(ctx.Context, ctx.Message)
	}
	return MessageKey(ctx.Message)
}

func (ctx *TranslatorHookContext) contextArgs() []string {
	if !ctx.HasContext {
		return nil
	}
	return []string{ctx.Context}
}

type TranslationHookFuncs struct {
	Before func(ctx *TranslatorHookContext)
	After  func(ctx *TranslatorHookContext)
}

func (h TranslationHookFuncs) BeforeTranslate(ctx *TranslatorHookContext) {
	if h.Before != nil {
		h.Before(ctx)
	}
}

func (h TranslationHookFuncs) AfterTranslate(ctx *TranslatorHookContext) {
	if h.After != nil {
		h.After(ctx)
	}
}

// NewMissingTranslationLogger logs absent lookups at debug level and failed
// lookups at warn level.
func NewMissingTranslationLogger(logger *slog.Logger) TranslationHook {
	if logger == nil {
		logger = discardLogger()
	}
	return TranslationHookFuncs{
		After: func(ctx *TranslatorHookContext) {
			attrs := []any{
				"domain", ctx.Domain,
				"message", ctx.Message,
			}
			if ctx.HasContext {
				attrs = append(attrs, "context", ctx.Context)
			}
			if ctx.Plural {
				attrs = append(attrs, "count", ctx.Count)
			}

			switch {
			case ctx.Error != nil:
				logger.Warn("textdomain.lookup.failed", append(attrs, "error", ctx.Error)...)
			case !ctx.Found:
				logger.Debug("textdomain.lookup.missing", attrs...)
			}
		},
	}
}

var _ Translator = &HookedTranslator{}

type HookedTranslator struct {
	domain string
	next   Translator
	hooks  []TranslationHook
}

// WrapTranslatorWithHooks runs hooks around every lookup of next.
func WrapTranslatorWithHooks(domain string, next Translator, hooks ...TranslationHook) Translator {
	if next == nil || len(hooks) == 0 {
		return next
	}

	filtered := make([]TranslationHook, 0, len(hooks))
	for _, hook := range hooks {
		if hook == nil {
			continue
		}

		filtered = append(filtered, hook)
	}

	if len(filtered) == 0 {
		return next
	}

	return &HookedTranslator{domain: domain, next: next, hooks: filtered}
}

func (t *HookedTranslator) Translate(message string, context ...string) (string, bool, error) {
	key, err := NewKey(message, context...)
	if err != nil {
		return "", false, err
	}

	ctx := t.newContext(key)
	return t.run(ctx, func() (string, bool, error) {
		return t.next.Translate(ctx.Message, ctx.contextArgs()...)
	})
}

func (t *HookedTranslator) TranslatePlural(count int, message string, context ...string) (string, bool, error) {
	key, err := NewKey(message, context...)
	if err != nil {
		return "", false, err
	}

	ctx := t.newContext(key)
	ctx.Plural = true
	ctx.Count = count
	return t.run(ctx, func() (string, bool, error) {
		return t.next.TranslatePlural(ctx.Count, ctx.Message, ctx.contextArgs()...)
	})
}

func (t *HookedTranslator) newContext(key Key) *TranslatorHookContext {
	return &TranslatorHookContext{
		Domain:     t.domain,
		Message:    key.Message,
		Context:    key.Context,
		HasContext: key.HasContext,
	}
}

func (t *HookedTranslator) run(ctx *TranslatorHookContext, lookup func() (string, bool, error)) (string, bool, error) {
	for _, hook := range t.hooks {
		hook.BeforeTranslate(ctx)
	}

	ctx.Result, ctx.Found, ctx.Error = lookup()

	for _, hook := range t.hooks {
		hook.AfterTranslate(ctx)
	}

	return ctx.Result, ctx.Found, ctx.Error
}
