// Package goi18n serves textdomain lookups from a go-i18n Bundle.
//
// Message IDs are textdomain.Key IDs: the message itself, or
// "context\x04message" for messages scoped by a context.
package goi18n

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"math"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-textdomain"
)

// Catalog text is returned verbatim, so messages built from catalogs use
// delimiters that never occur in practice and go-i18n never parses them as
// templates.
const (
	verbatimLeftDelim  = "\x00{{"
	verbatimRightDelim = "}}\x00"
)

var _ textdomain.Translator = (*BundleTranslator)(nil)

type entryInfo struct {
	plural bool
	empty  bool
	// blank holds plural categories registered with empty text. go-i18n skips
	// empty templates, so these are answered before localizing.
	blank map[textdomain.PluralCategory]bool
	// blankSingular marks plural sets whose singular text is empty.
	blankSingular bool
}

// BundleTranslator answers lookups for one domain and language from a go-i18n
// Bundle. Only messages registered through the translator are visible, so
// the bundle's own language fallback never leaks another language's text.
type BundleTranslator struct {
	domain    string
	tag       language.Tag
	bundle    *i18n.Bundle
	localizer *i18n.Localizer
	entries   map[string]entryInfo
	rule      textdomain.PluralRule
	logger    *slog.Logger
}

type options struct {
	domain string
	logger *slog.Logger
}

// Option configures a BundleTranslator.
type Option func(*options)

func WithDomain(domain string) Option {
	return func(o *options) {
		o.domain = domain
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// New returns an empty translator for locale backed by a new bundle with
// TOML, YAML and JSON message file support.
func New(locale string, opts ...Option) (*BundleTranslator, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("goi18n: parse locale %q: %w", locale, err)
	}

	cfg := options{domain: textdomain.DefaultDomain}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	bundle := i18n.NewBundle(tag)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)

	return &BundleTranslator{
		domain:    cfg.domain,
		tag:       tag,
		bundle:    bundle,
		localizer: i18n.NewLocalizer(bundle, tag.String()),
		entries:   make(map[string]entryInfo),
		rule:      textdomain.CLDRRule(tag),
		logger:    cfg.logger,
	}, nil
}

// NewFromCatalog registers every entry of catalog in a new bundle.
func NewFromCatalog(catalog *textdomain.Catalog, opts ...Option) (*BundleTranslator, error) {
	if catalog == nil {
		return nil, errors.New("goi18n: nil catalog")
	}

	opts = append([]Option{WithDomain(catalog.Domain)}, opts...)
	translator, err := New(catalog.Locale, opts...)
	if err != nil {
		return nil, err
	}

	messages := make([]*i18n.Message, 0, len(catalog.Entries))
	for key, entry := range catalog.Entries {
		if err := key.Validate(); err != nil {
			return nil, fmt.Errorf("goi18n: %w", err)
		}
		messages = append(messages, messageFromEntry(entry))
	}
	if err := translator.AddMessages(messages...); err != nil {
		return nil, err
	}

	for _, entry := range catalog.Entries {
		if entry.IsPlural() {
			translator.entries[entry.Key.ID()] = pluralInfo(entry)
		}
	}
	return translator, nil
}

// LoadMessageFilesFS loads go-i18n message files (for example active.es.toml)
// from fsys. Messages of files whose language differs from the translator's
// are added to the bundle but stay invisible to lookups.
func (t *BundleTranslator) LoadMessageFilesFS(fsys fs.FS, paths ...string) error {
	for _, path := range paths {
		file, err := t.bundle.LoadMessageFileFS(fsys, path)
		if err != nil {
			return fmt.Errorf("goi18n: load %s: %w", path, err)
		}
		if file.Tag != t.tag {
			t.logger.Debug("goi18n.file.skipped", "path", path, "tag", file.Tag.String(), "want", t.tag.String())
			continue
		}
		t.index(file.Messages...)
	}
	return nil
}

// AddMessages registers messages for the translator's language.
func (t *BundleTranslator) AddMessages(messages ...*i18n.Message) error {
	present := make([]*i18n.Message, 0, len(messages))
	for _, message := range messages {
		if message == nil || message.ID == "" {
			continue
		}
		// go-i18n drops messages without text; the index keeps them visible.
		if !isEmpty(message) {
			present = append(present, message)
		}
	}

	if len(present) > 0 {
		if err := t.bundle.AddMessages(t.tag, present...); err != nil {
			return fmt.Errorf("goi18n: add messages: %w", err)
		}
	}
	t.index(messages...)
	return nil
}

func (t *BundleTranslator) Domain() string {
	return t.domain
}

// Bundle exposes the underlying bundle.
func (t *BundleTranslator) Bundle() *i18n.Bundle {
	return t.bundle
}

func (t *BundleTranslator) Translate(message string, context ...string) (string, bool, error) {
	key, err := textdomain.NewKey(message, context...)
	if err != nil {
		return "", false, err
	}

	info, ok := t.entries[key.ID()]
	if !ok {
		return "", false, nil
	}
	if info.empty || info.blankSingular {
		return "", true, nil
	}

	config := &i18n.LocalizeConfig{MessageID: key.ID()}
	if info.plural {
		config.PluralCount = 1
	}
	return t.localize(config)
}

func (t *BundleTranslator) TranslatePlural(count int, message string, context ...string) (string, bool, error) {
	key, err := textdomain.NewKey(message, context...)
	if err != nil {
		return "", false, err
	}

	info, ok := t.entries[key.ID()]
	if !ok || !info.plural {
		return "", false, nil
	}
	if info.empty || info.blank[t.rule.Category(count)] {
		return "", true, nil
	}

	return t.localize(&i18n.LocalizeConfig{
		MessageID:   key.ID(),
		PluralCount: absCount(count),
	})
}

func (t *BundleTranslator) localize(config *i18n.LocalizeConfig) (string, bool, error) {
	text, err := t.localizer.Localize(config)
	if err == nil {
		return text, true, nil
	}

	var notFound *i18n.MessageNotFoundErr
	if errors.As(err, &notFound) {
		return "", false, nil
	}

	// A plural set without text for the selected form answers with "other".
	if config.PluralCount != nil {
		t.logger.Debug("goi18n.plural.fallback", "id", config.MessageID, "count", config.PluralCount, "error", err)
		if text, err := t.localizer.Localize(&i18n.LocalizeConfig{MessageID: config.MessageID}); err == nil {
			return text, true, nil
		}
	}

	t.logger.Debug("goi18n.localize.failed", "id", config.MessageID, "error", err)
	return "", false, nil
}

func (t *BundleTranslator) index(messages ...*i18n.Message) {
	for _, message := range messages {
		if message == nil || message.ID == "" {
			continue
		}
		t.entries[message.ID] = entryInfo{
			plural: isPlural(message),
			empty:  isEmpty(message),
		}
	}
}

func messageFromEntry(entry textdomain.Entry) *i18n.Message {
	message := &i18n.Message{
		ID:         entry.Key.ID(),
		LeftDelim:  verbatimLeftDelim,
		RightDelim: verbatimRightDelim,
	}

	if !entry.IsPlural() {
		message.Other = entry.Text
		return message
	}

	other := entry.Forms[textdomain.PluralOther]
	form := func(category textdomain.PluralCategory) string {
		if text, ok := entry.Forms[category]; ok {
			return text
		}
		return other
	}
	message.Zero = form(textdomain.PluralZero)
	message.One = form(textdomain.PluralOne)
	message.Two = form(textdomain.PluralTwo)
	message.Few = form(textdomain.PluralFew)
	message.Many = form(textdomain.PluralMany)
	message.Other = other
	if !isPlural(message) {
		// every form is empty; keep the entry marked as a plural set
		message.Description = pluralMarker
	}
	return message
}

// pluralInfo indexes the empty forms of a plural set, with missing categories
// answered by "other".
func pluralInfo(entry textdomain.Entry) entryInfo {
	info := entryInfo{plural: true, empty: true}
	for _, category := range []textdomain.PluralCategory{
		textdomain.PluralZero, textdomain.PluralOne, textdomain.PluralTwo,
		textdomain.PluralFew, textdomain.PluralMany, textdomain.PluralOther,
	} {
		if text, _ := entry.Form(category); text == "" {
			if info.blank == nil {
				info.blank = make(map[textdomain.PluralCategory]bool)
			}
			info.blank[category] = true
		} else {
			info.empty = false
		}
	}
	if text, _ := entry.Singular(); text == "" {
		info.blankSingular = true
	}
	return info
}

// pluralMarker flags plural sets whose forms are all empty, which are
// otherwise indistinguishable from an empty simple message.
const pluralMarker = "textdomain:plural"

func isPlural(message *i18n.Message) bool {
	if strings.Contains(message.Description, pluralMarker) {
		return true
	}
	return message.Zero != "" || message.One != "" || message.Two != "" || message.Few != "" || message.Many != ""
}

func isEmpty(message *i18n.Message) bool {
	return message.Zero == "" && message.One == "" && message.Two == "" &&
		message.Few == "" && message.Many == "" && message.Other == ""
}

func absCount(count int) int {
	if count == math.MinInt {
		return math.MaxInt
	}
	if count < 0 {
		return -count
	}
	return count
}
