package textdomain

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const (
	sectionMessages = "messages"
	sectionContexts = "contexts"
)

// FileLoader reads catalog files for a single domain. Files are keyed by
// locale; each locale holds a "messages" section and an optional "contexts"
// section mapping context to messages:
//
//	{
//	  "en": {
//	    "messages": {"Save item": {"one": "Save item", "other": "Save items"}},
//	    "contexts": {"new-comment": {"Save": "Create comment"}}
//	  }
//	}
//
// A string value is a simple translation, a map of plural category to text is
// a plural set. JSON, YAML and TOML are supported.
type FileLoader struct {
	domain string
	paths  []string
}

func NewFileLoader(paths ...string) *FileLoader {
	return &FileLoader{domain: DefaultDomain, paths: append([]string(nil), paths...)}
}

// WithDomain sets the domain stamped on loaded catalogs.
func (l *FileLoader) WithDomain(domain string) *FileLoader {
	if l == nil || domain == "" {
		return l
	}
	l.domain = domain
	return l
}

// Domain returns the domain stamped on loaded catalogs.
func (l *FileLoader) Domain() string {
	if l == nil {
		return ""
	}
	return l.domain
}

func (l *FileLoader) Load() (Translations, error) {
	if l == nil || len(l.paths) == 0 {
		return nil, ErrNoLoaderPaths
	}

	catalogs := make(Translations)

	for _, path := range l.paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("textdomain: read %s: %w", path, err)
		}

		raw, err := decodeCatalogFile(path, data)
		if err != nil {
			return nil, fmt.Errorf("textdomain: decode %s: %w", path, err)
		}

		if err := mergeRawCatalogs(catalogs, l.domain, path, raw); err != nil {
			return nil, fmt.Errorf("textdomain: %s: %w", path, err)
		}
	}

	return catalogs, nil
}

func decodeCatalogFile(path string, data []byte) (map[string]any, error) {
	ext := strings.ToLower(filepath.Ext(path))

	var raw map[string]any
	switch ext {
	case ".json":
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("yaml parse error: %w", err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("toml parse error: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported extension %s", ext)
	}

	if len(raw) == 0 {
		return nil, errors.New("empty catalog file")
	}
	return raw, nil
}

func mergeRawCatalogs(dst Translations, domain, source string, raw map[string]any) error {
	// sorted so errors are reported deterministically
	locales := sortedKeys(raw)

	for _, locale := range locales {
		code := normalizeLocale(locale)
		if code == "" {
			return errors.New("empty locale")
		}

		sections, ok := raw[locale].(map[string]any)
		if !ok {
			return fmt.Errorf("%s: locale value must be a table, got %T", locale, raw[locale])
		}

		catalog := dst[code]
		if catalog == nil {
			catalog = NewCatalog(domain, code)
			dst[code] = catalog
		}

		for _, section := range sortedKeys(sections) {
			switch section {
			case sectionMessages:
				messages, ok := sections[section].(map[string]any)
				if !ok {
					return fmt.Errorf("%s/%s: expected a table, got %T", locale, section, sections[section])
				}
				if err := addRawEntries(catalog, nil, source, messages); err != nil {
					return fmt.Errorf("%s: %w", locale, err)
				}
			case sectionContexts:
				contexts, ok := sections[section].(map[string]any)
				if !ok {
					return fmt.Errorf("%s/%s: expected a table, got %T", locale, section, sections[section])
				}
				for _, context := range sortedKeys(contexts) {
					messages, ok := contexts[context].(map[string]any)
					if !ok {
						return fmt.Errorf("%s/%s/%s: expected a table, got %T", locale, section, context, contexts[context])
					}
					ctx := context
					if err := addRawEntries(catalog, &ctx, source, messages); err != nil {
						return fmt.Errorf("%s [%s]: %w", locale, context, err)
					}
				}
			default:
				return fmt.Errorf("%s: unknown section %q", locale, section)
			}
		}
	}

	return nil
}

func addRawEntries(catalog *Catalog, context *string, source string, messages map[string]any) error {
	for message, value := range messages {
		key := MessageKey(message)
		if context != nil {
			key = ContextKey(*context, message)
		}
		if err := key.Validate(); err != nil {
			return err
		}

		entry, err := buildEntry(key, value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		entry.Source = source
		catalog.Set(entry)
	}
	return nil
}

func buildEntry(key Key, value any) (Entry, error) {
	switch v := value.(type) {
	case string:
		return NewEntry(key, v), nil
	case map[string]any:
		forms := make(map[PluralCategory]string, len(v))
		for category, text := range v {
			cat, err := ParsePluralCategory(category)
			if err != nil {
				return Entry{}, err
			}
			textStr, ok := text.(string)
			if !ok {
				return Entry{}, fmt.Errorf("plural form %s must be a string, got %T", category, text)
			}
			forms[cat] = textStr
		}
		return BuildPluralEntry(key, forms)
	default:
		return Entry{}, fmt.Errorf("unsupported message value type: %T", value)
	}
}

// BuildPluralEntry validates forms and builds a plural set. A set must define
// "other" unless it has a single form, which then becomes "other". forms is
// not modified.
func BuildPluralEntry(key Key, forms map[PluralCategory]string) (Entry, error) {
	if len(forms) == 0 {
		return Entry{}, errors.New("no plural forms defined")
	}

	if _, ok := forms[PluralOther]; ok {
		return NewPluralEntry(key, forms), nil
	}
	if len(forms) != 1 {
		return Entry{}, errors.New("missing 'other' plural form")
	}

	var text string
	for _, form := range forms {
		text = form
	}
	return NewPluralEntry(key, map[PluralCategory]string{PluralOther: text}), nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
