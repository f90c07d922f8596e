package goi18n

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/nicksnyder/go-i18n/v2/i18n"

	"github.com/goliatone/go-textdomain"
	"github.com/goliatone/go-textdomain/textdomaintest"
)

func TestBundleTranslatorConformance(t *testing.T) {
	textdomaintest.Run(t, func(t *testing.T, catalog *textdomain.Catalog) textdomain.Translator {
		translator, err := NewFromCatalog(catalog)
		if err != nil {
			t.Fatalf("NewFromCatalog: %v", err)
		}
		return translator
	})
}

func TestNewFromCatalogKeepsTextVerbatim(t *testing.T) {
	catalog := textdomain.NewCatalog("app", "en",
		textdomain.NewEntry(textdomain.MessageKey("Greeting"), "Hello {{.Name}}"),
		textdomain.NewPluralEntry(textdomain.MessageKey("Item"), map[textdomain.PluralCategory]string{
			textdomain.PluralOne:   "{{.PluralCount}} item",
			textdomain.PluralOther: "{{.PluralCount}} items",
		}),
	)

	translator, err := NewFromCatalog(catalog)
	if err != nil {
		t.Fatalf("NewFromCatalog: %v", err)
	}

	if got, _, _ := translator.Translate("Greeting"); got != "Hello {{.Name}}" {
		t.Fatalf("Translate(Greeting) = %q", got)
	}
	if got, _, _ := translator.TranslatePlural(3, "Item"); got != "{{.PluralCount}} items" {
		t.Fatalf("TranslatePlural(3, Item) = %q", got)
	}
	if translator.Domain() != "app" {
		t.Fatalf("Domain() = %q want app", translator.Domain())
	}
}

func TestNewFromCatalogPolishForms(t *testing.T) {
	catalog := textdomain.NewCatalog(textdomain.DefaultDomain, "pl",
		textdomain.NewPluralEntry(textdomain.MessageKey("File"), map[textdomain.PluralCategory]string{
			textdomain.PluralOne:   "plik",
			textdomain.PluralFew:   "pliki",
			textdomain.PluralMany:  "plików",
			textdomain.PluralOther: "pliku",
		}),
	)

	translator, err := NewFromCatalog(catalog)
	if err != nil {
		t.Fatalf("NewFromCatalog: %v", err)
	}

	tests := []struct {
		count int
		want  string
	}{
		{count: 1, want: "plik"},
		{count: 3, want: "pliki"},
		{count: 5, want: "plików"},
		{count: -3, want: "pliki"},
	}
	for _, tc := range tests {
		if got, ok, err := translator.TranslatePlural(tc.count, "File"); err != nil || !ok || got != tc.want {
			t.Fatalf("TranslatePlural(%d) = %q,%v,%v want %q", tc.count, got, ok, err, tc.want)
		}
	}
}

func TestNewFromCatalogEmptyPluralSet(t *testing.T) {
	catalog := textdomain.NewCatalog("app", "en",
		textdomain.NewPluralEntry(textdomain.MessageKey("Blank"), map[textdomain.PluralCategory]string{
			textdomain.PluralOther: "",
		}),
	)

	translator, err := NewFromCatalog(catalog)
	if err != nil {
		t.Fatalf("NewFromCatalog: %v", err)
	}

	if got, ok, err := translator.TranslatePlural(2, "Blank"); err != nil || !ok || got != "" {
		t.Fatalf("TranslatePlural(Blank) = %q,%v,%v want empty and found", got, ok, err)
	}
}

func TestLoadMessageFilesFS(t *testing.T) {
	fsys := fstest.MapFS{
		"active.en.toml": &fstest.MapFile{Data: []byte(`
Welcome = "Welcome"
"menu\u0004Open" = "Open menu"

[Item]
one = "One item"
other = "Many items"
`)},
		"active.es.yaml": &fstest.MapFile{Data: []byte("Welcome: Bienvenido\nOnlySpanish: Solo\n")},
	}

	translator, err := New("en", WithDomain("files"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := translator.LoadMessageFilesFS(fsys, "active.en.toml", "active.es.yaml"); err != nil {
		t.Fatalf("LoadMessageFilesFS: %v", err)
	}

	tests := []struct {
		name    string
		plural  bool
		count   int
		message string
		context []string
		want    string
		found   bool
	}{
		{name: "simple", message: "Welcome", want: "Welcome", found: true},
		{name: "context", message: "Open", context: []string{"menu"}, want: "Open menu", found: true},
		{name: "context not registered without context", message: "Open", found: false},
		{name: "plural singular", message: "Item", want: "One item", found: true},
		{name: "plural", plural: true, count: 4, message: "Item", want: "Many items", found: true},
		{name: "other language invisible", message: "OnlySpanish", found: false},
		{name: "plural of simple message", plural: true, count: 2, message: "Welcome", found: false},
	}

	for _, tc := range tests {
		var (
			got string
			ok  bool
			err error
		)
		if tc.plural {
			got, ok, err = translator.TranslatePlural(tc.count, tc.message, tc.context...)
		} else {
			got, ok, err = translator.Translate(tc.message, tc.context...)
		}
		if err != nil || ok != tc.found || got != tc.want {
			t.Fatalf("%s: got %q,%v,%v want %q,%v", tc.name, got, ok, err, tc.want, tc.found)
		}
	}

	if translator.Bundle() == nil {
		t.Fatal("expected bundle")
	}
}

func TestLoadMessageFilesFSMissingFile(t *testing.T) {
	translator, err := New("en")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := translator.LoadMessageFilesFS(fstest.MapFS{}, "active.en.toml"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestAddMessages(t *testing.T) {
	translator, err := New("en")
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	err = translator.AddMessages(
		nil,
		&i18n.Message{ID: ""},
		&i18n.Message{ID: "Hello", Other: "Hi"},
		&i18n.Message{ID: "Empty"},
	)
	if err != nil {
		t.Fatalf("AddMessages: %v", err)
	}

	if got, ok, _ := translator.Translate("Hello"); !ok || got != "Hi" {
		t.Fatalf("Translate(Hello) = %q,%v", got, ok)
	}
	if got, ok, _ := translator.Translate("Empty"); !ok || got != "" {
		t.Fatalf("Translate(Empty) = %q,%v want empty and found", got, ok)
	}
}

func TestNewErrors(t *testing.T) {
	if _, err := New("not a locale!"); err == nil {
		t.Fatal("expected error for invalid locale")
	}
	if _, err := NewFromCatalog(nil); err == nil {
		t.Fatal("expected error for nil catalog")
	}
	if _, _, err := (&BundleTranslator{}).Translate(""); !errors.Is(err, textdomain.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}
