// Package textdomaintest provides a conformance suite for textdomain.Translator
// implementations.
package textdomaintest

import (
	"errors"
	"sync"
	"testing"

	"github.com/goliatone/go-textdomain"
)

// Domain and Locale of the catalog handed to a Factory.
const (
	Domain = "conformance"
	Locale = "en"
)

// Factory builds the translator under test. It must serve exactly the entries
// of catalog, using English plural rules.
type Factory func(t *testing.T, catalog *textdomain.Catalog) textdomain.Translator

// Catalog returns the fixture every translator is checked against.
func Catalog() *textdomain.Catalog {
	return textdomain.NewCatalog(Domain, Locale,
		textdomain.NewEntry(textdomain.ContextKey("new-comment", "Save"), "Create comment"),
		textdomain.NewEntry(textdomain.ContextKey("edit-comment", "Save"), "Edit comment"),
		textdomain.NewEntry(textdomain.MessageKey("Cancel"), "Abort"),
		textdomain.NewEntry(textdomain.ContextKey("dialog", "Cancel"), "Dismiss"),
		textdomain.NewEntry(textdomain.MessageKey("Untranslated on purpose"), ""),
		textdomain.NewEntry(textdomain.ContextKey("", "Blank context"), "Empty context"),
		textdomain.NewPluralEntry(textdomain.MessageKey("Save item"), map[textdomain.PluralCategory]string{
			textdomain.PluralOne:   "Save item",
			textdomain.PluralOther: "Save items",
		}),
		textdomain.NewPluralEntry(textdomain.ContextKey("cart", "File"), map[textdomain.PluralCategory]string{
			textdomain.PluralOne:   "One file in the cart",
			textdomain.PluralOther: "Files in the cart",
		}),
		textdomain.NewPluralEntry(textdomain.MessageKey("Blank one"), map[textdomain.PluralCategory]string{
			textdomain.PluralOne:   "",
			textdomain.PluralOther: "Items",
		}),
	)
}

type lookup struct {
	name    string
	plural  bool
	count   int
	message string
	context []string
	want    string
	found   bool
}

func (l lookup) run(tr textdomain.Translator) (string, bool, error) {
	if l.plural {
		return tr.TranslatePlural(l.count, l.message, l.context...)
	}
	return tr.Translate(l.message, l.context...)
}

func ctx(value string) []string {
	return []string{value}
}

var lookups = []lookup{
	{name: "context new-comment", message: "Save", context: ctx("new-comment"), want: "Create comment", found: true},
	{name: "context edit-comment", message: "Save", context: ctx("edit-comment"), want: "Edit comment", found: true},
	{name: "no context registered", message: "Save", found: false},
	{name: "unknown context", message: "Save", context: ctx("delete-comment"), found: false},
	{name: "no context", message: "Cancel", want: "Abort", found: true},
	{name: "context next to no context", message: "Cancel", context: ctx("dialog"), want: "Dismiss", found: true},
	{name: "empty translation", message: "Untranslated on purpose", want: "", found: true},
	{name: "empty context", message: "Blank context", context: ctx(""), want: "Empty context", found: true},
	{name: "empty context is not absent context", message: "Blank context", found: false},
	{name: "unknown message", message: "Nope", found: false},
	{name: "plural set singular", message: "Save item", want: "Save item", found: true},
	{name: "plural one", plural: true, count: 1, message: "Save item", want: "Save item", found: true},
	{name: "plural five", plural: true, count: 5, message: "Save item", want: "Save items", found: true},
	{name: "plural two", plural: true, count: 2, message: "Save item", want: "Save items", found: true},
	{name: "plural zero", plural: true, count: 0, message: "Save item", want: "Save items", found: true},
	{name: "plural hundred", plural: true, count: 100, message: "Save item", want: "Save items", found: true},
	{name: "plural with context one", plural: true, count: 1, message: "File", context: ctx("cart"), want: "One file in the cart", found: true},
	{name: "plural with context many", plural: true, count: 7, message: "File", context: ctx("cart"), want: "Files in the cart", found: true},
	{name: "plural without registered context", plural: true, count: 7, message: "File", found: false},
	{name: "plural of simple entry", plural: true, count: 2, message: "Cancel", found: false},
	{name: "plural unknown", plural: true, count: 2, message: "Nope", found: false},
	{name: "empty plural form", plural: true, count: 1, message: "Blank one", want: "", found: true},
	{name: "plural next to empty form", plural: true, count: 3, message: "Blank one", want: "Items", found: true},
	{name: "empty singular of plural set", message: "Blank one", want: "", found: true},
}

// Run checks factory's translators against the Translator contract.
func Run(t *testing.T, factory Factory) {
	t.Helper()

	t.Run("lookups", func(t *testing.T) {
		tr := factory(t, Catalog())
		for _, tc := range lookups {
			t.Run(tc.name, func(t *testing.T) {
				got, ok, err := tc.run(tr)
				if err != nil {
					t.Fatalf("unexpected err: %v", err)
				}
				if ok != tc.found {
					t.Fatalf("found = %v want %v (got %q)", ok, tc.found, got)
				}
				if got != tc.want {
					t.Fatalf("translation = %q want %q", got, tc.want)
				}
			})
		}
	})

	t.Run("independent registration", func(t *testing.T) {
		catalog := textdomain.NewCatalog(Domain, Locale,
			textdomain.NewEntry(textdomain.ContextKey("menu", "Open"), "Open menu"),
		)
		tr := factory(t, catalog)

		if _, ok, err := tr.Translate("Open"); err != nil || ok {
			t.Fatalf("Translate(Open) found=%v err=%v, want absent", ok, err)
		}
		if got, ok, err := tr.Translate("Open", "menu"); err != nil || !ok || got != "Open menu" {
			t.Fatalf("Translate(Open, menu) = %q,%v,%v", got, ok, err)
		}
	})

	t.Run("invalid arguments", func(t *testing.T) {
		tr := factory(t, Catalog())

		if _, _, err := tr.Translate(""); !errors.Is(err, textdomain.ErrInvalidArgument) {
			t.Fatalf("Translate(\"\") err = %v want ErrInvalidArgument", err)
		}
		if _, _, err := tr.TranslatePlural(1, ""); !errors.Is(err, textdomain.ErrInvalidArgument) {
			t.Fatalf("TranslatePlural(1, \"\") err = %v want ErrInvalidArgument", err)
		}
		if _, _, err := tr.Translate("Save", "a", "b"); !errors.Is(err, textdomain.ErrInvalidArgument) {
			t.Fatalf("Translate with two contexts err = %v want ErrInvalidArgument", err)
		}

		// "context\x04message" must never reach the entry registered under that context
		for _, args := range [][]string{
			{"new-comment\x04Save"},
			{"Save", "new\x04comment"},
		} {
			got, ok, err := tr.Translate(args[0], args[1:]...)
			if !errors.Is(err, textdomain.ErrInvalidArgument) {
				t.Fatalf("Translate(%q) = %q,%v,%v want ErrInvalidArgument", args, got, ok, err)
			}
		}
		if _, ok, err := tr.TranslatePlural(1, "cart\x04File"); ok || !errors.Is(err, textdomain.ErrInvalidArgument) {
			t.Fatalf("TranslatePlural(cart\\x04File) ok=%v err=%v want ErrInvalidArgument", ok, err)
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		tr := factory(t, Catalog())
		for _, tc := range lookups {
			first, firstOK, _ := tc.run(tr)
			for i := 0; i < 3; i++ {
				got, ok, _ := tc.run(tr)
				if got != first || ok != firstOK {
					t.Fatalf("%s: lookup %d = %q,%v want %q,%v", tc.name, i, got, ok, first, firstOK)
				}
			}
		}
	})

	t.Run("concurrent", func(t *testing.T) {
		tr := factory(t, Catalog())

		var wg sync.WaitGroup
		errs := make(chan string, len(lookups)*8)
		for worker := 0; worker < 8; worker++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for _, tc := range lookups {
					got, ok, err := tc.run(tr)
					if err != nil || ok != tc.found || got != tc.want {
						errs <- tc.name
					}
				}
			}()
		}
		wg.Wait()
		close(errs)

		for name := range errs {
			t.Errorf("concurrent lookup %q returned an unexpected result", name)
		}
	})
}
