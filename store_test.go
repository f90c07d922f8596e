package textdomain

import (
	"errors"
	"testing"
)

func TestStaticStoreEntry(t *testing.T) {
	store := NewStaticStore(Translations{
		"en": NewCatalog("messages", "en", NewEntry(MessageKey("Welcome"), "Welcome")),
		"es": NewCatalog("messages", "es", NewEntry(MessageKey("Welcome"), "Bienvenido")),
	})

	tests := []struct {
		locale string
		key    Key
		want   string
		ok     bool
	}{
		{locale: "en", key: MessageKey("Welcome"), want: "Welcome", ok: true},
		{locale: "es", key: MessageKey("Welcome"), want: "Bienvenido", ok: true},
		{locale: "en", key: MessageKey("missing"), want: "", ok: false},
		{locale: "en", key: ContextKey("menu", "Welcome"), want: "", ok: false},
		{locale: "fr", key: MessageKey("Welcome"), want: "", ok: false},
	}

	for _, tc := range tests {
		entry, ok := store.Entry(tc.locale, tc.key)
		if ok != tc.ok || entry.Text != tc.want {
			t.Fatalf("Entry(%q,%s) = %q,%v want %q,%v", tc.locale, tc.key, entry.Text, ok, tc.want, tc.ok)
		}
	}

	locales := store.Locales()
	if len(locales) != 2 || locales[0] != "en" || locales[1] != "es" {
		t.Fatalf("Locales() = %v", locales)
	}
}

func TestNewStaticStoreCopiesInput(t *testing.T) {
	src := Translations{
		"en": NewCatalog("messages", "en",
			NewEntry(MessageKey("Welcome"), "Welcome"),
			NewPluralEntry(MessageKey("File"), map[PluralCategory]string{PluralOne: "file", PluralOther: "files"}),
		),
	}

	store := NewStaticStore(src)

	src["en"].Set(NewEntry(MessageKey("Welcome"), "Changed"))
	src["en"].Set(NewEntry(MessageKey("new"), "new"))
	src["en"].Entries[MessageKey("File")].Forms[PluralOther] = "changed"

	if entry, ok := store.Entry("en", MessageKey("Welcome")); !ok || entry.Text != "Welcome" {
		t.Fatalf("expected snapshot to remain unchanged, got %q, ok=%v", entry.Text, ok)
	}
	if _, ok := store.Entry("en", MessageKey("new")); ok {
		t.Fatal("unexpected key copied from mutated input")
	}
	if entry, _ := store.Entry("en", MessageKey("File")); entry.Forms[PluralOther] != "files" {
		t.Fatalf("plural forms shared with input: %v", entry.Forms)
	}

	// callers cannot mutate the store through returned entries either
	entry, _ := store.Entry("en", MessageKey("File"))
	entry.Forms[PluralOne] = "mutated"
	if again, _ := store.Entry("en", MessageKey("File")); again.Forms[PluralOne] != "file" {
		t.Fatalf("store mutated through returned entry: %v", again.Forms)
	}
}

func TestStaticStoreNormalizesLocales(t *testing.T) {
	store := NewStaticStore(Translations{
		"pt_BR": NewCatalog("messages", "pt_BR", NewEntry(MessageKey("Yes"), "Sim")),
	})

	if entry, ok := store.Entry("pt-BR", MessageKey("Yes")); !ok || entry.Text != "Sim" {
		t.Fatalf("Entry(pt-BR) = %q,%v", entry.Text, ok)
	}
	rule := store.PluralRule("pt-BR")
	if got := rule.Category(1); got != PluralOne {
		t.Fatalf("pt-BR rule for 1 = %s want one", got)
	}
	if got := rule.Category(7); got != PluralOther {
		t.Fatalf("pt-BR rule for 7 = %s want other", got)
	}
}

func TestNewStaticStoreFromLoader(t *testing.T) {
	called := false
	loader := LoaderFunc(func() (Translations, error) {
		called = true
		return Translations{
			"en": NewCatalog("messages", "en", NewEntry(MessageKey("Welcome"), "Welcome")),
		}, nil
	})

	store, err := NewStaticStoreFromLoader(loader)
	if err != nil {
		t.Fatalf("NewStaticStoreFromLoader: %v", err)
	}

	if !called {
		t.Fatal("loader not invoked")
	}

	if entry, ok := store.Entry("en", MessageKey("Welcome")); !ok || entry.Text != "Welcome" {
		t.Fatalf("Entry returned %q,%v", entry.Text, ok)
	}
}

func TestNewStaticStoreFromLoaderError(t *testing.T) {
	boom := errors.New("boom")
	_, err := NewStaticStoreFromLoader(LoaderFunc(func() (Translations, error) {
		return nil, boom
	}))
	if !errors.Is(err, boom) {
		t.Fatalf("expected loader error, got %v", err)
	}
}

func TestNewStaticStoreFromLoaderNil(t *testing.T) {
	store, err := NewStaticStoreFromLoader(nil)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if store == nil {
		t.Fatal("expected non-nil store")
	}

	if locales := store.Locales(); len(locales) != 0 {
		t.Fatalf("expected no locales, got %v", locales)
	}
}

func TestCatalogTranslatorFallbackChain(t *testing.T) {
	store := NewStaticStore(Translations{
		"es": NewCatalog("messages", "es",
			NewEntry(MessageKey("Welcome"), "Bienvenido"),
			NewEntry(MessageKey("Goodbye"), "Adiós"),
		),
		"es-MX": NewCatalog("messages", "es-MX", NewEntry(MessageKey("Welcome"), "Bienvenido, amigo")),
		"en":    NewCatalog("messages", "en", NewEntry(MessageKey("Help"), "Help")),
	})

	resolver := NewStaticFallbackResolver()
	resolver.Set("es-MX", "en")

	translator, err := NewCatalogTranslator(store,
		WithTranslatorLocale("es_MX"),
		WithTranslatorFallbackResolver(resolver),
	)
	if err != nil {
		t.Fatalf("NewCatalogTranslator: %v", err)
	}

	tests := []struct {
		message string
		want    string
		ok      bool
	}{
		{message: "Welcome", want: "Bienvenido, amigo", ok: true},
		{message: "Goodbye", want: "Adiós", ok: true},
		{message: "Help", want: "Help", ok: true},
		{message: "Missing", ok: false},
	}

	for _, tc := range tests {
		got, ok, err := translator.Translate(tc.message)
		if err != nil {
			t.Fatalf("Translate(%q): %v", tc.message, err)
		}
		if ok != tc.ok || got != tc.want {
			t.Fatalf("Translate(%q) = %q,%v want %q,%v", tc.message, got, ok, tc.want, tc.ok)
		}
	}

	if translator.Locale() != "es-MX" || translator.Domain() != DefaultDomain {
		t.Fatalf("translator bound to %s/%s", translator.Domain(), translator.Locale())
	}
}

func TestCatalogTranslatorUsesRuleOfMatchingCatalog(t *testing.T) {
	forms := map[PluralCategory]string{
		PluralOne:   "plik",
		PluralFew:   "pliki",
		PluralMany:  "plików",
		PluralOther: "pliku",
	}
	store := NewStaticStore(Translations{
		"pl": NewCatalog("messages", "pl", NewPluralEntry(MessageKey("File"), forms)),
	})

	translator, err := NewCatalogTranslator(store, WithTranslatorLocale("pl-PL"))
	if err != nil {
		t.Fatalf("NewCatalogTranslator: %v", err)
	}

	tests := []struct {
		count int
		want  string
	}{
		{count: 1, want: "plik"},
		{count: 2, want: "pliki"},
		{count: 4, want: "pliki"},
		{count: 5, want: "plików"},
		{count: 12, want: "plików"},
		{count: 22, want: "pliki"},
		{count: 0, want: "plików"},
	}

	for _, tc := range tests {
		got, ok, err := translator.TranslatePlural(tc.count, "File")
		if err != nil || !ok {
			t.Fatalf("TranslatePlural(%d) ok=%v err=%v", tc.count, ok, err)
		}
		if got != tc.want {
			t.Fatalf("TranslatePlural(%d) = %q want %q", tc.count, got, tc.want)
		}
	}
}

func TestCatalogTranslatorPluralRuleOverride(t *testing.T) {
	store := NewStaticStore(Translations{
		"en": NewCatalog("messages", "en", NewPluralEntry(MessageKey("Day"), map[PluralCategory]string{
			PluralZero:  "no days",
			PluralOne:   "one day",
			PluralOther: "days",
		})),
	})

	zeroAware := PluralRuleFunc(func(count int) PluralCategory {
		if count == 0 {
			return PluralZero
		}
		return TwoFormRule.Category(count)
	})

	translator, err := NewCatalogTranslator(store,
		WithTranslatorLocale("en"),
		WithTranslatorPluralRule(zeroAware),
	)
	if err != nil {
		t.Fatalf("NewCatalogTranslator: %v", err)
	}

	if got, _, _ := translator.TranslatePlural(0, "Day"); got != "no days" {
		t.Fatalf("TranslatePlural(0) = %q want no days", got)
	}
	if got, _, _ := translator.TranslatePlural(3, "Day"); got != "days" {
		t.Fatalf("TranslatePlural(3) = %q want days", got)
	}
}

func TestNewCatalogTranslatorNilStore(t *testing.T) {
	if _, err := NewCatalogTranslator(nil); err == nil {
		t.Fatal("expected error for nil store")
	}
}
