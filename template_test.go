package textdomain

import (
	"errors"
	"html/template"
	"math"
	"strings"
	"testing"
)

func newTemplateGettext(t *testing.T) *Gettext {
	t.Helper()

	registry := NewRegistry(nil)
	registry.Register(DefaultDomain, NewMapTranslator(DefaultDomain, "es",
		NewEntry(MessageKey("Welcome"), "Bienvenido"),
		NewEntry(ContextKey("menu", "Open"), "Abrir menú"),
		NewPluralEntry(MessageKey("file"), map[PluralCategory]string{PluralOne: "archivo", PluralOther: "archivos"}),
		NewPluralEntry(ContextKey("cart", "item"), map[PluralCategory]string{PluralOne: "artículo", PluralOther: "artículos"}),
	))
	registry.Register("admin", NewMapTranslator("admin", "es",
		NewEntry(MessageKey("Dashboard"), "Panel"),
	))
	return NewGettext(registry, nil)
}

func TestTemplateHelpers(t *testing.T) {
	helpers := TemplateHelpers(newTemplateGettext(t))

	tests := []struct {
		name string
		src  string
		data any
		want string
	}{
		{name: "gettext", src: `{{ gettext "Welcome" }}`, want: "Bienvenido"},
		{name: "gettext missing", src: `{{ gettext "Goodbye" }}`, want: "Goodbye"},
		{name: "dgettext", src: `{{ dgettext "admin" "Dashboard" }}`, want: "Panel"},
		{name: "pgettext", src: `{{ pgettext "menu" "Open" }}`, want: "Abrir menú"},
		{name: "ngettext literal", src: `{{ ngettext "file" "files" 1 }}`, want: "archivo"},
		{name: "ngettext field", src: `{{ ngettext "file" "files" .Count }}`, data: struct{ Count int64 }{Count: 3}, want: "archivos"},
		{name: "ngettext unsigned", src: `{{ ngettext "file" "files" .Count }}`, data: struct{ Count uint8 }{Count: 1}, want: "archivo"},
		{name: "ngettext missing", src: `{{ ngettext "dog" "dogs" 2 }}`, want: "dogs"},
		{name: "npgettext", src: `{{ npgettext "cart" "item" "items" 2 }}`, want: "artículos"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tmpl, err := template.New(tc.name).Funcs(template.FuncMap(helpers)).Parse(tc.src)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}

			var out strings.Builder
			if err := tmpl.Execute(&out, tc.data); err != nil {
				t.Fatalf("Execute: %v", err)
			}

			if got := out.String(); got != tc.want {
				t.Fatalf("%s rendered %q want %q", tc.src, got, tc.want)
			}
		})
	}
}

func TestTemplateHelpersRejectBadCounts(t *testing.T) {
	helpers := TemplateHelpers(newTemplateGettext(t))

	tests := []struct {
		name string
		src  string
		data any
	}{
		{name: "string literal", src: `{{ ngettext "file" "files" "3" }}`},
		{name: "float field", src: `{{ ngettext "file" "files" .Count }}`, data: struct{ Count float64 }{Count: 2.5}},
		{name: "overflowing field", src: `{{ npgettext "cart" "item" "items" .Count }}`, data: struct{ Count uint64 }{Count: math.MaxUint64}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tmpl, err := template.New(tc.name).Funcs(template.FuncMap(helpers)).Parse(tc.src)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}

			var out strings.Builder
			err = tmpl.Execute(&out, tc.data)
			if !errors.Is(err, ErrInvalidArgument) {
				t.Fatalf("Execute(%s) error = %v want ErrInvalidArgument", tc.src, err)
			}
		})
	}
}

func TestToCount(t *testing.T) {
	tests := []struct {
		value   any
		want    int
		wantErr bool
	}{
		{value: 3, want: 3},
		{value: int32(-2), want: -2},
		{value: int64(-9), want: -9},
		{value: uint16(7), want: 7},
		{value: uint64(12), want: 12},
		{value: uint64(math.MaxUint64), wantErr: true},
		{value: uint(math.MaxUint), wantErr: true},
		{value: "3", wantErr: true},
		{value: 1.5, wantErr: true},
		{value: nil, wantErr: true},
	}

	for _, tc := range tests {
		got, err := toCount(tc.value)
		if tc.wantErr {
			if !errors.Is(err, ErrInvalidArgument) {
				t.Fatalf("toCount(%v) error = %v want ErrInvalidArgument", tc.value, err)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Fatalf("toCount(%v) = %d,%v want %d", tc.value, got, err, tc.want)
		}
	}
}
