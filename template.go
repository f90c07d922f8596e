package textdomain

import (
	"fmt"
	"math"
	"text/template"
)

// TemplateHelpers exposes the gettext facade to text/template and html/template.
// Counts accept any integer kind so template literals and struct fields work;
// other kinds, and values that do not fit an int, fail template execution.
func TemplateHelpers(g *Gettext) template.FuncMap {
	return template.FuncMap{
		"gettext": func(message string) string {
			return g.Gettext(message)
		},
		"dgettext": func(domain, message string) string {
			return g.DGettext(domain, message)
		},
		"pgettext": func(context, message string) string {
			return g.PGettext(context, message)
		},
		"ngettext": func(singular, plural string, n any) (string, error) {
			count, err := toCount(n)
			if err != nil {
				return "", err
			}
			return g.NGettext(singular, plural, count), nil
		},
		"npgettext": func(context, singular, plural string, n any) (string, error) {
			count, err := toCount(n)
			if err != nil {
				return "", err
			}
			return g.NPGettext(context, singular, plural, count), nil
		},
	}
}

func toCount(value any) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int8:
		return int(v), nil
	case int16:
		return int(v), nil
	case int32:
		return int(v), nil
	case int64:
		return signedCount(v)
	case uint:
		return unsignedCount(uint64(v))
	case uint8:
		return int(v), nil
	case uint16:
		return int(v), nil
	case uint32:
		return unsignedCount(uint64(v))
	case uint64:
		return unsignedCount(v)
	case uintptr:
		return unsignedCount(uint64(v))
	default:
		return 0, fmt.Errorf("%w: count must be an integer, got %T", ErrInvalidArgument, value)
	}
}

func signedCount(v int64) (int, error) {
	if v > math.MaxInt || v < math.MinInt {
		return 0, fmt.Errorf("%w: count %d overflows int", ErrInvalidArgument, v)
	}
	return int(v), nil
}

func unsignedCount(v uint64) (int, error) {
	if v > math.MaxInt {
		return 0, fmt.Errorf("%w: count %d overflows int", ErrInvalidArgument, v)
	}
	return int(v), nil
}
