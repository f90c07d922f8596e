package textdomain

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
)

// PluralRule maps a count to the plural category used to pick a form.
type PluralRule interface {
	Category(count int) PluralCategory
}

// PluralRuleFunc adapts a function to PluralRule.
type PluralRuleFunc func(count int) PluralCategory

func (fn PluralRuleFunc) Category(count int) PluralCategory {
	return fn(count)
}

// TwoFormRule distinguishes one from everything else, the way gettext does
// for Germanic languages without a Plural-Forms header.
var TwoFormRule PluralRule = PluralRuleFunc(func(count int) PluralCategory {
	if abs(count) == 1 {
		return PluralOne
	}
	return PluralOther
})

type cldrRule struct {
	tag language.Tag
}

// CLDRRule selects categories with the CLDR cardinal rules for tag. Counts are
// integers, so only the integer operand is set; negative counts use their
// absolute value like CLDR's n operand.
func CLDRRule(tag language.Tag) PluralRule {
	return cldrRule{tag: tag}
}

func (r cldrRule) Category(count int) PluralCategory {
	return categoryFromForm(plural.Cardinal.MatchPlural(r.tag, abs(count), 0, 0, 0, 0))
}

// RuleForLocale returns the CLDR rule for locale, or TwoFormRule when the
// locale cannot be parsed.
func RuleForLocale(locale string) PluralRule {
	locale = normalizeLocale(locale)
	if locale == "" {
		return TwoFormRule
	}

	tag, err := language.Parse(locale)
	if err != nil {
		return TwoFormRule
	}
	return CLDRRule(tag)
}

func categoryFromForm(form plural.Form) PluralCategory {
	switch form {
	case plural.Zero:
		return PluralZero
	case plural.One:
		return PluralOne
	case plural.Two:
		return PluralTwo
	case plural.Few:
		return PluralFew
	case plural.Many:
		return PluralMany
	default:
		return PluralOther
	}
}

// ParsePluralCategory parses a CLDR category name, case insensitive.
func ParsePluralCategory(raw string) (PluralCategory, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "zero":
		return PluralZero, nil
	case "one":
		return PluralOne, nil
	case "two":
		return PluralTwo, nil
	case "few":
		return PluralFew, nil
	case "many":
		return PluralMany, nil
	case "other":
		return PluralOther, nil
	default:
		return "", fmt.Errorf("unknown plural category %q", raw)
	}
}

func abs(n int) int {
	if n == math.MinInt {
		return math.MaxInt
	}
	if n < 0 {
		return -n
	}
	return n
}
