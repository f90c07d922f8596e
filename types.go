package textdomain

// Catalog holds the entries of one domain for one locale.
type Catalog struct {
	Domain  string
	Locale  string
	Entries map[Key]Entry
	// Rule selects plural forms; RuleForLocale(Locale) is used when nil.
	Rule PluralRule
}

// Translations maps locale codes to catalogs.
type Translations map[string]*Catalog

type PluralCategory string

const (
	PluralZero  PluralCategory = "zero"
	PluralOne   PluralCategory = "one"
	PluralTwo   PluralCategory = "two"
	PluralFew   PluralCategory = "few"
	PluralMany  PluralCategory = "many"
	PluralOther PluralCategory = "other"
)

// Entry is a single registered translation. It is either a simple string or a
// plural set; plural sets carry their forms in Forms and leave Text empty.
type Entry struct {
	Key    Key
	Text   string
	Forms  map[PluralCategory]string
	Source string
}

// NewEntry builds a simple translation.
func NewEntry(key Key, text string) Entry {
	return Entry{Key: key, Text: text}
}

// NewPluralEntry builds a plural set keyed by the singular message.
func NewPluralEntry(key Key, forms map[PluralCategory]string) Entry {
	entry := Entry{Key: key, Forms: make(map[PluralCategory]string, len(forms))}
	for category, text := range forms {
		entry.Forms[category] = text
	}
	return entry
}

// IsPlural reports whether the entry is a plural set.
func (e Entry) IsPlural() bool {
	return e.Forms != nil
}

// Form returns the text for category, falling back to PluralOther.
func (e Entry) Form(category PluralCategory) (string, bool) {
	if e.Forms == nil {
		return "", false
	}

	if text, ok := e.Forms[category]; ok {
		return text, true
	}

	text, ok := e.Forms[PluralOther]
	return text, ok
}

// Singular returns the text Translate reports for the entry. Plural sets answer
// with their "one" form, or "other" when there is none.
func (e Entry) Singular() (string, bool) {
	if !e.IsPlural() {
		return e.Text, true
	}
	return e.Form(PluralOne)
}

func (e Entry) Clone() Entry {
	out := e
	if e.Forms != nil {
		out.Forms = make(map[PluralCategory]string, len(e.Forms))
		for category, text := range e.Forms {
			out.Forms[category] = text
		}
	}
	return out
}

// NewCatalog builds a catalog from entries. Later entries replace earlier ones
// with the same key.
func NewCatalog(domain, locale string, entries ...Entry) *Catalog {
	catalog := &Catalog{
		Domain:  domain,
		Locale:  locale,
		Entries: make(map[Key]Entry, len(entries)),
	}
	for _, entry := range entries {
		catalog.Set(entry)
	}
	return catalog
}

// Set registers entry under its key.
func (c *Catalog) Set(entry Entry) {
	if c.Entries == nil {
		c.Entries = make(map[Key]Entry)
	}
	c.Entries[entry.Key] = entry
}

// Lookup returns the entry registered for key.
func (c *Catalog) Lookup(key Key) (Entry, bool) {
	if c == nil || c.Entries == nil {
		return Entry{}, false
	}
	entry, ok := c.Entries[key]
	return entry, ok
}

// PluralRule returns the rule used to select forms for this catalog.
func (c *Catalog) PluralRule() PluralRule {
	if c == nil {
		return TwoFormRule
	}
	if c.Rule != nil {
		return c.Rule
	}
	return RuleForLocale(c.Locale)
}

func (c *Catalog) Clone() *Catalog {
	if c == nil {
		return nil
	}

	out := &Catalog{
		Domain: c.Domain,
		Locale: c.Locale,
		Rule:   c.Rule,
	}
	if len(c.Entries) > 0 {
		out.Entries = make(map[Key]Entry, len(c.Entries))
		for key, entry := range c.Entries {
			out.Entries[key] = entry.Clone()
		}
	}
	return out
}
