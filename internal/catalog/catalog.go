/*
PURPOSE:
  The table of known model identifiers and the rules for picking which of
  them a run probes.

REQUIREMENTS:
  User-specified:
  - Probe every known model by default.
  - Restrict to one provider family (--google, --anthropic, ...).
  - Accept an explicit list that bypasses the table entirely.

  Implementation-discovered:
  - Provider families are matched by identifier prefix, not by the provider
    tag, so an explicit table with sloppy tags still filters correctly.

ARCHITECTURE INTEGRATION:
  - Used by: internal/cli (resolution), internal/config (table override)

ERROR HANDLING:
  - Unknown filter tokens return an error; nothing else fails.

IMPLEMENTATION RULES:
  - A Catalog is never mutated after construction. Methods return copies.

USAGE:
  ids, err := catalog.Default().Resolve(catalog.Selection{Provider: "google"})

RELATED FILES:
  - internal/catalog/providers.go
*/

package catalog

import (
	"fmt"
	"strings"
)

// Entry is one known model identifier.
type Entry struct {
	ID       string `yaml:"id"`
	Provider string `yaml:"provider"`
}

// Catalog is an immutable ordered table of entries.
type Catalog struct {
	entries []Entry
}

// New builds a catalog from entries, keeping their order.
func New(entries []Entry) *Catalog {
	cp := make([]Entry, len(entries))
	copy(cp, entries)
	return &Catalog{entries: cp}
}

var builtin = []Entry{
	{"gemini-2.5-pro", "google"},
	{"gemini-2.5-flash", "google"},
	{"gemini-2.0-flash", "google"},
	{"gemini-1.5-pro", "google"},
	{"gemini-1.5-flash", "google"},
	{"gemini-2.5-flash-native-audio", "google"},
	{"gemini-2.0-flash-image-gen", "google"},
	{"imagen-3", "google"},
	{"veo-2", "google"},

	{"claude-4-opus", "anthropic"},
	{"claude-4-sonnet", "anthropic"},
	{"claude-3.7-sonnet", "anthropic"},
	{"claude-3.5-sonnet", "anthropic"},
	{"claude-3.5-haiku", "anthropic"},
	{"claude-3-opus", "anthropic"},

	{"deepseek-r1", "deepseek"},
	{"deepseek-v3", "deepseek"},

	{"magistral-medium", "mistral"},
	{"mistral-medium", "mistral"},
	{"mistral-large", "mistral"},
	{"pixtral-large", "mistral"},
	{"codestral", "mistral"},
	{"mistral-ocr", "mistral"},

	{"llama-3.3", "meta"},

	{"ollama", "ollama"},
}

// Default returns the built-in catalog.
func Default() *Catalog {
	return New(builtin)
}

// Entries returns a copy of the table.
func (c *Catalog) Entries() []Entry {
	cp := make([]Entry, len(c.entries))
	copy(cp, c.entries)
	return cp
}

// IDs returns every identifier in catalog order.
func (c *Catalog) IDs() []string {
	ids := make([]string, 0, len(c.entries))
	for _, e := range c.entries {
		ids = append(ids, e.ID)
	}
	return ids
}

// Filter returns the identifiers matching a provider family's prefixes.
func (c *Catalog) Filter(provider string) ([]string, error) {
	prefixes, ok := familyPrefixes[strings.ToLower(provider)]
	if !ok {
		return nil, fmt.Errorf("unknown provider filter %q (known: %s)", provider, strings.Join(Families(), ", "))
	}

	ids := []string{}
	for _, e := range c.entries {
		for _, p := range prefixes {
			if strings.HasPrefix(e.ID, p) {
				ids = append(ids, e.ID)
				break
			}
		}
	}
	return ids, nil
}

// Selection describes how a run picks its identifiers.
// At most one of Provider and Models may be set; neither means "all".
type Selection struct {
	Provider string
	Models   []string
}

// Resolve applies the selection to the catalog.
func (c *Catalog) Resolve(sel Selection) ([]string, error) {
	switch {
	case sel.Provider != "" && len(sel.Models) > 0:
		return nil, fmt.Errorf("provider filter %q cannot be combined with an explicit model list", sel.Provider)
	case len(sel.Models) > 0:
		ids := make([]string, len(sel.Models))
		copy(ids, sel.Models)
		return ids, nil
	case sel.Provider != "":
		return c.Filter(sel.Provider)
	default:
		return c.IDs(), nil
	}
}
