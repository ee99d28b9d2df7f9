package gazetteer

import (
	"errors"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"

	"github.com/lexigraph/gazetteer/pkg/entry"
	"github.com/lexigraph/gazetteer/pkg/index"
	"github.com/lexigraph/gazetteer/pkg/variant"
)

// Read accessors over the finished model. All returned maps and slices are
// owned by the model and must be treated as read-only; the model itself is
// immutable after Build, so no synchronization is needed.

// IdentifiersForVariant resolves a variant through the bijective lookup to
// the identifier set of its entry, or nil when the variant is unknown.
func (m *Model) IdentifiersForVariant(v string) entry.IdentifierSet {
	e, ok := m.lookup[v]
	if !ok {
		return nil
	}
	return m.entryURIs[e]
}

// EntryForVariant returns the entry a variant resolves to.
func (m *Model) EntryForVariant(v string) (string, bool) {
	e, ok := m.lookup[v]
	return e, ok
}

// VariantsForEntry returns the generated variant set of an entry, or nil
// for unknown entries.
func (m *Model) VariantsForEntry(e string) variant.Set {
	return m.entryVariants[e]
}

// AllVariantsOrdered returns the finalized vocabulary in descending length
// order.
func (m *Model) AllVariantsOrdered() []string {
	return m.vocabulary
}

// EntryURIs returns the entry -> identifier-set map.
func (m *Model) EntryURIs() map[string]entry.IdentifierSet {
	return m.entryURIs
}

// Lookup returns the variant -> entry map.
func (m *Model) Lookup() map[string]string {
	return m.lookup
}

// Tree returns the token-tree handle, or nil for flat-only models.
func (m *Model) Tree() *index.Tree {
	return m.tree
}

// Stats returns the construction diagnostics.
func (m *Model) Stats() Stats {
	return m.stats
}

// Suggestion pairs a vocabulary variant with the entry it resolves to.
type Suggestion struct {
	Variant string
	Entry   string
}

// errEnough stops a trie visit once the result limit is reached.
var errEnough = errors.New("enough results")

// SuggestPrefix scans the vocabulary trie for variants starting with the
// given prefix, up to limit results. A limit of zero or less means no cap.
func (m *Model) SuggestPrefix(prefix string, limit int) []Suggestion {
	var suggestions []Suggestion
	err := m.trie.VisitSubtree(patricia.Prefix(prefix), func(p patricia.Prefix, item patricia.Item) error {
		suggestions = append(suggestions, Suggestion{
			Variant: string(p),
			Entry:   item.(string),
		})
		if limit > 0 && len(suggestions) >= limit {
			return errEnough
		}
		return nil
	})
	if err != nil && !errors.Is(err, errEnough) {
		log.Errorf("Error visiting trie subtree: %v", err)
	}
	return suggestions
}
