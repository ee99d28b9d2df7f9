/*
Package entry parses gazetteer source lines into a map from canonical
entry text to its set of identifier URIs.

Each source line has the shape `<raw-name><TAB><identifier-list>` where the
identifier list is comma or space separated. Raw names are normalized before
they are used as keys: anything that is not a letter, hyphen or space is
stripped, surrounding whitespace is trimmed, and the result is optionally
lowercased under a configured locale. The same normalized name appearing
more than once has its identifier sets unioned; the number of such merges is
tracked as a diagnostic, not an error.
*/
package entry

import (
	"bufio"
	"fmt"
	"io"
	"net/url"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// nonTokenPattern matches every character that may not appear in a
// normalized entry: anything but Unicode letters, hyphen and space.
var nonTokenPattern = regexp.MustCompile(`[^\p{L}\- ]+`)

// IdentifierSet is a set of identifier URI strings attached to one entry.
type IdentifierSet map[string]struct{}

// NewIdentifierSet builds a set from the given URI strings.
func NewIdentifierSet(uris ...string) IdentifierSet {
	set := make(IdentifierSet, len(uris))
	for _, u := range uris {
		set[u] = struct{}{}
	}
	return set
}

// Union merges other into the receiver. The merge is commutative and
// idempotent, so repeated or reordered merges yield the same set.
func (s IdentifierSet) Union(other IdentifierSet) IdentifierSet {
	for u := range other {
		s[u] = struct{}{}
	}
	return s
}

// Contains reports whether the set holds the given URI string.
func (s IdentifierSet) Contains(uri string) bool {
	_, ok := s[uri]
	return ok
}

// Sorted returns the URIs in lexicographic order.
func (s IdentifierSet) Sorted() []string {
	uris := make([]string, 0, len(s))
	for u := range s {
		uris = append(uris, u)
	}
	sort.Strings(uris)
	return uris
}

// Normalizer converts raw source names into canonical entry keys.
type Normalizer struct {
	lowercase bool
	caser     cases.Caser
}

// NewNormalizer returns a Normalizer for the given language tag.
// The tag is only consulted when lowercasing is enabled; an unparsable tag
// is a fatal configuration error.
func NewNormalizer(lowercase bool, langTag string) (Normalizer, error) {
	n := Normalizer{lowercase: lowercase}
	if lowercase {
		tag, err := language.Parse(langTag)
		if err != nil {
			return Normalizer{}, fmt.Errorf("invalid language tag %q: %w", langTag, err)
		}
		n.caser = cases.Lower(tag)
	}
	return n, nil
}

// Normalize strips non-token characters, trims surrounding whitespace and
// optionally lowercases the result under the configured locale.
// Note: the returned Caser is stateful, so Normalize is not safe for
// concurrent use on a single Normalizer.
func (n Normalizer) Normalize(raw string) string {
	s := strings.TrimSpace(nonTokenPattern.ReplaceAllString(raw, ""))
	if n.lowercase {
		s = n.caser.String(s)
	}
	return s
}

// Store accumulates normalized entries and their identifier sets across any
// number of sources.
type Store struct {
	entries    map[string]IdentifierSet
	order      []string
	norm       Normalizer
	duplicates int
}

// NewStore creates an empty store using the given normalizer.
func NewStore(norm Normalizer) *Store {
	return &Store{
		entries: make(map[string]IdentifierSet),
		norm:    norm,
	}
}

// identifierSeparator splits identifier lists on commas and spaces.
func identifierSeparator(r rune) bool {
	return r == ',' || r == ' '
}

// parseIdentifiers validates and collects the identifier tokens of a line.
func parseIdentifiers(list string) (IdentifierSet, error) {
	tokens := strings.FieldsFunc(list, identifierSeparator)
	if len(tokens) == 0 {
		return nil, fmt.Errorf("empty identifier list")
	}
	set := make(IdentifierSet, len(tokens))
	for _, tok := range tokens {
		u, err := url.Parse(tok)
		if err != nil {
			return nil, fmt.Errorf("invalid identifier %q: %w", tok, err)
		}
		set[u.String()] = struct{}{}
	}
	return set, nil
}

// Add records one normalized entry with its identifiers, unioning the sets
// when the entry is already present.
func (s *Store) Add(name string, ids IdentifierSet) {
	if existing, ok := s.entries[name]; ok {
		existing.Union(ids)
		s.duplicates++
		return
	}
	s.entries[name] = ids
	s.order = append(s.order, name)
}

// Load reads line-oriented UTF-8 text from r and merges every entry into
// the store. The name given identifies the source in error messages.
// Any malformed line or identifier token aborts the load.
func (s *Store) Load(r io.Reader, name string) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		rawName, idList, found := strings.Cut(line, "\t")
		if !found {
			return fmt.Errorf("%s:%d: missing identifier column", name, lineNo)
		}
		key := s.norm.Normalize(rawName)
		if key == "" {
			log.Debugf("Skipping line %d of %s: name empty after normalization", lineNo, name)
			continue
		}
		ids, err := parseIdentifiers(idList)
		if err != nil {
			return fmt.Errorf("%s:%d: %w", name, lineNo, err)
		}
		s.Add(key, ids)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading %s: %w", name, err)
	}
	return nil
}

// LoadFile opens path and loads it via Load.
func (s *Store) LoadFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening source %s: %w", path, err)
	}
	defer file.Close()
	return s.Load(file, path)
}

// LoadFiles loads every path in order, logging the duplicate-merge count
// once all sources are read.
func (s *Store) LoadFiles(paths []string) error {
	log.Debugf("Loading entries from %d files..", len(paths))
	for _, path := range paths {
		if err := s.LoadFile(path); err != nil {
			return err
		}
	}
	log.Debugf("Loaded %d entries from %d files.", len(s.entries), len(paths))
	if s.duplicates > 0 {
		log.Warnf("Merged %d duplicate entries!", s.duplicates)
	}
	return nil
}

// Entries returns the entry -> identifier-set map. The map is owned by the
// store; callers must treat it as read-only.
func (s *Store) Entries() map[string]IdentifierSet {
	return s.entries
}

// Keys returns the entry keys in first-seen order.
func (s *Store) Keys() []string {
	return s.order
}

// Len returns the number of distinct entries loaded.
func (s *Store) Len() int {
	return len(s.entries)
}

// DuplicateCount returns how many duplicate entries were merged.
func (s *Store) DuplicateCount() int {
	return s.duplicates
}
