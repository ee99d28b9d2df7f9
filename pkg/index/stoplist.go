package index

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Stoplist is the set of strings excluded from indexing. Membership checks
// are against the case-folded form, so members are stored lowercased.
type Stoplist map[string]struct{}

// NewStoplist builds a stoplist from the given terms.
func NewStoplist(terms []string) Stoplist {
	list := make(Stoplist, len(terms))
	for _, term := range terms {
		term = strings.ToLower(strings.TrimSpace(term))
		if term != "" {
			list[term] = struct{}{}
		}
	}
	return list
}

// LoadStoplist reads one term per line from path and merges the terms into
// a new stoplist together with the given inline terms.
func LoadStoplist(path string, inline []string) (Stoplist, error) {
	list := NewStoplist(inline)
	if path == "" {
		return list, nil
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening stoplist %s: %w", path, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		term := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if term != "" {
			list[term] = struct{}{}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading stoplist %s: %w", path, err)
	}
	return list, nil
}

// Contains reports whether the case-folded form of s is stoplisted.
func (l Stoplist) Contains(s string) bool {
	_, ok := l[strings.ToLower(s)]
	return ok
}
