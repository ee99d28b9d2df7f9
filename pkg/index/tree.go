/*
Package index builds the token-tree over the finalized vocabulary.

The tree stores keys as paths of tokens, split by a configurable boundary
pattern with optional case folding, so later text scanning tokenizes its
input the same way the vocabulary was indexed. Insertion is safe for
concurrent writers: every node guards its own child map, so two writers only
contend when they extend the same node.
*/
package index

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
	"sync/atomic"
)

// DefaultBoundaryPattern splits keys on runs of whitespace.
const DefaultBoundaryPattern = `\s+`

// Tree is a token-keyed prefix tree over vocabulary entries.
type Tree struct {
	boundary *regexp.Regexp
	caseFold bool
	root     *node
	nodes    atomic.Int64
	keys     atomic.Int64
}

type node struct {
	mu       sync.Mutex
	children map[string]*node
	terminal bool
}

// NewTree creates an empty tree. The boundary pattern must be a valid
// regular expression; an empty pattern selects DefaultBoundaryPattern.
func NewTree(boundaryPattern string, caseFold bool) (*Tree, error) {
	if boundaryPattern == "" {
		boundaryPattern = DefaultBoundaryPattern
	}
	boundary, err := regexp.Compile(boundaryPattern)
	if err != nil {
		return nil, fmt.Errorf("invalid token boundary pattern %q: %w", boundaryPattern, err)
	}
	return &Tree{
		boundary: boundary,
		caseFold: caseFold,
		root:     &node{},
	}, nil
}

// Tokenize splits a key into the tokens the tree indexes on, applying the
// configured case folding. Empty tokens are discarded.
func (t *Tree) Tokenize(key string) []string {
	if t.caseFold {
		key = strings.ToLower(key)
	}
	parts := t.boundary.Split(key, -1)
	tokens := parts[:0]
	for _, p := range parts {
		if p != "" {
			tokens = append(tokens, p)
		}
	}
	return tokens
}

// Insert tokenizes key and adds its token path to the tree. Keys that
// tokenize to nothing are ignored. Insert may be called from multiple
// goroutines.
func (t *Tree) Insert(key string) {
	tokens := t.Tokenize(key)
	if len(tokens) == 0 {
		return
	}
	current := t.root
	for _, token := range tokens {
		current.mu.Lock()
		if current.children == nil {
			current.children = make(map[string]*node)
		}
		child, ok := current.children[token]
		if !ok {
			child = &node{}
			current.children[token] = child
			t.nodes.Add(1)
		}
		current.mu.Unlock()
		current = child
	}
	current.mu.Lock()
	if !current.terminal {
		current.terminal = true
		t.keys.Add(1)
	}
	current.mu.Unlock()
}

// Contains reports whether key's exact token path was inserted.
func (t *Tree) Contains(key string) bool {
	tokens := t.Tokenize(key)
	if len(tokens) == 0 {
		return false
	}
	current := t.root
	for _, token := range tokens {
		current.mu.Lock()
		child, ok := current.children[token]
		current.mu.Unlock()
		if !ok {
			return false
		}
		current = child
	}
	current.mu.Lock()
	defer current.mu.Unlock()
	return current.terminal
}

// Size returns the number of nodes in the tree, excluding the root.
func (t *Tree) Size() int {
	return int(t.nodes.Load())
}

// KeyCount returns the number of distinct token paths inserted.
func (t *Tree) KeyCount() int {
	return int(t.keys.Load())
}

// CaseFold reports whether the tree lowercases keys before tokenizing.
func (t *Tree) CaseFold() bool {
	return t.caseFold
}
