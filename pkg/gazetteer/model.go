/*
Package gazetteer assembles the in-memory gazetteer model.

Build runs the full construction pipeline: source resolution, entry
loading, variant generation, bijective variant resolution, vocabulary
finalization and index construction. The finished model is immutable and
safe for concurrent reads; a failed build returns an error and no model.

Two deployable shapes share the pipeline: the flat lookup (variant ->
entry -> identifiers, plus a patricia trie for prefix scans) is always
built, and the token tree is built whenever a token boundary pattern is
configured. An empty pattern yields a flat-only model.
*/
package gazetteer

import (
	"runtime"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"

	"github.com/lexigraph/gazetteer/pkg/config"
	"github.com/lexigraph/gazetteer/pkg/entry"
	"github.com/lexigraph/gazetteer/pkg/index"
	"github.com/lexigraph/gazetteer/pkg/source"
	"github.com/lexigraph/gazetteer/pkg/variant"
)

// Stats summarizes the construction diagnostics of a model.
type Stats struct {
	Entries           int
	Variants          int
	DuplicateEntries  int
	AmbiguousVariants int
	TreeNodes         int
	BuildTime         time.Duration
}

// Model is the finished gazetteer: every map, the ordered vocabulary and
// the indexes are built once and never mutated afterwards.
type Model struct {
	entryURIs     map[string]entry.IdentifierSet
	entryVariants map[string]variant.Set
	lookup        map[string]string
	vocabulary    []string
	trie          *patricia.Trie
	tree          *index.Tree
	stats         Stats
}

// Build constructs a model from the given source locations. Locations may
// be files, directories, zip archives or http(s) URLs. Any unreadable
// source, malformed identifier or invalid configuration aborts the build.
func Build(locations []string, cfg config.BuildConfig) (*Model, error) {
	start := time.Now()

	paths, err := source.Resolve(locations)
	if err != nil {
		return nil, err
	}

	norm, err := entry.NewNormalizer(cfg.UseLowercase, cfg.Language)
	if err != nil {
		return nil, err
	}
	store := entry.NewStore(norm)
	if err := store.LoadFiles(paths); err != nil {
		return nil, err
	}

	genCfg := variant.Config{
		SplitHyphen:     cfg.SplitHyphen,
		AllSkips:        cfg.AllSkips,
		MinWordCount:    cfg.MinWordCountForVariants,
		AddAbbreviated:  cfg.AddAbbreviatedEntries,
		MaxCombinations: cfg.MaxCombinations,
	}
	entryVariants := generateAll(store.Keys(), genCfg)

	lookup, ambiguous := variant.Resolve(entryVariants)
	vocabulary := variant.Finalize(lookup, cfg.MinVariantLength)

	log.Infof("Finished loading %d variants from %d entries in %s.",
		len(vocabulary), store.Len(), time.Since(start).Round(time.Millisecond))

	trie := patricia.NewTrie()
	for _, v := range vocabulary {
		trie.Insert(patricia.Prefix(v), lookup[v])
	}

	model := &Model{
		entryURIs:     store.Entries(),
		entryVariants: entryVariants,
		lookup:        lookup,
		vocabulary:    vocabulary,
		trie:          trie,
		stats: Stats{
			Entries:           store.Len(),
			Variants:          len(vocabulary),
			DuplicateEntries:  store.DuplicateCount(),
			AmbiguousVariants: ambiguous,
		},
	}

	if cfg.TokenBoundaryPattern != "" {
		stoplist, err := index.LoadStoplist(cfg.StoplistFile, cfg.Stoplist)
		if err != nil {
			return nil, err
		}
		tree, err := index.BuildTree(vocabulary, stoplist, cfg.UseLowercase, cfg.TokenBoundaryPattern)
		if err != nil {
			return nil, err
		}
		model.tree = tree
		model.stats.TreeNodes = tree.Size()
	}

	model.stats.BuildTime = time.Since(start)
	return model, nil
}

// generateAll runs variant generation over every entry on a bounded worker
// pool. Generation is pure per entry, so the resulting map does not depend
// on scheduling order.
func generateAll(keys []string, cfg variant.Config) map[string]variant.Set {
	workers := runtime.NumCPU()
	if workers > len(keys) {
		workers = len(keys)
	}
	if workers < 1 {
		workers = 1
	}

	results := make(map[string]variant.Set, len(keys))
	var mu sync.Mutex
	var wg sync.WaitGroup
	jobs := make(chan string, workers)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for key := range jobs {
				set := variant.Generate(key, cfg)
				mu.Lock()
				results[key] = set
				mu.Unlock()
			}
		}()
	}
	for _, key := range keys {
		jobs <- key
	}
	close(jobs)
	wg.Wait()
	return results
}
