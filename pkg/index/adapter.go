package index

import (
	"runtime"
	"sync"

	"github.com/charmbracelet/log"
)

// BuildTree feeds the ordered vocabulary into a fresh token tree, skipping
// entries whose case-folded form is stoplisted. Insertion runs on a bounded
// worker pool; the tree's per-node locking makes that safe, and the final
// tree content does not depend on insertion order.
//
// The vocabulary is expected in descending length order so the most
// specific phrases are registered first for any longest-match-first query
// strategy built on top.
func BuildTree(vocabulary []string, stoplist Stoplist, caseFold bool, boundaryPattern string) (*Tree, error) {
	tree, err := NewTree(boundaryPattern, caseFold)
	if err != nil {
		return nil, err
	}

	log.Debug("Building tree..")
	workers := runtime.NumCPU()
	if workers > len(vocabulary) {
		workers = len(vocabulary)
	}
	if workers < 1 {
		workers = 1
	}

	var wg sync.WaitGroup
	skipped := make([]int, workers)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := w; i < len(vocabulary); i += workers {
				if stoplist.Contains(vocabulary[i]) {
					skipped[w]++
					continue
				}
				tree.Insert(vocabulary[i])
			}
		}(w)
	}
	wg.Wait()

	totalSkipped := 0
	for _, n := range skipped {
		totalSkipped += n
	}
	if totalSkipped > 0 {
		log.Debugf("Skipped %d stoplisted vocabulary entries", totalSkipped)
	}
	log.Debugf("Finished building tree with %d nodes from %d vocabulary entries.", tree.Size(), len(vocabulary))
	return tree, nil
}
