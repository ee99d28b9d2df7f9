package variant

import (
	"github.com/charmbracelet/log"
)

// Resolve inverts the entry -> variants relation into a variant -> entry
// lookup. A variant generated by more than one distinct entry is contested
// and removed entirely, keeping the lookup bijective. Every entry is then
// force-inserted as mapping to itself, overriding whatever verdict the
// inversion reached for that exact string, so literal entries always
// resolve.
//
// Contested detection counts distinct source entries per variant before
// anything is dropped, so the result is independent of iteration order.
// The returned count is the number of contested variant keys removed.
func Resolve(entryVariants map[string]Set) (map[string]string, int) {
	owner := make(map[string]string)
	contested := make(map[string]struct{})

	for entry, variants := range entryVariants {
		for v := range variants {
			prev, seen := owner[v]
			if seen && prev != entry {
				contested[v] = struct{}{}
				continue
			}
			owner[v] = entry
		}
	}

	// Drop contested keys in a separate, explicit pass.
	for v := range contested {
		delete(owner, v)
	}
	if len(contested) > 0 {
		log.Warnf("Ignoring %d ambiguous variants!", len(contested))
	}

	// A literal entry beats any verdict reached above, including a drop.
	for entry := range entryVariants {
		owner[entry] = entry
	}

	return owner, len(contested)
}
