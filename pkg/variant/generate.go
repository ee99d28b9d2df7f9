/*
Package variant generalizes gazetteer entries into alternate string forms
and resolves the variant vocabulary back to its entries.

A multi-word entry is generalized by enumerating order-preserving word
subsets ("1-skip-n-grams", or all m-skip-n-grams when AllSkips is set) and
optionally an abbreviated form with the first word shortened to its initial.
The full variant set of an entry is finite but can grow combinatorially with
the word count when AllSkips is enabled; MaxCombinations bounds that growth
per entry when a caller opts in.
*/
package variant

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/log"
)

// Config carries the generation toggles. A Config is passed into every
// Generate call so concurrently built models with different settings cannot
// interfere through shared state.
type Config struct {
	// SplitHyphen splits entry words at hyphens as well as whitespace.
	SplitHyphen bool
	// AllSkips enumerates every subset size 2..wordCount-1 for entries of
	// more than three words, instead of only wordCount-1.
	AllSkips bool
	// MinWordCount is the lower bound word count for generalization.
	// Entries with fewer words yield only themselves.
	MinWordCount int
	// AddAbbreviated additionally generates the entry with its first word
	// abbreviated to its initial ("Quercus robur" -> "Q. robur").
	AddAbbreviated bool
	// MaxCombinations caps the number of enumerated combinations per entry.
	// Zero means unbounded; hitting the cap is reported, never silent.
	MaxCombinations int
}

// Set is a set of variant strings.
type Set map[string]struct{}

// Contains reports set membership.
func (s Set) Contains(v string) bool {
	_, ok := s[v]
	return ok
}

// Words splits an entry into its ordered word list, on whitespace or on
// whitespace and hyphen when splitHyphen is set.
func Words(entry string, splitHyphen bool) []string {
	return strings.FieldsFunc(entry, func(r rune) bool {
		return unicode.IsSpace(r) || (splitHyphen && r == '-')
	})
}

// Generate returns the set of generalized variants for one entry.
// The entry itself is only a member of the result for entries below the
// generalization bound; literal self-resolution is guaranteed later by the
// resolver's forced self-mapping.
func Generate(entry string, cfg Config) Set {
	set := generateSubsets(entry, cfg)

	if cfg.AddAbbreviated {
		words := Words(entry, cfg.SplitHyphen)
		if len(words) > 1 {
			first := []rune(words[0])
			words[0] = string(first[0]) + "."
			abbreviated := strings.Join(words, " ")
			set[abbreviated] = struct{}{}
			if len(words) > 2 {
				for v := range generateSubsets(abbreviated, cfg) {
					set[v] = struct{}{}
				}
			}
		}
	}
	return set
}

// generateSubsets enumerates the order-preserving word-subset variants of
// one string. Strings below the word-count bound yield themselves only.
func generateSubsets(entry string, cfg Config) Set {
	words := Words(entry, cfg.SplitHyphen)
	if len(words) < cfg.MinWordCount {
		return Set{entry: {}}
	}

	// Subset sizes: drop exactly one word, or every size 2..n-1 when all
	// skips are requested for entries longer than three words.
	var sizes []int
	if cfg.AllSkips && len(words) > 3 {
		for k := 2; k < len(words); k++ {
			sizes = append(sizes, k)
		}
	} else {
		sizes = []int{len(words) - 1}
	}

	set := make(Set)
	enumerated := 0
	var builder strings.Builder
	for _, k := range sizes {
		complete := EachCombination(len(words), k, func(tuple []int) bool {
			if cfg.MaxCombinations > 0 && enumerated >= cfg.MaxCombinations {
				return false
			}
			enumerated++
			builder.Reset()
			for i, idx := range tuple {
				if i > 0 {
					builder.WriteByte(' ')
				}
				builder.WriteString(words[idx])
			}
			set[builder.String()] = struct{}{}
			return true
		})
		if !complete {
			log.Warnf("Combination cap of %d reached for entry %q; variant set truncated", cfg.MaxCombinations, entry)
			break
		}
	}
	return set
}
