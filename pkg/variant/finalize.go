package variant

import (
	"sort"
	"unicode/utf8"
)

// Finalize produces the final indexable vocabulary from a resolved lookup:
// the empty string and every variant shorter than minLength runes are
// dropped, the rest ordered by descending length. Equal-length variants are
// ordered lexicographically so repeated builds emit an identical sequence
// regardless of map iteration order.
//
// Longer variants sort first so downstream index construction registers the
// most specific multi-word phrases before shorter, more generic ones.
func Finalize(lookup map[string]string, minLength int) []string {
	vocabulary := make([]string, 0, len(lookup))
	for v := range lookup {
		if v == "" || utf8.RuneCountInString(v) < minLength {
			continue
		}
		vocabulary = append(vocabulary, v)
	}
	sort.Slice(vocabulary, func(i, j int) bool {
		li, lj := utf8.RuneCountInString(vocabulary[i]), utf8.RuneCountInString(vocabulary[j])
		if li != lj {
			return li > lj
		}
		return vocabulary[i] < vocabulary[j]
	})
	return vocabulary
}
