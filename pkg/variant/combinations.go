package variant

// Combination enumeration used by the generator. Tuples are produced in
// lexicographic order over index tuples, so enumeration is deterministic:
// for n=4, k=3 the order is [0 1 2], [0 1 3], [0 2 3], [1 2 3].

// EachCombination calls fn with every strictly increasing index tuple of
// length k from [0,n), in lexicographic order. The tuple slice is reused
// between calls; fn must copy it if it keeps a reference. Enumeration stops
// early when fn returns false. EachCombination reports whether the
// enumeration ran to completion.
func EachCombination(n, k int, fn func(tuple []int) bool) bool {
	if k < 0 || k > n {
		return true
	}
	if k == 0 {
		return fn([]int{})
	}
	tuple := make([]int, k)
	for i := range tuple {
		tuple[i] = i
	}
	for {
		if !fn(tuple) {
			return false
		}
		// Advance the rightmost index that can still move.
		i := k - 1
		for i >= 0 && tuple[i] == n-k+i {
			i--
		}
		if i < 0 {
			return true
		}
		tuple[i]++
		for j := i + 1; j < k; j++ {
			tuple[j] = tuple[j-1] + 1
		}
	}
}

// Combinations collects every k-combination of [0,n) into a slice.
func Combinations(n, k int) [][]int {
	var result [][]int
	EachCombination(n, k, func(tuple []int) bool {
		cp := make([]int, len(tuple))
		copy(cp, tuple)
		result = append(result, cp)
		return true
	})
	return result
}

// Binomial returns the binomial coefficient C(n, k), or 0 when k is out of
// range. It saturates at the int maximum rather than overflowing.
func Binomial(n, k int) int {
	if k < 0 || k > n {
		return 0
	}
	if k > n-k {
		k = n - k
	}
	result := 1
	for i := 1; i <= k; i++ {
		next := result * (n - k + i) / i
		if next < result {
			return int(^uint(0) >> 1)
		}
		result = next
	}
	return result
}
