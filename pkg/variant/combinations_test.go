package variant

import (
	"reflect"
	"testing"
)

func TestCombinationsLexicographicOrder(t *testing.T) {
	got := Combinations(4, 3)
	want := [][]int{
		{0, 1, 2},
		{0, 1, 3},
		{0, 2, 3},
		{1, 2, 3},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Combinations(4,3) = %v, want %v", got, want)
	}
}

func TestCombinationsCountMatchesBinomial(t *testing.T) {
	for n := 0; n <= 8; n++ {
		for k := 0; k <= n; k++ {
			got := len(Combinations(n, k))
			want := Binomial(n, k)
			if got != want {
				t.Errorf("len(Combinations(%d,%d)) = %d, want C(%d,%d) = %d", n, k, got, n, k, want)
			}
		}
	}
}

func TestCombinationsOutOfRange(t *testing.T) {
	if got := Combinations(3, 5); got != nil {
		t.Errorf("Combinations(3,5) = %v, want none", got)
	}
	if got := Combinations(3, -1); got != nil {
		t.Errorf("Combinations(3,-1) = %v, want none", got)
	}
}

func TestEachCombinationEarlyStop(t *testing.T) {
	calls := 0
	complete := EachCombination(5, 2, func(tuple []int) bool {
		calls++
		return calls < 3
	})
	if complete {
		t.Error("enumeration should report early stop")
	}
	if calls != 3 {
		t.Errorf("expected 3 calls before stopping, got %d", calls)
	}
}

func TestEachCombinationTuplesStrictlyIncreasing(t *testing.T) {
	EachCombination(6, 3, func(tuple []int) bool {
		for i := 1; i < len(tuple); i++ {
			if tuple[i] <= tuple[i-1] {
				t.Errorf("tuple %v is not strictly increasing", tuple)
			}
		}
		return true
	})
}

func TestBinomial(t *testing.T) {
	cases := []struct {
		n, k, want int
	}{
		{0, 0, 1},
		{4, 1, 4},
		{4, 3, 4},
		{5, 2, 10},
		{10, 5, 252},
		{3, 5, 0},
		{3, -1, 0},
	}
	for _, tc := range cases {
		if got := Binomial(tc.n, tc.k); got != tc.want {
			t.Errorf("Binomial(%d,%d) = %d, want %d", tc.n, tc.k, got, tc.want)
		}
	}
}
