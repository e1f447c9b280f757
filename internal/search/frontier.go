package search

import (
	"strconv"
	"strings"

	"golang.org/x/exp/slices"
)

// Frontier counts, per client, how many transactions have been placed
// so far in the partial serialization under exploration.
type Frontier []int

// Terminal reports whether every client's transactions have been
// placed, given each client's total transaction count.
func (f Frontier) Terminal(totals []int) bool {
	for i, t := range totals {
		if f[i] != t {
			return false
		}
	}
	return true
}

// Clone returns an independent copy, used whenever a frontier snapshot
// needs to outlive the in-place mutation the search performs on descent
// and backtrack (e.g. for debug logging).
func (f Frontier) Clone() Frontier {
	return slices.Clone(f)
}

// key renders the frontier as a stable string for use as a memoization
// map key. Go maps cannot key on slices directly (unlike the reference
// implementation's Vec<usize>), so the frontier is encoded as its
// decimal components joined by a separator that cannot appear in a
// rendered integer.
func (f Frontier) key() string {
	var b strings.Builder
	for i, v := range f {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(v))
	}
	return b.String()
}
