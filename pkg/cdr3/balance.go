// 12 Mar 2026

package cdr3

import (
	"math/rand"
	"sort"
)

// Balance equalises bucket sizes across groups, length by length.
// For each length, every named group is cut down to the size of the
// smallest named group's bucket at that length, by uniform sampling
// without replacement. Buckets already at or below that size are left
// alone, nothing is ever padded. A group missing a length counts as
// size zero, so the others lose that length too. Entropy estimates
// from small samples are biased low, so comparing shared against
// unshared is only fair after this step.
// Groups not named are copied through untouched. The result is a new
// pool, the receiver is not changed.
// rnd comes from the caller, not from the global source, so a fixed
// seed gives exactly reproducible samples.
func (pool Pool) Balance(groups []string, rnd *rand.Rand) Pool {
	out := make(Pool)
	named := make(map[string]bool)
	for _, g := range groups {
		named[g] = true
	}
	for g, byLen := range pool { // groups we are not balancing
		if named[g] {
			continue
		}
		cp := make(map[int][][]byte, len(byLen))
		for l, bucket := range byLen {
			cp[l] = bucket
		}
		out[g] = cp
	}

	seen := make(map[int]bool)
	var lengths []int
	for _, g := range groups {
		for l := range pool[g] {
			if !seen[l] {
				seen[l] = true
				lengths = append(lengths, l)
			}
		}
	}
	sort.Ints(lengths) // fixed order, so the sampler is deterministic

	for _, l := range lengths {
		n := -1
		for _, g := range groups {
			if m := pool.NSeq(g, l); n < 0 || m < n {
				n = m
			}
		}
		for _, g := range groups {
			bucket, ok := pool[g][l]
			if !ok {
				continue
			}
			if len(bucket) > n {
				t := make([][]byte, n)
				for i, ndx := range rnd.Perm(len(bucket))[:n] {
					t[i] = bucket[ndx]
				}
				bucket = t
			}
			if out[g] == nil {
				out[g] = make(map[int][][]byte)
			}
			out[g][l] = bucket
		}
	}
	return out
}
