// 13 Mar 2026

package cdr3_test

import (
	"math/rand"
	"reflect"
	"testing"

	. "github.com/andrew-torda/cdr3_entropy/pkg/cdr3"
)

var balanceGroups = []string{"shared", "unshared"}

// tenAndTwo is ten unshared sequences against two shared ones, all
// length 7.
func tenAndTwo() Pool {
	unshared := []string{
		"AAAAAAA", "CAAAAAA", "DAAAAAA", "EAAAAAA", "FAAAAAA",
		"GAAAAAA", "HAAAAAA", "IAAAAAA", "KAAAAAA", "LAAAAAA"}
	shared := []string{"MAAAAAA", "NAAAAAA"}
	return Str2Pool(map[string][]string{"unshared": unshared, "shared": shared})
}

// TestBalanceSizes checks the big group is cut to the small group's
// size and the small one is untouched, and that what is kept is a
// subset of what was there, no repeats.
func TestBalanceSizes(t *testing.T) {
	pool := tenAndTwo()
	out := pool.Balance(balanceGroups, rand.New(rand.NewSource(1)))

	if n := out.NSeq("unshared", 7); n != 2 {
		t.Fatal("unshared should be cut to 2, got", n)
	}
	if n := out.NSeq("shared", 7); n != 2 {
		t.Fatal("shared should stay at 2, got", n)
	}
	if n := pool.NSeq("unshared", 7); n != 10 {
		t.Fatal("balance must not touch its input, got", n)
	}
	orig := make(map[string]bool)
	for _, s := range pool["unshared"][7] {
		orig[string(s)] = true
	}
	seen := make(map[string]bool)
	for _, s := range out["unshared"][7] {
		if !orig[string(s)] {
			t.Fatal("kept a sequence that was never there:", string(s))
		}
		if seen[string(s)] {
			t.Fatal("sampled with replacement:", string(s))
		}
		seen[string(s)] = true
	}
}

// TestBalanceSeed. Same seed, same sample, different seeds will
// (almost always) differ somewhere, but we only assert the first.
func TestBalanceSeed(t *testing.T) {
	a := tenAndTwo().Balance(balanceGroups, rand.New(rand.NewSource(7)))
	b := tenAndTwo().Balance(balanceGroups, rand.New(rand.NewSource(7)))
	if !reflect.DeepEqual(a, b) {
		t.Fatal("same seed gave different pools")
	}
}

// TestBalanceMissing. A length present in one group but not the other
// means the minimum is zero, so the bucket empties. Not an error.
func TestBalanceMissing(t *testing.T) {
	pool := Str2Pool(map[string][]string{
		"unshared": {"AAAAAAA", "CAAAAAA"},
	})
	out := pool.Balance(balanceGroups, rand.New(rand.NewSource(1)))
	if n := out.NSeq("unshared", 7); n != 0 {
		t.Fatal("bucket with no partner should empty, got", n)
	}
}

// TestBalanceLeavesOthers. Groups not named must come through as they
// were.
func TestBalanceLeavesOthers(t *testing.T) {
	pool := Str2Pool(map[string][]string{
		"unshared": {"AAAAAAA", "CAAAAAA", "DAAAAAA"},
		"shared":   {"EAAAAAA"},
		"decoy":    {"FAAAAAA", "GAAAAAA"},
	})
	out := pool.Balance(balanceGroups, rand.New(rand.NewSource(1)))
	if n := out.NSeq("decoy", 7); n != 2 {
		t.Fatal("unnamed group was touched, got", n)
	}
	if n := out.NSeq("unshared", 7); n != 1 {
		t.Fatal("unshared should be cut to 1, got", n)
	}
}
