// 11 Mar 2026

// Package cdr3 holds pools of CDR3 sequences and the calculations on
// them. Sequences come from pre-aggregated clonotype count files. They
// are bucketed by sharing class and by length, the buckets can be
// balanced so the groups are comparable, and then one asks for the
// entropy of residue usage at each position.
// The calculations live in this package, since they need access to
// the innards of a pool.
package cdr3

import (
	"sort"
)

// Class says what a sharing tag means for one clonotype. The tag in
// a count file is the number of subjects a clonotype was seen in.
type Class uint8

const (
	Excluded Class = iota // drop the row
	Unshared              // seen in exactly one subject
	Shared                // seen in at least the configured number of subjects
)

// String gives the group label used in pools and output tables.
func (c Class) String() string {
	switch c {
	case Unshared:
		return "unshared"
	case Shared:
		return "shared"
	}
	return "excluded"
}

// A Classifier turns a sharing tag into a class. The thresholds
// change from dataset to dataset, so the policy is passed around as a
// value and never wired in to the pooling code.
type Classifier func(tag int) Class

// RangeClassifier gives the usual policy. A tag equal to unshared
// means unshared. A tag in [sharedLo,sharedHi] means shared. Anything
// else is excluded.
func RangeClassifier(unshared, sharedLo, sharedHi int) Classifier {
	return func(tag int) Class {
		switch {
		case tag == unshared:
			return Unshared
		case tag >= sharedLo && tag <= sharedHi:
			return Shared
		}
		return Excluded
	}
}

// Default thresholds. Out of ten subjects, a clonotype in exactly one
// subject is unshared and one in at least six is shared. The CDR3
// sequence is the fourth whitespace-delimited field of a count row,
// lengths run from 7 to 14 and three residues at each end of a
// sequence are conserved junction, so they stay out of the entropy.
const (
	DfltUnshared = 1
	DfltSharedLo = 6
	DfltSharedHi = 10
	DfltSeqField = 3
	DfltMinLen   = 7
	DfltMaxLen   = 14
	DfltTrim     = 3
)

// Options contains all the choices passed in from the caller.
type Options struct {
	Classify Classifier // maps sharing tags to groups, nil gets the default
	Vbsty    int        // how noisy to be about skipped rows
	SeqField int        // index of the field holding the CDR3 sequence
	MinLen   int        // sequences with lengths outside
	MaxLen   int        //   [MinLen,MaxLen] are dropped
}

// DfltOptions returns an Options with the usual choices filled in.
func DfltOptions() *Options {
	return &Options{
		SeqField: DfltSeqField,
		MinLen:   DfltMinLen,
		MaxLen:   DfltMaxLen,
	}
}

// Pool maps a group label to, per sequence length, the sequences
// accepted into that bucket. Every sequence in a bucket has exactly
// the bucket's length.
type Pool map[string]map[int][][]byte

// add puts one sequence into its bucket.
func (pool Pool) add(group string, s []byte) {
	byLen, ok := pool[group]
	if !ok {
		byLen = make(map[int][][]byte)
		pool[group] = byLen
	}
	byLen[len(s)] = append(byLen[len(s)], s)
}

// NSeq returns the number of sequences in one bucket. A missing
// bucket has zero sequences, it is not an error.
func (pool Pool) NSeq(group string, length int) int {
	return len(pool[group][length])
}

// Groups returns the group labels, sorted, so walking a pool gives
// the same order every time.
func (pool Pool) Groups() []string {
	groups := make([]string, 0, len(pool))
	for g := range pool {
		groups = append(groups, g)
	}
	sort.Strings(groups)
	return groups
}

// Lengths returns the lengths present for one group, sorted.
func (pool Pool) Lengths(group string) []int {
	lengths := make([]int, 0, len(pool[group]))
	for l := range pool[group] {
		lengths = append(lengths, l)
	}
	sort.Ints(lengths)
	return lengths
}

// Str2Pool takes sequences as strings, grouped by label, and returns
// them as a pool. It is handy in testing.
func Str2Pool(groups map[string][]string) Pool {
	pool := make(Pool)
	for g, seqs := range groups {
		for _, s := range seqs {
			pool.add(g, []byte(s))
		}
	}
	return pool
}
