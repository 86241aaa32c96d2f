// Only for testing. Let the test package get at some internals.

package cdr3

var EntropyFromCounts = entropyFromCounts
