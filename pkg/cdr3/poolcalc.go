// 12 Mar 2026
// poolcalc does the entropy arithmetic on pools. The functions have
// to live in this package, since they need access to the innards of
// a pool.

package cdr3

import (
	"math"

	"github.com/andrew-torda/matrix"

	. "github.com/andrew-torda/cdr3_entropy/pkg/cdr3/common"
)

const (
	badMap = math.MaxUint8 // marks a symbol as not seen
)

// Record is one row of the results table, the entropy of residue
// usage at one position of one (group, length) bucket. Counts holds
// the tallies the number came from. Records are only ever made and
// appended, never changed.
type Record struct {
	Group  string
	Length int
	Pos    int          // position in the sequence, counting from 0
	Counts map[byte]int // residue -> occurrences at this position
	H      float32      // normalised entropy, 0 to 1
	Src    string       // provenance, usually the input file name
}

// entropyFromCounts is the inner entropy routine. It takes the
// tallies for one column and returns the Shannon entropy, normalised
// by the log of the number of distinct symbols seen, so the answer
// runs from 0 to 1 whatever the alphabet. A column with nothing in
// it, one element or one distinct symbol gives 0 by convention.
// Symbols with no counts stay out of the sum, so we never take
// log(0), and the k check means we never divide by zero. Natural
// logs top and bottom, the units cancel.
func entropyFromCounts(counts []float32) float32 {
	var n float64
	k := 0
	for _, c := range counts {
		if c > 0 {
			k++
			n += float64(c)
		}
	}
	if k <= 1 { // covers the empty and the single element column too
		return 0
	}
	var tot float64
	for _, c := range counts {
		if c == 0 {
			continue
		}
		p := float64(c) / n
		tot += p * math.Log(p)
	}
	return float32(-tot / math.Log(float64(k)))
}

// Entropy takes the symbols observed at one position and returns
// their normalised entropy. It is total. Any finite column, including
// an empty one, gives an answer in [0,1] and never an error.
func Entropy(column []byte) float32 {
	var counts [256]float32
	for _, c := range column {
		counts[c]++
	}
	return entropyFromCounts(counts[:])
}

// bucketRecs does one (group, length) bucket. Map the symbols seen
// onto consecutive rows of a counts matrix, tally usage by site, then
// walk the interior columns.
// counts.Mat looks like [number_of_types][length_of_seq].
func bucketRecs(group string, length int, bucket [][]byte,
	src string, trim int) []Record {
	var symUsed [MaxSym]bool
	var mapping [MaxSym]uint8
	for i := range mapping {
		mapping[i] = badMap
	}
	for _, s := range bucket {
		for _, c := range s {
			symUsed[c] = true
		}
	}
	var revmap []uint8
	var n uint8
	for i := range symUsed {
		if symUsed[i] {
			mapping[i] = n
			revmap = append(revmap, uint8(i))
			n++
		}
	}

	counts := matrix.NewFMatrix2d(len(revmap), length)
	for _, s := range bucket {
		for i, c := range s {
			counts.Mat[mapping[c]][i]++
		}
	}

	col := make([]float32, len(revmap))
	recs := make([]Record, 0, length-2*trim)
	for pos := trim; pos < length-trim; pos++ {
		cmap := make(map[byte]int)
		for irow := range col {
			col[irow] = counts.Mat[irow][pos]
			if col[irow] > 0 {
				cmap[revmap[irow]] = int(col[irow])
			}
		}
		recs = append(recs, Record{Group: group, Length: length, Pos: pos,
			Counts: cmap, H: entropyFromCounts(col), Src: src})
	}
	return recs
}

// EntropyTable walks a pool and returns one record per group, length
// and interior position. trim residues at each end of a sequence are
// left out, so a length with no interior (length <= 2*trim) produces
// nothing, as does an empty bucket. Groups and lengths come out
// sorted, so two calls on the same pool give identical tables.
// A negative trim is treated as zero, every position is interior.
func (pool Pool) EntropyTable(src string, trim int) []Record {
	if trim < 0 {
		trim = 0
	}
	var recs []Record
	for _, g := range pool.Groups() {
		for _, l := range pool.Lengths(g) {
			if l <= 2*trim {
				continue // no interior positions at this length
			}
			if len(pool[g][l]) == 0 {
				continue
			}
			recs = append(recs, bucketRecs(g, l, pool[g][l], src, trim)...)
		}
	}
	return recs
}
