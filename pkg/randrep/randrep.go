// 18 Mar 2026

// Package randrep writes made-up clonotype count files. They have the
// same shape as the real pre-aggregated files, a sharing tag, V and J
// gene names and a CDR3 sequence, so they are good for testing the
// reader and for benchmarking with inputs of any size.
package randrep

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
)

// Args is the set of arguments passed to the main function.
type Args struct {
	Iseed  int64     // random number seed
	Wrtr   io.Writer // where we write to
	Nrow   int       // number of rows to write
	NSubj  int       // subjects in the cohort, tags run 1..NSubj
	MinLen int       // CDR3 lengths are drawn
	MaxLen int       //   uniformly from [MinLen,MaxLen]
}

var residues = []byte("ACDEFGHIKLMNPQRSTVWY")

// The gene columns are only there so the rows have the same number of
// fields as real count files. The entropy code never looks at them.
var vgenes = []string{"TRBV5-1", "TRBV6-5", "TRBV7-9", "TRBV12-3", "TRBV19", "TRBV28"}
var jgenes = []string{"TRBJ1-1", "TRBJ1-2", "TRBJ2-1", "TRBJ2-3", "TRBJ2-7"}

// oneseq makes a random CDR3. The first and last residues are the
// conserved cysteine and phenylalanine, as in the real thing.
func oneseq(l int, rnd *rand.Rand) []byte {
	s := make([]byte, l)
	s[0] = 'C'
	for i := 1; i < l-1; i++ {
		s[i] = residues[rnd.Intn(len(residues))]
	}
	s[l-1] = 'F'
	return s
}

// Main writes args.Nrow random count rows. The same seed always gives
// the same file.
func Main(args *Args) error {
	if args.Nrow <= 0 || args.NSubj <= 0 {
		return fmt.Errorf("need positive row and subject counts")
	}
	if args.MinLen < 2 || args.MaxLen < args.MinLen {
		return fmt.Errorf("silly length range %d to %d", args.MinLen, args.MaxLen)
	}
	rnd := rand.New(rand.NewSource(args.Iseed))
	bw := bufio.NewWriter(args.Wrtr)
	for i := 0; i < args.Nrow; i++ {
		tag := rnd.Intn(args.NSubj) + 1
		l := args.MinLen + rnd.Intn(args.MaxLen-args.MinLen+1)
		s := oneseq(l, rnd)
		v := vgenes[rnd.Intn(len(vgenes))]
		j := jgenes[rnd.Intn(len(jgenes))]
		if _, err := fmt.Fprintf(bw, "%d %s %s %s\n", tag, v, j, s); err != nil {
			return err
		}
	}
	return bw.Flush()
}
