// 19 Mar 2026
// Read clonotype count files and calculate the positional entropy of
// shared and unshared CDR3 sequences.

package main

import (
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/andrew-torda/cdr3_entropy/pkg/entropy"

	. "github.com/andrew-torda/cdr3_entropy/pkg/cdr3/common"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage:", path.Base(os.Args[0]),
		"[flags] [countfile...] ")
	long := `Given no file arguments, read count rows from stdin.
Each file is one sample. The csv table goes to stdout unless -o says
otherwise. Every row of a count file starts with an integer sharing
tag and carries the CDR3 sequence in its fourth field.`
	fmt.Fprintln(os.Stderr, long)
	flag.PrintDefaults()
}

func main() {
	flags := entropy.DfltFlags()
	var outfile string

	flag.StringVar(&flags.Dataset, "d", "", "dataset label for the output rows")
	flag.StringVar(&outfile, "o", "", "output csv file, default stdout")
	flag.StringVar(&flags.PlotFile, "p", "", "write a png profile plot to this file")
	flag.Int64Var(&flags.Seed, "s", flags.Seed, "seed for the balancing sampler")
	flag.IntVar(&flags.Trim, "j", flags.Trim, "junction residues trimmed from each end")
	flag.IntVar(&flags.MinLen, "l", flags.MinLen, "shortest accepted sequence length")
	flag.IntVar(&flags.MaxLen, "m", flags.MaxLen, "longest accepted sequence length")
	flag.IntVar(&flags.SeqField, "f", flags.SeqField, "field holding the sequence, from 0")
	flag.IntVar(&flags.Unshared, "u", flags.Unshared, "tag counting as unshared")
	flag.IntVar(&flags.SharedLo, "a", flags.SharedLo, "lowest tag counting as shared")
	flag.IntVar(&flags.SharedHi, "b", flags.SharedHi, "highest tag counting as shared")
	flag.BoolVar(&flags.NoBalance, "n", false, "do not balance group sizes")
	flag.BoolVar(&flags.Time, "t", false, "print out timing information")
	flag.IntVar(&flags.Vbsty, "v", 0, "verbosity")
	flag.Usage = usage
	flag.Parse()

	if err := entropy.Mymain(flags, flag.Args(), outfile); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitFailure)
	}
	os.Exit(ExitSuccess)
}
