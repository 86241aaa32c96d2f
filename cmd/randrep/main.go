// 19 Mar 2026

package main

import (
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/andrew-torda/cdr3_entropy/pkg/randrep"

	. "github.com/andrew-torda/cdr3_entropy/pkg/cdr3/common"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage:", path.Base(os.Args[0]), "[flags] [outfile]")
	flag.PrintDefaults()
}

func main() {
	args := randrep.Args{Wrtr: os.Stdout}

	flag.Int64Var(&args.Iseed, "s", 1637, "random number seed")
	flag.IntVar(&args.Nrow, "n", 10000, "number of rows to write")
	flag.IntVar(&args.NSubj, "c", 10, "subjects in the cohort")
	flag.IntVar(&args.MinLen, "l", 7, "shortest sequence length")
	flag.IntVar(&args.MaxLen, "m", 14, "longest sequence length")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() > 0 {
		fp, err := os.Create(flag.Arg(0))
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(ExitFailure)
		}
		defer fp.Close()
		args.Wrtr = fp
	}
	if err := randrep.Main(&args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitFailure)
	}
	os.Exit(ExitSuccess)
}
