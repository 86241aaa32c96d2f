// 14 Mar 2026

// Package entropy glues the pieces together for the entropy tool.
// Each input file goes through the same pipeline, read rows, build
// pools, balance the groups, calculate the table. The files are
// independent, so they are farmed out to goroutines and the results
// stitched back together in command line order.
package entropy

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"path"
	"sync"
	"time"

	"github.com/andrew-torda/cdr3_entropy/pkg/cdr3"
	"github.com/andrew-torda/cdr3_entropy/pkg/plot"
)

// CmdFlag is literally command line flags after parsing.
type CmdFlag struct {
	Dataset   string // dataset label written to every output row
	PlotFile  string // write a png profile plot here, "" for none
	Seed      int64  // seed for the balancing sampler
	Trim      int    // residues ignored at each end of a sequence
	MinLen    int    // closed range of accepted
	MaxLen    int    //   sequence lengths
	SeqField  int    // field of a count row holding the sequence
	Unshared  int    // tag meaning a clonotype seen in one subject
	SharedLo  int    // tags in [SharedLo,SharedHi]
	SharedHi  int    //   count as shared
	NoBalance bool   // skip the balancing step
	Time      bool   // print out the run time at the end
	Vbsty     int
}

// DfltFlags gives the usual analysis parameters. The cmd wrapper uses
// them as flag defaults.
func DfltFlags() *CmdFlag {
	return &CmdFlag{
		Seed:     1,
		Trim:     cdr3.DfltTrim,
		MinLen:   cdr3.DfltMinLen,
		MaxLen:   cdr3.DfltMaxLen,
		SeqField: cdr3.DfltSeqField,
		Unshared: cdr3.DfltUnshared,
		SharedLo: cdr3.DfltSharedLo,
		SharedHi: cdr3.DfltSharedHi,
	}
}

// groupsBalanced are the groups whose sizes get equalised before the
// entropy calculation.
var groupsBalanced = []string{cdr3.Shared.String(), cdr3.Unshared.String()}

// onefile runs the pipeline for a single count file.
func onefile(flags *CmdFlag, fname string) ([]cdr3.Record, error) {
	opts := &cdr3.Options{
		Classify: cdr3.RangeClassifier(flags.Unshared, flags.SharedLo, flags.SharedHi),
		Vbsty:    flags.Vbsty,
		SeqField: flags.SeqField,
		MinLen:   flags.MinLen,
		MaxLen:   flags.MaxLen,
	}
	pool, err := cdr3.ReadFile(fname, opts)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", fname, err)
	}
	if !flags.NoBalance {
		rnd := rand.New(rand.NewSource(flags.Seed))
		pool = pool.Balance(groupsBalanced, rnd)
	}
	src := "stdin"
	if fname != "" && fname != "-" {
		src = path.Base(fname)
	}
	return pool.EntropyTable(src, flags.Trim), nil
}

// readall farms the input files out, one goroutine per file. Results
// and errors land in slices indexed by file, so the table keeps the
// command line order whatever order the files finish in. The first
// file with an error sinks the whole run.
func readall(flags *CmdFlag, infiles []string) ([]cdr3.Record, error) {
	recs := make([][]cdr3.Record, len(infiles))
	errs := make([]error, len(infiles))
	var wg sync.WaitGroup
	wg.Add(len(infiles))
	for i, f := range infiles {
		go func(i int, f string) {
			defer wg.Done()
			recs[i], errs[i] = onefile(flags, f)
		}(i, f)
	}
	wg.Wait()
	var all []cdr3.Record
	for i := range infiles {
		if errs[i] != nil {
			return nil, errs[i]
		}
		all = append(all, recs[i]...)
	}
	return all, nil
}

// warnExists checks if a filename exists and prints a warning if we
// will trash a file. It does not return an error.
func warnExists(fname string) {
	if _, err := os.Stat(fname); err == nil {
		fmt.Fprintln(os.Stderr, "Warning, trashing old version of", fname)
	}
}

// WriteTbl writes the table as a csv file. The header line keeps
// excel happy, R wants the header=TRUE option. The string columns are
// quoted like the header, so a comma in a label or a filename cannot
// shift the columns. If there is no filename or the filename is "-",
// write to standard output.
func WriteTbl(outfile, dataset string, recs []cdr3.Record) error {
	const headings = `"dataset","group","length","pos","entropy","sample"`
	var fp io.WriteCloser
	var err error
	if outfile != "" && outfile != "-" {
		warnExists(outfile)
		if fp, err = os.Create(outfile); err != nil {
			return fmt.Errorf("output file %v: %w", outfile, err)
		}
		defer fp.Close()
	} else {
		fp = os.Stdout
	}
	fmt.Fprintln(fp, headings)
	for _, r := range recs {
		_, err := fmt.Fprintf(fp, "%q,%q,%d,%d,%.4f,%q\n",
			dataset, r.Group, r.Length, r.Pos, r.H, r.Src)
		if err != nil {
			return err
		}
	}
	return nil
}

// Mymain is the main function for building the entropy table from a
// set of count files and writing it out.
func Mymain(flags *CmdFlag, infiles []string, outfile string) error {
	if flags.Time {
		startTime := time.Now()
		end := func() { // Wrapping in a closure gives the right time.
			fmt.Println("finished after", time.Since(startTime).Milliseconds(), "ms")
		}
		defer end()
	}
	if len(infiles) == 0 {
		infiles = []string{""} // standard input
	}
	recs, err := readall(flags, infiles)
	if err != nil {
		return err
	}
	if err := WriteTbl(outfile, flags.Dataset, recs); err != nil {
		return err
	}
	if flags.PlotFile != "" {
		warnExists(flags.PlotFile)
		fp, err := os.Create(flags.PlotFile)
		if err != nil {
			return fmt.Errorf("plot file %v: %w", flags.PlotFile, err)
		}
		defer fp.Close()
		if err := plot.Profile(fp, recs, flags.Dataset); err != nil {
			return err
		}
	}
	return nil
}
