// Reader for whitespace-delimited clonotype count files.

package cdr3

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/edsrzf/mmap-go"

	. "github.com/andrew-torda/cdr3_entropy/pkg/cdr3/common"
)

// upper uppercases a sequence in place. It is much smaller than the
// library version, since it only has to know about residue codes.
func upper(s []byte) {
	const diff = 'a' - 'A'
	for i, c := range s {
		if 'a' <= c && c <= 'z' {
			s[i] -= diff
		}
	}
}

// seqOK says whether every byte could be a residue code. Anything
// outside ascii letters means the row is rubbish.
func seqOK(s []byte) bool {
	for _, c := range s {
		if c >= MaxSym {
			return false
		}
		if c < 'A' || (c > 'Z' && c < 'a') || c > 'z' {
			return false
		}
	}
	return true
}

// fromBuf does the real work of building pools. It walks the rows in
// buf. Field 0 must parse as an integer sharing tag and field
// opts.SeqField holds the sequence. Rows with too few fields, an
// unparseable tag or junk in the sequence are skipped, never fatal.
// Rows whose tag classifies as excluded or whose length falls outside
// the configured range are dropped quietly, that is the design. A
// negative SeqField is the caller's mistake and gives an error.
// buf may be mapped memory, so sequences are always copied out.
func fromBuf(buf []byte, opts *Options) (Pool, error) {
	if opts.SeqField < 0 { // broken configuration, not a broken row
		return nil, fmt.Errorf("sequence field %d makes no sense", opts.SeqField)
	}
	classify := opts.Classify
	if classify == nil {
		classify = RangeClassifier(DfltUnshared, DfltSharedLo, DfltSharedHi)
	}
	pool := make(Pool)
	nBad := 0
	for len(buf) > 0 {
		line := buf
		if ndx := bytes.IndexByte(buf, '\n'); ndx < 0 {
			buf = nil
		} else {
			line, buf = buf[:ndx], buf[ndx+1:]
		}
		fields := bytes.Fields(line)
		if len(fields) == 0 { // blank lines are not even malformed
			continue
		}
		if len(fields) <= opts.SeqField {
			nBad++
			continue
		}
		tag, err := strconv.Atoi(string(fields[0]))
		if err != nil {
			nBad++
			continue
		}
		class := classify(tag)
		if class == Excluded {
			continue
		}
		s := fields[opts.SeqField]
		if !seqOK(s) {
			nBad++
			continue
		}
		if len(s) < opts.MinLen || len(s) > opts.MaxLen {
			continue
		}
		t := make([]byte, len(s))
		copy(t, s)
		upper(t)
		pool.add(class.String(), t)
	}
	if nBad > 0 && opts.Vbsty > 2 {
		fmt.Fprintln(os.Stderr, "skipped", nBad, "malformed rows")
	}
	return pool, nil
}

// ReadRows builds pools from rows read from rdr. Use it when the
// input is not a plain file, stdin or a pipe or a test string.
func ReadRows(rdr io.Reader, opts *Options) (Pool, error) {
	buf, err := io.ReadAll(rdr)
	if err != nil {
		return nil, err
	}
	return fromBuf(buf, opts)
}

// ReadFile maps fname and builds pools from it. The count files are
// big and read exactly once, so mmap saves a copy and the kernel can
// throw the pages away as soon as we unmap. "" or "-" means standard
// input. If the mapping fails (an empty file will do it), we fall
// back to an ordinary read.
func ReadFile(fname string, opts *Options) (Pool, error) {
	if fname == "" || fname == "-" {
		return ReadRows(os.Stdin, opts)
	}
	fp, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	mm, err := mmap.Map(fp, mmap.RDONLY, 0)
	if err != nil {
		return ReadRows(fp, opts)
	}
	defer mm.Unmap()
	return fromBuf(mm, opts)
}
