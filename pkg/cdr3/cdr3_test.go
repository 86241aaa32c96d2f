// 12 Mar 2026

package cdr3_test

import (
	"os"
	"strings"
	"testing"

	. "github.com/andrew-torda/cdr3_entropy/pkg/cdr3"
	"github.com/andrew-torda/cdr3_entropy/pkg/cdr3/common"
)

// TestClassifier checks the default sharing policy and the edges of
// the shared range.
func TestClassifier(t *testing.T) {
	classify := RangeClassifier(1, 6, 10)
	cases := []struct {
		tag  int
		want Class
	}{
		{1, Unshared},
		{6, Shared},
		{8, Shared},
		{10, Shared},
		{0, Excluded},
		{2, Excluded},
		{5, Excluded},
		{11, Excluded},
		{-3, Excluded},
	}
	for _, x := range cases {
		if got := classify(x.tag); got != x.want {
			t.Fatalf("tag %d got %v want %v", x.tag, got, x.want)
		}
	}
}

// TestBuildPools feeds the reader a little file where one row is
// excluded by classification and one by the length range.
func TestBuildPools(t *testing.T) {
	rows := `1 x x AAAAAAA
6 x x CCCCCCC
3 x x GGGGGGG
1 x x TT
`
	pool, err := ReadRows(strings.NewReader(rows), DfltOptions())
	if err != nil {
		t.Fatal("reading rows", err)
	}
	groups := pool.Groups()
	if len(groups) != 2 || groups[0] != "shared" || groups[1] != "unshared" {
		t.Fatal("wrong groups", groups)
	}
	if n := pool.NSeq("unshared", 7); n != 1 {
		t.Fatal("unshared at 7, want 1 seq, got", n)
	}
	if n := pool.NSeq("shared", 7); n != 1 {
		t.Fatal("shared at 7, want 1 seq, got", n)
	}
	if s := pool["unshared"][7][0]; string(s) != "AAAAAAA" {
		t.Fatal("wrong unshared sequence", string(s))
	}
	if s := pool["shared"][7][0]; string(s) != "CCCCCCC" {
		t.Fatal("wrong shared sequence", string(s))
	}
	if n := pool.NSeq("unshared", 2); n != 0 {
		t.Fatal("length 2 should have been dropped")
	}
}

// TestMalformed makes sure rubbish rows are skipped, never fatal.
func TestMalformed(t *testing.T) {
	rows := `1 x x
notanumber x x AAAAAAA

1 x x AAA*AAA
1 x
1 x x CASSLGFF
`
	pool, err := ReadRows(strings.NewReader(rows), DfltOptions())
	if err != nil {
		t.Fatal("malformed rows should not give an error, got", err)
	}
	if n := pool.NSeq("unshared", 8); n != 1 {
		t.Fatal("want the one good row, got", n)
	}
}

// TestUpcase checks sequences come out in upper case whatever the
// file had.
func TestUpcase(t *testing.T) {
	rows := "1 x x cassLGFF\n"
	pool, err := ReadRows(strings.NewReader(rows), DfltOptions())
	if err != nil {
		t.Fatal(err)
	}
	if s := pool["unshared"][8][0]; string(s) != "CASSLGFF" {
		t.Fatal("not uppercased:", string(s))
	}
}

// TestSeqField moves the sequence to a different column.
func TestSeqField(t *testing.T) {
	opts := DfltOptions()
	opts.SeqField = 1
	pool, err := ReadRows(strings.NewReader("1 CASSLGFF\n"), opts)
	if err != nil {
		t.Fatal(err)
	}
	if n := pool.NSeq("unshared", 8); n != 1 {
		t.Fatal("did not find sequence in field 1")
	}
}

// TestBadSeqField. A negative field number is a broken configuration,
// not a broken row, so the reader must refuse it up front.
func TestBadSeqField(t *testing.T) {
	opts := DfltOptions()
	opts.SeqField = -1
	if _, err := ReadRows(strings.NewReader("1 x x AAAAAAA\n"), opts); err == nil {
		t.Fatal("negative sequence field should give an error")
	}
}

// TestReadFile goes through the mmap path and must agree with the
// plain reader.
func TestReadFile(t *testing.T) {
	rows := `1 TRBV5-1 TRBJ2-1 CASSFSTDTQYF
7 TRBV19 TRBJ1-2 CASSIRSSYEQYF
2 TRBV28 TRBJ2-7 CASSLGRAYEQYF
`
	fname, err := common.WrtTemp(rows)
	if err != nil {
		t.Fatal("fail writing test file")
	}
	defer os.Remove(fname)
	pool, err := ReadFile(fname, DfltOptions())
	if err != nil {
		t.Fatal("reading temp count file", err)
	}
	if n := pool.NSeq("unshared", 12); n != 1 {
		t.Fatal("unshared at 12, got", n)
	}
	if n := pool.NSeq("shared", 13); n != 1 {
		t.Fatal("shared at 13, got", n)
	}
	if len(pool.Groups()) != 2 { // the tag 2 row is excluded
		t.Fatal("wrong groups", pool.Groups())
	}
}

// TestReadFileEmpty checks an empty file is an empty pool, not a
// crash. mmap will not map it, so this also exercises the fallback.
func TestReadFileEmpty(t *testing.T) {
	fname, err := common.WrtTemp("")
	if err != nil {
		t.Fatal("fail writing test file")
	}
	defer os.Remove(fname)
	pool, err := ReadFile(fname, DfltOptions())
	if err != nil {
		t.Fatal("empty file should not error, got", err)
	}
	if len(pool.Groups()) != 0 {
		t.Fatal("empty file gave a non-empty pool")
	}
}

// TestMissingFile should surface the os error.
func TestMissingFile(t *testing.T) {
	if _, err := ReadFile("/no/such/file/here", DfltOptions()); err == nil {
		t.Fatal("missing file should give an error")
	}
}
