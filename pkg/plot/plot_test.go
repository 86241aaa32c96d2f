// 17 Mar 2026

package plot_test

import (
	"bytes"
	"testing"

	"github.com/andrew-torda/cdr3_entropy/pkg/cdr3"
	"github.com/andrew-torda/cdr3_entropy/pkg/plot"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

// TestProfile draws a small table and checks a png comes out.
func TestProfile(t *testing.T) {
	pool := cdr3.Str2Pool(map[string][]string{
		"unshared": {"CASSLGRAYEQYF", "CASSFSTDTQYFF", "CASSIRSSYEQYF"},
		"shared":   {"CASSLGFFYEQYF", "CASSYEQYYEQYF"},
	})
	recs := pool.EntropyTable("t0", 3)
	if len(recs) == 0 {
		t.Fatal("test not set up right, no records")
	}
	var b bytes.Buffer
	if err := plot.Profile(&b, recs, "test data"); err != nil {
		t.Fatal("profile failed", err)
	}
	if !bytes.HasPrefix(b.Bytes(), pngMagic) {
		t.Fatal("output is not a png")
	}
}

// TestProfileOnePos. A single position must not blow up the x
// scaling.
func TestProfileOnePos(t *testing.T) {
	pool := cdr3.Str2Pool(map[string][]string{"shared": {"AAACAAA", "AAAGAAA"}})
	recs := pool.EntropyTable("t1", 3)
	var b bytes.Buffer
	if err := plot.Profile(&b, recs, ""); err != nil {
		t.Fatal("single position profile failed", err)
	}
	if !bytes.HasPrefix(b.Bytes(), pngMagic) {
		t.Fatal("output is not a png")
	}
}

// TestProfileEmpty. Nothing to plot is the one error case.
func TestProfileEmpty(t *testing.T) {
	var b bytes.Buffer
	if err := plot.Profile(&b, nil, ""); err == nil {
		t.Fatal("empty table should refuse to plot")
	}
}
