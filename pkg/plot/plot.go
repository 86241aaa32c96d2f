// 17 Mar 2026

// Package plot draws an entropy profile as a png, one polyline per
// group, entropy averaged over everything that landed at a position.
// It is meant for a quick look at a run, not for publication. Serious
// plots come from feeding the csv table to R or gnuplot.
package plot

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"sort"

	"github.com/golang/freetype"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/andrew-torda/cdr3_entropy/pkg/cdr3"
)

const (
	width   = 640
	height  = 420
	marginL = 55 // room for the y axis labels
	marginR = 110
	marginT = 30
	marginB = 45
	ticklen = 4
	fntSize = 12
)

// One colour per group, recycled if somebody has more groups than we
// ever see in practice.
var palette = []color.RGBA{
	{0x1f, 0x77, 0xb4, 0xff},
	{0xd6, 0x27, 0x28, 0xff},
	{0x2c, 0xa0, 0x2c, 0xff},
	{0x7f, 0x7f, 0x7f, 0xff},
}

// line draws a straight segment by stepping along the longer axis.
// Good enough for axes and profiles, no antialiasing.
func line(img *image.RGBA, x0, y0, x1, y1 float64, c color.Color) {
	dx, dy := x1-x0, y1-y0
	adx, ady := dx, dy
	if adx < 0 {
		adx = -adx
	}
	if ady < 0 {
		ady = -ady
	}
	steps := int(adx)
	if int(ady) > steps {
		steps = int(ady)
	}
	if steps == 0 {
		img.Set(int(x0), int(y0), c)
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		img.Set(int(x0+t*dx), int(y0+t*dy), c)
	}
}

// mean entropy per position for one group
type profile struct {
	group string
	h     map[int]float32
}

// profiles collapses the records. Every record at the same (group,
// position) is averaged, whatever its length or sample.
func profiles(recs []cdr3.Record) (profs []profile, posMin, posMax int) {
	sums := make(map[string]map[int]*[2]float32)
	posMin, posMax = recs[0].Pos, recs[0].Pos
	for _, r := range recs {
		if sums[r.Group] == nil {
			sums[r.Group] = make(map[int]*[2]float32)
		}
		s := sums[r.Group][r.Pos]
		if s == nil {
			s = new([2]float32)
			sums[r.Group][r.Pos] = s
		}
		s[0] += r.H
		s[1]++
		if r.Pos < posMin {
			posMin = r.Pos
		}
		if r.Pos > posMax {
			posMax = r.Pos
		}
	}
	groups := make([]string, 0, len(sums))
	for g := range sums {
		groups = append(groups, g)
	}
	sort.Strings(groups)
	for _, g := range groups {
		h := make(map[int]float32)
		for pos, s := range sums[g] {
			h[pos] = s[0] / s[1]
		}
		profs = append(profs, profile{group: g, h: h})
	}
	return profs, posMin, posMax
}

// Profile draws the profile plot for a results table and writes it as
// a png. An empty table is the one thing it will not draw.
func Profile(w io.Writer, recs []cdr3.Record, title string) error {
	if len(recs) == 0 {
		return fmt.Errorf("nothing to plot")
	}
	profs, posMin, posMax := profiles(recs)

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	fnt, err := freetype.ParseFont(goregular.TTF)
	if err != nil {
		return fmt.Errorf("parsing builtin font: %w", err)
	}
	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(fnt)
	ctx.SetFontSize(fntSize)
	ctx.SetClip(img.Bounds())
	ctx.SetDst(img)
	ctx.SetSrc(image.Black)
	text := func(s string, x, y int) error {
		_, err := ctx.DrawString(s, freetype.Pt(x, y))
		return err
	}

	xlo, xhi := float64(marginL), float64(width-marginR)
	ylo, yhi := float64(height-marginB), float64(marginT) // y grows downwards
	xpix := func(pos int) float64 {
		if posMax == posMin {
			return (xlo + xhi) / 2
		}
		return xlo + float64(pos-posMin)*(xhi-xlo)/float64(posMax-posMin)
	}
	ypix := func(h float32) float64 {
		return ylo + float64(h)*(yhi-ylo)
	}

	line(img, xlo, ylo, xhi, ylo, color.Black) // axes
	line(img, xlo, ylo, xlo, yhi, color.Black)
	for _, v := range []float32{0, 0.25, 0.5, 0.75, 1} { // y ticks
		y := ypix(v)
		line(img, xlo-ticklen, y, xlo, y, color.Black)
		if err := text(fmt.Sprintf("%.2f", v), 10, int(y)+fntSize/3); err != nil {
			return err
		}
	}
	step := 1 // x ticks, thin them out on wide ranges
	if posMax-posMin > 20 {
		step = 2
	}
	for pos := posMin; pos <= posMax; pos += step {
		x := xpix(pos)
		line(img, x, ylo, x, ylo+ticklen, color.Black)
		if err := text(fmt.Sprint(pos), int(x)-4, height-marginB+20); err != nil {
			return err
		}
	}
	if err := text(title, marginL, 20); err != nil {
		return err
	}
	if err := text("position", (width-marginR)/2, height-8); err != nil {
		return err
	}

	for i, prof := range profs {
		c := palette[i%len(palette)]
		positions := make([]int, 0, len(prof.h))
		for pos := range prof.h {
			positions = append(positions, pos)
		}
		sort.Ints(positions)
		for j := 1; j < len(positions); j++ {
			p0, p1 := positions[j-1], positions[j]
			line(img, xpix(p0), ypix(prof.h[p0]), xpix(p1), ypix(prof.h[p1]), c)
		}
		if len(positions) == 1 { // a lone point still deserves a mark
			p := positions[0]
			line(img, xpix(p)-2, ypix(prof.h[p]), xpix(p)+2, ypix(prof.h[p]), c)
		}
		ctx.SetSrc(image.NewUniform(c)) // legend in the group's colour
		y := marginT + 18*(i+1)
		if err := text(prof.group, width-marginR+10, y); err != nil {
			return err
		}
	}
	return png.Encode(w, img)
}
