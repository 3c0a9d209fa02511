// Package render composes terminal frames: a cell grid with colours, a braille
// dot canvas for smooth shapes and a few glyph helpers.
package render

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Cell is one terminal cell. Rune 0 marks the right half of a wide rune.
type Cell struct {
	Rune rune
	FG   RGB
	BG   RGB
}

// Grid is a fixed-size frame. Writes outside it are clipped.
type Grid struct {
	w, h    int
	cells   []Cell
	Profile Profile
}

// NewGrid returns a w×h grid filled with spaces on bg.
func NewGrid(w, h int, bg RGB) *Grid {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	g := &Grid{w: w, h: h, cells: make([]Cell, w*h), Profile: DetectProfile()}
	g.FillRect(0, 0, w, h, bg)
	return g
}

func (g *Grid) Width() int  { return g.w }
func (g *Grid) Height() int { return g.h }

func (g *Grid) in(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.w && y < g.h
}

// At returns the cell at (x, y); outside the grid it is the zero cell.
func (g *Grid) At(x, y int) Cell {
	if !g.in(x, y) {
		return Cell{}
	}
	return g.cells[y*g.w+x]
}

// clearWide breaks up a wide rune that overlaps (x, y) so a narrow write
// does not leave half of it behind.
func (g *Grid) clearWide(x, y int) {
	i := y*g.w + x
	if g.cells[i].Rune == 0 && x > 0 {
		g.cells[i-1].Rune = ' '
	}
	if x+1 < g.w && g.cells[i+1].Rune == 0 {
		g.cells[i+1].Rune = ' '
	}
}

// Set writes a narrow rune with foreground fg, keeping the cell background.
func (g *Grid) Set(x, y int, r rune, fg RGB) {
	if !g.in(x, y) {
		return
	}
	g.clearWide(x, y)
	c := &g.cells[y*g.w+x]
	c.Rune = r
	c.FG = fg
}

// SetBG changes only the background of a cell.
func (g *Grid) SetBG(x, y int, bg RGB) {
	if !g.in(x, y) {
		return
	}
	g.cells[y*g.w+x].BG = bg
}

// SetFG changes only the foreground of a cell.
func (g *Grid) SetFG(x, y int, fg RGB) {
	if !g.in(x, y) {
		return
	}
	g.cells[y*g.w+x].FG = fg
}

// FillRect paints a rectangle with spaces on bg.
func (g *Grid) FillRect(x, y, w, h int, bg RGB) {
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			if !g.in(col, row) {
				continue
			}
			g.clearWide(col, row)
			g.cells[row*g.w+col] = Cell{Rune: ' ', BG: bg}
		}
	}
}

// Text writes s starting at (x, y) and returns the number of columns used.
// Double-width runes take two cells; a wide rune that would straddle the
// right edge is dropped.
func (g *Grid) Text(x, y int, s string, fg RGB) int {
	col := x
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}
		if col+rw > g.w {
			break
		}
		if col >= 0 && g.in(col, y) {
			g.Set(col, y, r, fg)
			if rw == 2 {
				if g.in(col+1, y) {
					g.clearWide(col+1, y)
					next := &g.cells[y*g.w+col+1]
					next.Rune = 0
					next.BG = g.cells[y*g.w+col].BG
				}
			}
		}
		col += rw
	}
	return col - x
}

// TextCenter writes s centred on column cx.
func (g *Grid) TextCenter(cx, y int, s string, fg RGB) {
	g.Text(cx-runewidth.StringWidth(s)/2, y, s, fg)
}

// Box draws a rounded border around a filled rectangle.
func (g *Grid) Box(x, y, w, h int, border, bg RGB) {
	if w < 2 || h < 2 {
		g.FillRect(x, y, w, h, bg)
		return
	}
	g.FillRect(x, y, w, h, bg)
	right, bottom := x+w-1, y+h-1
	for col := x + 1; col < right; col++ {
		g.Set(col, y, '─', border)
		g.Set(col, bottom, '─', border)
	}
	for row := y + 1; row < bottom; row++ {
		g.Set(x, row, '│', border)
		g.Set(right, row, '│', border)
	}
	g.Set(x, y, '╭', border)
	g.Set(right, y, '╮', border)
	g.Set(x, bottom, '╰', border)
	g.Set(right, bottom, '╯', border)
}

// String renders the grid with colour sequences for the grid's profile.
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow(g.w * g.h * 4)
	for y := range g.h {
		st := newANSIState(g.Profile)
		for x := range g.w {
			c := g.cells[y*g.w+x]
			if c.Rune == 0 {
				continue
			}
			st.set(&sb, c.FG, c.BG)
			sb.WriteRune(c.Rune)
		}
		st.reset(&sb)
		if y < g.h-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// Plain renders the grid without colour.
func (g *Grid) Plain() string {
	var sb strings.Builder
	for y := range g.h {
		for x := range g.w {
			if r := g.cells[y*g.w+x].Rune; r != 0 {
				sb.WriteRune(r)
			}
		}
		if y < g.h-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
