package render

import "math"

// Canvas is a dot bitmap drawn with Unicode braille. Each cell holds a 2x4 dot
// grid, so dots are roughly square on a typical terminal font.
type Canvas struct {
	cols, rows int
	dots       []bool
}

// Braille dot positions (col, row) → bit offset:
//
//	(0,0)=0  (1,0)=3
//	(0,1)=1  (1,1)=4
//	(0,2)=2  (1,2)=5
//	(0,3)=6  (1,3)=7
var brailleBits = [2][4]uint{
	{0, 1, 2, 6},
	{3, 4, 5, 7},
}

// NewCanvas returns a canvas covering cols×rows cells.
func NewCanvas(cols, rows int) *Canvas {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	return &Canvas{cols: cols, rows: rows, dots: make([]bool, cols*2*rows*4)}
}

// DotWidth and DotHeight are the canvas size in dots.
func (c *Canvas) DotWidth() int  { return c.cols * 2 }
func (c *Canvas) DotHeight() int { return c.rows * 4 }

// Dot sets one dot; out-of-range dots are ignored.
func (c *Canvas) Dot(x, y int) {
	if x < 0 || y < 0 || x >= c.DotWidth() || y >= c.DotHeight() {
		return
	}
	c.dots[y*c.DotWidth()+x] = true
}

// Fill sets every dot whose centre satisfies inside.
func (c *Canvas) Fill(inside func(x, y float64) bool) {
	for y := range c.DotHeight() {
		for x := range c.DotWidth() {
			if inside(float64(x)+0.5, float64(y)+0.5) {
				c.dots[y*c.DotWidth()+x] = true
			}
		}
	}
}

// Pattern returns the braille rune for cell (col, row), or 0 when empty.
func (c *Canvas) Pattern(col, row int) rune {
	var pattern uint
	for dx := range 2 {
		for dy := range 4 {
			x, y := col*2+dx, row*4+dy
			if x < c.DotWidth() && y < c.DotHeight() && c.dots[y*c.DotWidth()+x] {
				pattern |= 1 << brailleBits[dx][dy]
			}
		}
	}
	if pattern == 0 {
		return 0
	}
	return rune(0x2800 + pattern)
}

// Blit copies the non-empty cells of c onto g with its top-left at (x, y).
// Fully set cells are drawn as a solid block so large shapes read as filled.
func (c *Canvas) Blit(g *Grid, x, y int, fg RGB) {
	for row := range c.rows {
		for col := range c.cols {
			r := c.Pattern(col, row)
			if r == 0 {
				continue
			}
			if r == 0x28FF {
				r = '█'
			}
			g.Set(x+col, y+row, r, fg)
		}
	}
}

// InHeart reports whether (x, y) lies inside the unit heart curve
// (x²+y²−1)³ − x²y³ ≤ 0, with y pointing up. The curve spans roughly
// x∈[−1.14, 1.14], y∈[−1, 1.24].
func InHeart(x, y float64) bool {
	a := x*x + y*y - 1
	return a*a*a-x*x*y*y*y <= 0
}

// DrawHeart fills a heart of the given radius in dots centred on (cx, cy) in
// dot coordinates.
func (c *Canvas) DrawHeart(cx, cy, radius float64) {
	if radius <= 0 || math.IsNaN(radius) {
		return
	}
	c.Fill(func(x, y float64) bool {
		return InHeart((x-cx)/radius, -(y-cy)/radius+0.1)
	})
}

// PieceGlyph picks a confetti glyph for a rotation in degrees.
func PieceGlyph(deg float64) rune {
	if math.IsNaN(deg) || math.IsInf(deg, 0) {
		return '▪'
	}
	a := math.Mod(deg, 180)
	if a < 0 {
		a += 180
	}
	switch {
	case a < 22.5 || a >= 157.5:
		return '━'
	case a < 67.5:
		return '╱'
	case a < 112.5:
		return '┃'
	default:
		return '╲'
	}
}

// ScaleGlyph picks a glyph that reads as a piece growing from nothing.
func ScaleGlyph(scale float64) rune {
	switch {
	case scale < 0.25:
		return '·'
	case scale < 0.6:
		return '•'
	default:
		return 0
	}
}
