package chart

import (
	"fmt"
	"math"
	"strings"

	"github.com/ja7ad/bouncy/pkg/bounce"
)

const (
	Title  = "Trajectory of the bouncy ball"
	XLabel = "Time (s)"
	YLabel = "Height (m)"

	LegendTrajectory = "Trajectory"
	LegendThreshold  = "height_min"

	// MinWidth and MinHeight bound the smallest grid that still fits the
	// frame around a usable plot area.
	MinWidth  = 32
	MinHeight = 12
)

const (
	GlyphTrajectory = '*'
	GlyphThreshold  = '-'
	GlyphAxisX      = '-'
	GlyphAxisY      = '|'
	GlyphOrigin     = '+'
)

// Role tags what a cell shows, so a renderer can style it.
type Role uint8

const (
	RoleEmpty Role = iota
	RoleText
	RoleAxis
	RoleTrajectory
	RoleThreshold
)

type Cell struct {
	Rune rune
	Role Role
}

// Canvas is a character-grid line chart of a trajectory with a dashed
// horizontal threshold line. Row 0 is the top of the grid.
type Canvas struct {
	W, H  int
	cells []Cell

	// plot area, inclusive
	left, right, top, bottom int
	xMax, yMax               float64
}

// Plot lays out pts and the hMin threshold on a w×h grid. The threshold spans
// from t=0 to the last sample, like the trajectory. Grids smaller than
// MinWidth×MinHeight only carry a notice.
func Plot(pts []bounce.Point, hMin float64, w, h int) *Canvas {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	c := &Canvas{W: w, H: h, cells: make([]Cell, w*h)}
	for i := range c.cells {
		c.cells[i] = Cell{Rune: ' '}
	}

	if w < MinWidth || h < MinHeight {
		c.text(0, 0, "window too small", RoleText)
		return c
	}

	for _, p := range pts {
		c.xMax = math.Max(c.xMax, p.Time)
		c.yMax = math.Max(c.yMax, p.Height)
	}
	c.yMax = math.Max(c.yMax, hMin)
	if c.xMax <= 0 {
		c.xMax = 1
	}
	if c.yMax <= 0 {
		c.yMax = 1
	}

	yTicks := []float64{c.yMax, c.yMax / 2, 0}
	labelW := 0
	for _, v := range yTicks {
		labelW = max(labelW, len(fmtTick(v)))
	}

	c.left = labelW + 1
	c.right = w - 2
	c.top = 3
	c.bottom = h - 4

	c.frame(yTicks, labelW)
	c.threshold(hMin)
	c.curve(pts)
	return c
}

func (c *Canvas) frame(yTicks []float64, labelW int) {
	c.text((c.W-len(Title))/2, 0, Title, RoleText)

	legend := fmt.Sprintf("%c %s   %c %c %s",
		GlyphTrajectory, LegendTrajectory, GlyphThreshold, GlyphThreshold, LegendThreshold)
	c.text(c.W-len(legend)-1, 1, legend, RoleText)
	c.text(0, 2, YLabel, RoleText)

	for y := c.top; y <= c.bottom; y++ {
		c.set(c.left-1, y, GlyphAxisY, RoleAxis)
	}
	for x := c.left; x <= c.right; x++ {
		c.set(x, c.bottom+1, GlyphAxisX, RoleAxis)
	}
	c.set(c.left-1, c.bottom+1, GlyphOrigin, RoleAxis)

	for _, v := range yTicks {
		s := fmtTick(v)
		c.text(labelW-len(s), c.row(v), s, RoleText)
	}

	xTicks := []float64{0, c.xMax / 2, c.xMax}
	for i, v := range xTicks {
		s := fmtTick(v)
		x := c.col(v)
		switch i {
		case 0:
		case len(xTicks) - 1:
			x -= len(s) - 1
		default:
			x -= len(s) / 2
		}
		c.text(x, c.bottom+2, s, RoleText)
	}
	c.text(c.left+(c.right-c.left+1-len(XLabel))/2, c.bottom+3, XLabel, RoleText)
}

// threshold draws a dash on every other column of the hMin row.
func (c *Canvas) threshold(hMin float64) {
	y := c.row(hMin)
	for x := c.left; x <= c.right; x += 2 {
		c.set(x, y, GlyphThreshold, RoleThreshold)
	}
}

// curve joins consecutive samples with straight cell runs.
func (c *Canvas) curve(pts []bounce.Point) {
	for i, p := range pts {
		x1, y1 := c.col(p.Time), c.row(p.Height)
		if i == 0 {
			c.set(x1, y1, GlyphTrajectory, RoleTrajectory)
			continue
		}
		q := pts[i-1]
		c.line(c.col(q.Time), c.row(q.Height), x1, y1)
	}
}

func (c *Canvas) line(x0, y0, x1, y1 int) {
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := sign(x1-x0), sign(y1-y0)
	e := dx + dy
	for {
		c.set(x0, y0, GlyphTrajectory, RoleTrajectory)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// col maps a time onto a plot column.
func (c *Canvas) col(t float64) int {
	span := float64(c.right - c.left)
	x := c.left + int(math.Round(t/c.xMax*span))
	return min(max(x, c.left), c.right)
}

// row maps a height onto a plot row.
func (c *Canvas) row(h float64) int {
	span := float64(c.bottom - c.top)
	y := c.bottom - int(math.Round(h/c.yMax*span))
	return min(max(y, c.top), c.bottom)
}

func (c *Canvas) set(x, y int, r rune, role Role) {
	if x < 0 || y < 0 || x >= c.W || y >= c.H {
		return
	}
	c.cells[y*c.W+x] = Cell{Rune: r, Role: role}
}

func (c *Canvas) text(x, y int, s string, role Role) {
	for _, r := range s {
		c.set(x, y, r, role)
		x++
	}
}

// At returns the cell at column x, row y. Out of range reads are blank.
func (c *Canvas) At(x, y int) Cell {
	if x < 0 || y < 0 || x >= c.W || y >= c.H {
		return Cell{Rune: ' '}
	}
	return c.cells[y*c.W+x]
}

// Row returns row y as text with trailing blanks removed.
func (c *Canvas) Row(y int) string {
	var b strings.Builder
	for x := 0; x < c.W; x++ {
		b.WriteRune(c.At(x, y).Rune)
	}
	return strings.TrimRight(b.String(), " ")
}

func (c *Canvas) String() string {
	rows := make([]string, c.H)
	for y := range rows {
		rows[y] = c.Row(y)
	}
	return strings.Join(rows, "\n") + "\n"
}

// Count returns how many cells carry role.
func (c *Canvas) Count(role Role) int {
	n := 0
	for _, cell := range c.cells {
		if cell.Role == role {
			n++
		}
	}
	return n
}

// ThresholdRow returns the grid row of the threshold line, or -1 on a
// too-small canvas.
func (c *Canvas) ThresholdRow() int {
	for y := 0; y < c.H; y++ {
		for x := 0; x < c.W; x++ {
			if c.At(x, y).Role == RoleThreshold {
				return y
			}
		}
	}
	return -1
}

func fmtTick(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
