package draw

import (
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/tomz197/spaceshooter/internal/physics"
)

// Block characters for drawing.
const (
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
	BlockEmpty     = ' '
)

// minContribution drops blends too faint to show up on a terminal.
const minContribution = 12

// cell is one composed terminal character.
type cell struct {
	ch     rune
	fg, bg tcell.Color
}

type textItem struct {
	col, row int
	text     string
	fg       tcell.Color
}

// Canvas is a colour drawing buffer with 2x vertical resolution using
// half-block characters. Supports scaling from logical coordinates to actual
// terminal pixels. Pixels blend additively.
type Canvas struct {
	termWidth      int           // Actual terminal columns
	termHeight     int           // Actual terminal rows
	subPixelHeight int           // termHeight * 2
	pixels         []tcell.Color // Flat slice: [y * termWidth + x], ColorDefault if unset
	texts          []textItem    // Text overlay, drawn above pixels

	// Scaling from logical to pixel coordinates
	logicalWidth  float64
	logicalHeight float64
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	// Offset for centering the render area inside a larger terminal.
	offsetCol int
	offsetRow int

	// Composed frame and the frame last written, for differential output.
	cells       []cell
	prev        []cell
	forceRedraw bool

	// Reusable buffers to reduce allocations
	renderBuf       strings.Builder
	numBuf          [20]byte
	scaledBuf       []physics.Vec2
	intersectionBuf []float64
	polygonBuf      []physics.Vec2
}

// NewScaledCanvas creates a canvas that scales from logical coordinates to terminal pixels.
// logicalWidth/Height define the coordinate space used by game entities.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
		forceRedraw:   true,
	}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping logical size.
func (c *Canvas) Resize(termWidth, termHeight int) {
	termWidth = max(termWidth, 1)
	termHeight = max(termHeight, 1)
	if termWidth != c.termWidth || termHeight != c.termHeight {
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = termHeight * 2
		c.pixels = make([]tcell.Color, c.subPixelHeight*termWidth)
		c.cells = make([]cell, termWidth*termHeight)
		c.prev = make([]cell, termWidth*termHeight)
		c.forceRedraw = true
	}
	c.scaleX = float64(c.termWidth) / c.logicalWidth
	c.scaleY = float64(c.subPixelHeight) / c.logicalHeight
}

// SetOffset sets the column and row offset for centering the canvas.
func (c *Canvas) SetOffset(col, row int) {
	if col != c.offsetCol || row != c.offsetRow {
		c.forceRedraw = true
	}
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int { return c.offsetCol }

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int { return c.offsetRow }

// ForceRedraw makes the next Render write every cell instead of only changes.
func (c *Canvas) ForceRedraw() {
	c.forceRedraw = true
}

// Clear resets all pixels and text in the canvas.
func (c *Canvas) Clear() {
	clear(c.pixels)
	c.texts = c.texts[:0]
}

// blendPixel adds t to the pixel at actual terminal coordinates (no scaling).
func (c *Canvas) blendPixel(x, y int, t Tint) {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return
	}
	a := int32(t.A)
	r, g, b := int32(t.R)*a/255, int32(t.G)*a/255, int32(t.B)*a/255
	if r+g+b < minContribution {
		return
	}
	i := y*c.termWidth + x
	if existing := c.pixels[i]; existing != tcell.ColorDefault {
		er, eg, eb := existing.RGB()
		r, g, b = r+er, g+eg, b+eb
	}
	c.pixels[i] = tcell.NewRGBColor(min(r, 255), min(g, 255), min(b, 255))
}

// toPixel converts a logical point to pixel space.
func (c *Canvas) toPixel(p physics.Vec2) (int, int) {
	return int(math.Round(p.X * c.scaleX)), int(math.Round(p.Y * c.scaleY))
}

// SetFloat blends one pixel using float logical coordinates (applies scaling).
func (c *Canvas) SetFloat(p physics.Vec2, t Tint) {
	x, y := c.toPixel(p)
	c.blendPixel(x, y, t)
}

// DrawLine draws a line on the canvas using Bresenham's algorithm.
// Coordinates are in logical space and get scaled to pixels.
func (c *Canvas) DrawLine(p1, p2 physics.Vec2, t Tint) {
	x1, y1 := c.toPixel(p1)
	x2, y2 := c.toPixel(p2)

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy
	for {
		c.blendPixel(x1, y1, t)
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// DrawPolygon draws a polygon on the canvas.
// If filled is true, the interior is filled using scanline algorithm and the
// outline is skipped so edges are not blended twice.
func (c *Canvas) DrawPolygon(points []physics.Vec2, t Tint, filled bool) {
	if len(points) < 3 {
		return
	}
	if filled {
		c.fillPolygon(points, t)
		return
	}
	n := len(points)
	for i := 0; i < n; i++ {
		c.DrawLine(points[i], points[(i+1)%n], t)
	}
}

// fillPolygon fills a polygon using scanline algorithm in pixel space.
// Polygons smaller than one pixel still light the pixel under their first vertex.
func (c *Canvas) fillPolygon(points []physics.Vec2, t Tint) {
	if cap(c.scaledBuf) < len(points) {
		c.scaledBuf = make([]physics.Vec2, len(points))
	}
	scaled := c.scaledBuf[:len(points)]
	for i, p := range points {
		scaled[i] = physics.V(p.X*c.scaleX, p.Y*c.scaleY)
	}

	minY, maxY := scaled[0].Y, scaled[0].Y
	for _, p := range scaled {
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}

	drawn := false
	for y := int(math.Floor(minY)); y <= int(math.Ceil(maxY)); y++ {
		scanY := float64(y) + 0.5
		intersections := c.intersectionBuf[:0]

		n := len(scaled)
		for i := 0; i < n; i++ {
			p1 := scaled[i]
			p2 := scaled[(i+1)%n]
			if (p1.Y <= scanY && p2.Y > scanY) || (p2.Y <= scanY && p1.Y > scanY) {
				k := (scanY - p1.Y) / (p2.Y - p1.Y)
				intersections = append(intersections, p1.X+k*(p2.X-p1.X))
			}
		}
		c.intersectionBuf = intersections

		sort.Float64s(intersections)
		for i := 0; i+1 < len(intersections); i += 2 {
			for x := int(math.Ceil(intersections[i])); x <= int(math.Floor(intersections[i+1])); x++ {
				c.blendPixel(x, y, t)
				drawn = true
			}
		}
	}
	if !drawn {
		c.blendPixel(int(math.Round(scaled[0].X)), int(math.Round(scaled[0].Y)), t)
	}
}

// BorrowPoints returns a reusable slice of points with the given length.
// The returned slice is only valid until the next call to BorrowPoints.
func (c *Canvas) BorrowPoints(n int) []physics.Vec2 {
	if cap(c.polygonBuf) < n {
		c.polygonBuf = make([]physics.Vec2, n)
	}
	return c.polygonBuf[:n]
}

// DrawSprite implements Surface.
func (c *Canvas) DrawSprite(v Visual, pos physics.Vec2, tint Tint, rotation float64, origin, scale physics.Vec2) {
	s, ok := shapes[v]
	if !ok || tint.A == 0 {
		return
	}
	t := s.base.Modulate(tint)
	place := func(p physics.Vec2) physics.Vec2 {
		return pos.Add(p.Sub(origin).Mul(scale).Rotate(rotation))
	}

	switch s.kind {
	case shapePoint:
		c.SetFloat(place(s.size.Scale(0.5)), t)
	case shapeLine:
		mid := s.size.Y / 2
		c.DrawLine(place(physics.V(0, mid)), place(physics.V(s.size.X, mid)), t)
	default:
		points := c.BorrowPoints(len(s.points))
		for i, p := range s.points {
			points[i] = place(p)
		}
		c.DrawPolygon(points, t, s.kind == shapePolygon)
	}
}

// DrawText implements Surface. Text is placed in the terminal cell under pos.
func (c *Canvas) DrawText(text string, pos physics.Vec2, tint Tint) {
	col, row := c.LogicalToCell(pos)
	c.texts = append(c.texts, textItem{col: col, row: row, text: text, fg: tint.Color()})
}

// DrawTextCentered writes text horizontally centred on the logical x of pos.
func (c *Canvas) DrawTextCentered(text string, pos physics.Vec2, tint Tint) {
	col, row := c.LogicalToCell(pos)
	col -= len([]rune(text)) / 2
	c.texts = append(c.texts, textItem{col: col, row: row, text: text, fg: tint.Color()})
}

// compose flattens pixels and text into terminal cells.
func (c *Canvas) compose() {
	w := c.termWidth
	for row := 0; row < c.termHeight; row++ {
		top := c.pixels[row*2*w : row*2*w+w]
		bottom := c.pixels[(row*2+1)*w : (row*2+1)*w+w]
		for col := 0; col < w; col++ {
			t, b := top[col], bottom[col]
			var out cell
			switch {
			case t != tcell.ColorDefault:
				out = cell{ch: BlockUpperHalf, fg: t, bg: b}
			case b != tcell.ColorDefault:
				out = cell{ch: BlockLowerHalf, fg: b, bg: tcell.ColorDefault}
			default:
				out = cell{ch: BlockEmpty, fg: tcell.ColorDefault, bg: tcell.ColorDefault}
			}
			c.cells[row*w+col] = out
		}
	}

	for _, item := range c.texts {
		if item.row < 0 || item.row >= c.termHeight {
			continue
		}
		col := item.col
		for _, r := range item.text {
			if col >= 0 && col < w {
				c.cells[item.row*w+col] = cell{ch: r, fg: item.fg, bg: tcell.ColorDefault}
			}
			col++
		}
	}
}

// maxChunkSize is the maximum bytes to write at once for optimal network flow.
// 1500 bytes matches typical MTU size for smooth SSH/network transmission.
const maxChunkSize = 1400

// Render outputs the canvas to the writer using truecolor half-block characters.
// Only cells that changed since the previous Render are written.
func (c *Canvas) Render(w io.Writer) {
	c.compose()

	c.renderBuf.Reset()
	c.renderBuf.WriteString("\033[0m")
	fg, bg := tcell.ColorDefault, tcell.ColorDefault
	lastIdx := -2

	for idx, cur := range c.cells {
		if !c.forceRedraw && cur == c.prev[idx] {
			continue
		}
		if idx != lastIdx+1 || idx%c.termWidth == 0 {
			c.writeCursor(idx%c.termWidth+1+c.offsetCol, idx/c.termWidth+1+c.offsetRow)
		}
		if cur.fg != fg {
			c.writeColor(38, cur.fg)
			fg = cur.fg
		}
		if cur.bg != bg {
			c.writeColor(48, cur.bg)
			bg = cur.bg
		}
		c.renderBuf.WriteRune(cur.ch)
		lastIdx = idx
	}
	c.renderBuf.WriteString("\033[0m")
	copy(c.prev, c.cells)
	c.forceRedraw = false

	// Write output in chunks for optimal network flow
	data := c.renderBuf.String()
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		io.WriteString(w, chunk)
		data = data[len(chunk):]
	}
}

func (c *Canvas) writeCursor(col, row int) {
	c.renderBuf.WriteString("\033[")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(row), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(col), 10))
	c.renderBuf.WriteByte('H')
}

// writeColor emits an SGR colour; layer is 38 for foreground, 48 for background.
func (c *Canvas) writeColor(layer int, color tcell.Color) {
	if color == tcell.ColorDefault {
		c.renderBuf.WriteString("\033[")
		c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(layer+1), 10))
		c.renderBuf.WriteByte('m')
		return
	}
	r, g, b := color.RGB()
	c.renderBuf.WriteString("\033[")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(layer), 10))
	c.renderBuf.WriteString(";2;")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(r), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(g), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(b), 10))
	c.renderBuf.WriteByte('m')
}

// RenderBorder draws a box around the canvas when it is offset inside a
// larger terminal.
func (c *Canvas) RenderBorder(w io.Writer) {
	if c.offsetCol < 1 || c.offsetRow < 1 {
		return
	}
	left, right := c.offsetCol, c.offsetCol+c.termWidth+1
	top, bottom := c.offsetRow, c.offsetRow+c.termHeight+1
	line := strings.Repeat("─", c.termWidth)

	var buf strings.Builder
	buf.WriteString("\033[0m")
	MoveCursor(&buf, left, top)
	buf.WriteString("┌" + line + "┐")
	MoveCursor(&buf, left, bottom)
	buf.WriteString("└" + line + "┘")
	for row := top + 1; row < bottom; row++ {
		MoveCursor(&buf, left, row)
		buf.WriteString("│")
		MoveCursor(&buf, right, row)
		buf.WriteString("│")
	}
	io.WriteString(w, buf.String())
}

// LogicalWidth returns the logical width (target resolution).
func (c *Canvas) LogicalWidth() float64 { return c.logicalWidth }

// LogicalHeight returns the logical height (target resolution).
func (c *Canvas) LogicalHeight() float64 { return c.logicalHeight }

// TerminalWidth returns the actual terminal column count.
func (c *Canvas) TerminalWidth() int { return c.termWidth }

// TerminalHeight returns the actual terminal row count.
func (c *Canvas) TerminalHeight() int { return c.termHeight }

// LogicalToCell converts logical coordinates to a 0-based canvas cell (col, row).
func (c *Canvas) LogicalToCell(p physics.Vec2) (col, row int) {
	px, py := c.toPixel(p)
	return px, py / 2
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
