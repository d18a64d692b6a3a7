package draw

import "github.com/gdamore/tcell/v2"

// Present copies the composed canvas onto a tcell screen at the canvas offset
// and shows it. It is the tcell counterpart of Render.
func (c *Canvas) Present(screen tcell.Screen) {
	c.compose()
	w := c.termWidth
	for idx, cur := range c.cells {
		style := tcell.StyleDefault.Foreground(cur.fg).Background(cur.bg)
		screen.SetContent(idx%w+c.offsetCol, idx/w+c.offsetRow, cur.ch, nil, style)
	}
	screen.Show()
}

// ScreenSizeFunc adapts a tcell screen to a TermSizeFunc.
func ScreenSizeFunc(screen tcell.Screen) TermSizeFunc {
	return func() (int, int, error) {
		w, h := screen.Size()
		return w, h, nil
	}
}
