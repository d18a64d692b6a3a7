package draw

import (
	"bytes"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tomz197/spaceshooter/internal/physics"
)

func newTestCanvas() *Canvas {
	// 10x5 cells = 10x10 pixels, one pixel per logical unit.
	return NewScaledCanvas(10, 5, 10, 10)
}

func TestBlendIsAdditive(t *testing.T) {
	c := newTestCanvas()
	red := RGBA(100, 0, 0, 255)

	c.DrawSprite(VisualGlow, physics.V(2, 3), red, 0, VisualGlow.Center(), physics.Uniform(1))
	c.DrawSprite(VisualGlow, physics.V(2, 3), red, 0, VisualGlow.Center(), physics.Uniform(1))

	assert.Equal(t, tcell.NewRGBColor(200, 0, 0), c.pixels[3*10+2])
}

func TestBlendClampsAndSkipsFaint(t *testing.T) {
	c := newTestCanvas()
	c.SetFloat(physics.V(1, 1), White)
	c.SetFloat(physics.V(1, 1), White)
	assert.Equal(t, tcell.NewRGBColor(255, 255, 255), c.pixels[1*10+1])

	c.SetFloat(physics.V(5, 5), White.Mul(0.01))
	assert.Equal(t, tcell.ColorDefault, c.pixels[5*10+5])
}

func TestTransparentSpriteDrawsNothing(t *testing.T) {
	c := newTestCanvas()
	c.DrawSprite(VisualSmallMeteor, physics.V(5, 5), Transparent, 0, VisualSmallMeteor.Center(), physics.Uniform(0.1))
	for _, p := range c.pixels {
		assert.Equal(t, tcell.ColorDefault, p)
	}
}

func TestComposeHalfBlocks(t *testing.T) {
	c := newTestCanvas()
	c.SetFloat(physics.V(0, 0), White)
	c.SetFloat(physics.V(1, 3), White)
	c.compose()

	assert.Equal(t, BlockUpperHalf, c.cells[0].ch)
	assert.Equal(t, tcell.ColorDefault, c.cells[0].bg)
	assert.Equal(t, BlockLowerHalf, c.cells[1*10+1].ch)
	assert.Equal(t, BlockEmpty, c.cells[2].ch)
}

func TestTextOverlaysPixels(t *testing.T) {
	c := newTestCanvas()
	c.SetFloat(physics.V(0, 0), White)
	c.DrawText("HI", physics.V(0, 0), Yellow)
	c.compose()

	assert.Equal(t, 'H', c.cells[0].ch)
	assert.Equal(t, 'I', c.cells[1].ch)
	assert.Equal(t, Yellow.Color(), c.cells[0].fg)
}

func TestRenderWritesOnlyChanges(t *testing.T) {
	c := newTestCanvas()
	c.SetFloat(physics.V(0, 0), White)

	var first bytes.Buffer
	c.Render(&first)
	assert.Contains(t, first.String(), "\033[38;2;255;255;255m")
	assert.Contains(t, first.String(), string(BlockUpperHalf))

	var second bytes.Buffer
	c.Render(&second)
	assert.Equal(t, "\033[0m\033[0m", second.String())

	c.Clear()
	var third bytes.Buffer
	c.Render(&third)
	assert.Contains(t, third.String(), "\033[1;1H")
	assert.False(t, strings.ContainsRune(third.String(), BlockUpperHalf))
}

func TestPresentToScreen(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	defer screen.Fini()
	screen.SetSize(10, 5)

	c := newTestCanvas()
	c.DrawText("GO", physics.V(0, 2), White)
	c.Present(screen)

	r, _, _, _ := screen.GetContent(0, 1)
	assert.Equal(t, 'G', r)
	r, _, _, _ = screen.GetContent(1, 1)
	assert.Equal(t, 'O', r)
}

func TestFitTermSize(t *testing.T) {
	w, h, col, row := FitTermSize(120, 40, 160, 60, 400, 600)
	assert.Equal(t, 53, w)
	assert.Equal(t, 40, h)
	assert.Equal(t, 33, col)
	assert.Equal(t, 0, row)

	w, h, _, _ = FitTermSize(20, 100, 160, 60, 400, 600)
	assert.Equal(t, 20, w)
	assert.Equal(t, 15, h)
}

func TestChunkWriterFlush(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out)
	payload := strings.Repeat("x", maxChunkSize*2+10)
	_, _ = cw.WriteString(payload)
	assert.Equal(t, len(payload), cw.Len())

	require.NoError(t, cw.Flush())
	assert.Equal(t, payload, out.String())
	assert.Zero(t, cw.Len())
}

func TestTintHelpers(t *testing.T) {
	assert.Equal(t, White, HSV(0, 0, 1))
	assert.Equal(t, RGBA(255, 0, 0, 255), HSV(0, 1, 1))

	mid := Lerp(White, RGBA(0, 0, 0, 255), 0.5)
	assert.InDelta(t, 128, int(mid.R), 1)
	assert.Equal(t, uint8(255), mid.A)

	assert.Equal(t, RGBA(100, 50, 0, 128), RGBA(200, 100, 0, 255).Mul(0.5))
}

func TestVisualSize(t *testing.T) {
	assert.Equal(t, physics.V(100, 100), VisualLargeMeteor.Size())
	assert.Equal(t, physics.V(18, 18), VisualSmallMeteor.Center())
	assert.Equal(t, physics.Vec2{}, VisualNone.Size())
}
