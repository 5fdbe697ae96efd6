package render

import (
	"bufio"
	"io"
	"strings"

	"github.com/san-kum/cellsim/internal/automaton"
)

const (
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// Frame draws g as one line per row with the cell glyphs joined by single
// spaces.
func Frame(g *automaton.Grid) string {
	var b strings.Builder
	b.Grow(g.Height() * (g.Width()*2 + 1))
	writeFrame(&b, g)
	return b.String()
}

func writeFrame(b *strings.Builder, g *automaton.Grid) {
	for r := 0; r < g.Height(); r++ {
		for c := 0; c < g.Width(); c++ {
			if c > 0 {
				b.WriteByte(' ')
			}
			b.WriteRune(g.At(r, c).Glyph())
		}
		b.WriteByte('\n')
	}
}

// Text writes every frame to an io.Writer. By default frames are appended
// one below the other; with clear set each frame repaints the terminal.
type Text struct {
	w     *bufio.Writer
	clear bool
}

func NewText(w io.Writer, clear bool) *Text {
	return &Text{w: bufio.NewWriter(w), clear: clear}
}

func (t *Text) Render(g *automaton.Grid) error {
	var b strings.Builder
	if t.clear {
		b.WriteString(clearScreen)
	}
	writeFrame(&b, g)
	if _, err := t.w.WriteString(b.String()); err != nil {
		return err
	}
	return t.w.Flush()
}

// Message writes a line after the last frame.
func (t *Text) Message(msg string) error {
	if _, err := t.w.WriteString(msg + "\n"); err != nil {
		return err
	}
	return t.w.Flush()
}

func (t *Text) Start() error {
	if !t.clear {
		return nil
	}
	if _, err := t.w.WriteString(hideCursor); err != nil {
		return err
	}
	return t.w.Flush()
}

func (t *Text) Stop() error {
	if !t.clear {
		return nil
	}
	if _, err := t.w.WriteString(showCursor); err != nil {
		return err
	}
	return t.w.Flush()
}

// Discard drops every frame. Used for benchmarks.
type Discard struct{}

func (Discard) Render(*automaton.Grid) error { return nil }
