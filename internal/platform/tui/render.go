package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-lines/internal/core"
)

// Palette turns screen colors into styles of one lipgloss renderer. SSH
// sessions each get their own, so color support follows the client
// terminal rather than the server's.
type Palette struct {
	plain  lipgloss.Style
	styles map[core.Color]lipgloss.Style
}

// NewPalette builds a palette for r; nil uses the default renderer.
func NewPalette(r *lipgloss.Renderer) *Palette {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return &Palette{
		plain:  r.NewStyle(),
		styles: make(map[core.Color]lipgloss.Style),
	}
}

func (p *Palette) style(c core.Color) lipgloss.Style {
	if st, ok := p.styles[c]; ok {
		return st
	}
	st := p.plain
	if code := c.ANSI(); code != "" {
		st = p.plain.Foreground(lipgloss.Color(code))
	}
	p.styles[c] = st
	return st
}

// Render converts a Screen buffer to a styled string. Runs of cells with
// the same color share one escape sequence.
func (p *Palette) Render(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < s.Width(); {
			color := s.GetCell(x, y).Color
			run.Reset()
			for ; x < s.Width() && s.GetCell(x, y).Color == color; x++ {
				run.WriteRune(s.GetCell(x, y).Rune)
			}
			sb.WriteString(p.style(color).Render(run.String()))
		}
	}
	return sb.String()
}
