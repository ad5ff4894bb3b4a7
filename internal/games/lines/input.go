package lines

import (
	platformcore "github.com/vovakirdan/tui-lines/internal/core"
)

var cursorMoves = []struct {
	action platformcore.Action
	dx, dy int
}{
	{platformcore.ActionUp, 0, -1},
	{platformcore.ActionDown, 0, 1},
	{platformcore.ActionLeft, -1, 0},
	{platformcore.ActionRight, 1, 0},
}

func (g *Game) handleKeys(in platformcore.InputFrame) {
	moved := false
	for _, m := range cursorMoves {
		if !in.Has(m.action) {
			continue
		}
		next := g.cursor.Add(m.dx, m.dy)
		if next.InBounds() {
			g.cursor = next
			moved = true
		}
	}
	if moved {
		g.eng.Hover(g.cursor)
	}

	if in.Has(platformcore.ActionSelect) {
		g.click(g.cursor)
	}
}

func (g *Game) handlePointer(ev platformcore.PointerEvent) {
	c, ok := g.layout.cellAt(ev.X, ev.Y)
	if ev.Kind == platformcore.PointerLeave || !ok {
		g.eng.LeaveHover()
		return
	}

	g.cursor = c
	switch ev.Kind {
	case platformcore.PointerMove:
		g.eng.Hover(c)
	case platformcore.PointerClick:
		g.click(c)
	}
}
