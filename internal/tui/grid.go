package tui

import (
	"math"

	"soccer/internal/game"
)

// Cell is what one terminal character shows.
type Cell uint8

const (
	CellField Cell = iota
	CellLine
	CellCircle
	CellGoal
	CellHome
	CellAway
	CellBall
	CellSpark
)

// Grid samples the field onto cols x rows cells, later layers winning:
// markings, goals, paddles, particles, ball. buf is reused when large enough.
func Grid(m *game.Match, cols, rows int, buf []Cell) []Cell {
	if cols <= 0 || rows <= 0 {
		return buf[:0]
	}
	n := cols * rows
	if cap(buf) < n {
		buf = make([]Cell, n)
	}
	buf = buf[:n]

	r := m.Rules
	cw := r.FieldWidth / float64(cols)
	ch := r.FieldHeight / float64(rows)
	cx, cy := r.FieldWidth/2, r.FieldHeight/2
	lineCol := int(cx / cw)
	ring := math.Max(cw, ch) / 2

	for row := range rows {
		for col := range cols {
			cell := game.Rect{X: float64(col) * cw, Y: float64(row) * ch, W: cw, H: ch}
			mx, my := cell.Center()
			c := CellField

			if col == lineCol && int(my/game.DashLength)%2 == 0 {
				c = CellLine
			}
			if d := math.Hypot(mx-cx, (my-cy)*cw/ch); math.Abs(d-game.CircleR) < ring {
				c = CellCircle
			}
			for _, g := range m.Goals {
				if g.Intersects(cell) {
					c = CellGoal
				}
			}
			if m.Players[game.Home].Bounds().Intersects(cell) {
				c = CellHome
			}
			if m.Players[game.Away].Bounds().Intersects(cell) {
				c = CellAway
			}
			buf[row*cols+col] = c
		}
	}

	for _, p := range m.Particles.P {
		if p.Life < 0 || p.Kind != game.ParticleConfetti {
			continue
		}
		if i, ok := index(p.X, p.Y, cw, ch, cols, rows); ok && buf[i] == CellField {
			buf[i] = CellSpark
		}
	}

	if i, ok := index(m.Ball.X, m.Ball.Y, cw, ch, cols, rows); ok {
		buf[i] = CellBall
	}
	return buf
}

func index(x, y, cw, ch float64, cols, rows int) (int, bool) {
	col, row := int(math.Floor(x/cw)), int(math.Floor(y/ch))
	if col < 0 || col >= cols || row < 0 || row >= rows {
		return 0, false
	}
	return row*cols + col, true
}
