// Package hud decides what text the desktop overlay shows and where.
package hud

import (
	"strconv"

	"soccer/internal/game"
	"soccer/internal/render/font"
)

// Label is one run of screen-space text.
type Label struct {
	Text  string
	X, Y  int
	Scale float32
	Col   game.RGB
	Alpha float32
}

const (
	margin   = 8
	scoreGap = 24 // from the centre line to each score
)

// Controls lists the key bindings shown under each side's label.
var Controls = [2]string{
	game.Home: "W jump  A/D move",
	game.Away: "UP jump  LEFT/RIGHT move",
}

// Layout returns the overlay for m on an fbW x fbH framebuffer: both scores
// either side of the centre line, side labels in the top corners, a goal
// banner while the goal highlight runs and a pause banner.
func Layout(m *game.Match, fbW, fbH int, buf []Label) []Label {
	buf = buf[:0]
	unit := max(float32(fbH)/float32(game.WindowHeight), 0.5)
	big := 3 * unit
	small := unit

	home, away := m.Score()
	hs, as := strconv.Itoa(home), strconv.Itoa(away)
	cx := fbW / 2
	buf = append(buf,
		Label{Text: hs, X: cx - scoreGap - font.Width(hs, big), Y: margin, Scale: big, Col: game.Palette.Home, Alpha: 1},
		Label{Text: as, X: cx + scoreGap, Y: margin, Scale: big, Col: game.Palette.Away, Alpha: 1},
	)

	inset := margin + int(m.Rules.GoalWidth*float64(unit))
	for _, s := range []game.Side{game.Home, game.Away} {
		name := "PLAYER 1"
		hint := Controls[s]
		x := inset
		if s == game.Away {
			name = "PLAYER 2"
			x = fbW - inset - max(font.Width(name, small), font.Width(hint, small*0.8))
		}
		buf = append(buf,
			Label{Text: name, X: x, Y: margin, Scale: small, Col: game.SideColor(s), Alpha: 1},
			Label{Text: hint, X: x, Y: margin + font.Height(small) + 2, Scale: small * 0.8, Col: game.Palette.Text, Alpha: 0.7},
		)
	}

	if m.GoalFlash > 0 {
		text := "GOAL!"
		scale := 2.5 * unit
		alpha := min(float32(m.GoalFlash)/float32(game.TickRate/2), 1)
		buf = append(buf, centred(text, fbW, fbH/3, scale, game.SideColor(m.LastScorer), alpha))
	}

	if m.Paused {
		buf = append(buf,
			centred("PAUSED", fbW, fbH/2-font.Height(2*unit), 2*unit, game.Palette.Text, 1),
			centred("P resume   R reset   Esc quit", fbW, fbH/2+margin, small, game.Palette.Text, 0.8),
		)
	}
	return buf
}

func centred(text string, fbW, y int, scale float32, col game.RGB, alpha float32) Label {
	return Label{Text: text, X: fbW/2 - font.Width(text, scale)/2, Y: y, Scale: scale, Col: col, Alpha: alpha}
}
