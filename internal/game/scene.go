package game

import "math"

// Scene buffers are rebuilt every frame from the match state and handed to
// whichever frontend draws them.
//
// Rect format:   [x, y, w, h, r, g, b, a] * N (field pixels, top-left origin).
// Sprite format: [x, y, size, r, g, b, a, rotation] * N (centre, diameter).
const (
	RectStride   = 8
	SpriteStride = 8
)

func appendRect(buf []float32, r Rect, col RGB, a float32) []float32 {
	cr, cg, cb := col.Floats()
	return append(buf, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), cr, cg, cb, a)
}

// FieldRects returns the static markings drawn under everything else: the
// dashed centre line and both goals, in draw order.
func FieldRects(r Rules, goals [2]Rect, buf []float32) []float32 {
	buf = buf[:0]
	cx := r.FieldWidth / 2
	for y := 0.0; y < r.FieldHeight; y += 2 * DashLength {
		h := math.Min(DashLength, r.FieldHeight-y)
		buf = appendRect(buf, Rect{X: cx - LineWidth/2, Y: y, W: LineWidth, H: h}, Palette.Line, 1)
	}
	for _, g := range goals {
		buf = appendRect(buf, g, Palette.Goal, 1)
	}
	return buf
}

// PlayerRects returns both paddles. The scorer's paddle blinks while the
// goal highlight runs.
func PlayerRects(m *Match, buf []float32) []float32 {
	buf = buf[:0]
	for _, s := range []Side{Home, Away} {
		p := &m.Players[s]
		col := SideColor(s)
		if m.GoalFlash > 0 && m.LastScorer == s && (m.GoalFlash/6)%2 == 0 {
			col = col.Add(70, 70, 70)
		}
		buf = appendRect(buf, p.Bounds(), col, 1)
	}
	return buf
}

// CircleSprites traces the centre circle as small square dots.
func CircleSprites(r Rules, buf []float32) []float32 {
	buf = buf[:0]
	cx, cy := r.FieldWidth/2, r.FieldHeight/2
	circumference := 2 * math.Pi * CircleR
	n := int(circumference / LineWidth)
	cr, cg, cb := Palette.Line.Floats()
	for i := range n {
		ang := float64(i) / float64(n) * 2 * math.Pi
		x := cx + math.Cos(ang)*CircleR
		y := cy + math.Sin(ang)*CircleR
		buf = append(buf, float32(x), float32(y), LineWidth, cr, cg, cb, 1, 0)
	}
	return buf
}

// BallSprite returns the ball as a single disc sprite.
func BallSprite(b Ball, buf []float32) []float32 {
	buf = buf[:0]
	cr, cg, cb := Palette.Ball.Floats()
	return append(buf, float32(b.X), float32(b.Y), float32(2*b.R), cr, cg, cb, 1, 0)
}
