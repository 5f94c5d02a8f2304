package game

// Player is a paddle confined to its own half of the field.
type Player struct {
	Side    Side
	X, Y    float64 // top-left corner
	W, H    float64
	DY      float64 // vertical velocity, positive is down
	Score   int
	Jumping bool

	MinX, MaxX float64 // lane limits for X
}

// NewPlayer places a player at its kickoff spot: the outer end of its lane,
// vertically centred. It falls to the ground on the first frames.
func NewPlayer(side Side, r Rules) Player {
	minX, maxX := r.Lane(side)
	p := Player{
		Side: side,
		W:    r.PaddleWidth,
		H:    r.PaddleHeight,
		Y:    r.FieldHeight/2 - r.PaddleHeight/2,
		MinX: minX,
		MaxX: maxX,
	}
	if side == Home {
		p.X = clampF(50, minX, maxX)
	} else {
		p.X = clampF(r.FieldWidth-70, minX, maxX)
	}
	return p
}

// Bounds returns the paddle's box.
func (p *Player) Bounds() Rect {
	return Rect{X: p.X, Y: p.Y, W: p.W, H: p.H}
}

// CenterY is the vertical midpoint of the paddle.
func (p *Player) CenterY() float64 { return p.Y + p.H/2 }

// Move applies horizontal input and starts a jump if grounded.
// Returns true when a jump started this frame.
func (p *Player) Move(in Input, r Rules) bool {
	if in.Left {
		p.X = max(p.MinX, p.X-r.PaddleSpeed)
	}
	if in.Right {
		p.X = min(p.MaxX, p.X+r.PaddleSpeed)
	}
	if in.Jump && !p.Jumping {
		p.DY = r.JumpForce
		p.Jumping = true
		return true
	}
	return false
}

// Fall integrates gravity and resolves ground contact.
// Returns true when the player touched down this frame after being airborne.
func (p *Player) Fall(r Rules) bool {
	wasAirborne := p.Jumping || p.DY > r.Gravity
	p.Y += p.DY
	p.DY += r.Gravity

	if p.Y+p.H > r.FieldHeight {
		p.Y = r.FieldHeight - p.H
		p.DY = 0
		p.Jumping = false
		return wasAirborne
	}
	return false
}

// Grounded reports whether the paddle rests on the bottom edge.
func (p *Player) Grounded(r Rules) bool {
	return !p.Jumping && p.Y+p.H >= r.FieldHeight
}

// Bottom is the y coordinate of the paddle's feet.
func (p *Player) Bottom() float64 { return p.Y + p.H }
