package game

import "math"

// Ball position is its centre.
type Ball struct {
	X, Y   float64
	R      float64
	DX, DY float64
	Speed  float64
}

// NewBall returns the kickoff ball: centred, moving with the kickoff velocity.
func NewBall(r Rules) Ball {
	return Ball{
		X:     r.FieldWidth / 2,
		Y:     r.FieldHeight / 2,
		R:     r.BallRadius,
		DX:    r.KickoffDX,
		DY:    r.KickoffDY,
		Speed: r.BallSpeed,
	}
}

// Advance moves the ball by one frame of velocity.
func (b *Ball) Advance() {
	b.X += b.DX
	b.Y += b.DY
}

// BounceWalls reflects the ball off the top and bottom edges, losing speed
// by damping. The ball is pushed back inside so it cannot flip direction on
// consecutive frames while still overlapping an edge.
func (b *Ball) BounceWalls(r Rules) bool {
	switch {
	case b.Y-b.R < 0:
		b.Y = b.R
		b.DY = math.Abs(b.DY) * r.WallDamping
		return true
	case b.Y+b.R > r.FieldHeight:
		b.Y = r.FieldHeight - b.R
		b.DY = -math.Abs(b.DY) * r.WallDamping
		return true
	}
	return false
}

// Touches reports whether the ball overlaps the paddle grown by the ball
// radius on every side.
func (b *Ball) Touches(p *Player) bool {
	return p.Bounds().Expand(b.R).Contains(b.X, b.Y)
}

// Deflect sends the ball back toward the opponent of p. The outgoing angle
// grows with the distance from the paddle's centre, up to r.MaxDeflect, and
// part of the paddle's vertical velocity carries over.
func (b *Ball) Deflect(p *Player, r Rules) (angle float64) {
	hit := (b.Y - p.CenterY()) / (p.H / 2)
	hit = clampF(hit, -1, 1)
	angle = hit * r.MaxDeflect

	dir := p.Side.Direction()
	b.DX = math.Cos(angle) * b.Speed * dir
	b.DY = math.Sin(angle)*b.Speed + p.DY*r.CarryFactor
	return angle
}

// Serve puts the ball back in the centre heading in dir (+1 right, -1 left)
// with a random vertical component in ±spread/2.
func (b *Ball) Serve(r Rules, dir float64, rng *Rand) {
	b.X = r.FieldWidth / 2
	b.Y = r.FieldHeight / 2
	b.DX = b.Speed * dir
	b.DY = (rng.Float64() - 0.5) * r.ServeSpread
}
