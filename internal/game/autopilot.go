package game

import (
	"fmt"
	"math"
)

// Pilot decides one side's keys for the next frame.
type Pilot interface {
	Decide(m *Match, s Side) Input
}

// IdlePilot never presses anything.
type IdlePilot struct{}

func (IdlePilot) Decide(*Match, Side) Input { return Input{} }

// RandomPilot mashes keys, holding each choice for a few frames.
type RandomPilot struct {
	rng  *Rand
	cur  Input
	hold int
}

func NewRandomPilot(seed uint64) *RandomPilot {
	return &RandomPilot{rng: NewRand(seed)}
}

func (p *RandomPilot) Decide(*Match, Side) Input {
	if p.hold > 0 {
		p.hold--
		return p.cur
	}
	p.hold = 4 + p.rng.Intn(12)
	switch p.rng.Intn(3) {
	case 0:
		p.cur = Input{Left: true}
	case 1:
		p.cur = Input{Right: true}
	default:
		p.cur = Input{}
	}
	p.cur.Jump = p.rng.Intn(6) == 0
	return p.cur
}

// ChasePilot tracks the ball horizontally and jumps when the ball is
// coming in above the paddle.
type ChasePilot struct {
	Deadzone float64
}

func (c ChasePilot) Decide(m *Match, s Side) Input {
	p := m.Player(s)
	b := &m.Ball
	dz := c.Deadzone
	if dz <= 0 {
		dz = p.W / 2
	}

	// Stand on the goal side of the ball so contact pushes it forward.
	target := b.X - p.W/2 - s.Direction()*(b.R+p.W)
	var in Input
	cx := p.X
	switch {
	case target < cx-dz:
		in.Left = true
	case target > cx+dz:
		in.Right = true
	}

	incoming := b.DX*s.Direction() < 0
	near := math.Abs(b.X-(p.X+p.W/2)) < 4*b.R+p.W
	if incoming && near && b.Y < p.Y {
		in.Jump = true
	}
	return in
}

// NewPilot builds a pilot by name: "idle", "random" or "chase".
func NewPilot(name string, seed uint64) (Pilot, error) {
	switch name {
	case "", "idle":
		return IdlePilot{}, nil
	case "random":
		return NewRandomPilot(seed), nil
	case "chase":
		return ChasePilot{}, nil
	}
	return nil, fmt.Errorf("unknown pilot %q (want idle, random or chase)", name)
}
