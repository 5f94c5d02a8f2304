package game

import "fmt"

// GoalFlashFrames is how long the HUD highlights the last scorer.
const GoalFlashFrames = TickRate * 3 / 2

// Match is the whole simulation state. It has a single phase: play
// continues forever and only the score changes.
type Match struct {
	Rules     Rules
	Players   [2]Player
	Ball      Ball
	Goals     [2]Rect
	Events    *EventBus
	Particles *ParticleSystem

	Frame      uint64
	Paused     bool
	LastScorer Side
	GoalFlash  int // frames left of the goal highlight

	seed uint64
	rng  *Rand
}

// NewMatch validates r and sets up a kickoff. The seed drives ball serves
// and particle spray so a replay with the same inputs is identical.
func NewMatch(r Rules, seed uint64) (*Match, error) {
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("new match: %w", err)
	}
	m := &Match{
		Rules:     r,
		Events:    NewEventBus(),
		Particles: NewParticleSystem(MaxParticles, MixSeed(seed, 0xBEAD)),
		seed:      seed,
	}
	m.Particles.Ground = r.FieldHeight
	m.kickoff()
	m.Particles.Attach(m.Events)
	return m, nil
}

func (m *Match) kickoff() {
	r := m.Rules
	m.Players[Home] = NewPlayer(Home, r)
	m.Players[Away] = NewPlayer(Away, r)
	m.Ball = NewBall(r)
	m.Goals[Home] = Rect{X: 0, Y: r.FieldHeight/2 - r.GoalHeight/2, W: r.GoalWidth, H: r.GoalHeight}
	m.Goals[Away] = Rect{X: r.FieldWidth - r.GoalWidth, Y: r.FieldHeight/2 - r.GoalHeight/2, W: r.GoalWidth, H: r.GoalHeight}
	m.rng = NewRand(MixSeed(m.seed, 0x5E12E))
	m.Frame = 0
	m.GoalFlash = 0
}

// Seed returns the seed the match was created with.
func (m *Match) Seed() uint64 { return m.seed }

// Score returns (home, away).
func (m *Match) Score() (int, int) {
	return m.Players[Home].Score, m.Players[Away].Score
}

// Player returns the paddle for side.
func (m *Match) Player(s Side) *Player { return &m.Players[s] }

// Reset zeroes the score and restores the kickoff layout.
func (m *Match) Reset() {
	m.kickoff()
	m.Paused = false
	m.Particles.Clear()
	m.Events.Emit(Event{Type: EventReset})
}

// TogglePause flips the paused flag and returns the new value.
func (m *Match) TogglePause() bool {
	m.Paused = !m.Paused
	return m.Paused
}

// ApplyRules swaps in new tuning mid-match, keeping scores and positions
// where they remain valid.
func (m *Match) ApplyRules(r Rules) error {
	if err := r.Validate(); err != nil {
		return fmt.Errorf("apply rules: %w", err)
	}
	m.Rules = r
	m.Particles.Ground = r.FieldHeight
	for _, s := range []Side{Home, Away} {
		p := &m.Players[s]
		p.W, p.H = r.PaddleWidth, r.PaddleHeight
		p.MinX, p.MaxX = r.Lane(s)
		p.X = clampF(p.X, p.MinX, p.MaxX)
		p.Y = min(p.Y, r.FieldHeight-p.H)
	}
	m.Ball.R = r.BallRadius
	m.Ball.Speed = r.BallSpeed
	half := r.GoalHeight / 2
	m.Goals[Home] = Rect{X: 0, Y: r.FieldHeight/2 - half, W: r.GoalWidth, H: r.GoalHeight}
	m.Goals[Away] = Rect{X: r.FieldWidth - r.GoalWidth, Y: r.FieldHeight/2 - half, W: r.GoalWidth, H: r.GoalHeight}
	return nil
}

// Step advances the match by one frame using the sampled key state.
func (m *Match) Step(c Controls) {
	if m.Paused {
		return
	}
	m.Frame++
	r := m.Rules

	for _, s := range []Side{Home, Away} {
		p := &m.Players[s]
		if p.Move(c.For(s), r) {
			m.emit(EventJump, s, p.X+p.W/2, p.Bottom(), r.JumpForce)
		}
	}

	for _, s := range []Side{Home, Away} {
		p := &m.Players[s]
		impact := p.DY
		if p.Fall(r) {
			m.emit(EventLand, s, p.X+p.W/2, p.Bottom(), impact)
		}
	}

	b := &m.Ball
	b.Advance()
	if b.BounceWalls(r) {
		y := 0.0
		if b.DY < 0 {
			y = r.FieldHeight
		}
		m.emit(EventWallBounce, Home, b.X, y, b.DY)
	}

	for _, s := range []Side{Home, Away} {
		p := &m.Players[s]
		if b.Touches(p) {
			angle := b.Deflect(p, r)
			m.emit(EventPaddleHit, s, b.X, b.Y, angle)
		}
	}

	switch {
	case b.X < 0:
		m.goal(Away)
	case b.X > r.FieldWidth:
		m.goal(Home)
	}

	if m.GoalFlash > 0 {
		m.GoalFlash--
	}
	m.Particles.Update(1.0 / TickRate)
}

// goal credits scorer and re-serves from the centre toward the scorer's half.
func (m *Match) goal(scorer Side) {
	m.Players[scorer].Score++
	m.LastScorer = scorer
	m.GoalFlash = GoalFlashFrames

	x := 0.0
	if scorer == Home {
		x = m.Rules.FieldWidth
	}
	m.emit(EventGoal, scorer, x, m.Ball.Y, float64(m.Players[scorer].Score))

	m.Ball.Serve(m.Rules, scorer.Opponent().Direction(), m.rng)
}

func (m *Match) emit(t EventType, s Side, x, y, v float64) {
	m.Events.Emit(Event{Type: t, Frame: m.Frame, X: x, Y: y, Side: s, Value: v})
}
