package game

import "math"

type ParticleKind uint8

const (
	ParticleSpark ParticleKind = iota
	ParticleConfetti
	ParticleDust
)

type Particle struct {
	X, Y   float64
	VX, VY float64 // field pixels per second

	Size float64
	Rot  float64
	Spin float64

	Life    float64 // negative = delayed start
	MaxLife float64

	Col  RGB
	Kind ParticleKind
}

type ParticleSystem struct {
	Max    int
	P      []Particle
	Ground float64 // y where particles settle
	seed   uint64
	spawns uint64
	ovrIdx int // circular overwrite index when full
}

func NewParticleSystem(maxParticles int, seed uint64) *ParticleSystem {
	if maxParticles <= 0 {
		maxParticles = MaxParticles
	}
	if seed == 0 {
		seed = 1
	}
	return &ParticleSystem{
		Max:  maxParticles,
		P:    make([]Particle, 0, maxParticles),
		seed: seed,
	}
}

func (ps *ParticleSystem) Clear() {
	ps.P = ps.P[:0]
	ps.ovrIdx = 0
}

func (ps *ParticleSystem) Add(p Particle) {
	if len(ps.P) < ps.Max {
		ps.P = append(ps.P, p)
		return
	}
	// Circular overwrite.
	if ps.ovrIdx >= ps.Max {
		ps.ovrIdx = 0
	}
	ps.P[ps.ovrIdx] = p
	ps.ovrIdx++
}

// Attach subscribes the particle effects to match events.
func (ps *ParticleSystem) Attach(bus *EventBus) {
	bus.Subscribe(EventPaddleHit, func(e Event) {
		ps.SpawnSparks(e.X, e.Y, e.Side.Direction(), 14)
	})
	bus.Subscribe(EventGoal, func(e Event) {
		ps.SpawnConfetti(e.X, e.Y, e.Side.Opponent().Direction(), SideColor(e.Side), 90)
	})
	bus.Subscribe(EventLand, func(e Event) {
		ps.SpawnDust(e.X, e.Y, math.Abs(e.Value))
	})
	bus.Subscribe(EventWallBounce, func(e Event) {
		ps.SpawnSparks(e.X, e.Y, 0, 6)
	})
}

// RenderData packs live particles as point sprites.
// Format: [x, y, size, r, g, b, a, rotation] * N.
func (ps *ParticleSystem) RenderData(buf []float32) []float32 {
	buf = buf[:0]
	for _, p := range ps.P {
		if p.Life < 0 || p.MaxLife <= 0 {
			continue
		}
		t := clampF(p.Life/p.MaxLife, 0, 1)

		col := p.Col
		a := 1.0 - t
		size := p.Size
		switch p.Kind {
		case ParticleSpark:
			col = lerpRGB(Palette.Spark, p.Col, t)
			a = (1.0 - t) * 1.2
		case ParticleConfetti:
			if t > 0.7 {
				a = (1.0 - t) / 0.3
			} else {
				a = 1.0
			}
		case ParticleDust:
			a = (1.0 - t) * 0.7
			size *= 1.0 + t*1.5
		}
		if a <= 0 {
			continue
		}
		r, g, b := col.Floats()
		buf = append(buf, float32(p.X), float32(p.Y), float32(size), r, g, b, float32(min(a, 1)), float32(p.Rot))
		if len(buf)/8 >= MaxParticleRender {
			break
		}
	}
	return buf
}

// Alive counts particles that have started and not expired.
func (ps *ParticleSystem) Alive() int {
	n := 0
	for i := range ps.P {
		if ps.P[i].Life >= 0 && ps.P[i].Life < ps.P[i].MaxLife {
			n++
		}
	}
	return n
}
