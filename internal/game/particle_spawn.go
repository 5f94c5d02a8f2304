package game

import "math"

func (ps *ParticleSystem) rand() *Rand {
	ps.spawns++
	return NewRand(MixSeed(ps.seed, ps.spawns))
}

// SpawnSparks throws a short burst off an impact. dir biases the spray
// horizontally (+1 right, -1 left, 0 none).
func (ps *ParticleSystem) SpawnSparks(x, y, dir float64, count int) {
	r := ps.rand()
	base := 0.0
	if dir < 0 {
		base = math.Pi
	}
	for range count {
		ang := r.Angle()
		if dir != 0 {
			ang = base + r.RangeF(-1.1, 1.1)
		}
		spd := r.RangeF(90, 260)
		ps.Add(Particle{
			X: x + r.RangeF(-2, 2), Y: y + r.RangeF(-2, 2),
			VX: math.Cos(ang) * spd, VY: math.Sin(ang) * spd,
			Size: r.RangeF(2, 4), MaxLife: r.RangeF(0.15, 0.4),
			Col: Palette.Line, Kind: ParticleSpark,
		})
	}
}

// SpawnConfetti showers the scorer's colour from the goal mouth back into
// the field. dir is the direction pointing into the field.
func (ps *ParticleSystem) SpawnConfetti(x, y, dir float64, col RGB, count int) {
	r := ps.rand()
	base := 0.0
	if dir < 0 {
		base = math.Pi
	}
	for i := range count {
		ang := base + r.RangeF(-1.2, 1.2)
		spd := r.RangeF(120, 420)
		c := col.Add(int(r.RangeF(-30, 30)), int(r.RangeF(-30, 30)), int(r.RangeF(-30, 30)))
		if i%4 == 0 {
			c = Palette.Line
		}
		ps.Add(Particle{
			X: x, Y: y + r.RangeF(-20, 20),
			VX: math.Cos(ang) * spd, VY: math.Sin(ang)*spd - r.RangeF(60, 200),
			Size: r.RangeF(3, 6), Rot: r.Angle(), Spin: r.RangeF(-12, 12),
			Life: -r.RangeF(0, 0.15), MaxLife: r.RangeF(0.9, 1.8),
			Col: c, Kind: ParticleConfetti,
		})
	}
}

// SpawnDust kicks up a puff at a paddle's feet. impact is the landing speed
// in per-frame units; heavier landings throw more dust.
func (ps *ParticleSystem) SpawnDust(x, y, impact float64) {
	r := ps.rand()
	count := int(4 + impact*1.5)
	for range count {
		side := 1.0
		if r.Float64() < 0.5 {
			side = -1
		}
		ps.Add(Particle{
			X: x + r.RangeF(-8, 8), Y: y - r.RangeF(0, 2),
			VX: side * r.RangeF(20, 80), VY: -r.RangeF(10, 60),
			Size: r.RangeF(3, 5), MaxLife: r.RangeF(0.25, 0.55),
			Col: Palette.Dust, Kind: ParticleDust,
		})
	}
}
