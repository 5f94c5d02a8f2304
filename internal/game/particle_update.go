package game

import "math"

const (
	particleGravity   = 520.0
	particleAirDrag   = 1.65
	confettiDrag      = 2.4
	confettiFlutter   = 40.0
	dustDrag          = 3.5
	particleGroundFri = 0.35
)

// particleDecays holds exponential drag factors precomputed once per frame.
type particleDecays struct {
	spark    float64
	confetti float64
	dust     float64
}

func computeDecays(dt float64) particleDecays {
	return particleDecays{
		spark:    math.Exp(-particleAirDrag * dt),
		confetti: math.Exp(-confettiDrag * dt),
		dust:     math.Exp(-dustDrag * dt),
	}
}

// Update advances every particle by dt seconds and drops expired ones.
func (ps *ParticleSystem) Update(dt float64) {
	if dt <= 0 {
		return
	}
	d := computeDecays(dt)
	ground := ps.Ground
	if ground <= 0 {
		ground = FieldHeight
	}

	for i := 0; i < len(ps.P); {
		p := &ps.P[i]

		p.Life += dt
		if p.Life >= p.MaxLife {
			ps.P[i] = ps.P[len(ps.P)-1]
			ps.P = ps.P[:len(ps.P)-1]
			continue
		}
		// Skip delayed particles.
		if p.Life < 0 {
			i++
			continue
		}

		switch p.Kind {
		case ParticleSpark:
			p.VY += particleGravity * 0.5 * dt
			p.VX *= d.spark
			p.VY *= d.spark
		case ParticleConfetti:
			p.VY += particleGravity * 0.35 * dt
			p.VX *= d.confetti
			p.VY *= d.confetti
			p.VX += math.Sin(p.Rot*3) * confettiFlutter * dt
			p.Rot += p.Spin * dt
		case ParticleDust:
			p.VX *= d.dust
			p.VY *= d.dust
		}

		p.X += p.VX * dt
		p.Y += p.VY * dt

		if p.Y > ground {
			p.Y = ground
			p.VY = -p.VY * 0.3
			p.VX *= particleGroundFri
		}
		i++
	}
}
