package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParticleSystemOverwritesWhenFull(t *testing.T) {
	ps := NewParticleSystem(4, 1)
	for i := range 6 {
		ps.Add(Particle{X: float64(i), MaxLife: 1})
	}
	require.Len(t, ps.P, 4)
	assert.Equal(t, 4.0, ps.P[0].X)
	assert.Equal(t, 5.0, ps.P[1].X)
	assert.Equal(t, 2.0, ps.P[2].X)
}

func TestParticleSystemExpires(t *testing.T) {
	ps := NewParticleSystem(0, 0)
	assert.Equal(t, MaxParticles, ps.Max)

	ps.SpawnSparks(100, 100, 1, 20)
	require.Len(t, ps.P, 20)
	assert.Equal(t, 20, ps.Alive())
	for range 60 {
		ps.Update(1.0 / 60)
	}
	assert.Empty(t, ps.P, "sparks live under half a second")
	assert.Zero(t, ps.Alive())
}

func TestParticlesStayAboveGround(t *testing.T) {
	ps := NewParticleSystem(0, 9)
	ps.Ground = 300
	ps.SpawnConfetti(0, 280, 1, Palette.Home, 50)
	for range 90 {
		ps.Update(1.0 / 60)
		for _, p := range ps.P {
			require.LessOrEqual(t, p.Y, 300.0)
		}
	}
}

func TestParticlesReactToGoal(t *testing.T) {
	bus := NewEventBus()
	ps := NewParticleSystem(0, 3)
	ps.Attach(bus)

	bus.Emit(Event{Type: EventGoal, Side: Home, X: 800, Y: 200})
	require.Len(t, ps.P, 90)
	for _, p := range ps.P {
		assert.Equal(t, ParticleConfetti, p.Kind)
	}

	// Confetti starts after a short random delay.
	for range 12 {
		ps.Update(1.0 / 60)
	}
	buf := ps.RenderData(nil)
	require.NotEmpty(t, buf)
	assert.Zero(t, len(buf)%SpriteStride)
}

func TestParticleSpawnsAreSeeded(t *testing.T) {
	a := NewParticleSystem(0, 77)
	b := NewParticleSystem(0, 77)
	a.SpawnDust(10, 390, 12)
	b.SpawnDust(10, 390, 12)
	assert.Equal(t, a.P, b.P)
	assert.Len(t, a.P, 22)
}
