package game

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBallKickoff(t *testing.T) {
	b := NewBall(DefaultRules())
	assert.Equal(t, Ball{X: 400, Y: 200, R: 10, DX: 5, DY: 2, Speed: 5}, b)
}

func TestBallBounceWalls(t *testing.T) {
	r := DefaultRules()
	tests := []struct {
		name   string
		y, dy  float64
		bounce bool
		wantY  float64
		wantDY float64
	}{
		{"top", 4, -4, true, 10, 3.6},
		{"bottom", 395, 4, true, 390, -3.6},
		{"top already reversed", 8, 3, true, 10, 2.7},
		{"middle", 200, 4, false, 200, 4},
		{"touching top", 10, -4, false, 10, -4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Ball{X: 400, Y: tt.y, R: 10, DY: tt.dy}
			assert.Equal(t, tt.bounce, b.BounceWalls(r))
			assert.InDelta(t, tt.wantY, b.Y, 1e-9)
			assert.InDelta(t, tt.wantDY, b.DY, 1e-9)
		})
	}
}

func TestBallTouchesExpandedPaddle(t *testing.T) {
	p := Player{Side: Away, X: 700, Y: 300, W: 20, H: 50}
	tests := []struct {
		name  string
		x, y  float64
		touch bool
	}{
		{"inside", 710, 320, true},
		{"within radius of left face", 691, 320, true},
		{"just beyond radius", 689, 320, false},
		{"above top within radius", 710, 291, true},
		{"far above", 710, 250, false},
		{"within radius of right face", 729, 320, true},
		{"below bottom within radius", 710, 359, true},
		{"right of paddle", 731, 320, false},
		{"below bottom beyond radius", 710, 361, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Ball{X: tt.x, Y: tt.y, R: 10}
			assert.Equal(t, tt.touch, b.Touches(&p))
		})
	}
}

func TestBallDeflectCentreHit(t *testing.T) {
	r := DefaultRules()
	p := Player{Side: Home, X: 100, Y: 300, W: 20, H: 50, DY: -4}
	b := Ball{X: 125, Y: p.CenterY(), R: 10, DX: -5, Speed: 5}

	angle := b.Deflect(&p, r)
	assert.Equal(t, 0.0, angle)
	assert.InDelta(t, 5, b.DX, 1e-9)
	assert.InDelta(t, -2, b.DY, 1e-9, "half the paddle's vertical speed carries over")
}

func TestBallDeflectAngleBounded(t *testing.T) {
	r := DefaultRules()
	for _, side := range []Side{Home, Away} {
		for _, offset := range []float64{-40, -25, -10, 0, 10, 25, 40} {
			p := Player{Side: side, X: 400, Y: 200, W: 20, H: 50}
			b := Ball{X: 410, Y: p.CenterY() + offset, R: 10, Speed: 5}

			angle := b.Deflect(&p, r)
			require.LessOrEqual(t, math.Abs(angle), math.Pi/4+1e-12)
			assert.Greater(t, b.DX*side.Direction(), 0.0, "ball must head toward the opponent")
			assert.InDelta(t, 5, math.Hypot(b.DX, b.DY), 1e-9, "grounded paddle keeps ball speed")
			if offset != 0 {
				assert.Equal(t, math.Signbit(offset), math.Signbit(b.DY), "hit above centre sends ball up")
			}
		}
	}
}

func TestBallServe(t *testing.T) {
	r := DefaultRules()
	rng := NewRand(7)
	for _, dir := range []float64{1, -1} {
		for range 50 {
			b := Ball{X: -3, Y: 12, R: 10, DX: -5, DY: 3, Speed: 5}
			b.Serve(r, dir, rng)
			require.Equal(t, 400.0, b.X)
			require.Equal(t, 200.0, b.Y)
			require.Equal(t, 5*dir, b.DX)
			require.LessOrEqual(t, math.Abs(b.DY), 2.0)
		}
	}
}
