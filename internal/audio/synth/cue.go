package synth

import (
	"math"

	"soccer/internal/game"
)

// Cue picks the effect for a match event and how hard to play it.
// ok is false for events that make no sound.
func Cue(e game.Event, r game.Rules) (k Kind, intensity float64, ok bool) {
	switch e.Type {
	case game.EventPaddleHit:
		return Kick, ratio(math.Abs(e.Value), r.MaxDeflect), true
	case game.EventWallBounce:
		return Bounce, ratio(math.Abs(e.Value), r.BallSpeed), true
	case game.EventJump:
		return Jump, 1, true
	case game.EventLand:
		return Land, ratio(math.Abs(e.Value), math.Abs(r.JumpForce)), true
	case game.EventGoal:
		return Goal, 1, true
	case game.EventReset:
		return Whistle, 1, true
	}
	return 0, 0, false
}

func ratio(v, full float64) float64 {
	if full <= 0 {
		return 1
	}
	return clamp(v/full, 0, 1)
}
