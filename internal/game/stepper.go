package game

// Stepper turns variable frame times into whole fixed-rate simulation steps,
// so per-frame speeds in Rules mean the same thing at any refresh rate.
type Stepper struct {
	Rate  float64 // steps per second
	MaxDt float64 // frame time clamp
	acc   float64
}

func NewStepper(rate int) *Stepper {
	if rate <= 0 {
		rate = TickRate
	}
	return &Stepper{Rate: float64(rate), MaxDt: MaxFrameDt}
}

// Advance accumulates dt seconds and returns how many steps are due.
// A long stall (window drag, breakpoint) is clamped to MaxDt so the match
// never fast-forwards.
func (s *Stepper) Advance(dt float64) int {
	if dt <= 0 {
		return 0
	}
	if dt > s.MaxDt {
		dt = s.MaxDt
	}
	s.acc += dt
	step := 1.0 / s.Rate
	n := 0
	for s.acc >= step {
		s.acc -= step
		n++
	}
	return n
}

// Alpha is the fraction of a step left over in the accumulator.
func (s *Stepper) Alpha() float64 {
	return s.acc * s.Rate
}

// Reset drops any pending time.
func (s *Stepper) Reset() { s.acc = 0 }
