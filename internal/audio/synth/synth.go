// Package synth renders the match sound effects procedurally. Buffers are
// interleaved stereo float32 little-endian at SampleRate, ready for oto.
package synth

import "math"

const (
	SampleRate    = 44100
	ChannelCount  = 2
	BytesPerFrame = 8 // two float32 channels
)

// Kind identifies a sound effect.
type Kind int

const (
	Kick Kind = iota // paddle hits the ball
	Bounce           // ball off the top or bottom wall
	Jump
	Land
	Goal
	Whistle // kickoff after a reset
)

func (k Kind) String() string {
	switch k {
	case Kick:
		return "kick"
	case Bounce:
		return "bounce"
	case Jump:
		return "jump"
	case Land:
		return "land"
	case Goal:
		return "goal"
	case Whistle:
		return "whistle"
	}
	return "unknown"
}

// Generate renders k. intensity in [0,1] scales the effect: harder hits are
// brighter, heavier landings thump longer.
func Generate(k Kind, intensity float64) []byte {
	intensity = clamp(intensity, 0, 1)
	switch k {
	case Kick:
		return genKick(intensity)
	case Bounce:
		return genBounce(intensity)
	case Jump:
		return genJump()
	case Land:
		return genLand(intensity)
	case Goal:
		return genGoal()
	case Whistle:
		return genWhistle()
	}
	return nil
}

// Frames returns the number of stereo frames in buf.
func Frames(buf []byte) int { return len(buf) / BytesPerFrame }

// genKick: pitch-dropping thump with a leather click on top.
func genKick(intensity float64) []byte {
	n := int(0.12 * SampleRate)
	buf := makeBuf(n)
	for i := range n {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		phase := 2 * math.Pi * 170 / 14 * (1 - math.Exp(-t*14))
		body := math.Sin(phase+40*t) * math.Exp(-p*6) * 0.7
		click := math.Sin(2*math.Pi*(1800+900*intensity)*t) * math.Exp(-t*260) * (0.18 + 0.2*intensity)
		putStereoF32(buf, i, softSat(body+click))
	}
	return buf
}

// genBounce: short hollow knock.
func genBounce(intensity float64) []byte {
	n := SampleRate * 60 / 1000
	buf := makeBuf(n)
	for i := range n {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.02, 0.6, 0.0, 0.1)
		freq := 820 - 260*p
		s := fm(t, freq, 1.41, 1.4) * env * (0.22 + 0.18*intensity)
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genJump: rising FM blip.
func genJump() []byte {
	n := int(0.11 * SampleRate)
	buf := makeBuf(n)
	for i := range n {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.01, 0.5, 0.2, 0.25)
		freq := 300 + 420*p*p
		s := fm(t, freq, 2.0, 1.8*env) * env * 0.32
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genLand: lowpassed noise thud under a soft sub.
func genLand(intensity float64) []byte {
	n := int((0.06 + 0.08*intensity) * SampleRate)
	buf := makeBuf(n)
	seed := uint64(22222)
	lp := 0.0
	for i := range n {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := math.Exp(-p * 6)
		lp = lp*0.9 + lcg(&seed)*0.1
		thump := math.Sin(2*math.Pi*(70-20*p)*t) * math.Exp(-p*9)
		s := (lp*0.6 + thump*0.5) * env * (0.35 + 0.45*intensity)
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genGoal: crowd swell with a bell arpeggio over it.
func genGoal() []byte {
	notes := []float64{523.25, 659.25, 783.99, 1046.5} // C5 E5 G5 C6
	noteLen := SampleRate * 90 / 1000
	total := int(1.3 * SampleRate)
	mix := make([]float64, total)

	seed := uint64(90210)
	lp, bp := 0.0, 0.0
	for i := range total {
		p := float64(i) / float64(total)
		raw := lcg(&seed)
		lp = lp*0.7 + raw*0.3
		bp = bp*0.6 + (raw-lp)*0.4
		env := adsr(p, 0.25, 0.3, 0.6, 0.35)
		mix[i] = (lp*0.25 + bp*0.3) * env
	}

	for ni, freq := range notes {
		start := ni * noteLen
		dur := total - start
		for j := range dur {
			t := float64(start+j) / SampleRate
			np := float64(j) / float64(dur)
			env := adsr(np, 0.004, 0.5, 0.05, 0.4)
			s := fm(t, freq, 2.756, 4.5*env) * env * 0.3
			s += math.Sin(2*math.Pi*freq*2*t) * env * 0.07
			mix[start+j] += s
		}
	}

	buf := makeBuf(total)
	for i, s := range mix {
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genWhistle: referee pea whistle, a high tone warbled by the pea.
func genWhistle() []byte {
	n := int(0.45 * SampleRate)
	buf := makeBuf(n)
	seed := uint64(4242)
	for i := range n {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.05, 0.1, 0.8, 0.2)
		warble := 1 + 0.04*math.Sin(2*math.Pi*28*t)
		s := math.Sin(2*math.Pi*2550*warble*t)*0.3 + lcg(&seed)*0.04
		putStereoF32(buf, i, softSat(s*env))
	}
	return buf
}
