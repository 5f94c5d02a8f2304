package game

// Side identifies one of the two players.
type Side int

const (
	Home Side = iota // left, blue, attacks to the right
	Away             // right, red, attacks to the left
)

func (s Side) String() string {
	if s == Away {
		return "away"
	}
	return "home"
}

// Opponent returns the other side.
func (s Side) Opponent() Side {
	if s == Home {
		return Away
	}
	return Home
}

// Direction is +1 for Home (attacking right) and -1 for Away.
func (s Side) Direction() float64 {
	if s == Away {
		return -1
	}
	return 1
}

// Input is the held state of one player's keys for a single frame.
type Input struct {
	Left  bool
	Right bool
	Jump  bool
}

// Controls is the full key-state map sampled once per frame.
type Controls struct {
	Home Input
	Away Input
}

// For returns the input belonging to side.
func (c Controls) For(s Side) Input {
	if s == Away {
		return c.Away
	}
	return c.Home
}

// Key names understood by Bind. Frontends translate their native key codes to
// these before calling Bind so the mapping lives in one place.
const (
	KeyA     = "a"
	KeyD     = "d"
	KeyW     = "w"
	KeyLeft  = "left"
	KeyRight = "right"
	KeyUp    = "up"
)

// Bind sets the action mapped to key in c. Unknown keys are ignored.
func (c *Controls) Bind(key string, down bool) {
	switch key {
	case KeyA:
		c.Home.Left = down
	case KeyD:
		c.Home.Right = down
	case KeyW:
		c.Home.Jump = down
	case KeyLeft:
		c.Away.Left = down
	case KeyRight:
		c.Away.Right = down
	case KeyUp:
		c.Away.Jump = down
	}
}

// BoundKeys lists every key Bind reacts to, in a stable order.
var BoundKeys = []string{KeyA, KeyD, KeyW, KeyLeft, KeyRight, KeyUp}
