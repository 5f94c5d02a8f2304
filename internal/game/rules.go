package game

import (
	"errors"
	"fmt"
	"math"
)

// Field dimensions (in field pixels).
const (
	FieldWidth  = 800
	FieldHeight = 400
)

// Window defaults.
const (
	WindowWidth  = FieldWidth
	WindowHeight = FieldHeight
	MinZoom      = 0.25
	MaxZoom      = 8.0
)

// Simulation rate. All per-frame speeds in Rules assume this rate.
const (
	TickRate    = 60
	MaxFrameDt  = 0.1
	CircleR     = 50.0
	DashLength  = 10.0
	LineWidth   = 2.0
	OutlineFrac = 0.18
)

// Particles.
const (
	MaxParticles      = 2048
	MaxParticleRender = 4096
)

// Font atlas layout (basicfont 7x13, ASCII 32-127 in a 16x6 grid).
const (
	FontCellW  = 7
	FontCellH  = 13
	FontCols   = 16
	FontRows   = 6
	FontAtlasW = FontCellW * FontCols // 112
	FontAtlasH = FontCellH * FontRows // 78
)

// Rules holds every tunable number of a match. Speeds are per simulation
// frame; distances are field pixels.
type Rules struct {
	FieldWidth  float64 `yaml:"field_width"`
	FieldHeight float64 `yaml:"field_height"`

	BallRadius  float64 `yaml:"ball_radius"`
	BallSpeed   float64 `yaml:"ball_speed"`
	KickoffDX   float64 `yaml:"kickoff_dx"`
	KickoffDY   float64 `yaml:"kickoff_dy"`
	WallDamping float64 `yaml:"wall_damping"`
	ServeSpread float64 `yaml:"serve_spread"`

	PaddleWidth  float64 `yaml:"paddle_width"`
	PaddleHeight float64 `yaml:"paddle_height"`
	PaddleSpeed  float64 `yaml:"paddle_speed"`
	Gravity      float64 `yaml:"gravity"`
	JumpForce    float64 `yaml:"jump_force"`
	CarryFactor  float64 `yaml:"carry_factor"`
	MaxDeflect   float64 `yaml:"max_deflect"`

	// Lane limits measured from the centre line: Home's left edge may reach
	// W/2-HomeLaneGap, Away's left edge may go down to W/2+AwayLaneGap.
	HomeLaneGap float64 `yaml:"home_lane_gap"`
	AwayLaneGap float64 `yaml:"away_lane_gap"`

	GoalWidth  float64 `yaml:"goal_width"`
	GoalHeight float64 `yaml:"goal_height"`
}

// DefaultRules returns the classic tuning.
func DefaultRules() Rules {
	return Rules{
		FieldWidth:  FieldWidth,
		FieldHeight: FieldHeight,

		BallRadius:  10,
		BallSpeed:   5,
		KickoffDX:   5,
		KickoffDY:   2,
		WallDamping: 0.9,
		ServeSpread: 4,

		PaddleWidth:  20,
		PaddleHeight: 50,
		PaddleSpeed:  5,
		Gravity:      0.5,
		JumpForce:    -12,
		CarryFactor:  0.5,
		MaxDeflect:   math.Pi / 4,

		HomeLaneGap: 50,
		AwayLaneGap: 30,

		GoalWidth:  10,
		GoalHeight: 100,
	}
}

var (
	errNonPositive = errors.New("must be positive")
	errNotFinite   = errors.New("must be a finite number")
)

// Validate reports the first rule that would make the field unplayable.
func (r Rules) Validate() error {
	fields := []struct {
		name string
		v    float64
	}{
		{"field_width", r.FieldWidth},
		{"field_height", r.FieldHeight},
		{"ball_radius", r.BallRadius},
		{"ball_speed", r.BallSpeed},
		{"kickoff_dx", r.KickoffDX},
		{"kickoff_dy", r.KickoffDY},
		{"wall_damping", r.WallDamping},
		{"serve_spread", r.ServeSpread},
		{"paddle_width", r.PaddleWidth},
		{"paddle_height", r.PaddleHeight},
		{"paddle_speed", r.PaddleSpeed},
		{"gravity", r.Gravity},
		{"jump_force", r.JumpForce},
		{"carry_factor", r.CarryFactor},
		{"max_deflect", r.MaxDeflect},
		{"home_lane_gap", r.HomeLaneGap},
		{"away_lane_gap", r.AwayLaneGap},
		{"goal_width", r.GoalWidth},
		{"goal_height", r.GoalHeight},
	}
	for _, f := range fields {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("rules: %s=%v: %w", f.name, f.v, errNotFinite)
		}
	}

	positive := []struct {
		name string
		v    float64
	}{
		{"field_width", r.FieldWidth},
		{"field_height", r.FieldHeight},
		{"ball_radius", r.BallRadius},
		{"ball_speed", r.BallSpeed},
		{"paddle_width", r.PaddleWidth},
		{"paddle_height", r.PaddleHeight},
		{"paddle_speed", r.PaddleSpeed},
		{"gravity", r.Gravity},
		{"goal_width", r.GoalWidth},
		{"goal_height", r.GoalHeight},
	}
	for _, p := range positive {
		if p.v <= 0 {
			return fmt.Errorf("rules: %s=%v: %w", p.name, p.v, errNonPositive)
		}
	}
	if r.JumpForce >= 0 {
		return fmt.Errorf("rules: jump_force=%v: must be negative (upwards)", r.JumpForce)
	}
	if r.WallDamping <= 0 || r.WallDamping > 1 {
		return fmt.Errorf("rules: wall_damping=%v: must be in (0, 1]", r.WallDamping)
	}
	if r.MaxDeflect <= 0 || r.MaxDeflect >= math.Pi/2 {
		return fmt.Errorf("rules: max_deflect=%v: must be in (0, pi/2)", r.MaxDeflect)
	}
	if r.ServeSpread < 0 {
		return fmt.Errorf("rules: serve_spread=%v: must not be negative", r.ServeSpread)
	}
	if r.PaddleHeight >= r.FieldHeight {
		return fmt.Errorf("rules: paddle_height=%v does not fit field_height=%v", r.PaddleHeight, r.FieldHeight)
	}
	if r.GoalHeight > r.FieldHeight {
		return fmt.Errorf("rules: goal_height=%v does not fit field_height=%v", r.GoalHeight, r.FieldHeight)
	}
	for _, side := range []Side{Home, Away} {
		lo, hi := r.Lane(side)
		if hi < lo {
			return fmt.Errorf("rules: %s lane [%v, %v] cannot hold a paddle", side, lo, hi)
		}
	}
	return nil
}

// Lane returns the range a player's left edge may occupy.
func (r Rules) Lane(side Side) (minX, maxX float64) {
	half := r.FieldWidth / 2
	if side == Home {
		return 0, half - r.HomeLaneGap
	}
	return half + r.AwayLaneGap, r.FieldWidth - r.PaddleWidth
}
