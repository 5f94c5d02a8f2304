package game

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMatch(t *testing.T, seed uint64) *Match {
	t.Helper()
	m, err := NewMatch(DefaultRules(), seed)
	require.NoError(t, err)
	return m
}

func countEvents(m *Match) map[EventType]int {
	counts := make(map[EventType]int)
	m.Events.SubscribeAll(func(e Event) { counts[e.Type]++ })
	return counts
}

func TestNewMatchRejectsInvalidRules(t *testing.T) {
	r := DefaultRules()
	r.PaddleWidth = 0
	_, err := NewMatch(r, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "paddle_width")
}

func TestAwayScoresWhenBallLeavesLeftEdge(t *testing.T) {
	m := newTestMatch(t, 1)
	counts := countEvents(m)
	var goal Event
	m.Events.Subscribe(EventGoal, func(e Event) { goal = e })

	m.Ball.X, m.Ball.Y = 2, 100
	m.Ball.DX, m.Ball.DY = -5, 0
	m.Step(Controls{})

	home, away := m.Score()
	assert.Equal(t, 0, home)
	assert.Equal(t, 1, away)
	assert.Equal(t, 1, counts[EventGoal])
	assert.Equal(t, Away, goal.Side)
	assert.Equal(t, Away, m.LastScorer)
	assert.Equal(t, GoalFlashFrames-1, m.GoalFlash)

	assert.Equal(t, 400.0, m.Ball.X)
	assert.Equal(t, 200.0, m.Ball.Y)
	assert.Equal(t, 5.0, m.Ball.DX, "serve heads toward the scorer's half")
}

func TestHomeScoresWhenBallLeavesRightEdge(t *testing.T) {
	m := newTestMatch(t, 1)
	m.Ball.X, m.Ball.Y = 798, 100
	m.Ball.DX, m.Ball.DY = 5, 0
	m.Step(Controls{})

	home, away := m.Score()
	assert.Equal(t, 1, home)
	assert.Equal(t, 0, away)
	assert.Equal(t, -5.0, m.Ball.DX)
}

func TestPaddleHitSendsBallBack(t *testing.T) {
	m := newTestMatch(t, 1)
	counts := countEvents(m)

	// Away paddle sits at x=730, y=175 on the first frame.
	m.Ball.X, m.Ball.Y = 716, 200
	m.Ball.DX, m.Ball.DY = 5, 0
	m.Step(Controls{})

	assert.Equal(t, 1, counts[EventPaddleHit])
	assert.InDelta(t, -5, m.Ball.DX, 1e-9)
	assert.InDelta(t, 0.25, m.Ball.DY, 1e-9, "falling paddle adds half its speed")
}

func TestMatchInvariantsUnderRandomPlay(t *testing.T) {
	m := newTestMatch(t, 42)
	r := m.Rules
	home := NewRandomPilot(1)
	away := NewRandomPilot(2)

	hits := 0
	m.Events.Subscribe(EventPaddleHit, func(e Event) {
		hits++
		assert.LessOrEqual(t, math.Abs(e.Value), r.MaxDeflect+1e-12)
		assert.Greater(t, m.Ball.DX*e.Side.Direction(), 0.0)
	})
	goals := 0
	m.Events.Subscribe(EventGoal, func(Event) { goals++ })

	for range 20000 {
		m.Step(Controls{Home: home.Decide(m, Home), Away: away.Decide(m, Away)})

		b := m.Ball
		require.GreaterOrEqual(t, b.Y-b.R, 0.0)
		require.LessOrEqual(t, b.Y+b.R, r.FieldHeight)
		require.GreaterOrEqual(t, b.X, 0.0)
		require.LessOrEqual(t, b.X, r.FieldWidth)
		for _, s := range []Side{Home, Away} {
			p := m.Players[s]
			require.GreaterOrEqual(t, p.X, p.MinX)
			require.LessOrEqual(t, p.X, p.MaxX)
			require.LessOrEqual(t, p.Bottom(), r.FieldHeight)
		}
	}

	h, a := m.Score()
	assert.Equal(t, goals, h+a, "every goal credits exactly one side")
	assert.Positive(t, goals)
	t.Logf("%d goals, %d paddle hits", goals, hits)
}

func TestMatchDeterministic(t *testing.T) {
	run := func() *Match {
		m := newTestMatch(t, 99)
		home := NewRandomPilot(5)
		away := ChasePilot{}
		for range 5000 {
			m.Step(Controls{Home: home.Decide(m, Home), Away: away.Decide(m, Away)})
		}
		return m
	}
	a, b := run(), run()
	assert.Equal(t, a.Players, b.Players)
	assert.Equal(t, a.Ball, b.Ball)
	assert.Equal(t, a.Frame, b.Frame)
	assert.Equal(t, len(a.Particles.P), len(b.Particles.P))
}

func TestPausedMatchDoesNotChange(t *testing.T) {
	m := newTestMatch(t, 3)
	for range 10 {
		m.Step(Controls{})
	}
	require.True(t, m.TogglePause())
	players, ball, frame := m.Players, m.Ball, m.Frame

	for range 30 {
		m.Step(Controls{Home: Input{Right: true, Jump: true}, Away: Input{Left: true}})
	}
	assert.Equal(t, players, m.Players)
	assert.Equal(t, ball, m.Ball)
	assert.Equal(t, frame, m.Frame)

	require.False(t, m.TogglePause())
	m.Step(Controls{})
	assert.Equal(t, frame+1, m.Frame)
}

func TestResetRestoresKickoff(t *testing.T) {
	m := newTestMatch(t, 3)
	counts := countEvents(m)
	m.Players[Home].Score = 4
	m.Players[Away].Score = 2
	for range 50 {
		m.Step(Controls{Home: Input{Right: true}})
	}
	m.Paused = true

	m.Reset()
	home, away := m.Score()
	assert.Zero(t, home)
	assert.Zero(t, away)
	assert.Zero(t, m.Frame)
	assert.False(t, m.Paused)
	assert.Equal(t, NewBall(m.Rules), m.Ball)
	assert.Equal(t, NewPlayer(Home, m.Rules), m.Players[Home])
	assert.Empty(t, m.Particles.P)
	assert.Equal(t, 1, counts[EventReset])
}

func TestJumpAndLandEvents(t *testing.T) {
	m := newTestMatch(t, 3)
	for range 60 {
		m.Step(Controls{})
	}
	counts := countEvents(m)

	m.Step(Controls{Home: Input{Jump: true}})
	assert.Equal(t, 1, counts[EventJump])
	for range 60 {
		m.Step(Controls{})
	}
	assert.Equal(t, 1, counts[EventLand])
	assert.NotEmpty(t, m.Particles.P, "landing kicks up dust")
}

func TestApplyRules(t *testing.T) {
	m := newTestMatch(t, 3)
	m.Players[Home].Score = 3
	m.Players[Home].X = 350

	r := DefaultRules()
	r.HomeLaneGap = 150
	r.BallRadius = 6
	require.NoError(t, m.ApplyRules(r))
	assert.Equal(t, 250.0, m.Players[Home].MaxX)
	assert.Equal(t, 250.0, m.Players[Home].X, "player clamped into the narrower lane")
	assert.Equal(t, 3, m.Players[Home].Score)
	assert.Equal(t, 6.0, m.Ball.R)

	bad := r
	bad.WallDamping = 1.5
	require.Error(t, m.ApplyRules(bad))
	assert.Equal(t, 6.0, m.Ball.R, "rejected rules leave the match untouched")
}

func TestPlayerReturnsLivePaddle(t *testing.T) {
	m := newTestMatch(t, 1)
	m.Player(Away).X = 500
	assert.Equal(t, 500.0, m.Players[Away].X)
	assert.Same(t, &m.Players[Home], m.Player(Home))
}
