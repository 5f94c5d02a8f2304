package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPilot(t *testing.T) {
	for _, name := range []string{"", "idle", "random", "chase"} {
		p, err := NewPilot(name, 1)
		require.NoError(t, err, name)
		require.NotNil(t, p)
	}
	_, err := NewPilot("genius", 1)
	require.Error(t, err)
}

func TestChasePilotFollowsBall(t *testing.T) {
	m := newTestMatch(t, 1)
	pilot := ChasePilot{}

	m.Ball.X = 300
	in := pilot.Decide(m, Home)
	assert.True(t, in.Right)
	assert.False(t, in.Left)

	m.Ball.X = 20
	in = pilot.Decide(m, Home)
	assert.True(t, in.Left)
}

func TestChasePilotScoresAgainstIdle(t *testing.T) {
	m := newTestMatch(t, 11)
	home := ChasePilot{}
	for range 60 * 60 {
		m.Step(Controls{Home: home.Decide(m, Home)})
	}
	h, a := m.Score()
	assert.Greater(t, h+a, 0)
}
