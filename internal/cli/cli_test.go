package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"soccer/internal/config"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// execute runs the command tree with args and returns what it printed.
func execute(t *testing.T, desktop Frontend, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(desktop)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSimIsDeterministic(t *testing.T) {
	args := []string{"sim", "--seed", "7", "--script", "chase", "--frames", "3000"}
	first, err := execute(t, nil, args...)
	require.NoError(t, err)
	second, err := execute(t, nil, args...)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Contains(t, first, "(seed 7, 3000 frames, chase)")
}

func TestSimScripts(t *testing.T) {
	for _, script := range []string{"idle", "random", "chase"} {
		t.Run(script, func(t *testing.T) {
			out, err := execute(t, nil, "sim", "--seed", "3", "--script", script, "-n", "600")
			require.NoError(t, err)
			assert.Regexp(t, `^home \d+ - \d+ away`, out)
		})
	}
}

func TestSimRejectsBadInput(t *testing.T) {
	_, err := execute(t, nil, "sim", "--frames", "0")
	require.Error(t, err)

	_, err = execute(t, nil, "sim", "--script", "keeper")
	require.ErrorContains(t, err, "script")
}

func TestConfigPrintsEffectiveConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "soccer.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tick_rate: 120\nrules:\n  ball_speed: 7\n"), 0644))

	out, err := execute(t, nil, "--config", path, "--seed", "42", "--cpu", "chase", "--log-format", "json", "config")
	require.NoError(t, err)

	var cfg config.Config
	require.NoError(t, yaml.Unmarshal([]byte(out), &cfg))
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.Equal(t, 120, cfg.TickRate)
	assert.Equal(t, 7.0, cfg.Rules.BallSpeed)
	assert.Equal(t, "chase", cfg.CPU)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "error", cfg.Log.Level)
}

func TestConfigWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "soccer.yaml")
	out, err := execute(t, nil, "--mute", "config", "--out", path)
	require.NoError(t, err)
	assert.Empty(t, out)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Audio.Mute)
}

func TestSeedPrecedence(t *testing.T) {
	t.Setenv(config.EnvSeed, "5")

	out, err := execute(t, nil, "config")
	require.NoError(t, err)
	assert.Contains(t, out, "seed: 5\n")

	out, err = execute(t, nil, "--seed", "9", "config")
	require.NoError(t, err)
	assert.Contains(t, out, "seed: 9\n")
}

func TestInvalidFlags(t *testing.T) {
	for _, args := range [][]string{
		{"--log-level", "loud", "config"},
		{"--log-format", "xml", "config"},
		{"--cpu", "goalie", "config"},
	} {
		_, err := execute(t, nil, args...)
		assert.Error(t, err, args)
	}
}

func TestRootRunsDesktop(t *testing.T) {
	var (
		got     *config.Config
		updates <-chan *config.Config
	)
	desktop := func(ctx context.Context, cfg *config.Config, log *zap.Logger, u <-chan *config.Config) error {
		got, updates = cfg, u
		require.NotNil(t, log)
		return nil
	}

	_, err := execute(t, desktop, "--mute", "--seed", "11")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Audio.Mute)
	assert.Equal(t, uint64(11), got.Seed)
	assert.Nil(t, updates, "no config file means nothing to watch")

	path := filepath.Join(t.TempDir(), "soccer.yaml")
	_, err = execute(t, desktop, "--config", path)
	require.NoError(t, err)
	assert.NotNil(t, updates)
}

func TestReloadKeepsFlagOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "soccer.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cpu: random\n"), 0644))

	var reloaded *config.Config
	desktop := func(ctx context.Context, cfg *config.Config, log *zap.Logger, updates <-chan *config.Config) error {
		assert.Equal(t, "chase", cfg.CPU)
		require.NoError(t, os.WriteFile(path, []byte("seed: 1\ncpu: idle\nrules:\n  ball_speed: 6\n"), 0644))
		select {
		case reloaded = <-updates:
		case <-time.After(5 * time.Second):
			t.Error("no config reload")
		}
		return nil
	}

	_, err := execute(t, desktop, "--config", path, "--cpu", "chase", "--seed", "33")
	require.NoError(t, err)
	require.NotNil(t, reloaded)
	assert.Equal(t, 6.0, reloaded.Rules.BallSpeed, "file edits still apply")
	assert.Equal(t, "chase", reloaded.CPU)
	assert.Equal(t, uint64(33), reloaded.Seed)
	assert.Equal(t, "error", reloaded.Log.Level)
}

func TestRootWithoutDesktop(t *testing.T) {
	_, err := execute(t, nil)
	require.ErrorContains(t, err, "desktop")
}
