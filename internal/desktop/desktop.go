// Package desktop runs the match in a GLFW window.
package desktop

import (
	"context"
	"fmt"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"

	"soccer/internal/audio"
	"soccer/internal/config"
	"soccer/internal/game"
	"soccer/internal/logging"
	"soccer/internal/render"
)

func init() {
	// GLFW and GL calls must stay on the main OS thread.
	runtime.LockOSThread()
}

// Run opens the window and plays until it is closed, Esc is pressed or ctx
// is cancelled. updates may be nil; otherwise each config received replaces
// the rules, audio settings and CPU pilot between frames.
func Run(ctx context.Context, cfg *config.Config, log *zap.Logger, updates <-chan *config.Config) error {
	window, err := initWindow(cfg.Window)
	if err != nil {
		return err
	}
	defer glfw.Terminate()
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}
	log.Info("opengl ready", zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))))

	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)

	rend, err := render.New()
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer rend.Destroy()

	seed := cfg.MatchSeed()
	m, err := game.NewMatch(cfg.Rules, seed)
	if err != nil {
		return err
	}
	logging.AttachMatch(m, log)
	log.Info("kickoff", zap.Uint64("seed", seed))

	snd, err := audio.New(cfg.Audio.Volume, cfg.Audio.Mute, log)
	if err != nil {
		log.Warn("audio init failed (continuing without sound)", zap.Error(err))
		snd = nil
	}
	defer snd.Close()
	snd.Attach(m)

	pilot, err := newPilot(cfg.CPU, seed)
	if err != nil {
		return err
	}

	input := NewInput()
	stepper := game.NewStepper(cfg.TickRate)

	last := glfw.GetTime()
	for !window.ShouldClose() {
		if ctx.Err() != nil {
			break
		}
		now := glfw.GetTime()
		dt := now - last
		last = now

		glfw.PollEvents()
		if input.JustPressed(window, glfw.KeyEscape) {
			window.SetShouldClose(true)
			continue
		}
		if input.JustPressed(window, glfw.KeyP) {
			paused := m.TogglePause()
			log.Info("pause", zap.Bool("paused", paused))
		}
		if input.JustPressed(window, glfw.KeyR) {
			m.Reset()
			stepper.Reset()
		}
		if input.JustPressed(window, glfw.KeyM) {
			snd.ToggleMute()
		}

		select {
		case next, ok := <-updates:
			if ok && next != nil {
				if p, err := applyConfig(m, snd, next, log); err == nil {
					pilot = p
					stepper = game.NewStepper(next.TickRate)
				}
			}
		default:
		}

		c := input.Controls(window)
		for range stepper.Advance(dt) {
			if pilot != nil {
				c.Away = pilot.Decide(m, game.Away)
			}
			m.Step(c)
		}

		fbW, fbH := window.GetFramebufferSize()
		if fbW <= 0 || fbH <= 0 {
			continue
		}
		cam := game.FitField(m.Rules, fbW, fbH)
		rend.BeginFrame(fbW, fbH)
		rend.DrawMatch(m, cam, fbW, fbH)
		window.SwapBuffers()
	}

	home, away := m.Score()
	log.Info("final score", zap.Int("home", home), zap.Int("away", away))
	return nil
}

func newPilot(name string, seed uint64) (game.Pilot, error) {
	if name == "" {
		return nil, nil
	}
	p, err := game.NewPilot(name, game.MixSeed(seed, 0xC0))
	if err != nil {
		return nil, fmt.Errorf("cpu: %w", err)
	}
	return p, nil
}

// applyConfig swaps in a reloaded config. Rules that the running match
// rejects leave everything unchanged.
func applyConfig(m *game.Match, snd *audio.Player, cfg *config.Config, log *zap.Logger) (game.Pilot, error) {
	pilot, err := newPilot(cfg.CPU, m.Seed())
	if err != nil {
		log.Warn("reloaded cpu rejected", zap.Error(err))
		return nil, err
	}
	if err := m.ApplyRules(cfg.Rules); err != nil {
		log.Warn("reloaded rules rejected", zap.Error(err))
		return nil, err
	}
	snd.SetVolume(cfg.Audio.Volume)
	log.Info("config applied")
	return pilot, nil
}
