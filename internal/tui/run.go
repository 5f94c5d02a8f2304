package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"soccer/internal/config"
	"soccer/internal/game"
	"soccer/internal/logging"
)

// Run plays a match in the terminal until the user quits or ctx is
// cancelled. Configs arriving on updates are applied between frames.
// log must not write to the terminal the program draws on.
func Run(ctx context.Context, cfg *config.Config, log *zap.Logger, updates <-chan *config.Config, opts ...tea.ProgramOption) error {
	seed := cfg.MatchSeed()
	m, err := game.NewMatch(cfg.Rules, seed)
	if err != nil {
		return err
	}
	logging.AttachMatch(m, log)
	log.Info("kickoff", zap.Uint64("seed", seed), zap.String("frontend", "tui"))

	var pilot game.Pilot
	if cfg.CPU != "" {
		if pilot, err = game.NewPilot(cfg.CPU, game.MixSeed(seed, 0xC0)); err != nil {
			return fmt.Errorf("cpu: %w", err)
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	prog := tea.NewProgram(NewModel(m, pilot, cfg.TickRate), opts...)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		_, err := prog.Run()
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	})
	g.Go(func() error {
		for {
			select {
			case <-gctx.Done():
				return nil
			case next, ok := <-updates:
				if !ok {
					return nil
				}
				log.Info("config update queued")
				prog.Send(ConfigMsg{Config: next})
			}
		}
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	home, away := m.Score()
	log.Info("final score", zap.Int("home", home), zap.Int("away", away))
	return nil
}
