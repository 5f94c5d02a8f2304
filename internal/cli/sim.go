package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"soccer/internal/game"
	"soccer/internal/logging"
)

func (a *app) simCmd() *cobra.Command {
	var (
		frames int
		script string
	)
	cmd := &cobra.Command{
		Use:   "sim",
		Short: "Run a headless match and print the final score",
		Long: `Runs the simulation without a window, with both sides driven by the
given pilot script. The result depends only on the seed, the script, the
frame count and the rules, so a run can be replayed exactly.`,
		Example: "  soccer sim --frames 36000 --seed 7 --script chase",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if frames <= 0 {
				return fmt.Errorf("--frames must be positive, got %d", frames)
			}
			seed := a.cfg.MatchSeed()
			home, away, err := newPilots(script, seed)
			if err != nil {
				return fmt.Errorf("script: %w", err)
			}
			m, err := game.NewMatch(a.cfg.Rules, seed)
			if err != nil {
				return err
			}
			logging.AttachMatch(m, a.log)
			a.log.Info("sim start",
				zap.Uint64("seed", seed),
				zap.String("script", script),
				zap.Int("frames", frames))

			for range frames {
				m.Step(game.Controls{
					Home: home.Decide(m, game.Home),
					Away: away.Decide(m, game.Away),
				})
			}

			h, w := m.Score()
			a.log.Info("final score", zap.Int("home", h), zap.Int("away", w))
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "home %d - %d away (seed %d, %d frames, %s)\n", h, w, seed, frames, script)
			return err
		},
	}
	cmd.Flags().IntVarP(&frames, "frames", "n", 60*game.TickRate, "frames to simulate")
	cmd.Flags().StringVar(&script, "script", "random", "pilot for both sides: idle, random or chase")
	return cmd
}
