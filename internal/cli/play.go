package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"soccer/internal/config"
	"soccer/internal/logging"
	"soccer/internal/tui"
)

func newLogger(lc config.LogConfig, outputs ...string) (*zap.Logger, error) {
	return logging.New(lc.Level, lc.Format, outputs...)
}

func (a *app) tuiCmd() *cobra.Command {
	var logFile string
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Play in the terminal",
		Long: `Plays the match inside the terminal. Keys are held for a moment after
each press since terminals do not report releases. Q quits.

Logs would garble the screen, so they are dropped unless --log-file is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.log = zap.NewNop()
			if logFile != "" {
				log, err := newLogger(a.cfg.Log, logFile)
				if err != nil {
					return err
				}
				a.log = log
			}
			updates, stop, err := a.watch(cmd.Context())
			if err != nil {
				return err
			}
			defer stop()
			return tui.Run(cmd.Context(), a.cfg, a.log, updates)
		},
	}
	cmd.Flags().StringVar(&logFile, "log-file", "", "append logs to this file")
	return cmd
}
