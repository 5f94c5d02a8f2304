// Package cli holds the soccer command tree. The desktop frontend is passed
// in by main so this package builds without cgo.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"soccer/internal/config"
	"soccer/internal/game"
)

// Frontend plays one match until the user quits or ctx is cancelled.
// updates delivers hot-reloaded configs and may be nil.
type Frontend func(ctx context.Context, cfg *config.Config, log *zap.Logger, updates <-chan *config.Config) error

type app struct {
	// flags
	configPath string
	seed       uint64
	logLevel   string
	logFormat  string
	mute       bool
	cpu        string

	changed func(name string) bool

	cfg *config.Config
	log *zap.Logger

	desktop Frontend
}

// NewRootCmd builds the command tree. Running the root command opens the
// desktop frontend.
func NewRootCmd(desktop Frontend) *cobra.Command {
	a := &app{desktop: desktop}

	root := &cobra.Command{
		Use:   "soccer",
		Short: "Two-player arcade soccer",
		Long: `Two paddles, one ball, no time limit.

Player 1 moves with A/D and jumps with W. Player 2 uses the arrow keys.
P pauses, R resets the score, M mutes and Esc quits.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
		RunE: a.runDesktop,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.configPath, "config", "c", "", "YAML config file (watched for changes)")
	pf.Uint64Var(&a.seed, "seed", 0, "match seed (0 = from clock, or $"+config.EnvSeed+")")
	pf.StringVar(&a.logLevel, "log-level", "", "debug, info, warn or error (or $"+config.EnvLogLevel+")")
	pf.StringVar(&a.logFormat, "log-format", "", "console or json")
	pf.BoolVar(&a.mute, "mute", false, "start with sound off")
	pf.StringVar(&a.cpu, "cpu", "", "let a pilot play the away side: idle, random or chase")

	root.AddCommand(a.tuiCmd(), a.simCmd(), a.configCmd())
	return root
}

// setup loads the config, applies flag overrides and builds the logger.
// Flags win over env, which wins over the file.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	a.changed = cmd.Flags().Changed
	cfg, err := config.LoadWith(a.configPath, a.override)
	if err != nil {
		return err
	}
	a.cfg = cfg

	// The terminal frontend owns the screen and builds its own logger.
	if cmd.Name() == "tui" {
		return nil
	}
	log, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}
	a.log = log
	return nil
}

// override copies the flags the user set onto cfg. It runs on the initial
// load and again on every hot reload.
func (a *app) override(cfg *config.Config) {
	if a.changed == nil {
		return
	}
	if a.changed("seed") {
		cfg.Seed = a.seed
	}
	if a.changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if a.changed("log-format") {
		cfg.Log.Format = a.logFormat
	}
	if a.changed("mute") {
		cfg.Audio.Mute = a.mute
	}
	if a.changed("cpu") {
		cfg.CPU = a.cpu
	}
}

// watch starts a config watcher when a config file was given. The returned
// stop func is always safe to call.
func (a *app) watch(ctx context.Context) (<-chan *config.Config, func(), error) {
	if a.configPath == "" {
		return nil, func() {}, nil
	}
	w, err := config.NewWatcher(a.configPath, a.log)
	if err != nil {
		return nil, nil, err
	}
	w.Adjust(a.override)
	if err := w.Start(ctx); err != nil {
		w.Stop()
		return nil, nil, err
	}
	return w.Updates(), w.Stop, nil
}

func (a *app) runDesktop(cmd *cobra.Command, args []string) error {
	if a.desktop == nil {
		return fmt.Errorf("desktop frontend not available in this build")
	}
	updates, stop, err := a.watch(cmd.Context())
	if err != nil {
		return err
	}
	defer stop()
	return a.desktop(cmd.Context(), a.cfg, a.log, updates)
}

func newPilots(script string, seed uint64) (home, away game.Pilot, err error) {
	if home, err = game.NewPilot(script, game.MixSeed(seed, 0x40)); err != nil {
		return nil, nil, err
	}
	if away, err = game.NewPilot(script, game.MixSeed(seed, 0xC0)); err != nil {
		return nil, nil, err
	}
	return home, away, nil
}
