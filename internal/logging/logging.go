// Package logging builds the zap logger shared by every frontend and turns
// match events into structured log lines.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"soccer/internal/game"
)

// New returns a production logger at level, writing JSON or console lines
// to outputs, or to stderr when none are given.
func New(level, format string, outputs ...string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.Sampling = nil
	switch format {
	case "", "console":
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	case "json":
	default:
		return nil, fmt.Errorf("log format %q: want json or console", format)
	}

	if len(outputs) > 0 {
		cfg.OutputPaths = outputs
		cfg.ErrorOutputPaths = outputs
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// AttachMatch logs m's events. Goals go out at info; the per-touch
// chatter stays at debug.
func AttachMatch(m *game.Match, log *zap.Logger) {
	log = log.Named("match")
	m.Events.SubscribeAll(func(e game.Event) {
		switch e.Type {
		case game.EventGoal:
			h, a := m.Score()
			log.Info("goal",
				zap.Stringer("scorer", e.Side),
				zap.Int("home", h),
				zap.Int("away", a),
				zap.Uint64("frame", e.Frame))
		case game.EventReset:
			log.Info("match reset", zap.Uint64("frame", e.Frame))
		default:
			if ce := log.Check(zapcore.DebugLevel, e.Type.String()); ce != nil {
				ce.Write(
					zap.Stringer("side", e.Side),
					zap.Float64("x", e.X),
					zap.Float64("y", e.Y),
					zap.Float64("value", e.Value),
					zap.Uint64("frame", e.Frame))
			}
		}
	})
}
