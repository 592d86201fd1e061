// Package state defines shared program state.
package state

import (
	"context"
	"time"

	"go.uber.org/zap"

	"rapidsvg/internal/attr"
	"rapidsvg/internal/config"
	"rapidsvg/internal/svg"
)

type envKey struct{}

// LocalEnv keeps everything program needs in a single place.
type LocalEnv struct {
	Cfg *config.Config
	Log *zap.Logger

	// set from --legacy-colors, overrides configuration
	LegacyColors bool

	start         time.Time
	restoreStdLog func()
}

func newLocalEnv() *LocalEnv {
	return &LocalEnv{start: time.Now()}
}

func EnvFromContext(ctx context.Context) *LocalEnv {
	if env, ok := ctx.Value(envKey{}).(*LocalEnv); ok {
		return env
	}
	// this should never happen
	panic("localenv not found in context")
}

func ContextWithEnv(ctx context.Context) context.Context {
	return context.WithValue(ctx, envKey{}, newLocalEnv())
}

func (e *LocalEnv) Uptime() time.Duration {
	return time.Since(e.start)
}

// Decoder returns the color decoder selected by flags and configuration.
func (e *LocalEnv) Decoder() *attr.Decoder {
	if e.LegacyColors || (e.Cfg != nil && e.Cfg.ColorMode() == attr.Legacy) {
		return attr.NewDecoder(attr.Legacy)
	}
	return attr.NewDecoder(attr.Standard)
}

// LoadOptions are the svg loader options matching this environment.
func (e *LocalEnv) LoadOptions() []svg.Option {
	return []svg.Option{svg.WithLogger(e.Log), svg.WithDecoder(e.Decoder())}
}

func (e *LocalEnv) RedirectStdLog() {
	if e.Log == nil {
		return
	}
	e.restoreStdLog = zap.RedirectStdLog(e.Log)
}

func (e *LocalEnv) RestoreStdLog() {
	if e.Log != nil {
		_ = e.Log.Sync()
	}
	if e.restoreStdLog != nil {
		e.restoreStdLog()
		e.restoreStdLog = nil
	}
}

// QuietConsole replaces the logger with a file only one, keeping the standard
// library log redirected. The terminal viewer owns the screen afterwards.
func (e *LocalEnv) QuietConsole() error {
	if e.Cfg == nil {
		return nil
	}
	// same destination, startup messages must survive
	lc := e.Cfg.Logging
	lc.FileLogger.Mode = "append"
	log, err := lc.Prepare(false)
	if err != nil {
		return err
	}
	redirected := e.restoreStdLog != nil
	e.RestoreStdLog()
	e.Log = log
	if redirected {
		e.RedirectStdLog()
	}
	return nil
}
