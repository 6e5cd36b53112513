package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/YuminosukeSato/structid/pkg/errors"
	"github.com/rs/zerolog"
)

// ZerologLogger implements Logger on top of zerolog.
//
// Errors that implement zerolog.LogObjectMarshaler (every typed error in
// pkg/errors does) are written as nested objects, so a ConvergenceError shows
// up with its algorithm, iterations and tolerance as separate fields.
type ZerologLogger struct {
	zl zerolog.Logger
	// min is the level shared by every logger handed out by a provider;
	// nil when the level is fixed at construction.
	min *atomic.Int64
}

// NewZerologLogger creates a logger writing JSON lines to w.
func NewZerologLogger(w io.Writer, level Level) *ZerologLogger {
	zl := zerolog.New(w).Level(toZerologLevel(level)).With().Timestamp().Logger()
	return &ZerologLogger{zl: zl}
}

// Debug implements Logger.Debug.
func (l *ZerologLogger) Debug(msg string, fields ...any) {
	if l.allows(LevelDebug) {
		emit(l.zl.Debug(), msg, fields)
	}
}

// Info implements Logger.Info.
func (l *ZerologLogger) Info(msg string, fields ...any) {
	if l.allows(LevelInfo) {
		emit(l.zl.Info(), msg, fields)
	}
}

// Warn implements Logger.Warn.
func (l *ZerologLogger) Warn(msg string, fields ...any) {
	if l.allows(LevelWarn) {
		emit(l.zl.Warn(), msg, fields)
	}
}

// Error implements Logger.Error.
func (l *ZerologLogger) Error(msg string, fields ...any) {
	if l.allows(LevelError) {
		emit(l.zl.Error(), msg, fields)
	}
}

// With implements Logger.With.
func (l *ZerologLogger) With(fields ...any) Logger {
	ctx := l.zl.With()
	for i := 0; i+1 < len(fields); i += 2 {
		key := fmt.Sprint(fields[i])
		switch v := fields[i+1].(type) {
		case error:
			ctx = ctx.AnErr(key, v)
		default:
			ctx = ctx.Interface(key, v)
		}
	}
	return &ZerologLogger{zl: ctx.Logger(), min: l.min}
}

// Enabled implements Logger.Enabled.
func (l *ZerologLogger) Enabled(_ context.Context, level Level) bool {
	if !l.allows(level) {
		return false
	}
	zlevel := toZerologLevel(level)
	return zlevel >= l.zl.GetLevel() && zlevel >= zerolog.GlobalLevel()
}

func (l *ZerologLogger) allows(level Level) bool {
	return l.min == nil || level >= Level(l.min.Load())
}

func emit(e *zerolog.Event, msg string, fields []any) {
	if e == nil {
		return
	}
	if len(fields)%2 == 1 {
		if err, ok := fields[0].(error); ok {
			addError(e, zerolog.ErrorFieldName, err)
			fields = fields[1:]
		}
	}
	for i := 0; i+1 < len(fields); i += 2 {
		key := fmt.Sprint(fields[i])
		switch v := fields[i+1].(type) {
		case error:
			addError(e, key, v)
		case []float64:
			e.Floats64(key, v)
		case []int:
			e.Ints(key, v)
		case zerolog.LogObjectMarshaler:
			e.Object(key, v)
		default:
			e.Interface(key, v)
		}
	}
	e.Msg(msg)
}

// addError writes err under key and, when a typed error is found in the
// chain, its structured fields under key+"_detail".
func addError(e *zerolog.Event, key string, err error) {
	e.AnErr(key, err)
	var m zerolog.LogObjectMarshaler
	if errors.As(err, &m) {
		e.Object(key+"_detail", m)
	}
}

func toZerologLevel(level Level) zerolog.Level {
	switch {
	case level <= LevelDebug:
		return zerolog.DebugLevel
	case level <= LevelInfo:
		return zerolog.InfoLevel
	case level <= LevelWarn:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}

// zerologProvider is the package default LoggerProvider. Its root logger
// passes every level to zerolog and filters on the shared level, so SetLevel
// also applies to loggers obtained before the call.
type zerologProvider struct {
	level atomic.Int64
	root  *ZerologLogger
}

func newZerologProvider(out io.Writer, level Level) *zerologProvider {
	p := &zerologProvider{}
	p.level.Store(int64(level))
	p.root = NewZerologLogger(out, LevelDebug)
	p.root.min = &p.level
	return p
}

func (p *zerologProvider) GetLogger() Logger {
	return p.root
}

func (p *zerologProvider) GetLoggerWithName(name string) Logger {
	return p.root.With(ComponentKey, name)
}

func (p *zerologProvider) SetLevel(level Level) {
	p.level.Store(int64(level))
}

var (
	providerMu sync.RWMutex
	defaults   = newZerologProvider(os.Stderr, LevelInfo)
	provider   LoggerProvider = defaults
)

func init() {
	errors.SetZerologWarnFunc(func(w error) {
		GetLoggerWithName("warnings").Warn(w.Error(),
			ErrorTypeKey, fmt.Sprintf("%T", w),
			"warning", w,
		)
	})
}

// GetLogger returns the default logger of the active provider.
func GetLogger() Logger {
	providerMu.RLock()
	defer providerMu.RUnlock()
	return provider.GetLogger()
}

// GetLoggerWithName returns a logger tagged with ComponentKey=name.
func GetLoggerWithName(name string) Logger {
	providerMu.RLock()
	defer providerMu.RUnlock()
	return provider.GetLoggerWithName(name)
}

// SetLevel sets the minimum level of the active provider.
func SetLevel(level Level) {
	providerMu.RLock()
	defer providerMu.RUnlock()
	provider.SetLevel(level)
}

// SetProvider replaces the active provider; nil restores the zerolog default.
func SetProvider(p LoggerProvider) {
	providerMu.Lock()
	defer providerMu.Unlock()
	if p == nil {
		provider = defaults
		return
	}
	provider = p
}
