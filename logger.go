package authware

import (
	"fmt"
	"log"

	"github.com/rs/zerolog"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"

	"github.com/authware/authware/core"
)

// Logger is the structured logging interface used across the module.
// Arguments are alternating key/value pairs.
type Logger = core.Logger

// DefaultLogger logs through the standard library log package.
type DefaultLogger struct{}

func (l *DefaultLogger) Debug(msg string, args ...any) { log.Println(render("DEBUG", msg, args)) }
func (l *DefaultLogger) Info(msg string, args ...any)  { log.Println(render("INFO", msg, args)) }
func (l *DefaultLogger) Warn(msg string, args ...any)  { log.Println(render("WARN", msg, args)) }
func (l *DefaultLogger) Error(msg string, args ...any) { log.Println(render("ERROR", msg, args)) }

func render(level, msg string, args []any) string {
	out := level + ": " + msg
	for i := 0; i+1 < len(args); i += 2 {
		out += fmt.Sprintf(" %v=%v", args[i], args[i+1])
	}
	return out
}

// NewLogrusLogger returns a Logger adapter for logrus.FieldLogger.
func NewLogrusLogger(l logrus.FieldLogger) Logger {
	return &logrusLoggerAdapter{l}
}

type logrusLoggerAdapter struct{ l logrus.FieldLogger }

func (a *logrusLoggerAdapter) entry(args []any) *logrus.Entry {
	fields := make(logrus.Fields, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		fields[fmt.Sprint(args[i])] = args[i+1]
	}
	return a.l.WithFields(fields)
}

func (a *logrusLoggerAdapter) Debug(msg string, args ...any) { a.entry(args).Debug(msg) }
func (a *logrusLoggerAdapter) Info(msg string, args ...any)  { a.entry(args).Info(msg) }
func (a *logrusLoggerAdapter) Warn(msg string, args ...any)  { a.entry(args).Warn(msg) }
func (a *logrusLoggerAdapter) Error(msg string, args ...any) { a.entry(args).Error(msg) }

// NewZapLogger returns a Logger adapter for zap.SugaredLogger.
func NewZapLogger(l *zap.SugaredLogger) Logger {
	return &zapLoggerAdapter{l}
}

type zapLoggerAdapter struct{ l *zap.SugaredLogger }

func (a *zapLoggerAdapter) Debug(msg string, args ...any) { a.l.Debugw(msg, args...) }
func (a *zapLoggerAdapter) Info(msg string, args ...any)  { a.l.Infow(msg, args...) }
func (a *zapLoggerAdapter) Warn(msg string, args ...any)  { a.l.Warnw(msg, args...) }
func (a *zapLoggerAdapter) Error(msg string, args ...any) { a.l.Errorw(msg, args...) }

// NewZerologLogger returns a Logger adapter for zerolog.Logger.
func NewZerologLogger(l zerolog.Logger) Logger {
	return &zerologLoggerAdapter{l}
}

type zerologLoggerAdapter struct{ l zerolog.Logger }

func (a *zerologLoggerAdapter) event(e *zerolog.Event, msg string, args []any) {
	for i := 0; i+1 < len(args); i += 2 {
		e = e.Interface(fmt.Sprint(args[i]), args[i+1])
	}
	e.Msg(msg)
}

func (a *zerologLoggerAdapter) Debug(msg string, args ...any) { a.event(a.l.Debug(), msg, args) }
func (a *zerologLoggerAdapter) Info(msg string, args ...any)  { a.event(a.l.Info(), msg, args) }
func (a *zerologLoggerAdapter) Warn(msg string, args ...any)  { a.event(a.l.Warn(), msg, args) }
func (a *zerologLoggerAdapter) Error(msg string, args ...any) { a.event(a.l.Error(), msg, args) }
