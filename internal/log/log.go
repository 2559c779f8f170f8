package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelNone
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelNone:
		return "NONE"
	default:
		return "UNKNOWN"
	}
}

// LevelFromString parses a level name, falling back to DEBUG.
func LevelFromString(s string) Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LevelDebug
	case "INFO":
		return LevelInfo
	case "WARN", "WARNING":
		return LevelWarn
	case "ERROR":
		return LevelError
	case "NONE", "OFF":
		return LevelNone
	default:
		return LevelDebug
	}
}

func (l Level) slog() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		// Above every level slog emits.
		return slog.LevelError + 64
	}
}

// Logger is a printf-style front for slog. Callers tag messages with a
// bracketed component name, e.g. "[SIM] pruned %d signals".
type Logger struct {
	logger *slog.Logger
	level  *slog.LevelVar
	cur    Level
}

func New(out io.Writer, level Level) *Logger {
	lv := new(slog.LevelVar)
	lv.Set(level.slog())
	h := slog.NewTextHandler(out, &slog.HandlerOptions{Level: lv})
	return &Logger{logger: slog.New(h), level: lv, cur: level}
}

// Discard returns a logger that drops everything.
func Discard() *Logger { return New(io.Discard, LevelNone) }

func (l *Logger) logf(lvl slog.Level, format string, v ...any) {
	if l == nil || !l.logger.Enabled(context.Background(), lvl) {
		return
	}
	l.logger.Log(context.Background(), lvl, fmt.Sprintf(format, v...))
}

func (l *Logger) Debugf(format string, v ...any) { l.logf(slog.LevelDebug, format, v...) }
func (l *Logger) Infof(format string, v ...any)  { l.logf(slog.LevelInfo, format, v...) }
func (l *Logger) Warnf(format string, v ...any)  { l.logf(slog.LevelWarn, format, v...) }
func (l *Logger) Errorf(format string, v ...any) { l.logf(slog.LevelError, format, v...) }

func (l *Logger) SetLevel(level Level) {
	l.cur = level
	l.level.Set(level.slog())
}

func (l *Logger) Level() Level {
	return l.cur
}
