// Package logging provides the leveled console logger used across the
// program. Lines look like
//
//	2006-01-02 15:04:05 [INFO] message
//
// and are written through zap cores: ERROR to stderr, everything else to
// stdout, and all levels (uncolored, tagged with the run ID) to the
// optional log file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/backmassage/batchren/internal/config"
	"github.com/backmassage/batchren/internal/term"
)

// SuccessLevel sits beside INFO; zap has no level for it.
const SuccessLevel = zapcore.Level(-2)

const timeLayout = "2006-01-02 15:04:05"

// Logger provides leveled, optionally colored logging with optional file sink.
type Logger struct {
	z    *zap.Logger
	file *os.File
}

// Options configures New. Nil writers default to os.Stdout and os.Stderr.
type Options struct {
	Stdout  io.Writer
	Stderr  io.Writer
	Color   bool
	LogFile string
	RunID   string
}

// NewLogger initializes colors from cfg and optionally opens the log file.
// Nil writers default to os.Stdout and os.Stderr. Call Close when done.
func NewLogger(cfg *config.Config, runID string, stdout, stderr io.Writer) (*Logger, error) {
	term.Configure(cfg.ColorMode)
	return New(Options{
		Stdout:  stdout,
		Stderr:  stderr,
		Color:   term.Enabled(),
		LogFile: cfg.LogFile,
		RunID:   runID,
	})
}

// New builds a Logger from explicit options.
func New(opts Options) (*Logger, error) {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	console := zapcore.NewConsoleEncoder(encoderConfig(opts.Color))
	cores := []zapcore.Core{
		zapcore.NewCore(console, zapcore.Lock(zapcore.AddSync(opts.Stdout)),
			zap.LevelEnablerFunc(func(l zapcore.Level) bool { return l < zapcore.ErrorLevel })),
		zapcore.NewCore(console, zapcore.Lock(zapcore.AddSync(opts.Stderr)),
			zap.LevelEnablerFunc(func(l zapcore.Level) bool { return l >= zapcore.ErrorLevel })),
	}

	l := &Logger{}
	if opts.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(opts.LogFile), 0o755); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(opts.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
		l.file = f
		var fileCore zapcore.Core = zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig(false)),
			zapcore.Lock(f), zap.LevelEnablerFunc(func(zapcore.Level) bool { return true }))
		if opts.RunID != "" {
			fileCore = fileCore.With([]zapcore.Field{zap.String("run", opts.RunID)})
		}
		cores = append(cores, fileCore)
	}

	l.z = zap.New(zapcore.NewTee(cores...))
	return l, nil
}

func encoderConfig(color bool) zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:          "time",
		LevelKey:         "level",
		MessageKey:       "msg",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeTime:       zapcore.TimeEncoderOfLayout(timeLayout),
		EncodeLevel:      levelEncoder(color),
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: " ",
	}
}

// levelEncoder renders "[LEVEL]", colored when color is set.
func levelEncoder(color bool) zapcore.LevelEncoder {
	return func(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
		name, c := levelName(l)
		if color {
			enc.AppendString(c + "[" + name + "]" + term.NC)
			return
		}
		enc.AppendString("[" + name + "]")
	}
}

func levelName(l zapcore.Level) (name, color string) {
	switch l {
	case SuccessLevel:
		return "SUCCESS", term.Green
	case zapcore.DebugLevel:
		return "DEBUG", term.Cyan
	case zapcore.InfoLevel:
		return "INFO", term.Blue
	case zapcore.WarnLevel:
		return "WARN", term.Yellow
	default:
		return "ERROR", term.Red
	}
}

// Close flushes pending output and closes the log file if one was opened.
func (l *Logger) Close() error {
	_ = l.z.Sync()
	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		return err
	}
	return nil
}

func (l *Logger) line(level zapcore.Level, format string, args []interface{}) {
	if ce := l.z.Check(level, fmt.Sprintf(format, args...)); ce != nil {
		ce.Write()
	}
}

// Info logs at INFO level (blue).
func (l *Logger) Info(format string, args ...interface{}) {
	l.line(zapcore.InfoLevel, format, args)
}

// Success logs at SUCCESS level (green).
func (l *Logger) Success(format string, args ...interface{}) {
	l.line(SuccessLevel, format, args)
}

// Warn logs at WARN level (yellow).
func (l *Logger) Warn(format string, args ...interface{}) {
	l.line(zapcore.WarnLevel, format, args)
}

// Error logs at ERROR level (red), to stderr.
func (l *Logger) Error(format string, args ...interface{}) {
	l.line(zapcore.ErrorLevel, format, args)
}

// Debug logs at DEBUG level (cyan) only when verbose; no-op otherwise.
func (l *Logger) Debug(verbose bool, format string, args ...interface{}) {
	if !verbose {
		return
	}
	l.line(zapcore.DebugLevel, format, args)
}
