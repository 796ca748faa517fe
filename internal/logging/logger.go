// Package logging provides the leveled, optionally colored build logger.
// It keeps a printf-style surface (Info, Success, Warn, Error, Debug) on
// top of zap cores: stdout for everything below ERROR, stderr for ERROR,
// plus an uncolored file sink when a log file is configured.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/backmassage/bundlekit/internal/config"
	"github.com/backmassage/bundlekit/internal/term"
)

// successLevel sits below zap's debug level so it never collides with a
// built-in level; the encoder gives it its own label.
const successLevel = zapcore.DebugLevel - 1

const timeLayout = "2006-01-02 15:04:05"

// Logger provides leveled, optionally colored logging with optional file sink.
type Logger struct {
	mu       sync.Mutex
	zl       *zap.Logger
	file     *os.File
	filePath string
}

// NewLogger configures terminal colors from cfg and builds the zap cores.
// Call Close() when done if LogFile was set.
func NewLogger(cfg *config.Config) (*Logger, error) {
	term.Configure(cfg.ColorMode)
	return newLogger(cfg.LogFile, term.Enabled(), zapcore.Lock(os.Stdout), zapcore.Lock(os.Stderr))
}

func newLogger(logFile string, color bool, stdout, stderr zapcore.WriteSyncer) (*Logger, error) {
	l := &Logger{}

	belowError := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool { return lvl < zapcore.ErrorLevel })
	atLeastError := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool { return lvl >= zapcore.ErrorLevel })
	all := zap.LevelEnablerFunc(func(zapcore.Level) bool { return true })

	consoleEnc := zapcore.NewConsoleEncoder(encoderConfig(color))
	cores := []zapcore.Core{
		zapcore.NewCore(consoleEnc, stdout, belowError),
		zapcore.NewCore(consoleEnc, stderr, atLeastError),
	}

	if logFile != "" {
		if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
		l.file = f
		l.filePath = logFile
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig(false)), zapcore.AddSync(f), all))
	}

	l.zl = zap.New(zapcore.NewTee(cores...))
	return l, nil
}

func encoderConfig(color bool) zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:          "ts",
		LevelKey:         "level",
		MessageKey:       "msg",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeTime:       zapcore.TimeEncoderOfLayout(timeLayout),
		EncodeLevel:      levelEncoder(color),
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: " ",
	}
}

// levelEncoder renders "[LEVEL]", wrapped in the level's ANSI color when
// color is true.
func levelEncoder(color bool) zapcore.LevelEncoder {
	return func(lvl zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
		name, c := levelLabel(lvl)
		if color && c != "" {
			enc.AppendString(c + "[" + name + "]" + term.NC)
			return
		}
		enc.AppendString("[" + name + "]")
	}
}

func levelLabel(lvl zapcore.Level) (string, string) {
	switch lvl {
	case successLevel:
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

// Close flushes the cores and closes the log file if one was opened.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	_ = l.zl.Sync()
	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		return err
	}
	return nil
}

func (l *Logger) log(lvl zapcore.Level, format string, args []interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.zl.Log(lvl, fmt.Sprintf(format, args...))
}

// Info logs at INFO level (blue).
func (l *Logger) Info(format string, args ...interface{}) {
	l.log(zapcore.InfoLevel, format, args)
}

// Success logs at SUCCESS level (green).
func (l *Logger) Success(format string, args ...interface{}) {
	l.log(successLevel, format, args)
}

// Warn logs at WARN level (yellow).
func (l *Logger) Warn(format string, args ...interface{}) {
	l.log(zapcore.WarnLevel, format, args)
}

// Error logs at ERROR level (red), to stderr.
func (l *Logger) Error(format string, args ...interface{}) {
	l.log(zapcore.ErrorLevel, format, args)
}

// Debug logs at DEBUG level (cyan) only when verbose; no-op otherwise.
func (l *Logger) Debug(verbose bool, format string, args ...interface{}) {
	if !verbose {
		return
	}
	l.log(zapcore.DebugLevel, format, args)
}
