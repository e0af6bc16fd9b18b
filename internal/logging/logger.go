package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options configures a Logger.
type Options struct {
	// Verbose lowers the console threshold to debug.
	Verbose bool
	// Level overrides the console threshold (debug, info, warn, error).
	Level string
	// FilePath, when set, also appends every entry at debug level to this file.
	FilePath string
	// Console receives console output. Defaults to os.Stderr.
	Console io.Writer
}

// Logger writes diagnostics for one invocation. User-facing output does not
// go through it.
type Logger struct {
	*zap.SugaredLogger
	runID string
	file  *os.File
}

// New builds a logger. Every entry carries the invocation's run_id.
func New(opts Options) (*Logger, error) {
	level, err := consoleLevel(opts)
	if err != nil {
		return nil, err
	}
	console := opts.Console
	if console == nil {
		console = os.Stderr
	}
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(console), level),
	}

	var file *os.File
	if path := strings.TrimSpace(opts.FilePath); path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("logging: ensure log dir: %w", err)
		}
		file, err = os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("logging: open log file: %w", err)
		}
		fileCfg := zap.NewProductionEncoderConfig()
		fileCfg.EncodeTime = zapcore.RFC3339TimeEncoder
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(fileCfg), zapcore.AddSync(file), zapcore.DebugLevel))
	}

	runID := uuid.NewString()
	base := zap.New(zapcore.NewTee(cores...)).With(zap.String("run_id", runID))
	return &Logger{SugaredLogger: base.Sugar(), runID: runID, file: file}, nil
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{SugaredLogger: zap.NewNop().Sugar()}
}

// RunID identifies the invocation in every log entry.
func (l *Logger) RunID() string {
	if l == nil {
		return ""
	}
	return l.runID
}

// Close flushes buffered entries and releases the log file.
func (l *Logger) Close() error {
	if l == nil || l.SugaredLogger == nil {
		return nil
	}
	_ = l.Sync()
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

func consoleLevel(opts Options) (zapcore.Level, error) {
	if opts.Verbose {
		return zapcore.DebugLevel, nil
	}
	switch strings.ToLower(strings.TrimSpace(opts.Level)) {
	case "":
		return zapcore.WarnLevel, nil
	case "warning":
		return zapcore.WarnLevel, nil
	default:
		level, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(opts.Level)))
		if err != nil {
			return zapcore.WarnLevel, fmt.Errorf("logging: %w", err)
		}
		return level, nil
	}
}
