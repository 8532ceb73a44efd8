package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is the process-wide logger. It stays nil until Init is called,
// in which case the helpers below discard everything.
var Logger *log.Logger

type Config struct {
	Debug bool
	// Dir is the directory that receives logs/vigil.log.
	Dir string
	// Output replaces the rotating file when set. Used by tests.
	Output io.Writer
	// FileOnly keeps debug output off stderr while a TUI owns the terminal.
	FileOnly bool
}

// Init configures the global logger. Without Debug only warnings and errors
// are written, and nothing goes to stderr. With Debug the log is mirrored to
// stderr unless FileOnly is set.
func Init(cfg Config) error {
	writer := cfg.Output
	if writer == nil {
		logDir := filepath.Join(cfg.Dir, "logs")
		if err := os.MkdirAll(logDir, 0o755); err != nil {
			return err
		}
		writer = &lumberjack.Logger{
			Filename:   filepath.Join(logDir, "vigil.log"),
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		}
	}

	level := log.WarnLevel
	if cfg.Debug {
		level = log.DebugLevel
		if cfg.Output == nil && !cfg.FileOnly {
			writer = io.MultiWriter(os.Stderr, writer)
		}
	}

	Logger = log.NewWithOptions(writer, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "vigil",
	})
	return nil
}

func Debug(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Debug(msg, keyvals...)
	}
}

func Info(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Info(msg, keyvals...)
	}
}

func Warn(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Warn(msg, keyvals...)
	}
}

func Error(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Error(msg, keyvals...)
	}
}
