// Package logger owns the process-wide log sink: a rotating file under
// the config directory, mirrored to stderr in debug mode.
package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/habitkit/internal/constants"
)

// Config controls the sink built by Init.
type Config struct {
	Debug     bool
	ConfigDir string
}

var std *log.Logger

// Init builds the global logger. Until Init succeeds the package-level
// helpers are no-ops, so early startup code may log unconditionally.
func Init(cfg Config) error {
	dir := filepath.Join(cfg.ConfigDir, "logs")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	// 10 MB per file, a month of compressed history
	var out io.Writer = &lumberjack.Logger{
		Filename:   filepath.Join(dir, constants.AppName+".log"),
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	}

	opts := log.Options{
		ReportTimestamp: true,
		Level:           log.WarnLevel,
		Prefix:          constants.AppName,
	}
	if cfg.Debug {
		out = io.MultiWriter(os.Stderr, out)
		opts.Level = log.DebugLevel
		opts.ReportCaller = true
	}

	std = log.NewWithOptions(out, opts)
	return nil
}

func Debug(msg string, keyvals ...any) {
	if std != nil {
		std.Debug(msg, keyvals...)
	}
}

func Info(msg string, keyvals ...any) {
	if std != nil {
		std.Info(msg, keyvals...)
	}
}

func Warn(msg string, keyvals ...any) {
	if std != nil {
		std.Warn(msg, keyvals...)
	}
}

func Error(msg string, keyvals ...any) {
	if std != nil {
		std.Error(msg, keyvals...)
	}
}
