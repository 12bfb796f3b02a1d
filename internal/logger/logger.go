// Package logger configures the process-wide slog logger used by the CLI
// and the zarr package.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Standard field keys for structured logging
const (
	KeyPath      = "path"
	KeyShape     = "shape"
	KeySelection = "selection"
	KeyKind      = "kind"
	KeyStore     = "store"
	KeyError     = "error"
)

// Config holds logger configuration
type Config struct {
	Level  string // DEBUG, INFO, WARN, ERROR
	Format string // text, json
	Output string // stdout, stderr, or file path
}

var (
	mu     sync.Mutex
	level  = new(slog.LevelVar)
	format = "text"
	output io.Writer = os.Stderr
	// log file opened by Init, closed by Close or the next Init
	logFile *os.File
)

// ParseLevel maps a level name onto a slog level
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug, nil
	case "INFO", "":
		return slog.LevelInfo, nil
	case "WARN", "WARNING":
		return slog.LevelWarn, nil
	case "ERROR":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level: %q (valid: DEBUG, INFO, WARN, ERROR)", s)
	}
}

// Init installs a slog default logger built from cfg. Output can be "stdout",
// "stderr" or a file path; the default is stderr so log lines never mix with
// command output. A log file stays open until Close.
func Init(cfg Config) error {
	var (
		w io.Writer
		f *os.File
	)
	switch strings.ToLower(cfg.Output) {
	case "", "stderr":
		w = os.Stderr
	case "stdout":
		w = os.Stdout
	default:
		var err error
		f, err = os.OpenFile(cfg.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file %q: %w", cfg.Output, err)
		}
		w = f
	}
	if err := install(w, f, cfg.Level, cfg.Format); err != nil {
		if f != nil {
			f.Close()
		}
		return err
	}
	return nil
}

// InitWithWriter installs a slog default logger writing to w
func InitWithWriter(w io.Writer, lvl, fmtName string) error {
	return install(w, nil, lvl, fmtName)
}

func install(w io.Writer, f *os.File, lvl, fmtName string) error {
	l, err := ParseLevel(lvl)
	if err != nil {
		return err
	}
	fm := strings.ToLower(fmtName)
	switch fm {
	case "":
		fm = "text"
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format: %q (valid: text, json)", fmtName)
	}

	mu.Lock()
	prev := logFile
	logFile = f
	format = fm
	output = w
	level.Set(l)
	slog.SetDefault(slog.New(newHandler()))
	mu.Unlock()

	if prev != nil && prev != f {
		prev.Close()
	}
	return nil
}

// Close releases the log file opened by Init, if any. Later records go to
// stderr.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	output = os.Stderr
	slog.SetDefault(slog.New(newHandler()))
	return err
}

func newHandler() slog.Handler {
	opts := &slog.HandlerOptions{Level: level}
	if format == "json" {
		return slog.NewJSONHandler(output, opts)
	}
	return slog.NewTextHandler(output, opts)
}

// SetLevel changes the minimum level of the installed logger. Invalid level
// names are ignored.
func SetLevel(s string) {
	if l, err := ParseLevel(s); err == nil {
		level.Set(l)
	}
}

// Err is a shorthand for an error attribute
func Err(err error) slog.Attr {
	return slog.Any(KeyError, err)
}
