package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// logSink describes where log output goes and at which level.
type logSink struct {
	w      io.Writer
	level  log.Level
	closer io.Closer
}

// Close releases the log file, if any.
func (s logSink) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

// openLogSink resolves LOG_FILE and LOG_LEVEL.
//
// Level "0" silences logging, "1" is info and "2" is debug; names such as
// "warn" are accepted too. An empty level is off unless verbose is set.
// verbose forces debug.
// A log file is opened for append, creating its parent directory.
func openLogSink(stderr io.Writer, file, level string, verbose bool) (logSink, error) {
	sink := logSink{w: stderr, level: log.InfoLevel}

	switch strings.TrimSpace(level) {
	case "":
		if !verbose {
			sink.w = io.Discard
		}
	case "0":
		sink.w = io.Discard
	case "1":
		sink.level = log.InfoLevel
	case "2":
		sink.level = log.DebugLevel
	default:
		lvl, err := log.ParseLevel(level)
		if err != nil {
			return logSink{}, fmt.Errorf("invalid LOG_LEVEL %q", level)
		}
		sink.level = lvl
	}
	if verbose {
		sink.level = log.DebugLevel
	}

	if file != "" && sink.w != io.Discard {
		if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
			return logSink{}, fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return logSink{}, fmt.Errorf("open log file: %w", err)
		}
		sink.w, sink.closer = f, f
	}
	return sink, nil
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Evaluated 42 packages (1.234s)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
