package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)

	if logger == nil {
		t.Fatal("newLogger() returned nil")
	}

	// Test that it can log
	logger.Info("test message")

	if buf.Len() == 0 {
		t.Error("logger should have written output")
	}
}

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{
			name:    "info at info level",
			level:   log.InfoLevel,
			logFunc: func(l *log.Logger) { l.Info("test") },
			wantLog: true,
		},
		{
			name:    "debug at info level",
			level:   log.InfoLevel,
			logFunc: func(l *log.Logger) { l.Debug("test") },
			wantLog: false,
		},
		{
			name:    "debug at debug level",
			level:   log.DebugLevel,
			logFunc: func(l *log.Logger) { l.Debug("test") },
			wantLog: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := newLogger(&buf, tt.level)
			tt.logFunc(logger)

			gotLog := buf.Len() > 0
			if gotLog != tt.wantLog {
				t.Errorf("got log output = %v, want %v", gotLog, tt.wantLog)
			}
		})
	}
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)

	prog := newProgress(logger)
	if prog == nil {
		t.Fatal("newProgress() returned nil")
	}

	// Small delay to ensure measurable duration
	time.Sleep(10 * time.Millisecond)

	prog.done("test completed")

	output := buf.String()
	if output == "" {
		t.Error("progress.done() should produce output")
	}

	// Should contain the message
	if !bytes.Contains(buf.Bytes(), []byte("test completed")) {
		t.Error("progress.done() output should contain message")
	}
}

func TestWithLogger(t *testing.T) {
	ctx := context.Background()
	logger := log.Default()

	ctxWithLogger := withLogger(ctx, logger)

	// Should be able to retrieve the logger
	retrieved := loggerFromContext(ctxWithLogger)
	if retrieved != logger {
		t.Error("loggerFromContext should return the same logger")
	}
}

func TestLoggerFromContextDefault(t *testing.T) {
	if loggerFromContext(context.Background()) == nil {
		t.Error("loggerFromContext should return default logger when none set")
	}
}

func TestOpenLogSink(t *testing.T) {
	var stderr bytes.Buffer
	tests := []struct {
		name      string
		level     string
		verbose   bool
		wantLevel log.Level
		discard   bool
	}{
		{"unset", "", false, log.InfoLevel, true},
		{"unset verbose", "", true, log.DebugLevel, false},
		{"off", "0", false, log.InfoLevel, true},
		{"info", "1", false, log.InfoLevel, false},
		{"debug", "2", false, log.DebugLevel, false},
		{"named", "warn", false, log.WarnLevel, false},
		{"verbose wins", "1", true, log.DebugLevel, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink, err := openLogSink(&stderr, "", tt.level, tt.verbose)
			if err != nil {
				t.Fatalf("openLogSink() error: %v", err)
			}
			if sink.level != tt.wantLevel {
				t.Errorf("level = %v, want %v", sink.level, tt.wantLevel)
			}
			if (sink.w == io.Discard) != tt.discard {
				t.Errorf("discard = %v, want %v", sink.w == io.Discard, tt.discard)
			}
		})
	}

	if _, err := openLogSink(&stderr, "", "loud", false); err == nil {
		t.Error("invalid level should fail")
	}
}

func TestOpenLogSinkFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "pkgtrust.log")
	sink, err := openLogSink(io.Discard, path, "2", false)
	if err != nil {
		t.Fatalf("openLogSink() error: %v", err)
	}
	newLogger(sink.w, sink.level).Debug("scored", "url", "https://github.com/o/r")
	if err := sink.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if !strings.Contains(string(data), "scored") {
		t.Errorf("log file missing entry: %q", data)
	}

	// Appends rather than truncates.
	sink, _ = openLogSink(io.Discard, path, "1", false)
	newLogger(sink.w, sink.level).Info("second")
	sink.Close()
	data, _ = os.ReadFile(path)
	if !strings.Contains(string(data), "scored") || !strings.Contains(string(data), "second") {
		t.Errorf("log file should keep earlier entries: %q", data)
	}
}
