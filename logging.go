package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	slogmulti "github.com/samber/slog-multi"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// newLogger writes text records to stderr and, when logFile is set, appends
// JSON records to that file as well.
func newLogger(level string, logFile string, stderr io.Writer) (*slog.Logger, io.Closer, error) {
	var lvl slog.Level
	if level != "" {
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return nil, nil, fmt.Errorf("log level %q: %w", level, err)
		}
	} else {
		lvl = slog.LevelWarn
	}
	opts := &slog.HandlerOptions{Level: lvl}

	handlers := []slog.Handler{
		slog.NewTextHandler(stderr, opts),
	}

	var closer io.Closer = nopCloser{}
	if logFile != "" {
		fi, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		handlers = append(handlers, slog.NewJSONHandler(fi, opts))
		closer = fi
	}

	return slog.New(slogmulti.Fanout(handlers...)), closer, nil
}
