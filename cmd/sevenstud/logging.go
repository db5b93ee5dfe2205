package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger builds the process logger. --debug wins over --log-level, which
// wins over fallback.
func newLogger(w io.Writer, g *Globals, fallback string) (*log.Logger, error) {
	level := log.InfoLevel
	name := fallback
	if g.LogLevel != "" {
		name = g.LogLevel
	}
	if name != "" {
		parsed, err := log.ParseLevel(name)
		if err != nil {
			return nil, err
		}
		level = parsed
	}
	if g.Debug {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	}), nil
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext(logger *log.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ctx.Done()
		logger.Debug("shutdown requested")
	}()
	return ctx, cancel
}
