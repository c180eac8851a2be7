// Package kiosk runs the unattended-station loop: after a confirmation is
// displayed it counts down and returns the check-in flow to idle, so the next
// guest always finds a fresh screen.
package kiosk

import (
	"context"
	"log/slog"
	"sync"
	"time"

	dErrors "doorlist/pkg/domain-errors"
)

// Loop arms a countdown after each confirmation. When the countdown expires
// it invokes the reset; canceling (a staff tap, a new scan) leaves the
// current screen alone.
type Loop struct {
	reset    func() error
	steps    int
	interval time.Duration
	onTick   func(remaining int)
	logger   *slog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

type Option func(*Loop)

func WithLogger(logger *slog.Logger) Option {
	return func(l *Loop) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithOnTick registers a per-step display callback. remaining counts down
// from the configured step count to 1.
func WithOnTick(fn func(remaining int)) Option {
	return func(l *Loop) { l.onTick = fn }
}

func New(reset func() error, steps int, interval time.Duration, opts ...Option) (*Loop, error) {
	if reset == nil {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "reset function is required")
	}
	if steps < 1 || interval <= 0 {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "countdown needs at least one step and a positive interval")
	}
	l := &Loop{
		reset:    reset,
		steps:    steps,
		interval: interval,
		onTick:   func(int) {},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Arm starts (or restarts) the countdown. An already armed loop starts over
// from the full step count.
func (l *Loop) Arm(ctx context.Context) {
	l.mu.Lock()
	if l.cancel != nil {
		l.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	done := make(chan struct{})
	l.done = done
	l.mu.Unlock()

	go l.run(ctx, done)
}

// Cancel stops a pending countdown without resetting. Reports whether a
// countdown was actually armed.
func (l *Loop) Cancel() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel == nil {
		return false
	}
	l.cancel()
	l.cancel = nil
	return true
}

// Wait blocks until the current countdown finishes or is canceled. Tests and
// shutdown paths use it; the kiosk main loop does not.
func (l *Loop) Wait() {
	l.mu.Lock()
	done := l.done
	l.mu.Unlock()
	if done != nil {
		<-done
	}
}

func (l *Loop) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	remaining := l.steps
	l.onTick(remaining)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			remaining--
			if remaining > 0 {
				l.onTick(remaining)
				continue
			}
			l.disarm()
			if err := l.reset(); err != nil {
				l.logger.Warn("kiosk reset failed", "error", err)
			}
			return
		}
	}
}

// disarm releases the countdown's context on natural completion so it does
// not stay registered with its parent.
func (l *Loop) disarm() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
}
