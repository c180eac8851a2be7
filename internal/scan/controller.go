// Package scan manages a continuous stream of raw scanner frames: it
// debounces the same code held in front of the camera, queues distinct codes
// with a hard bound, and hands them to the check-in flow one at a time.
package scan

import (
	"context"
	"log/slog"
	"sync"
	"time"

	dErrors "doorlist/pkg/domain-errors"
)

// Handler processes one accepted scan. The controller invokes it serially;
// a slow handler backs the queue up rather than running concurrently.
type Handler func(ctx context.Context, raw string)

// Controller debounces and queues raw scans. Scanners emit the same frame
// many times per second while a code is in view; only the first occurrence
// within the result display window is forwarded.
type Controller struct {
	handle  Handler
	display time.Duration
	logger  *slog.Logger
	now     func() time.Time

	queue chan string

	mu        sync.Mutex
	running   bool
	cancel    context.CancelFunc
	done      chan struct{}
	lastValue string
	lastAt    time.Time
}

type Option func(*Controller)

func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithClock overrides the debounce time source. Tests only.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// New builds a controller. display is how long a processed result stays on
// screen; re-reads of the same code inside that window are dropped. queueSize
// bounds how many distinct codes can wait while one is being processed.
func New(handle Handler, display time.Duration, queueSize int, opts ...Option) (*Controller, error) {
	if handle == nil {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "scan handler is required")
	}
	if queueSize < 1 {
		queueSize = 1
	}
	c := &Controller{
		handle:  handle,
		display: display,
		logger:  slog.Default(),
		now:     time.Now,
		queue:   make(chan string, queueSize),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Offer submits a raw frame without blocking. Duplicates of the last accepted
// code inside the display window are dropped, as is anything that arrives
// while the queue is full. Returns whether the frame was accepted.
func (c *Controller) Offer(raw string) bool {
	if raw == "" {
		return false
	}

	c.mu.Lock()
	if raw == c.lastValue && c.now().Sub(c.lastAt) < c.display {
		c.mu.Unlock()
		return false
	}
	select {
	case c.queue <- raw:
		c.lastValue = raw
		c.lastAt = c.now()
		c.mu.Unlock()
		return true
	default:
		c.mu.Unlock()
		c.logger.Warn("scan queue full, frame dropped", "queued", cap(c.queue))
		return false
	}
}

// Start launches the worker that drains the queue. Starting twice is an
// error; Stop must complete before Start may be called again.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.running {
		return dErrors.New(dErrors.CodeInvalidState, "scan controller already running")
	}
	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.done = make(chan struct{})
	c.running = true

	go c.run(ctx, c.done)
	return nil
}

// Stop cancels the worker and waits for the in-flight scan to finish.
func (c *Controller) Stop() error {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return dErrors.New(dErrors.CodeInvalidState, "scan controller is not running")
	}
	cancel, done := c.cancel, c.done
	c.mu.Unlock()

	cancel()
	<-done

	c.mu.Lock()
	c.running = false
	c.mu.Unlock()
	return nil
}

func (c *Controller) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	for {
		select {
		case <-ctx.Done():
			return
		case raw := <-c.queue:
			c.handle(ctx, raw)
		}
	}
}
