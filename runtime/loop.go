package runtime

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/stein197/rehook/state"
)

// LoopConfig configures a Loop.
type LoopConfig struct {
	// MessageBuffer sizes the message channel. Defaults to 128.
	MessageBuffer int
	// Logger receives lifecycle diagnostics. Defaults to a nop logger.
	Logger *zap.Logger
	// OnMessage handles messages the loop does not recognize.
	// Return true to request a render pass.
	OnMessage func(Message) bool
}

// Loop drives consumers: state notifications queue up through its
// scheduler, and each loop iteration flushes the queue and re-renders
// attached consumers. All flushes and renders run on the loop
// goroutine, so consumer code never needs its own locking.
type Loop struct {
	messages       chan Message
	queue          *state.Queue
	queueScheduler *QueueScheduler
	invalidator    *Invalidator
	logger         *zap.Logger
	onMessage      func(Message) bool

	mu        sync.Mutex
	consumers []Consumer

	running bool
}

// NewLoop creates a loop from config.
func NewLoop(cfg LoopConfig) *Loop {
	bufferSize := cfg.MessageBuffer
	if bufferSize <= 0 {
		bufferSize = 128
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	l := &Loop{
		messages:  make(chan Message, bufferSize),
		queue:     state.NewQueue(),
		logger:    logger,
		onMessage: cfg.OnMessage,
	}
	l.queueScheduler = NewQueueScheduler(l.queue, l.tryPost)
	l.invalidator = NewInvalidator(l.tryPost)
	return l
}

// Scheduler returns the scheduler consumers should register with: it
// coalesces notifications into the loop's render passes.
func (l *Loop) Scheduler() state.Scheduler {
	if l == nil {
		return nil
	}
	return l.queueScheduler
}

// Invalidate requests a render pass without any state change.
func (l *Loop) Invalidate() {
	if l == nil {
		return
	}
	l.invalidator.Invalidate()
}

// Post sends a message to the loop without blocking.
// It reports false when the loop's buffer is full.
func (l *Loop) Post(msg Message) bool {
	return l.tryPost(msg)
}

// Stop asks the loop to exit after the current iteration.
func (l *Loop) Stop() {
	l.tryPost(StopMsg{})
}

func (l *Loop) tryPost(msg Message) bool {
	if l == nil || l.messages == nil {
		return false
	}
	select {
	case l.messages <- msg:
		return true
	default:
		return false
	}
}

// Attach mounts the consumer and includes it in render passes. If the
// consumer is Schedulable it receives the loop scheduler first, so
// registrations made during Mount already coalesce. The returned
// detach unmounts it and is safe to call twice.
func (l *Loop) Attach(c Consumer) func() {
	if l == nil || c == nil {
		return func() {}
	}
	if s, ok := c.(Schedulable); ok {
		s.SetScheduler(l.queueScheduler)
	}
	c.Mount()
	l.mu.Lock()
	l.consumers = append(l.consumers, c)
	l.mu.Unlock()
	l.logger.Debug("consumer attached")

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			for i, existing := range l.consumers {
				if existing == c {
					l.consumers = append(l.consumers[:i], l.consumers[i+1:]...)
					break
				}
			}
			l.mu.Unlock()
			c.Unmount()
			l.logger.Debug("consumer detached")
		})
	}
}

// Run processes messages until Stop or context cancellation.
func (l *Loop) Run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	l.running = true
	l.logger.Debug("loop started")

	for l.running {
		var msg Message
		select {
		case <-ctx.Done():
			l.running = false
			continue
		case msg = <-l.messages:
		}

		dirty := false
		switch msg.(type) {
		case FlushMsg:
			l.queueScheduler.resetPending()
			dirty = l.queue.Flush() > 0
		case RenderMsg:
			l.invalidator.resetPending()
			dirty = true
		case StopMsg:
			l.running = false
		default:
			if l.onMessage != nil {
				dirty = l.onMessage(msg)
			}
		}

		if dirty && l.running {
			l.render()
		}
	}

	l.logger.Debug("loop stopped")
	return ctx.Err()
}

func (l *Loop) render() {
	l.mu.Lock()
	consumers := make([]Consumer, len(l.consumers))
	copy(consumers, l.consumers)
	l.mu.Unlock()

	l.logger.Debug("render pass", zap.Int("consumers", len(consumers)))
	for _, c := range consumers {
		c.Render()
	}
}
