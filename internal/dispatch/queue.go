// Package dispatch provides the bounded multi-producer single-consumer
// queue that serializes UI events, plus the process-wide injection
// handle. Producers on any goroutine hand events to the queue; exactly
// one dispatch loop drains it and applies events one at a time.
package dispatch

import (
	"context"
	"errors"
	"sync/atomic"

	"pkt.systems/pslog"

	"github.com/soraterm/soraterm/schema"
)

// Applier consumes one dequeued event. The dispatch loop calls it
// synchronously, so implementations may assume no other event mutates
// shared UI state while they run.
type Applier interface {
	ApplyEvent(ev schema.Event)
}

// ApplierFunc adapts a function to the Applier interface.
type ApplierFunc func(ev schema.Event)

// ApplyEvent implements Applier.
func (f ApplierFunc) ApplyEvent(ev schema.Event) { f(ev) }

// ErrConsumerRunning is returned by Run when a dispatch loop already
// owns the consuming half of the queue.
var ErrConsumerRunning = errors.New("dispatch consumer already running")

// DefaultQueueDepth bounds the queue when no depth is configured.
const DefaultQueueDepth = 256

// Queue is a bounded, ordered hand-off from N producers to 1 consumer.
// Events sent in sequence by the same producer are applied in that
// order; across producers the order is the order their sends complete.
type Queue struct {
	events  chan schema.Event
	log     pslog.Logger
	running atomic.Bool
}

// New constructs a Queue. A depth of zero or less falls back to
// DefaultQueueDepth.
func New(depth int, logger pslog.Logger) *Queue {
	if depth <= 0 {
		depth = DefaultQueueDepth
	}
	if logger == nil {
		logger = pslog.Ctx(context.Background())
	}
	return &Queue{
		events: make(chan schema.Event, depth),
		log:    logger,
	}
}

// Send enqueues the event, blocking the calling goroutine while the
// queue is full. It never drops and never reorders events relative to
// other sends by the same caller. Safe before the consumer exists:
// buffered events are delivered once the loop starts.
func (q *Queue) Send(ev schema.Event) {
	q.events <- ev
}

// TrySend enqueues the event without blocking. It returns false when
// the queue is momentarily full or when no consumer is running yet;
// true means the event is durably enqueued.
func (q *Queue) TrySend(ev schema.Event) bool {
	if !q.running.Load() {
		return false
	}
	select {
	case q.events <- ev:
		return true
	default:
		return false
	}
}

// Depth returns the queue capacity.
func (q *Queue) Depth() int {
	return cap(q.events)
}

// Run owns the consuming half of the queue until ctx is canceled,
// applying each event via sink strictly one at a time. A second
// concurrent Run returns ErrConsumerRunning.
func (q *Queue) Run(ctx context.Context, sink Applier) error {
	if sink == nil {
		return errors.New("dispatch sink is required")
	}
	if !q.running.CompareAndSwap(false, true) {
		return ErrConsumerRunning
	}
	defer q.running.Store(false)
	q.log.Debug("dispatch loop started", "depth", cap(q.events))
	for {
		select {
		case <-ctx.Done():
			q.log.Debug("dispatch loop stopped")
			return ctx.Err()
		case ev := <-q.events:
			q.log.Trace("dispatch event", "event", ev.EventTag())
			sink.ApplyEvent(ev)
		}
	}
}
