// Package dispatch serialises tick and edge events through one consumer.
//
// Interrupt handlers call PostTick/PostEdge, which never block: a full queue
// drops the event and counts it. A single goroutine drains the queue in post
// order and runs the engine handlers, so the handlers never overlap even
// without a critical section.
package dispatch

import (
	"context"
	"sync/atomic"

	"blinkmode-go/blink"
	"blinkmode-go/errcode"
)

// Handler is the engine side.
type Handler interface {
	OnTick()
	OnEdge() blink.Outcome
}

type event uint8

const (
	evTick event = iota + 1
	evEdge
)

const defaultQueueLen = 16

type Worker struct {
	h Handler
	// Written from interrupt context; MUST NOT block.
	q       chan event
	stopped chan struct{}

	tickDrops atomic.Uint32
	edgeDrops atomic.Uint32
	handled   atomic.Uint32
}

// New returns a worker with a queue of n events.
func New(h Handler, n int) *Worker {
	if n <= 0 {
		n = defaultQueueLen
	}
	return &Worker{
		h:       h,
		q:       make(chan event, n),
		stopped: make(chan struct{}),
	}
}

// Start runs the consumer until ctx is cancelled.
func (w *Worker) Start(ctx context.Context) {
	go func() {
		defer close(w.stopped)
		for {
			select {
			case <-ctx.Done():
				return
			case ev := <-w.q:
				switch ev {
				case evTick:
					w.h.OnTick()
				case evEdge:
					w.h.OnEdge()
				}
				w.handled.Add(1)
			}
		}
	}()
}

// Done is closed once the consumer has exited.
func (w *Worker) Done() <-chan struct{} { return w.stopped }

// PostTick queues a tick. It reports errcode.QueueFull when dropped.
func (w *Worker) PostTick() error {
	select {
	case w.q <- evTick:
		return nil
	default:
		w.tickDrops.Add(1)
		return errcode.QueueFull
	}
}

// PostEdge queues an edge event. It reports errcode.QueueFull when dropped.
func (w *Worker) PostEdge() error {
	select {
	case w.q <- evEdge:
		return nil
	default:
		w.edgeDrops.Add(1)
		return errcode.QueueFull
	}
}

// Stats are cumulative counters.
type Stats struct {
	Handled   uint32
	TickDrops uint32
	EdgeDrops uint32
}

func (w *Worker) Stats() Stats {
	return Stats{
		Handled:   w.handled.Load(),
		TickDrops: w.tickDrops.Load(),
		EdgeDrops: w.edgeDrops.Load(),
	}
}
