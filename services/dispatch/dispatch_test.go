package dispatch

import (
	"context"
	"sync"
	"testing"
	"time"

	"blinkmode-go/blink"
	"blinkmode-go/errcode"
)

type recorder struct {
	mu    sync.Mutex
	seq   []string
	total chan struct{}
}

func newRecorder() *recorder {
	return &recorder{total: make(chan struct{}, 64)}
}

func (r *recorder) add(s string) {
	r.mu.Lock()
	r.seq = append(r.seq, s)
	r.mu.Unlock()
	r.total <- struct{}{}
}

func (r *recorder) OnTick()               { r.add("t") }
func (r *recorder) OnEdge() blink.Outcome { r.add("e"); return blink.Advanced }

func (r *recorder) wait(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-r.total:
		case <-time.After(time.Second):
			t.Fatalf("timeout after %d of %d events", i, n)
		}
	}
}

func TestWorkerPreservesPostOrder(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r := newRecorder()
	w := New(r, 8)
	w.Start(ctx)

	_ = w.PostTick()
	_ = w.PostEdge()
	_ = w.PostTick()
	_ = w.PostTick()
	_ = w.PostEdge()
	r.wait(t, 5)

	r.mu.Lock()
	got := ""
	for _, s := range r.seq {
		got += s
	}
	r.mu.Unlock()
	if got != "tette" {
		t.Fatalf("order %q want %q", got, "tette")
	}
	if s := w.Stats(); s.Handled != 5 || s.TickDrops != 0 || s.EdgeDrops != 0 {
		t.Fatalf("stats %+v", s)
	}
}

func TestWorkerDropsWhenFull(t *testing.T) {
	r := newRecorder()
	w := New(r, 2)
	// Not started: the queue fills and further posts drop.
	if err := w.PostTick(); err != nil {
		t.Fatal(err)
	}
	if err := w.PostEdge(); err != nil {
		t.Fatal(err)
	}
	if err := w.PostTick(); errcode.Of(err) != errcode.QueueFull {
		t.Fatalf("third post: %v", err)
	}
	if err := w.PostEdge(); errcode.Of(err) != errcode.QueueFull {
		t.Fatalf("fourth post: %v", err)
	}
	if s := w.Stats(); s.TickDrops != 1 || s.EdgeDrops != 1 {
		t.Fatalf("stats %+v", s)
	}
}

func TestWorkerStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	w := New(newRecorder(), 0)
	w.Start(ctx)
	cancel()
	select {
	case <-w.Done():
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
}
