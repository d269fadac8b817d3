package blink

import (
	"sync/atomic"

	"blinkmode-go/critical"
)

// LED is the output collaborator. Set must be idempotent and cheap.
type LED interface {
	Set(on bool)
}

// Button reports the current logical level of the input line, with the
// board's wiring polarity already applied.
type Button interface {
	Pressed() bool
}

// NoticeKind classifies a Notice.
type NoticeKind uint8

const (
	NoticeMode NoticeKind = iota + 1
	NoticeSuppressed
	NoticeReleased
)

// Notice reports a button outcome to the background context. Handlers post
// notices without blocking; a full queue drops and counts.
type Notice struct {
	Kind  NoticeKind
	Mode  uint32
	Guard uint32
}

// Snapshot is a consistent copy of the engine state.
type Snapshot struct {
	State
	LED bool
}

// Engine is the sole owner of a State. OnTick and OnEdge are the two
// handlers; each runs its whole read-modify-write inside one critical
// section, so neither ever sees the other half done.
type Engine struct {
	cfg Config
	sec critical.Section
	led LED
	btn Button

	st State
	on bool

	notices chan Notice
	drops   atomic.Uint32
}

type Option func(*Engine)

// WithNotices enables a notice queue of n entries.
func WithNotices(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.notices = make(chan Notice, n)
		}
	}
}

// NewEngine validates cfg and returns an engine in the power-on state. The
// LED is driven off immediately.
func NewEngine(cfg Config, sec critical.Section, led LED, btn Button, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if sec == nil {
		sec = critical.Default()
	}
	e := &Engine{
		cfg: cfg,
		sec: sec,
		led: led,
		btn: btn,
		st:  NewState(cfg),
	}
	for _, o := range opts {
		o(e)
	}
	led.Set(false)
	return e, nil
}

func (e *Engine) Config() Config { return e.cfg }

// OnTick is the tick handler. Bounded, allocation-free, never blocks.
func (e *Engine) OnTick() {
	st := e.sec.Enter()
	on := e.st.Tick(e.cfg)
	e.led.Set(on)
	e.on = on
	e.sec.Exit(st)
}

// OnEdge is the button-edge handler. The platform must have acknowledged the
// edge latch before calling it.
func (e *Engine) OnEdge() Outcome {
	st := e.sec.Enter()
	out := e.st.Press(e.cfg, e.btn)
	n := Notice{Mode: e.st.Mode, Guard: e.st.Guard}
	e.sec.Exit(st)

	switch out {
	case Advanced:
		n.Kind = NoticeMode
	case Suppressed:
		n.Kind = NoticeSuppressed
	default:
		n.Kind = NoticeReleased
	}
	e.post(n)
	return out
}

func (e *Engine) post(n Notice) {
	if e.notices == nil {
		return
	}
	select {
	case e.notices <- n:
	default:
		e.drops.Add(1)
	}
}

// Snapshot copies the state under the section.
func (e *Engine) Snapshot() (s Snapshot) {
	critical.Do(e.sec, func() { s = Snapshot{State: e.st, LED: e.on} })
	return s
}

// Notices returns the notice queue, or nil if WithNotices was not given.
func (e *Engine) Notices() <-chan Notice { return e.notices }

// NoticeDrops counts notices lost to a full queue.
func (e *Engine) NoticeDrops() uint32 { return e.drops.Load() }
