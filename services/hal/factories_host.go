//go:build !rp2040 && !rp2350

package hal

import (
	"os"
	"sync"
	"time"

	"blinkmode-go/errcode"
)

// Default returns the platform for this build.
func Default() *Platform { return Host() }

// Host returns the platform used off-device: fake pins, a wall-clock tick
// source and stdout as the console.
func Host() *Platform {
	return NewHostPlatform(&HostPinFactory{}, func(d time.Duration) TickSource { return NewClockTicker(d) })
}

// NewHostPlatform builds a host platform with the given pins and ticks.
func NewHostPlatform(pins PinFactory, ticks func(time.Duration) TickSource) *Platform {
	return &Platform{
		Name:    "host",
		Pins:    pins,
		Ticks:   ticks,
		Console: os.Stdout,
	}
}

// ----------------------------- GPIO (host) -----------------------------------

// FakePin implements IRQPin. Set emulates the wire: a level change that
// matches the configured edge calls the handler synchronously, after the
// pin's own lock is released.
type FakePin struct {
	mu      sync.RWMutex
	number  int
	level   bool
	modeOut bool
	pull    Pull
	irq     irqArm
	irqFunc func()
	writes  int
}

// NewFakePin returns a pin at the given initial level.
func NewFakePin(n int, level bool) *FakePin { return &FakePin{number: n, level: level} }

func (p *FakePin) ConfigureInput(pull Pull) error {
	p.mu.Lock()
	p.modeOut = false
	p.pull = pull
	// An idle input rests at its pull level.
	switch pull {
	case PullUp:
		p.level = true
	case PullDown:
		p.level = false
	}
	p.mu.Unlock()
	return nil
}

func (p *FakePin) ConfigureOutput(initial bool) error {
	p.mu.Lock()
	p.modeOut = true
	p.level = initial
	p.mu.Unlock()
	return nil
}

func (p *FakePin) Set(level bool) {
	p.mu.Lock()
	old := p.level
	p.level = level
	p.writes++
	irq := p.irqFunc
	want := irqWanted(p.irq.edge, edgeFrom(old, level))
	p.mu.Unlock()
	if want && irq != nil {
		irq()
	}
}

func (p *FakePin) Get() bool {
	p.mu.RLock()
	v := p.level
	p.mu.RUnlock()
	return v
}

func (p *FakePin) Number() int { return p.number }

// IsOutput reports the configured direction.
func (p *FakePin) IsOutput() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.modeOut
}

// Writes counts Set calls.
func (p *FakePin) Writes() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.writes
}

func (p *FakePin) SetIRQ(edge Edge, handler func()) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, err := p.irq.set(edge); err != nil {
		return err
	}
	p.irqFunc = handler
	return nil
}

func (p *FakePin) ClearIRQ() error {
	p.mu.Lock()
	p.irq.clear()
	p.irqFunc = nil
	p.mu.Unlock()
	return nil
}

// Latch calls the edge handler without a level change, as if an edge had
// been latched and the line had already settled back.
func (p *FakePin) Latch() {
	p.mu.RLock()
	irq := p.irqFunc
	p.mu.RUnlock()
	if irq != nil {
		irq()
	}
}

func edgeFrom(old, new bool) Edge {
	switch {
	case !old && new:
		return EdgeRising
	case old && !new:
		return EdgeFalling
	default:
		return EdgeNone
	}
}

func irqWanted(cfg, seen Edge) bool {
	if seen == EdgeNone {
		return false
	}
	if cfg == EdgeBoth {
		return true
	}
	return cfg == seen
}

// HostPinFactory returns stable *FakePin instances per number.
type HostPinFactory struct {
	mu   sync.Mutex
	pins map[int]*FakePin
}

func (f *HostPinFactory) ByNumber(n int) (GPIOPin, bool) {
	if n < 0 {
		return nil, false
	}
	return f.Pin(n), true
}

// Pin returns the fake for n, creating it low.
func (f *HostPinFactory) Pin(n int) *FakePin {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pins == nil {
		f.pins = make(map[int]*FakePin)
	}
	p, ok := f.pins[n]
	if !ok {
		p = &FakePin{number: n}
		f.pins[n] = p
	}
	return p
}

// ----------------------------- Ticks (host) ----------------------------------

// ManualTicker is a TickSource driven by the caller.
type ManualTicker struct {
	mu      sync.Mutex
	handler func()
}

func (m *ManualTicker) Start(handler func()) error {
	if handler == nil {
		return errcode.InvalidParams
	}
	m.mu.Lock()
	m.handler = handler
	m.mu.Unlock()
	return nil
}

func (m *ManualTicker) Stop() {
	m.mu.Lock()
	m.handler = nil
	m.mu.Unlock()
}

// Fire delivers n ticks in order. Ticks while stopped are dropped.
func (m *ManualTicker) Fire(n int) {
	m.mu.Lock()
	h := m.handler
	m.mu.Unlock()
	if h == nil {
		return
	}
	for i := 0; i < n; i++ {
		h()
	}
}

// ClockTicker calls its handler from one goroutine at a fixed period.
type ClockTicker struct {
	period time.Duration

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

func NewClockTicker(period time.Duration) *ClockTicker {
	return &ClockTicker{period: period}
}

func (c *ClockTicker) Start(handler func()) error {
	if handler == nil || c.period <= 0 {
		return errcode.Wrap(errcode.TickUnavailable, "hal.clock", "no handler or period", nil)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stop != nil {
		return errcode.Wrap(errcode.TickUnavailable, "hal.clock", "already started", nil)
	}
	c.stop = make(chan struct{})
	c.done = make(chan struct{})
	go func(stop, done chan struct{}) {
		defer close(done)
		t := time.NewTicker(c.period)
		defer t.Stop()
		for {
			select {
			case <-stop:
				return
			case <-t.C:
				handler()
			}
		}
	}(c.stop, c.done)
	return nil
}

// Stop halts the ticker and waits for an in-flight handler to return.
func (c *ClockTicker) Stop() {
	c.mu.Lock()
	stop, done := c.stop, c.done
	c.stop, c.done = nil, nil
	c.mu.Unlock()
	if stop == nil {
		return
	}
	close(stop)
	<-done
}
