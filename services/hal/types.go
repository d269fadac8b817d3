// Package hal is the platform collaborator for the blink engine: GPIO pins,
// the edge interrupt on the button line, the periodic tick source and the
// LED output. Register-level bring-up lives behind these interfaces.
package hal

import (
	"io"
	"time"
)

type Pull uint8

const (
	PullNone Pull = iota
	PullUp
	PullDown
)

type GPIOPin interface {
	ConfigureInput(pull Pull) error
	ConfigureOutput(initial bool) error
	Set(level bool)
	Get() bool
	Number() int
}

// Edge selection for IRQ.
type Edge uint8

const (
	EdgeNone Edge = iota
	EdgeRising
	EdgeFalling
	EdgeBoth
)

func (e Edge) String() string {
	switch e {
	case EdgeRising:
		return "rising"
	case EdgeFalling:
		return "falling"
	case EdgeBoth:
		return "both"
	default:
		return "none"
	}
}

// IRQPin extends GPIOPin with an edge interrupt. The platform acknowledges
// the edge latch before calling handler, so an edge arriving while handler
// runs is deferred to a later call rather than lost.
type IRQPin interface {
	GPIOPin
	SetIRQ(edge Edge, handler func()) error
	ClearIRQ() error
}

// PinFactory supplies GPIO pins by board number.
type PinFactory interface {
	ByNumber(n int) (GPIOPin, bool)
}

// TickSource calls handler once per period until stopped. It re-arms itself;
// handlers never acknowledge it.
type TickSource interface {
	Start(handler func()) error
	Stop()
}

// LED is the output side. Set is idempotent.
type LED interface {
	Set(on bool)
}

// Platform bundles what one hardware family provides.
type Platform struct {
	Name  string
	Pins  PinFactory
	Ticks func(period time.Duration) TickSource
	// Pixel builds an addressable-LED output on pin n. Nil when unsupported.
	Pixel   func(n int) (LED, error)
	Console io.Writer
}
