// Package config holds the firmware configuration: the blink machine, the
// board wiring and how events reach the engine.
package config

import (
	"blinkmode-go/blink"
	"blinkmode-go/errcode"
	"blinkmode-go/services/hal"
	"blinkmode-go/x/mathx"
)

// Dispatch selects how interrupts reach the engine.
type Dispatch string

const (
	// Direct runs the handlers in interrupt context under a critical section.
	Direct Dispatch = "direct"
	// Queued posts events to a bounded queue drained by one goroutine.
	Queued Dispatch = "queued"
)

const (
	minQueue = 2
	maxQueue = 256
)

type Firmware struct {
	Device   string
	Blink    blink.Config
	Board    hal.Board
	Dispatch Dispatch
	// QueueLen bounds the dispatch queue (Queued only).
	QueueLen int
	// NoticeLen bounds the engine notice queue; 0 disables notices.
	NoticeLen int
}

// Validate checks every part. Errors are fatal at bring-up.
func (f Firmware) Validate() error {
	if err := f.Blink.Validate(); err != nil {
		return err
	}
	if err := f.Board.Validate(); err != nil {
		return err
	}
	switch f.Dispatch {
	case Direct, Queued:
	default:
		return errcode.Wrap(errcode.InvalidParams, "config", "dispatch "+string(f.Dispatch), nil)
	}
	if f.NoticeLen < 0 {
		return errcode.Wrap(errcode.InvalidParams, "config", "notice queue length", nil)
	}
	return nil
}

// Normalise clamps queue lengths into their supported range.
func (f Firmware) Normalise() Firmware {
	if f.Dispatch == Queued {
		f.QueueLen = mathx.Clamp(f.QueueLen, minQueue, maxQueue)
	}
	if f.NoticeLen > 0 {
		f.NoticeLen = mathx.Clamp(f.NoticeLen, minQueue, maxQueue)
	}
	return f
}
