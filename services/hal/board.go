package hal

import (
	"time"

	"blinkmode-go/errcode"
)

// DefaultTick is an eighth of a second.
const DefaultTick = 125 * time.Millisecond

// Board describes the wiring: which pins, which polarity, which tick rate.
// It holds no operating state.
type Board struct {
	Name string

	LEDPin       int
	LEDActiveLow bool
	// PixelPin selects a single WS2812 pixel as the LED instead of LEDPin.
	// Negative means unused.
	PixelPin int

	ButtonPin       int
	ButtonPull      Pull
	ButtonActiveLow bool

	Tick time.Duration
}

var boards = map[string]Board{
	// Raspberry Pi Pico: onboard LED on GP25, push button from GP15 to GND.
	"pico": {
		Name:            "pico",
		LEDPin:          25,
		PixelPin:        -1,
		ButtonPin:       15,
		ButtonPull:      PullUp,
		ButtonActiveLow: true,
		Tick:            DefaultTick,
	},
	// RP2040-Zero style boards: onboard WS2812 on GP16, BOOT-style button on GP15.
	"pico-pixel": {
		Name:            "pico-pixel",
		LEDPin:          -1,
		PixelPin:        16,
		ButtonPin:       15,
		ButtonPull:      PullUp,
		ButtonActiveLow: true,
		Tick:            DefaultTick,
	},
	// Host simulation: same wiring as "pico" on fake pins.
	"host": {
		Name:            "host",
		LEDPin:          25,
		PixelPin:        -1,
		ButtonPin:       15,
		ButtonPull:      PullUp,
		ButtonActiveLow: true,
		Tick:            DefaultTick,
	},
}

// LookupBoard returns a known board descriptor.
func LookupBoard(name string) (Board, error) {
	b, ok := boards[name]
	if !ok {
		return Board{}, errcode.Wrap(errcode.UnknownBoard, "hal.board", name, nil)
	}
	return b, nil
}

// Validate checks the descriptor is self-consistent.
func (b Board) Validate() error {
	const op = "hal.board"
	if b.ButtonPin < 0 {
		return errcode.Wrap(errcode.UnknownPin, op, "button pin", nil)
	}
	if b.LEDPin < 0 && b.PixelPin < 0 {
		return errcode.Wrap(errcode.UnknownPin, op, "no LED output", nil)
	}
	if b.Tick <= 0 {
		return errcode.Wrap(errcode.TickUnavailable, op, "tick period must be positive", nil)
	}
	return nil
}
