package blink

import (
	"blinkmode-go/errcode"
	"blinkmode-go/x/mathx"
)

// Cycle selects the direction the button walks the mode ladder.
type Cycle uint8

const (
	// CycleUp doubles the mode and wraps to 1 past Period/2.
	CycleUp Cycle = iota
	// CycleDown halves the mode and wraps to Period/2 below 1.
	CycleDown
)

func (c Cycle) String() string {
	switch c {
	case CycleUp:
		return "up"
	case CycleDown:
		return "down"
	default:
		return "invalid"
	}
}

// ParseCycle maps "up"/"down" to a Cycle.
func ParseCycle(s string) (Cycle, error) {
	switch s {
	case "up", "":
		return CycleUp, nil
	case "down":
		return CycleDown, nil
	}
	return 0, errcode.Wrap(errcode.InvalidCycle, "blink.cycle", s, nil)
}

const (
	// DefaultPeriod is the blink-level period in ticks.
	DefaultPeriod = 8
	// DefaultSettle is how many ticks a genuine press suppresses further
	// presses for: about half a second at an eighth-second tick.
	DefaultSettle = 4
)

// Config fixes the shape of the state machine. It is read-only once an
// Engine is built.
type Config struct {
	Period      uint32 // power of two, >= 2
	InitialMode uint32 // ladder member
	Settle      uint32 // guard reload on a genuine press
	Cycle       Cycle
}

func DefaultConfig() Config {
	return Config{
		Period:      DefaultPeriod,
		InitialMode: 1,
		Settle:      DefaultSettle,
		Cycle:       CycleUp,
	}
}

// Validate reports a misconfiguration. Any error here is fatal at bring-up.
func (c Config) Validate() error {
	const op = "blink.config"
	if c.Period < 2 || !mathx.IsPow2(c.Period) {
		return errcode.Wrap(errcode.InvalidPeriod, op, "period must be a power of two >= 2", nil)
	}
	switch c.Cycle {
	case CycleUp, CycleDown:
	default:
		return errcode.Wrap(errcode.InvalidCycle, op, c.Cycle.String(), nil)
	}
	if !IsRung(c, c.InitialMode) {
		return errcode.Wrap(errcode.InvalidMode, op, "initial mode is not on the ladder", nil)
	}
	return nil
}

func (c Config) mask() uint32 { return c.Period - 1 }
func (c Config) top() uint32  { return c.Period >> 1 }
