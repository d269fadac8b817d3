package sim

import (
	"context"
	"strconv"
	"time"

	"blinkmode-go/blink"
	"blinkmode-go/bus"
	"blinkmode-go/errcode"
	"blinkmode-go/services/blinky"
	"blinkmode-go/services/config"
	"blinkmode-go/services/hal"
	"blinkmode-go/x/logx"
)

// Rig is a firmware instance on fake pins with a manual tick source. It
// always runs with direct dispatch so every step completes before the next.
type Rig struct {
	Sys   *blinky.System
	Pins  *hal.HostPinFactory
	Ticks *hal.ManualTicker
	board hal.Board
}

func NewRig(cfg config.Firmware, conn *bus.Connection, log *logx.Logger) (*Rig, error) {
	cfg.Dispatch = config.Direct
	pins := &hal.HostPinFactory{}
	mt := &hal.ManualTicker{}
	plat := hal.NewHostPlatform(pins, func(time.Duration) hal.TickSource { return mt })
	sys, err := blinky.Build(cfg, plat, conn, log)
	if err != nil {
		return nil, err
	}
	return &Rig{Sys: sys, Pins: pins, Ticks: mt, board: cfg.Board}, nil
}

// Start attaches the handlers. Telemetry is not run; callers that want it
// drain the engine notices themselves.
func (r *Rig) Start(ctx context.Context) error { return r.Sys.Start(ctx) }

func (r *Rig) Stop() { r.Sys.Stop() }

func (r *Rig) button() *hal.FakePin { return r.Pins.Pin(r.board.ButtonPin) }

// Press drives the button line to its pressed level.
func (r *Rig) Press() { r.button().Set(!r.board.ButtonActiveLow) }

// Release drives the button line to its idle level.
func (r *Rig) Release() { r.button().Set(r.board.ButtonActiveLow) }

// Exec runs one step.
func (r *Rig) Exec(s Step) error {
	switch s.Op {
	case OpTick:
		r.Ticks.Fire(s.N)
	case OpPress:
		r.Press()
	case OpRelease:
		r.Release()
	case OpBounce:
		for i := 0; i < s.N; i++ {
			r.Press()
			r.Release()
		}
	case OpEdge:
		r.button().Latch()
	case OpExpect:
		return r.check(s)
	default:
		return errcode.Wrap(errcode.InvalidScript, "sim.exec", "line "+strconv.Itoa(s.Line)+": bad op", nil)
	}
	return nil
}

func (r *Rig) check(s Step) error {
	snap := r.Sys.Engine.Snapshot()
	var got uint32
	switch s.Field {
	case "counter":
		got = snap.Counter
	case "mode":
		got = snap.Mode
	case "guard":
		got = snap.Guard
	case "led":
		if snap.LED {
			got = 1
		}
	}
	if got != s.Want {
		return errcode.Wrap(errcode.Expectation, "sim", "line "+strconv.Itoa(s.Line)+": "+s.Field+
			" = "+strconv.FormatUint(uint64(got), 10)+", want "+strconv.FormatUint(uint64(s.Want), 10), nil)
	}
	return nil
}

// Run executes the script, stopping at the first failure. trace, if not
// nil, sees the state after every step.
func (r *Rig) Run(s Script, trace func(Step, blink.Snapshot)) error {
	for _, st := range s {
		if err := r.Exec(st); err != nil {
			return err
		}
		if trace != nil {
			trace(st, r.Sys.Engine.Snapshot())
		}
	}
	return nil
}
