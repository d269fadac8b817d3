package hal

import (
	"math/bits"
	"time"

	"blinkmode-go/errcode"
)

// sysTickCounts is the range of the 24-bit SysTick down counter.
const sysTickCounts = 1 << 24

// sysTickPlan splits a tick period at core clock freq into a SysTick reload
// value and a prescale. The exception fires every reload+1 cycles and every
// prescale-th exception is one tick, so periods longer than the counter
// range still fit.
func sysTickPlan(freq uint32, period time.Duration) (reload, prescale uint32, err error) {
	const op = "hal.systick"
	if freq == 0 || period <= 0 {
		return 0, 0, errcode.Wrap(errcode.TickUnavailable, op, "no clock or period", nil)
	}
	hi, lo := bits.Mul64(uint64(freq), uint64(period))
	if hi >= uint64(time.Second) {
		return 0, 0, errcode.Wrap(errcode.TickUnavailable, op, "period too long", nil)
	}
	cycles, _ := bits.Div64(hi, lo, uint64(time.Second))

	ps := (cycles + sysTickCounts - 1) / sysTickCounts
	if ps == 0 || ps > 1<<32-1 {
		return 0, 0, errcode.Wrap(errcode.TickUnavailable, op, "period out of range", nil)
	}
	count := cycles / ps
	// A reload of zero stops the counter.
	if count < 2 {
		return 0, 0, errcode.Wrap(errcode.TickUnavailable, op, "period shorter than two cycles", nil)
	}
	return uint32(count - 1), uint32(ps), nil
}

// irqArm records which edge a pin has enabled, so that clearing can disable
// exactly those enables again.
type irqArm struct {
	edge Edge
}

// set records edge and returns the edge it replaces.
func (a *irqArm) set(edge Edge) (prev Edge, err error) {
	if edge == EdgeNone || edge > EdgeBoth {
		return a.edge, errcode.Wrap(errcode.IRQUnavailable, "hal.irq", "edge "+edge.String(), nil)
	}
	prev, a.edge = a.edge, edge
	return prev, nil
}

// clear forgets the armed edge and returns it.
func (a *irqArm) clear() Edge {
	e := a.edge
	a.edge = EdgeNone
	return e
}
