//go:build tinygo && baremetal

package critical

import "runtime/interrupt"

// irqMask masks all maskable interrupts for the section and restores the
// previous mask on exit, so nesting inside an ISR is safe.
type irqMask struct{}

func (irqMask) Enter() State { return State(interrupt.Disable()) }
func (irqMask) Exit(s State) { interrupt.Restore(interrupt.State(s)) }

// Default returns the section used by the firmware.
func Default() Section { return irqMask{} }
