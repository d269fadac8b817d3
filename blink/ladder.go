package blink

import "blinkmode-go/x/mathx"

// IsRung reports whether m is a member of the mode ladder {1, 2, ..., Period/2}.
func IsRung(cfg Config, m uint32) bool {
	return m != 0 && m <= cfg.top() && mathx.IsPow2(m)
}

// NextMode returns the ladder member after m in cfg.Cycle order. It never
// returns 0, and applying it log2(Period) times returns to m.
func NextMode(cfg Config, m uint32) uint32 {
	if cfg.Cycle == CycleDown {
		m >>= 1
		if m == 0 {
			return cfg.top()
		}
		return m
	}
	m <<= 1
	if m >= cfg.Period || m == 0 {
		return 1
	}
	return m
}

// Ladder lists the modes in cycle order starting from the initial mode.
func Ladder(cfg Config) []uint32 {
	n := mathx.Log2(cfg.Period)
	out := make([]uint32, 0, n)
	m := cfg.InitialMode
	for i := 0; i < n; i++ {
		out = append(out, m)
		m = NextMode(cfg, m)
	}
	return out
}
