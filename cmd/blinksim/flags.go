package main

import (
	"time"

	"github.com/spf13/pflag"

	"blinkmode-go/blink"
	"blinkmode-go/services/config"
)

var opts struct {
	device  string
	period  uint32
	mode    uint32
	settle  uint32
	cycle   string
	tick    time.Duration
	queued  bool
	verbose bool
}

func addMachineFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&opts.device, "device", "d", "host", "embedded device profile")
	fs.Uint32Var(&opts.period, "period", 0, "blink-level period in ticks, a power of two (0 keeps the profile value)")
	fs.Uint32Var(&opts.mode, "mode", 0, "initial mode (0 keeps the profile value)")
	fs.Uint32Var(&opts.settle, "settle", 0, "debounce guard in ticks (0 keeps the profile value)")
	fs.StringVar(&opts.cycle, "cycle", "", "mode cycle direction: up or down")
	fs.DurationVar(&opts.tick, "tick", 0, "tick period (0 keeps the board value)")
	fs.BoolVar(&opts.queued, "queued", false, "route interrupts through the dispatch queue")
	fs.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")
}

// loadConfig applies flag overrides to the selected profile.
func loadConfig() (config.Firmware, error) {
	cfg, err := config.Lookup(opts.device)
	if err != nil {
		return cfg, err
	}
	if opts.period != 0 {
		cfg.Blink.Period = opts.period
	}
	if opts.mode != 0 {
		cfg.Blink.InitialMode = opts.mode
	}
	if opts.settle != 0 {
		cfg.Blink.Settle = opts.settle
	}
	if opts.cycle != "" {
		c, err := blink.ParseCycle(opts.cycle)
		if err != nil {
			return cfg, err
		}
		cfg.Blink.Cycle = c
		// A downward cycle starts at the slowest rate unless told otherwise.
		if c == blink.CycleDown && opts.mode == 0 {
			cfg.Blink.InitialMode = cfg.Blink.Period / 2
		}
	}
	if opts.tick != 0 {
		cfg.Board.Tick = opts.tick
	}
	if opts.queued {
		cfg.Dispatch = config.Queued
	}
	cfg = cfg.Normalise()
	return cfg, cfg.Validate()
}
