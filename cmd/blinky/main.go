//go:build rp2040 || rp2350

package main

import (
	"context"
	"device/arm"
	"time"

	"blinkmode-go/bus"
	"blinkmode-go/services/blinky"
	"blinkmode-go/services/config"
	"blinkmode-go/services/hal"
	"blinkmode-go/x/logx"
)

// device selects the embedded profile; override with
// -ldflags "-X main.device=pico-pixel".
var device = "pico"

func main() {
	// Allow the console to settle before we print.
	time.Sleep(2 * time.Second)

	plat := hal.Default()
	log := logx.New(plat.Console, "main")
	log.Info("boot", logx.Str("device", device), logx.Str("platform", plat.Name))

	cfg, err := config.Lookup(device)
	if err != nil {
		halt(log, err)
	}
	b := bus.NewBus(4)
	sys, err := blinky.Build(cfg, plat, b.NewConnection("blinky"), log.Named("blink"))
	if err != nil {
		halt(log, err)
	}
	// Run is the idle context from here on; it only drains notices.
	if err := sys.Run(context.Background()); err != nil {
		halt(log, err)
	}
}

// halt traps to an attached debugger and then parks the core. Bring-up
// errors are configuration bugs; there is nothing to retry.
func halt(log *logx.Logger, err error) {
	log.Error("bring-up failed", logx.Err(err))
	arm.Asm("bkpt #0")
	for {
		arm.Asm("wfi")
	}
}
