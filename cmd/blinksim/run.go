package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"blinkmode-go/bus"
	"blinkmode-go/services/blinky"
	"blinkmode-go/services/hal"
	"blinkmode-go/x/logx"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Tick in real time; type p<enter> to press the button, q to quit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log := logx.New(os.Stdout, "blinksim")
		if opts.verbose {
			log.SetLevel(logx.Debug)
		}

		pins := &hal.HostPinFactory{}
		plat := hal.NewHostPlatform(pins, func(d time.Duration) hal.TickSource { return hal.NewClockTicker(d) })
		b := bus.NewBus(8)
		sys, err := blinky.Build(cfg, plat, b.NewConnection("blinky"), log.Named("blink"))
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		done := make(chan error, 1)
		go func() { done <- sys.Run(ctx) }()
		go watchLED(ctx, sys, cfg.Board.Tick/2)

		btn := pins.Pin(cfg.Board.ButtonPin)
		pressed, idle := !cfg.Board.ButtonActiveLow, cfg.Board.ButtonActiveLow
		lines := make(chan string)
		go readLines(ctx, os.Stdin, lines)

		for {
			select {
			case err := <-done:
				return err
			case l, ok := <-lines:
				if !ok || l == "q" {
					stop()
					return <-done
				}
				if l == "p" || l == "press" {
					btn.Set(pressed)
					btn.Set(idle)
				}
			}
		}
	},
}

// readLines sends trimmed lines from r until r ends or ctx is done, then
// closes out.
func readLines(ctx context.Context, r io.Reader, out chan<- string) {
	defer close(out)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		select {
		case out <- strings.TrimSpace(sc.Text()):
		case <-ctx.Done():
			return
		}
	}
}

// watchLED prints a line whenever the LED level changes.
func watchLED(ctx context.Context, sys *blinky.System, every time.Duration) {
	if every <= 0 {
		every = 10 * time.Millisecond
	}
	t := time.NewTicker(every)
	defer t.Stop()
	last := false
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s := sys.Engine.Snapshot()
			if s.LED == last {
				continue
			}
			last = s.LED
			mark := "."
			if s.LED {
				mark = "#"
			}
			fmt.Printf("%s counter=%d mode=%d guard=%d\n", mark, s.Counter, s.Mode, s.Guard)
		}
	}
}
