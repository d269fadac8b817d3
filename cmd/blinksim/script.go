package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"blinkmode-go/blink"
	"blinkmode-go/bus"
	"blinkmode-go/sim"
	"blinkmode-go/x/logx"
)

var trace bool

var scriptCmd = &cobra.Command{
	Use:   "script FILE",
	Short: "Replay a scenario script and check its expectations",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		return runScript(f, cmd.OutOrStdout())
	},
}

func init() {
	scriptCmd.Flags().BoolVar(&trace, "trace", false, "print the state after every step")
}

func runScript(r io.Reader, out io.Writer) error {
	s, err := sim.Parse(r)
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := logx.New(out, "blinksim")
	if opts.verbose {
		log.SetLevel(logx.Debug)
	}
	rig, err := sim.NewRig(cfg, bus.NewBus(8).NewConnection("sim"), log.Named("blink"))
	if err != nil {
		return err
	}
	if err := rig.Start(context.Background()); err != nil {
		return err
	}
	defer rig.Stop()

	var tr func(sim.Step, blink.Snapshot)
	if trace {
		tr = func(st sim.Step, snap blink.Snapshot) {
			fmt.Fprintf(out, "%4d  counter=%d mode=%d guard=%d led=%v\n", st.Line, snap.Counter, snap.Mode, snap.Guard, snap.LED)
		}
	}
	if err := rig.Run(s, tr); err != nil {
		return err
	}
	fmt.Fprintf(out, "ok: %d steps\n", len(s))
	return nil
}
