package main

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"

	"blinkmode-go/blink"
	"blinkmode-go/errcode"
	"blinkmode-go/services/config"
)

func resetOpts() {
	opts.device = "host"
	opts.period, opts.mode, opts.settle = 0, 0, 0
	opts.cycle, opts.tick = "", 0
	opts.queued, opts.verbose = false, false
	trace = false
}

func TestLoadConfigOverrides(t *testing.T) {
	resetOpts()
	defer resetOpts()
	opts.period = 16
	opts.cycle = "down"
	opts.tick = 50 * time.Millisecond
	opts.queued = true

	cfg, err := loadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Blink.Period != 16 || cfg.Blink.Cycle != blink.CycleDown || cfg.Blink.InitialMode != 8 {
		t.Fatalf("blink = %+v", cfg.Blink)
	}
	if cfg.Board.Tick != 50*time.Millisecond || cfg.Dispatch != config.Queued || cfg.QueueLen < 2 {
		t.Fatalf("firmware = %+v", cfg)
	}
}

func TestLoadConfigRejects(t *testing.T) {
	cases := map[string]struct {
		set  func()
		want errcode.Code
	}{
		"period": {func() { opts.period = 12 }, errcode.InvalidPeriod},
		"mode":   {func() { opts.mode = 3 }, errcode.InvalidMode},
		"cycle":  {func() { opts.cycle = "sideways" }, errcode.InvalidCycle},
		"device": {func() { opts.device = "toaster" }, errcode.InvalidParams},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			resetOpts()
			defer resetOpts()
			tc.set()
			_, err := loadConfig()
			if got := errcode.Of(err); got != tc.want {
				t.Fatalf("code = %q, want %q (%v)", got, tc.want, err)
			}
		})
	}
}

func TestRunScriptScenario(t *testing.T) {
	resetOpts()
	defer resetOpts()
	trace = true
	f, err := os.Open("testdata/scenario.txt")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	var out bytes.Buffer
	if err := runScript(f, &out); err != nil {
		t.Fatalf("%v\n%s", err, out.String())
	}
	if !strings.Contains(out.String(), "ok: 15 steps") {
		t.Fatalf("output:\n%s", out.String())
	}
}

func TestRunScriptReportsFailedExpectation(t *testing.T) {
	resetOpts()
	defer resetOpts()
	err := runScript(strings.NewReader("tick 2\nexpect counter 3\n"), &bytes.Buffer{})
	if errcode.Of(err) != errcode.Expectation || !strings.Contains(err.Error(), "line 2") {
		t.Fatalf("err = %v", err)
	}
}
