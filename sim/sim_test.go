package sim

import (
	"context"
	"strings"
	"testing"

	"blinkmode-go/blink"
	"blinkmode-go/bus"
	"blinkmode-go/errcode"
	"blinkmode-go/services/config"
	"blinkmode-go/x/logx"
)

const scenario = `
# period 8, mode 1, guard 0
tick 3
expect counter 3
expect led on
press
release
expect mode 2
expect guard 4
tick
expect counter 4
expect led "off"
expect guard 3
bounce 3          # still guarded
edge
expect mode 2
expect guard 3
tick 3
expect guard 0
tick 5
expect guard 0
press
expect mode 4
`

func newRig(t *testing.T, device string) *Rig {
	t.Helper()
	cfg, err := config.Lookup(device)
	if err != nil {
		t.Fatal(err)
	}
	r, err := NewRig(cfg, bus.NewBus(4).NewConnection("sim"), logx.Discard())
	if err != nil {
		t.Fatal(err)
	}
	if err := r.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(r.Stop)
	return r
}

func TestScenarioScript(t *testing.T) {
	s, err := Parse(strings.NewReader(scenario))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	r := newRig(t, "host")
	steps := 0
	var last blink.Snapshot
	if err := r.Run(s, func(_ Step, snap blink.Snapshot) { steps++; last = snap }); err != nil {
		t.Fatal(err)
	}
	if steps != len(s) {
		t.Fatalf("trace saw %d of %d steps", steps, len(s))
	}
	if last.Mode != 4 || last.Guard != 4 || last.Counter != 4 {
		t.Fatalf("final state %+v", last)
	}
}

func TestExpectationFailureNamesLine(t *testing.T) {
	s, err := Parse(strings.NewReader("tick 2\nexpect counter 3\n"))
	if err != nil {
		t.Fatal(err)
	}
	err = newRig(t, "host").Run(s, nil)
	if errcode.Of(err) != errcode.Expectation {
		t.Fatalf("err=%v", err)
	}
	if !strings.Contains(err.Error(), "line 2: counter = 2, want 3") {
		t.Fatalf("message %q", err.Error())
	}
}

func TestReleaseEdgeIsIgnored(t *testing.T) {
	// A latched edge on an idle line must not count as a press.
	s, _ := Parse(strings.NewReader("edge\nexpect mode 1\nexpect guard 0\n"))
	if err := newRig(t, "host").Run(s, nil); err != nil {
		t.Fatal(err)
	}
}

func TestQueuedProfileRunsDirect(t *testing.T) {
	r := newRig(t, "host-queued")
	s, _ := Parse(strings.NewReader("tick\npress\nexpect mode 2\n"))
	if err := r.Run(s, nil); err != nil {
		t.Fatal(err)
	}
}

func TestParseErrors(t *testing.T) {
	cases := map[string]string{
		"jump":              "unknown command",
		"tick 0":            "positive integer",
		"tick 1 2":          "too many",
		"press now":         "takes 0",
		"expect mode":       "takes 2",
		"expect speed 3":    "unknown field",
		"expect led dim":    "on or off",
		"expect counter -1": "unsigned",
		`expect led "on`:    "line 1",
	}
	for src, want := range cases {
		_, err := Parse(strings.NewReader(src))
		if errcode.Of(err) != errcode.InvalidScript {
			t.Errorf("%q: err=%v", src, err)
			continue
		}
		if !strings.Contains(err.Error(), want) {
			t.Errorf("%q: %q does not mention %q", src, err.Error(), want)
		}
	}
}

func TestParseSkipsCommentsAndBlank(t *testing.T) {
	s, err := Parse(strings.NewReader("\n# only a comment\n  \ntick 2 # two\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(s) != 1 || s[0].Op != OpTick || s[0].N != 2 || s[0].Line != 4 {
		t.Fatalf("script %+v", s)
	}
}
