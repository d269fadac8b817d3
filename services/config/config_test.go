package config

import (
	"testing"

	"blinkmode-go/errcode"
)

func TestEmbeddedProfilesAreValid(t *testing.T) {
	for id := range embeddedConfigs {
		f, err := Lookup(id)
		if err != nil {
			t.Errorf("%s: %v", id, err)
			continue
		}
		if f.Device != id {
			t.Errorf("%s: device=%q", id, f.Device)
		}
	}
}

func TestLookupUnknown(t *testing.T) {
	if _, err := Lookup("nope"); errcode.Of(err) != errcode.InvalidParams {
		t.Fatalf("err=%v", err)
	}
}

func TestValidate(t *testing.T) {
	base, err := Lookup("host")
	if err != nil {
		t.Fatal(err)
	}
	cases := []struct {
		name string
		mut  func(*Firmware)
		want errcode.Code
	}{
		{"ok", func(*Firmware) {}, errcode.OK},
		{"bad period", func(f *Firmware) { f.Blink.Period = 10 }, errcode.InvalidPeriod},
		{"bad board", func(f *Firmware) { f.Board.ButtonPin = -1 }, errcode.UnknownPin},
		{"bad dispatch", func(f *Firmware) { f.Dispatch = "polled" }, errcode.InvalidParams},
		{"negative notices", func(f *Firmware) { f.NoticeLen = -1 }, errcode.InvalidParams},
	}
	for _, tc := range cases {
		f := base
		tc.mut(&f)
		if got := errcode.Of(f.Validate()); got != tc.want {
			t.Errorf("%s: got %q want %q", tc.name, got, tc.want)
		}
	}
}

func TestNormaliseClampsQueues(t *testing.T) {
	f := Firmware{Dispatch: Queued, QueueLen: 0, NoticeLen: 10000}.Normalise()
	if f.QueueLen != minQueue || f.NoticeLen != maxQueue {
		t.Fatalf("queue=%d notices=%d", f.QueueLen, f.NoticeLen)
	}
	d := Firmware{Dispatch: Direct, QueueLen: 0}.Normalise()
	if d.QueueLen != 0 {
		t.Fatalf("direct queue len changed: %d", d.QueueLen)
	}
}
