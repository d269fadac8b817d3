package hal

import (
	"sync/atomic"
	"testing"
	"time"

	"blinkmode-go/errcode"
)

func manualPlatform() (*Platform, *HostPinFactory, *ManualTicker) {
	pins := &HostPinFactory{}
	mt := &ManualTicker{}
	return NewHostPlatform(pins, func(time.Duration) TickSource { return mt }), pins, mt
}

func TestButtonPolarity(t *testing.T) {
	pin := NewFakePin(3, false)
	low, err := NewButton(pin, PullUp, true)
	if err != nil {
		t.Fatal(err)
	}
	if low.Pressed() {
		t.Fatal("pulled-up active-low line should read released")
	}
	pin.Set(false)
	if !low.Pressed() {
		t.Fatal("low level should read pressed")
	}
	if low.PressEdge() != EdgeFalling {
		t.Fatalf("press edge %v", low.PressEdge())
	}

	pin2 := NewFakePin(4, false)
	high, _ := NewButton(pin2, PullDown, false)
	pin2.Set(true)
	if !high.Pressed() || high.PressEdge() != EdgeRising {
		t.Fatal("active-high button misread")
	}
}

func TestPinLEDPolarity(t *testing.T) {
	pin := NewFakePin(25, false)
	led, err := NewPinLED(pin, true)
	if err != nil {
		t.Fatal(err)
	}
	if !pin.IsOutput() || !pin.Get() {
		t.Fatal("active-low LED should start high (off)")
	}
	led.Set(true)
	if pin.Get() {
		t.Fatal("active-low LED on should drive low")
	}
}

func TestFakePinEdgeFilter(t *testing.T) {
	pin := NewFakePin(1, true)
	var n atomic.Int32
	_ = pin.SetIRQ(EdgeFalling, func() { n.Add(1) })

	pin.Set(false) // falling
	pin.Set(false) // no change
	pin.Set(true)  // rising, filtered
	pin.Set(false) // falling
	if got := n.Load(); got != 2 {
		t.Fatalf("handler calls=%d want 2", got)
	}
	pin.Latch()
	if got := n.Load(); got != 3 {
		t.Fatalf("Latch should invoke handler, calls=%d", got)
	}
	_ = pin.ClearIRQ()
	pin.Set(true)
	pin.Set(false)
	if got := n.Load(); got != 3 {
		t.Fatalf("cleared IRQ still fired, calls=%d", got)
	}
}

func TestManualTicker(t *testing.T) {
	var mt ManualTicker
	n := 0
	if err := mt.Start(nil); err == nil {
		t.Fatal("nil handler should fail")
	}
	_ = mt.Start(func() { n++ })
	mt.Fire(3)
	mt.Stop()
	mt.Fire(5)
	if n != 3 {
		t.Fatalf("ticks=%d want 3", n)
	}
}

func TestClockTickerDelivers(t *testing.T) {
	ct := NewClockTicker(time.Millisecond)
	got := make(chan struct{}, 16)
	if err := ct.Start(func() {
		select {
		case got <- struct{}{}:
		default:
		}
	}); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		select {
		case <-got:
		case <-time.After(time.Second):
			t.Fatal("timeout waiting for tick")
		}
	}
	ct.Stop()
	ct.Stop() // idempotent
	if err := NewClockTicker(0).Start(func() {}); errcode.Of(err) != errcode.TickUnavailable {
		t.Fatalf("zero period: %v", err)
	}
}

func TestOpenPico(t *testing.T) {
	p, pins, mt := manualPlatform()
	b, err := LookupBoard("pico")
	if err != nil {
		t.Fatal(err)
	}
	d, err := p.Open(b)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if d.Ticks != mt {
		t.Fatal("tick source not from platform")
	}
	if d.Edge.Number() != 15 || d.Button.Pressed() {
		t.Fatal("button should be GP15 and released at rest")
	}
	d.LED.Set(true)
	if !pins.Pin(25).Get() {
		t.Fatal("LED pin not driven")
	}
}

func TestOpenErrors(t *testing.T) {
	p, _, _ := manualPlatform()

	if _, err := p.Open(Board{ButtonPin: 1, LEDPin: -1, PixelPin: -1, Tick: time.Second}); errcode.Of(err) != errcode.UnknownPin {
		t.Fatalf("no LED: %v", err)
	}
	px, _ := LookupBoard("pico-pixel")
	if _, err := p.Open(px); errcode.Of(err) != errcode.Unsupported {
		t.Fatalf("pixel on host: %v", err)
	}
	bad, _ := LookupBoard("pico")
	bad.Tick = 0
	if _, err := p.Open(bad); errcode.Of(err) != errcode.TickUnavailable {
		t.Fatalf("zero tick: %v", err)
	}
	if _, err := LookupBoard("nucleo"); errcode.Of(err) != errcode.UnknownBoard {
		t.Fatalf("unknown board: %v", err)
	}
}

func TestSysTickPlan(t *testing.T) {
	cases := []struct {
		name     string
		freq     uint32
		period   time.Duration
		reload   uint32
		prescale uint32
	}{
		{"rp2040 default tick", 125_000_000, DefaultTick, 15_624_999, 1},
		{"rp2350 default tick", 150_000_000, DefaultTick, 9_374_999, 2},
		{"rp2350 1ms", 150_000_000, time.Millisecond, 149_999, 1},
		{"rp2040 1s", 125_000_000, time.Second, 15_624_999, 8},
		{"full counter", 1 << 24, time.Second, 1<<24 - 1, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			reload, prescale, err := sysTickPlan(tc.freq, tc.period)
			if err != nil {
				t.Fatal(err)
			}
			if reload != tc.reload || prescale != tc.prescale {
				t.Fatalf("reload=%d prescale=%d want %d/%d", reload, prescale, tc.reload, tc.prescale)
			}
			if reload >= sysTickCounts {
				t.Fatalf("reload %d exceeds the 24-bit counter", reload)
			}
			// One tick spans (reload+1)*prescale core cycles.
			got := time.Duration(uint64(reload+1) * uint64(prescale) * uint64(time.Second) / uint64(tc.freq))
			if got != tc.period {
				t.Fatalf("tick period %v want %v", got, tc.period)
			}
		})
	}
}

func TestSysTickPlanRejects(t *testing.T) {
	cases := map[string]struct {
		freq   uint32
		period time.Duration
	}{
		"no clock":     {0, DefaultTick},
		"no period":    {125_000_000, 0},
		"sub-cycle":    {125_000_000, time.Nanosecond},
		"way too long": {150_000_000, 1 << 62},
	}
	for name, tc := range cases {
		if _, _, err := sysTickPlan(tc.freq, tc.period); errcode.Of(err) != errcode.TickUnavailable {
			t.Errorf("%s: err=%v", name, err)
		}
	}
}

func TestIRQArmRemembersEdgeUntilCleared(t *testing.T) {
	var a irqArm
	if prev, err := a.set(EdgeFalling); err != nil || prev != EdgeNone {
		t.Fatalf("first set prev=%v err=%v", prev, err)
	}
	if prev, err := a.set(EdgeBoth); err != nil || prev != EdgeFalling {
		t.Fatalf("re-arm prev=%v err=%v", prev, err)
	}
	if e := a.clear(); e != EdgeBoth {
		t.Fatalf("clear returned %v, want the armed edge", e)
	}
	if e := a.clear(); e != EdgeNone {
		t.Fatalf("second clear returned %v", e)
	}
	if _, err := a.set(EdgeNone); errcode.Of(err) != errcode.IRQUnavailable {
		t.Fatalf("arming no edge: err=%v", err)
	}
}

func TestFakePinClearDisarmsEdge(t *testing.T) {
	pin := NewFakePin(2, true)
	var n atomic.Int32
	if err := pin.SetIRQ(EdgeBoth, func() { n.Add(1) }); err != nil {
		t.Fatal(err)
	}
	_ = pin.ClearIRQ()
	if pin.irq.edge != EdgeNone {
		t.Fatalf("edge still armed: %v", pin.irq.edge)
	}
	pin.Set(false)
	pin.Set(true)
	if n.Load() != 0 {
		t.Fatalf("handler fired %d times after clear", n.Load())
	}
}
