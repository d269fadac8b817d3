//go:build rp2040 || rp2350

package hal

import (
	"device/arm"
	"image/color"
	"io"
	"machine"
	"time"

	"github.com/jangala-dev/tinygo-uartx/uartx"
	"tinygo.org/x/drivers/ws2812"

	"blinkmode-go/errcode"
)

const consoleBaud = 115200

// Default returns the platform for this build.
func Default() *Platform { return RP2() }

// RP2 returns the Raspberry Pi Pico / Pico 2 platform. The console is UART0
// on GP0/GP1.
func RP2() *Platform {
	return &Platform{
		Name:    "rp2",
		Pins:    rp2PinFactory{},
		Ticks:   func(d time.Duration) TickSource { return &sysTick{period: d} },
		Pixel:   newPixelLED,
		Console: console(),
	}
}

func console() io.Writer {
	u := uartx.UART0
	if err := u.Configure(uartx.UARTConfig{
		BaudRate: consoleBaud,
		TX:       machine.UART0_TX_PIN,
		RX:       machine.UART0_RX_PIN,
	}); err != nil {
		return io.Discard
	}
	return u
}

// ---- GPIO ----

type rp2PinFactory struct{}

func (rp2PinFactory) ByNumber(n int) (GPIOPin, bool) {
	// User GPIOs GP0..GP28.
	if n < 0 || n > 28 {
		return nil, false
	}
	return &rp2Pin{p: machine.Pin(n), n: n}, true
}

type rp2Pin struct {
	p   machine.Pin
	n   int
	irq irqArm
}

func (r *rp2Pin) ConfigureInput(pull Pull) error {
	mode := machine.PinInput
	switch pull {
	case PullUp:
		mode = machine.PinInputPullup
	case PullDown:
		mode = machine.PinInputPulldown
	}
	r.p.Configure(machine.PinConfig{Mode: mode})
	return nil
}

func (r *rp2Pin) ConfigureOutput(initial bool) error {
	r.p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	r.p.Set(initial)
	return nil
}

func (r *rp2Pin) Set(level bool) { r.p.Set(level) }
func (r *rp2Pin) Get() bool      { return r.p.Get() }
func (r *rp2Pin) Number() int    { return r.n }

func pinChange(edge Edge) machine.PinChange {
	switch edge {
	case EdgeRising:
		return machine.PinRising
	case EdgeFalling:
		return machine.PinFalling
	default:
		return machine.PinToggle
	}
}

// SetIRQ routes the bank-0 GPIO interrupt for this pin. The machine package
// acknowledges the edge latch before invoking the callback. Re-arming with a
// different edge disables the old enables first.
func (r *rp2Pin) SetIRQ(edge Edge, handler func()) error {
	prev, err := r.irq.set(edge)
	if err != nil {
		return err
	}
	if prev != EdgeNone && prev != edge {
		if err := r.p.SetInterrupt(pinChange(prev), nil); err != nil {
			return err
		}
	}
	return r.p.SetInterrupt(pinChange(edge), func(machine.Pin) { handler() })
}

// ClearIRQ disables the edge enables SetIRQ turned on.
func (r *rp2Pin) ClearIRQ() error {
	e := r.irq.clear()
	if e == EdgeNone {
		return nil
	}
	return r.p.SetInterrupt(pinChange(e), nil)
}

// ---- Tick: SysTick ----

// SysTick is a 24-bit down counter on the core clock. The exception is
// auto-acknowledged on entry and the counter reloads itself. Periods beyond
// the counter range are divided down in the handler (see sysTickPlan).
var (
	sysTickHandler  func()
	sysTickPrescale uint32
	sysTickCount    uint32
)

//export SysTick_Handler
func handleSysTick() {
	sysTickCount++
	if sysTickCount < sysTickPrescale {
		return
	}
	sysTickCount = 0
	if h := sysTickHandler; h != nil {
		h()
	}
}

type sysTick struct {
	period time.Duration
}

func (s *sysTick) Start(handler func()) error {
	const op = "hal.systick"
	if handler == nil {
		return errcode.Wrap(errcode.TickUnavailable, op, "nil handler", nil)
	}
	reload, prescale, err := sysTickPlan(machine.CPUFrequency(), s.period)
	if err != nil {
		return err
	}
	sysTickHandler = handler
	sysTickPrescale, sysTickCount = prescale, 0
	if err := arm.SetupSystemTimer(reload); err != nil {
		sysTickHandler = nil
		return errcode.Wrap(errcode.TickUnavailable, op, "", err)
	}
	return nil
}

func (s *sysTick) Stop() {
	_ = arm.SetupSystemTimer(0)
	sysTickHandler = nil
}

// ---- LED: single WS2812 pixel ----

var pixelOn = color.RGBA{R: 0x00, G: 0x20, B: 0x10, A: 0xFF}

type pixelLED struct {
	dev   ws2812.Device
	buf   [1]color.RGBA
	on    bool
	valid bool
}

func newPixelLED(n int) (LED, error) {
	if n < 0 || n > 28 {
		return nil, errcode.Wrap(errcode.UnknownPin, "hal.pixel", "", nil)
	}
	pin := machine.Pin(n)
	pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	l := &pixelLED{dev: ws2812.New(pin)}
	l.Set(false)
	return l, nil
}

// Set only shifts a frame out when the level changes; the pixel latches.
func (l *pixelLED) Set(on bool) {
	if l.valid && l.on == on {
		return
	}
	l.on, l.valid = on, true
	if on {
		l.buf[0] = pixelOn
	} else {
		l.buf[0] = color.RGBA{}
	}
	_ = l.dev.WriteColors(l.buf[:])
}
