package hal

import "blinkmode-go/errcode"

// Devices are the board's collaborators, configured and ready.
type Devices struct {
	LED    LED
	Button *Button
	Edge   IRQPin
	Ticks  TickSource
}

// Open claims and configures the pins a board names.
func (p *Platform) Open(b Board) (Devices, error) {
	const op = "hal.open"
	if err := b.Validate(); err != nil {
		return Devices{}, err
	}

	bp, ok := p.Pins.ByNumber(b.ButtonPin)
	if !ok {
		return Devices{}, errcode.Wrap(errcode.UnknownPin, op, "button", nil)
	}
	irq, ok := bp.(IRQPin)
	if !ok {
		return Devices{}, errcode.Wrap(errcode.IRQUnavailable, op, "button pin has no edge interrupt", nil)
	}
	btn, err := NewButton(irq, b.ButtonPull, b.ButtonActiveLow)
	if err != nil {
		return Devices{}, err
	}

	var led LED
	if b.PixelPin >= 0 {
		if p.Pixel == nil {
			return Devices{}, errcode.Wrap(errcode.Unsupported, op, "pixel LED on "+p.Name, nil)
		}
		if led, err = p.Pixel(b.PixelPin); err != nil {
			return Devices{}, err
		}
	} else {
		lp, ok := p.Pins.ByNumber(b.LEDPin)
		if !ok {
			return Devices{}, errcode.Wrap(errcode.UnknownPin, op, "led", nil)
		}
		if led, err = NewPinLED(lp, b.LEDActiveLow); err != nil {
			return Devices{}, err
		}
	}

	if p.Ticks == nil {
		return Devices{}, errcode.Wrap(errcode.TickUnavailable, op, p.Name, nil)
	}
	return Devices{LED: led, Button: btn, Edge: irq, Ticks: p.Ticks(b.Tick)}, nil
}
