package hal

import "blinkmode-go/errcode"

// Button reads a GPIO input with the board's wiring polarity applied.
type Button struct {
	pin       GPIOPin
	activeLow bool
}

// NewButton configures pin as an input and returns its logical view.
func NewButton(pin GPIOPin, pull Pull, activeLow bool) (*Button, error) {
	if pin == nil {
		return nil, errcode.InvalidParams
	}
	if err := pin.ConfigureInput(pull); err != nil {
		return nil, errcode.Wrap(errcode.Error, "hal.button", "configure input", err)
	}
	return &Button{pin: pin, activeLow: activeLow}, nil
}

// Pressed reports the logical level: true when the button is held.
func (b *Button) Pressed() bool {
	if b.activeLow {
		return !b.pin.Get()
	}
	return b.pin.Get()
}

// PressEdge is the physical edge a press produces.
func (b *Button) PressEdge() Edge {
	if b.activeLow {
		return EdgeFalling
	}
	return EdgeRising
}

// PinLED drives an LED wired to a GPIO.
type PinLED struct {
	pin       GPIOPin
	activeLow bool
}

// NewPinLED configures pin as an output with the LED off.
func NewPinLED(pin GPIOPin, activeLow bool) (*PinLED, error) {
	if pin == nil {
		return nil, errcode.InvalidParams
	}
	if err := pin.ConfigureOutput(activeLow); err != nil {
		return nil, errcode.Wrap(errcode.Error, "hal.led", "configure output", err)
	}
	return &PinLED{pin: pin, activeLow: activeLow}, nil
}

func (l *PinLED) Set(on bool) { l.pin.Set(on != l.activeLow) }
