package config

import (
	"blinkmode-go/blink"
	"blinkmode-go/errcode"
	"blinkmode-go/services/hal"
)

// -----------------------------------------------------------------------------
// Embedded configuration
//
// Key: device ID. Each profile names a board from hal and the blink shape.
// -----------------------------------------------------------------------------

type profile struct {
	board     string
	blink     blink.Config
	dispatch  Dispatch
	queueLen  int
	noticeLen int
}

var embeddedConfigs = map[string]profile{
	"pico": {
		board:     "pico",
		blink:     blink.DefaultConfig(),
		dispatch:  Direct,
		noticeLen: 8,
	},
	"pico-pixel": {
		board: "pico-pixel",
		blink: blink.Config{
			Period:      16,
			InitialMode: 8,
			Settle:      blink.DefaultSettle,
			Cycle:       blink.CycleDown,
		},
		dispatch:  Direct,
		noticeLen: 8,
	},
	"host": {
		board:     "host",
		blink:     blink.DefaultConfig(),
		dispatch:  Direct,
		noticeLen: 16,
	},
	"host-queued": {
		board:     "host",
		blink:     blink.DefaultConfig(),
		dispatch:  Queued,
		queueLen:  16,
		noticeLen: 16,
	},
}

// Lookup resolves a device ID to a validated, normalised configuration.
func Lookup(device string) (Firmware, error) {
	p, ok := embeddedConfigs[device]
	if !ok {
		return Firmware{}, errcode.Wrap(errcode.InvalidParams, "config", "no embedded config for device: "+device, nil)
	}
	b, err := hal.LookupBoard(p.board)
	if err != nil {
		return Firmware{}, err
	}
	f := Firmware{
		Device:    device,
		Blink:     p.blink,
		Board:     b,
		Dispatch:  p.dispatch,
		QueueLen:  p.queueLen,
		NoticeLen: p.noticeLen,
	}.Normalise()
	if err := f.Validate(); err != nil {
		return Firmware{}, err
	}
	return f, nil
}
