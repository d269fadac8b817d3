package types

// ---- Firmware state (retained) ----

type FirmwareState struct {
	Level  string `json:"level"`  // "starting", "running", "stopped"
	Status string `json:"status"` // short code, empty when healthy
	TS     int64  `json:"ts_ms"`
}

// ---- Capability kinds & info ----

type Kind string

const (
	KindLED    Kind = "led"
	KindButton Kind = "button"
	KindBlink  Kind = "blink"
)

// Info envelope each capability exposes (retained).
type Info struct {
	SchemaVersion int    `json:"schema_version"`
	Driver        string `json:"driver"`
	Detail        any    `json:"detail,omitempty"`
}

type BlinkInfo struct {
	Period uint32   `json:"period"`
	Settle uint32   `json:"settle"`
	Cycle  string   `json:"cycle"`
	Ladder []uint32 `json:"ladder"`
	Tick   int64    `json:"tick_ms"`
}

type ButtonInfo struct {
	Pin       int  `json:"pin"`
	ActiveLow bool `json:"active_low"`
}

type LEDInfo struct {
	Pin   int  `json:"pin"`
	Pixel bool `json:"pixel,omitempty"`
}

// ---- Values ----

// ModeValue is the active blink mode (retained).
type ModeValue struct {
	Mode  uint32 `json:"mode"`
	Guard uint32 `json:"guard"`
	TS    int64  `json:"ts_ms"`
}

// PressEvent reports one button outcome (not retained).
type PressEvent struct {
	Outcome string `json:"outcome"` // "advanced", "suppressed", "released"
	Mode    uint32 `json:"mode"`
	Guard   uint32 `json:"guard"`
	TS      int64  `json:"ts_ms"`
}

// Counters are cumulative loss counters (retained).
type Counters struct {
	NoticeDrops uint32 `json:"notice_drops"`
	TickDrops   uint32 `json:"tick_drops"`
	EdgeDrops   uint32 `json:"edge_drops"`
}
