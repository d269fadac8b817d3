package blink

// State holds the three cells shared by the tick and button handlers.
//
// Counter is written by Tick only, Mode by Press only. Guard is decremented
// by Tick and reloaded by Press. Callers own a State exclusively for the
// duration of one call; Engine provides that exclusion.
type State struct {
	Counter uint32
	Mode    uint32
	Guard   uint32
}

// NewState returns the power-on state.
func NewState(cfg Config) State {
	return State{Mode: cfg.InitialMode}
}

// Tick advances the counter one step and reports the LED level for the new
// counter value. It also decays the debounce guard by one.
//
// Mode acts as a divider on one free-running counter: the LED follows a
// single counter bit, so mode 1 toggles every tick and mode Period/2 makes
// one on/off cycle per counter period.
func (s *State) Tick(cfg Config) (on bool) {
	s.Counter = (s.Counter + 1) & cfg.mask()
	on = s.Counter&s.Mode != 0
	if s.Guard > 0 {
		s.Guard--
	}
	return on
}

// Outcome is the result of one button-edge event.
type Outcome uint8

const (
	// Suppressed: the guard was still counting down; nothing changed.
	Suppressed Outcome = iota
	// Released: the line read back as not pressed; nothing changed.
	Released
	// Advanced: genuine press; Mode stepped and Guard reloaded.
	Advanced
)

func (o Outcome) String() string {
	switch o {
	case Suppressed:
		return "suppressed"
	case Released:
		return "released"
	case Advanced:
		return "advanced"
	default:
		return "unknown"
	}
}

// Press handles one edge event. The button level is only read once the
// guard has expired.
func (s *State) Press(cfg Config, btn Button) Outcome {
	if s.Guard > 0 {
		return Suppressed
	}
	if !btn.Pressed() {
		return Released
	}
	s.Guard = cfg.Settle
	s.Mode = NextMode(cfg, s.Mode)
	return Advanced
}
