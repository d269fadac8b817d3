// Package telemetry runs in the idle context. It turns engine notices into
// bus messages and console lines, and never touches the shared cells.
package telemetry

import (
	"context"
	"time"

	"blinkmode-go/blink"
	"blinkmode-go/bus"
	"blinkmode-go/services/hal"
	"blinkmode-go/types"
	"blinkmode-go/x/logx"
	"blinkmode-go/x/timex"
)

type Config struct {
	Notices <-chan blink.Notice
	// Stats, if set, is polled every StatsEvery and published when changed.
	Stats      func() types.Counters
	StatsEvery time.Duration
}

type Service struct {
	conn *bus.Connection
	log  *logx.Logger
	cfg  Config
	last types.Counters
}

func New(conn *bus.Connection, log *logx.Logger, cfg Config) *Service {
	if cfg.StatsEvery <= 0 {
		cfg.StatsEvery = 5 * time.Second
	}
	return &Service{conn: conn, log: log, cfg: cfg}
}

// PublishInfo publishes a retained description of each capability: the blink
// machine, its button and its LED.
func (s *Service) PublishInfo(cfg blink.Config, board hal.Board) {
	s.publishInfo(types.KindBlink, types.BlinkInfo{
		Period: cfg.Period,
		Settle: cfg.Settle,
		Cycle:  cfg.Cycle.String(),
		Ladder: blink.Ladder(cfg),
		Tick:   timex.Ms(board.Tick),
	})
	s.publishInfo(types.KindButton, types.ButtonInfo{Pin: board.ButtonPin, ActiveLow: board.ButtonActiveLow})
	led := types.LEDInfo{Pin: board.LEDPin}
	if board.PixelPin >= 0 {
		led = types.LEDInfo{Pin: board.PixelPin, Pixel: true}
	}
	s.publishInfo(types.KindLED, led)
	s.conn.Publish(s.conn.NewMessage(TopicMode(), types.ModeValue{Mode: cfg.InitialMode, TS: timex.NowMs()}, true))
}

func (s *Service) publishInfo(k types.Kind, detail any) {
	s.conn.Publish(s.conn.NewMessage(TopicInfo(k), types.Info{
		SchemaVersion: 1,
		Driver:        string(k),
		Detail:        detail,
	}, true))
}

// PublishState publishes the retained firmware lifecycle state.
func (s *Service) PublishState(level, status string) {
	s.conn.Publish(s.conn.NewMessage(TopicState(), types.FirmwareState{Level: level, Status: status, TS: timex.NowMs()}, true))
}

// Run loops until ctx is cancelled.
func (s *Service) Run(ctx context.Context) {
	var statsC <-chan time.Time
	if s.cfg.Stats != nil {
		t := time.NewTicker(s.cfg.StatsEvery)
		defer t.Stop()
		statsC = t.C
	}
	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-s.cfg.Notices:
			if !ok {
				s.cfg.Notices = nil
				continue
			}
			s.handle(n)
		case <-statsC:
			s.pollStats()
		}
	}
}

func (s *Service) handle(n blink.Notice) {
	now := timex.NowMs()
	var outcome string
	switch n.Kind {
	case blink.NoticeMode:
		outcome = blink.Advanced.String()
		s.conn.Publish(s.conn.NewMessage(TopicMode(), types.ModeValue{Mode: n.Mode, Guard: n.Guard, TS: now}, true))
		s.log.Info("mode changed", logx.Uint("mode", uint64(n.Mode)), logx.Uint("guard", uint64(n.Guard)))
	case blink.NoticeSuppressed:
		outcome = blink.Suppressed.String()
		s.log.Debug("press suppressed", logx.Uint("guard", uint64(n.Guard)))
	default:
		outcome = blink.Released.String()
		s.log.Debug("edge on released line")
	}
	s.conn.Publish(s.conn.NewMessage(TopicPress(), types.PressEvent{Outcome: outcome, Mode: n.Mode, Guard: n.Guard, TS: now}, false))
}

func (s *Service) pollStats() {
	c := s.cfg.Stats()
	if c == s.last {
		return
	}
	s.last = c
	s.conn.Publish(s.conn.NewMessage(TopicCounters(), c, true))
	s.log.Warn("events dropped",
		logx.Uint("notices", uint64(c.NoticeDrops)),
		logx.Uint("ticks", uint64(c.TickDrops)),
		logx.Uint("edges", uint64(c.EdgeDrops)))
}
