// Package blinky assembles the firmware: it opens the board, builds the
// engine, routes the tick and button interrupts to it, and runs telemetry
// in the idle context.
package blinky

import (
	"context"

	"blinkmode-go/blink"
	"blinkmode-go/bus"
	"blinkmode-go/critical"
	"blinkmode-go/errcode"
	"blinkmode-go/services/config"
	"blinkmode-go/services/dispatch"
	"blinkmode-go/services/hal"
	"blinkmode-go/services/telemetry"
	"blinkmode-go/types"
	"blinkmode-go/x/logx"
)

type System struct {
	Cfg    config.Firmware
	Engine *blink.Engine
	Dev    hal.Devices

	worker *dispatch.Worker
	tel    *telemetry.Service
	log    *logx.Logger
}

// Build validates cfg and prepares every part without starting interrupts.
func Build(cfg config.Firmware, plat *hal.Platform, conn *bus.Connection, log *logx.Logger) (*System, error) {
	cfg = cfg.Normalise()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	dev, err := plat.Open(cfg.Board)
	if err != nil {
		return nil, err
	}

	var opts []blink.Option
	if cfg.NoticeLen > 0 {
		opts = append(opts, blink.WithNotices(cfg.NoticeLen))
	}
	eng, err := blink.NewEngine(cfg.Blink, critical.Default(), dev.LED, dev.Button, opts...)
	if err != nil {
		return nil, err
	}

	s := &System{Cfg: cfg, Engine: eng, Dev: dev, log: log}
	if cfg.Dispatch == config.Queued {
		s.worker = dispatch.New(eng, cfg.QueueLen)
	}
	s.tel = telemetry.New(conn, log.Named("telemetry"), telemetry.Config{
		Notices: eng.Notices(),
		Stats:   s.Counters,
	})
	return s, nil
}

// Counters reports cumulative event losses.
func (s *System) Counters() types.Counters {
	c := types.Counters{NoticeDrops: s.Engine.NoticeDrops()}
	if s.worker != nil {
		st := s.worker.Stats()
		c.TickDrops, c.EdgeDrops = st.TickDrops, st.EdgeDrops
	}
	return c
}

// Start attaches the button interrupt and starts the tick source.
func (s *System) Start(ctx context.Context) error {
	onTick := s.Engine.OnTick
	onEdge := func() { s.Engine.OnEdge() }
	if s.worker != nil {
		s.worker.Start(ctx)
		onTick = func() { _ = s.worker.PostTick() }
		onEdge = func() { _ = s.worker.PostEdge() }
	}

	edge := s.Dev.Button.PressEdge()
	if err := s.Dev.Edge.SetIRQ(edge, onEdge); err != nil {
		return errcode.Wrap(errcode.IRQUnavailable, "blinky.start", "button "+edge.String(), err)
	}
	if err := s.Dev.Ticks.Start(onTick); err != nil {
		_ = s.Dev.Edge.ClearIRQ()
		return err
	}

	s.tel.PublishInfo(s.Cfg.Blink, s.Cfg.Board)
	s.tel.PublishState("running", "")
	s.log.Info("running",
		logx.Str("device", s.Cfg.Device),
		logx.Str("dispatch", string(s.Cfg.Dispatch)),
		logx.Uint("period", uint64(s.Cfg.Blink.Period)),
		logx.Uint("mode", uint64(s.Cfg.Blink.InitialMode)),
		logx.Str("cycle", s.Cfg.Blink.Cycle.String()))
	return nil
}

// Stop detaches both interrupt sources.
func (s *System) Stop() {
	s.Dev.Ticks.Stop()
	_ = s.Dev.Edge.ClearIRQ()
	s.tel.PublishState("stopped", "")
	s.log.Info("stopped")
}

// Run starts the system, serves telemetry until ctx is cancelled, then stops.
func (s *System) Run(ctx context.Context) error {
	if err := s.Start(ctx); err != nil {
		return err
	}
	s.tel.Run(ctx)
	s.Stop()
	return nil
}
