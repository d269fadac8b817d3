package telemetry

import (
	"blinkmode-go/bus"
	"blinkmode-go/types"
)

const root = "blink"

func TopicState() bus.Topic            { return bus.T(root, "state") }
func TopicInfo(k types.Kind) bus.Topic { return bus.T(root, "info", string(k)) }
func TopicMode() bus.Topic             { return bus.T(root, "mode") }
func TopicPress() bus.Topic            { return bus.T(root, "press") }
func TopicCounters() bus.Topic         { return bus.T(root, "counters") }
func TopicAll() bus.Topic              { return bus.T(root, "#") }
