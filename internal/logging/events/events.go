// Package events exposes typed trace helpers so call sites do not build
// payload maps by hand.
package events

import "github.com/echoline/echoline/internal/logging"

type AppTracer struct{}

type EngineTracer struct{}

type HostTracer struct{}

var (
	App    = AppTracer{}
	Engine = EngineTracer{}
	Host   = HostTracer{}
)

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Stop() {
	logging.Trace("app.stop", nil)
}

func (EngineTracer) Enable() {
	logging.Trace("engine.enable", nil)
}

func (EngineTracer) Disable() {
	logging.Trace("engine.disable", nil)
}

func (EngineTracer) Schedule(force, keep bool) {
	logging.Trace("engine.schedule", map[string]interface{}{"force": force, "keep": keep})
}

func (EngineTracer) Drop(reason string) {
	logging.Trace("engine.drop", map[string]interface{}{"reason": reason})
}

func (EngineTracer) Apply(lines, delta int) {
	logging.Trace("engine.apply", map[string]interface{}{"lines": lines, "delta": delta})
}

func (EngineTracer) ShrinkDeferred(delta int) {
	logging.Trace("engine.shrink-deferred", map[string]interface{}{"delta": delta})
}

func (EngineTracer) Message(text string) {
	logging.Trace("engine.message", map[string]interface{}{"text": text})
}

func (EngineTracer) InterruptCleared(pending int) {
	logging.Trace("engine.interrupt-clear", map[string]interface{}{"pending": pending})
}

func (HostTracer) Signal(name string) {
	logging.Trace("host.signal", map[string]interface{}{"signal": name})
}

func (HostTracer) UnknownSegment(name string) {
	logging.Trace("host.unknown-segment", map[string]interface{}{"segment": name})
}
