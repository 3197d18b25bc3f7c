package events

import "github.com/atomicstack/psim-config/internal/logging"

type FormTracer struct{}

type PointerTracer struct{}

type CommandTracer struct{}

var (
	Form    = FormTracer{}
	Pointer = PointerTracer{}
	Command = CommandTracer{}
)

func (FormTracer) Focus(field string) {
	logging.Trace("form.focus", map[string]interface{}{"field": field})
}

func (FormTracer) Coerce(field, text string, value int) {
	logging.Trace("form.coerce", map[string]interface{}{"field": field, "text": text, "value": value})
}

func (FormTracer) Seed(seed string) {
	logging.Trace("form.seed", map[string]interface{}{"seed": seed})
}

func (FormTracer) Invalid(err error) {
	if err == nil {
		return
	}
	logging.Trace("form.invalid", map[string]interface{}{"error": err.Error()})
}

func (PointerTracer) Press(x, y int, target string) {
	logging.Trace("pointer.press", map[string]interface{}{"x": x, "y": y, "target": target})
}

func (PointerTracer) Outside(fired int) {
	logging.Trace("pointer.outside", map[string]interface{}{"fired": fired})
}

func (CommandTracer) Queue(id string) {
	logging.Trace("command.queue", map[string]interface{}{"id": id})
}

func (CommandTracer) Result(id, msgType string) {
	logging.Trace("command.result", map[string]interface{}{"id": id, "msg": msgType})
}

func (CommandTracer) Error(id string, err error) {
	if err == nil {
		return
	}
	logging.Trace("command.error", map[string]interface{}{"id": id, "error": err.Error()})
}
