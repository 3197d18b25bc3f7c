package events

import "github.com/atomicstack/psim-config/internal/logging"

type SelectTracer struct{}

type ToggleTracer struct{}

type FileTracer struct{}

var (
	Select = SelectTracer{}
	Toggle = ToggleTracer{}
	File   = FileTracer{}
)

func (SelectTracer) Open(id string) {
	logging.Trace("select.open", map[string]interface{}{"id": id})
}

func (SelectTracer) Close(id string) {
	logging.Trace("select.close", map[string]interface{}{"id": id})
}

func (SelectTracer) Place(id string, top, left, minWidth int) {
	logging.Trace("select.place", map[string]interface{}{"id": id, "top": top, "left": left, "minWidth": minWidth})
}

func (SelectTracer) Commit(id, value string) {
	logging.Trace("select.commit", map[string]interface{}{"id": id, "value": value})
}

func (SelectTracer) Query(id, query string) {
	logging.Trace("select.query", map[string]interface{}{"id": id, "query": query})
}

func (ToggleTracer) Change(id string, checked bool) {
	logging.Trace("toggle.change", map[string]interface{}{"id": id, "checked": checked})
}

func (FileTracer) Accept(id, name, mimeType string) {
	logging.Trace("file.accept", map[string]interface{}{"id": id, "name": name, "mime": mimeType})
}

func (FileTracer) Reject(id, name, mimeType string) {
	logging.Trace("file.reject", map[string]interface{}{"id": id, "name": name, "mime": mimeType})
}

func (FileTracer) Clear(id string) {
	logging.Trace("file.clear", map[string]interface{}{"id": id})
}

func (FileTracer) Drag(id string, over bool) {
	logging.Trace("file.drag", map[string]interface{}{"id": id, "over": over})
}

func (FileTracer) Watch(id, change string, err error) {
	payload := map[string]interface{}{"id": id, "change": change}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("file.watch", payload)
}
