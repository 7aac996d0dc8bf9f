package events

import "github.com/atomicstack/termconsole/internal/logging"

type MenuTracer struct{}

type ConsoleTracer struct{}

type ActionTracer struct{}

var (
	Menu    = MenuTracer{}
	Console = ConsoleTracer{}
	Action  = ActionTracer{}
)

func (MenuTracer) Cursor(prev, next int) {
	logging.Trace("menu.cursor", map[string]interface{}{"prev": prev, "next": next})
}

func (MenuTracer) Viewport(top, bottom int) {
	logging.Trace("menu.viewport", map[string]interface{}{"top": top, "bottom": bottom})
}

func (MenuTracer) Status(message string) {
	logging.Trace("menu.status", map[string]interface{}{"message": message})
}

func (MenuTracer) StatusExpired() {
	logging.Trace("menu.status-expired", nil)
}

func (MenuTracer) Dispatch(key string, handler int, result string) {
	logging.Trace("menu.dispatch", map[string]interface{}{"key": key, "handler": handler, "result": result})
}

func (ConsoleTracer) Render(lines, anchorRow int, instructions bool) {
	logging.Trace("console.render", map[string]interface{}{"lines": lines, "anchor": anchorRow, "instructions": instructions})
}

func (ConsoleTracer) Selection(index int, reason string) {
	logging.Trace("console.selection", map[string]interface{}{"index": index, "reason": reason})
}

func (ConsoleTracer) Confirm(title, answer string) {
	logging.Trace("console.confirm", map[string]interface{}{"title": title, "answer": answer})
}

func (ActionTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("action.error", map[string]interface{}{"error": err.Error()})
}

func (ActionTracer) Success(info string) {
	logging.Trace("action.success", map[string]interface{}{"info": info})
}
