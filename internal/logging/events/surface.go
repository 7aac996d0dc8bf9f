package events

import "github.com/atomicstack/termconsole/internal/logging"

type SurfaceTracer struct{}

type InputTracer struct{}

var (
	Surface = SurfaceTracer{}
	Input   = InputTracer{}
)

func (SurfaceTracer) Push(name string, depth int, mode string) {
	logging.Trace("surface.push", map[string]interface{}{"surface": name, "depth": depth, "mode": mode})
}

func (SurfaceTracer) PushFailed(name, mode, reason string) {
	logging.Trace("surface.push-failed", map[string]interface{}{"surface": name, "mode": mode, "reason": reason})
}

func (SurfaceTracer) Pop(name string, depth int) {
	logging.Trace("surface.pop", map[string]interface{}{"surface": name, "depth": depth})
}

func (SurfaceTracer) Scroll(name string, rows, offset int) {
	logging.Trace("surface.scroll", map[string]interface{}{"surface": name, "rows": rows, "offset": offset})
}

func (SurfaceTracer) WriteError(name string, err error) {
	logging.Trace("surface.write-error", map[string]interface{}{"surface": name, "error": err.Error()})
}

func (InputTracer) Flush(discarded int) {
	logging.Trace("input.flush", map[string]interface{}{"discarded": discarded})
}

func (InputTracer) Timeout(wait string) {
	logging.Trace("input.timeout", map[string]interface{}{"wait": wait})
}

func (InputTracer) Key(key string) {
	logging.Trace("input.key", map[string]interface{}{"key": key})
}

func (InputTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("input.error", map[string]interface{}{"error": err.Error()})
}
