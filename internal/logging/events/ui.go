package events

import "github.com/atomicstack/assetgrid/internal/logging"

type UITracer struct{}

type FilterTracer struct{}

type ActionTracer struct{}

type CommandTracer struct{}

var (
	UI      = UITracer{}
	Filter  = FilterTracer{}
	Action  = ActionTracer{}
	Command = CommandTracer{}
)

func (UITracer) Focus(pane string) {
	logging.Trace("ui.focus", map[string]interface{}{"pane": pane})
}

func (UITracer) Key(key, pane string) {
	logging.Trace("ui.key", map[string]interface{}{"key": key, "pane": pane})
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

func (FilterTracer) Cleared() {
	logging.Trace("filter.clear", nil)
}

func (FilterTracer) Query(query string) {
	logging.Trace("filter.query", map[string]interface{}{"query": query})
}

func (FilterTracer) Cursor(pos int) {
	logging.Trace("filter.cursor", map[string]interface{}{"cursor": pos})
}

func (FilterTracer) Facet(kind, value string, enabled bool) {
	logging.Trace("filter.facet", map[string]interface{}{"kind": kind, "value": value, "enabled": enabled})
}

func (FilterTracer) Sort(key string, descending bool) {
	logging.Trace("filter.sort", map[string]interface{}{"key": key, "descending": descending})
}

func (FilterTracer) Applied(total, matched int, state interface{}) {
	logging.Trace("filter.applied", map[string]interface{}{"total": total, "matched": matched, "state": state})
}

func (FilterTracer) Debounce(channel string, seq uint64, stale bool) {
	logging.Trace("filter.debounce", map[string]interface{}{"channel": channel, "seq": seq, "stale": stale})
}

func (CommandTracer) Queue(id, label string) {
	logging.Trace("command.queue", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Skip(id, label string) {
	logging.Trace("command.skip", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) NoOp(id, label string) {
	logging.Trace("command.noop", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Result(id, label, msgType string) {
	logging.Trace("command.result", map[string]interface{}{"id": id, "label": label, "msg": msgType})
}
