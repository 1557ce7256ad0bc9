package soraterm

import (
	"github.com/soraterm/soraterm/internal/dispatch"
	"github.com/soraterm/soraterm/schema"
)

// applyFanout delivers each dequeued event to every sink in order. The
// workspace always comes first; observers see the event after its
// effect is applied. Everything still runs on the single dispatch
// loop, so the one-at-a-time guarantee holds across all sinks.
type applyFanout []dispatch.Applier

func (f applyFanout) ApplyEvent(ev schema.Event) {
	for _, sink := range f {
		if sink == nil {
			continue
		}
		sink.ApplyEvent(ev)
	}
}
