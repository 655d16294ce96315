package testutil

import (
	"github.com/abletheabove/interlog/pkg/interlog"
	"github.com/abletheabove/interlog/pkg/storage"
)

// Oracle decodes events directly from a [storage.Mem]'s backing bytes,
// independent of any [interlog.Log] or [interlog.ReadCache] under test.
// Property tests use it as ground truth to check reads served from the
// cache or from a simulated disk fallback.
type Oracle struct {
	mem *storage.Mem
}

// NewOracle wraps mem for direct decoding.
func NewOracle(mem *storage.Mem) *Oracle {
	return &Oracle{mem: mem}
}

// At decodes the logicalPos-th event by walking every event from the
// start of mem's bytes. ok is false if fewer than logicalPos+1 events
// have been appended.
func (o *Oracle) At(logicalPos uint64) (interlog.Event, bool) {
	view := interlog.NewView(o.mem.Bytes())

	var current uint64

	for {
		_, e, ok := view.Next()
		if !ok {
			return interlog.Event{}, false
		}

		if current == logicalPos {
			return e, true
		}

		current++
	}
}

// All decodes every event currently in mem, in order.
func (o *Oracle) All() []interlog.Event {
	view := interlog.NewView(o.mem.Bytes())

	var events []interlog.Event

	for {
		_, e, ok := view.Next()
		if !ok {
			return events
		}

		events = append(events, e)
	}
}
