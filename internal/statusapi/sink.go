package statusapi

import "github.com/dnsglass/passivedns/internal/events"

// eventSink adapts a Recorder to events.Sink, so it can be wired directly
// into an events.Fanout alongside internal/store rather than requiring the
// binary to call RecordMessage/RecordWeird by hand.
type eventSink struct {
	recorder *Recorder
}

// NewEventSink returns an events.Sink that feeds r from dns_msg end events
// and weird reports.
func NewEventSink(r *Recorder) events.Sink {
	return eventSink{recorder: r}
}

func (s eventSink) HasHandler(id events.ID) bool {
	switch id {
	case events.MsgEvent, events.WeirdEvent:
		return true
	default:
		return false
	}
}

func (s eventSink) Emit(id events.ID, args ...any) {
	switch id {
	case events.MsgEvent:
		if len(args) < 4 {
			return
		}
		phase, _ := args[3].(events.String)
		if phase == events.String(events.MsgEnd.String()) {
			s.recorder.RecordMessage()
		}
	case events.WeirdEvent:
		if len(args) == 0 {
			return
		}
		name, _ := args[0].(events.String)
		s.recorder.RecordWeird(string(name))
	}
}
