package events_test

import (
	"testing"

	"github.com/dnsglass/passivedns/internal/dnsmsg"
	"github.com/dnsglass/passivedns/internal/events"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	handlers map[events.ID]bool
	emitted  []events.ID
}

func (s *recordingSink) HasHandler(id events.ID) bool { return s.handlers[id] }
func (s *recordingSink) Emit(id events.ID, args ...any) {
	s.emitted = append(s.emitted, id)
}

func TestNewAnswerEventCarriesTTLAsInterval(t *testing.T) {
	rr := dnsmsg.RR{Name: "example.com", Type: dnsmsg.TypeA, Class: dnsmsg.ClassIN, TTL: 300}
	id, args := events.NewAnswerEvent(rr)
	require.Equal(t, events.AnswerEvent, id)
	require.Len(t, args, 4)

	sink := &recordingSink{handlers: map[events.ID]bool{events.AnswerEvent: true}}
	require.True(t, sink.HasHandler(events.AnswerEvent))
	sink.Emit(id, args...)
	require.Equal(t, []events.ID{events.AnswerEvent}, sink.emitted)
}

func TestNewDSEventCarriesOwnerAndData(t *testing.T) {
	rr := dnsmsg.RR{Name: "example.com"}
	ds := dnsmsg.DSData{KeyTag: 1234, Algorithm: 8, DigestType: 2}
	id, args := events.NewDSEvent(rr, ds)
	require.Equal(t, events.DSEvent, id)
	require.Equal(t, events.String("example.com"), args[0])
	require.Equal(t, ds, args[1])
}
