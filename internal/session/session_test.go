package session_test

import (
	"net/netip"
	"testing"
	"time"

	"github.com/dnsglass/passivedns/internal/config"
	"github.com/dnsglass/passivedns/internal/events"
	"github.com/dnsglass/passivedns/internal/session"
)

type recordedEvent struct {
	id   events.ID
	args []any
}

type fakeSink struct {
	events []recordedEvent
}

func (s *fakeSink) HasHandler(id events.ID) bool { return true }
func (s *fakeSink) Emit(id events.ID, args ...any) {
	s.events = append(s.events, recordedEvent{id: id, args: args})
}

func (s *fakeSink) count(id events.ID) int {
	n := 0
	for _, e := range s.events {
		if e.id == id {
			n++
		}
	}
	return n
}

func u16(v uint16) []byte { return []byte{byte(v >> 8), byte(v)} }

func minimalQuery(id uint16) []byte {
	b := append([]byte{}, u16(id)...)
	b = append(b, u16(0x0100)...) // RD set, QR=0
	b = append(b, u16(1)...)      // qdcount
	b = append(b, u16(0)...)
	b = append(b, u16(0)...)
	b = append(b, u16(0)...)
	b = append(b, 7, 'e', 'x', 'a', 'm', 'p', 'l', 'e', 3, 'c', 'o', 'm', 0)
	b = append(b, u16(1)...)
	b = append(b, u16(1)...)
	return b
}

func validConfig(t *testing.T) config.Config {
	t.Helper()
	cfg := config.Config{SessionTimeout: 2 * time.Second}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() err = %v", err)
	}
	return cfg
}

func newUDPSession(t *testing.T, sink *fakeSink) *session.Session {
	t.Helper()
	origAddr := netip.MustParseAddr("198.51.100.1")
	respAddr := netip.MustParseAddr("203.0.113.53")
	return session.New(session.TransportUDP, origAddr, 40000, respAddr, 53, validConfig(t), sink, nil)
}

func TestUDPDeliverStreamParsesDirectly(t *testing.T) {
	sink := &fakeSink{}
	s := newUDPSession(t, sink)
	s.DeliverStream(minimalQuery(1), true)
	if sink.count(events.RequestEvent) != 1 {
		t.Errorf("expected one dns_request event, got %d", sink.count(events.RequestEvent))
	}
}

func TestUDPNonDNSRequestOnGarbage(t *testing.T) {
	sink := &fakeSink{}
	s := newUDPSession(t, sink)
	s.DeliverStream([]byte{1, 2, 3}, true)
	if sink.count(events.NonDNSRequestEvent) != 1 {
		t.Errorf("expected one non_dns_request event, got %d", sink.count(events.NonDNSRequestEvent))
	}
}

func TestUDPNoNonDNSRequestOnResponderGarbage(t *testing.T) {
	sink := &fakeSink{}
	s := newUDPSession(t, sink)
	s.DeliverStream([]byte{1, 2, 3}, false)
	if sink.count(events.NonDNSRequestEvent) != 0 {
		t.Errorf("expected no non_dns_request event for responder-side garbage, got %d", sink.count(events.NonDNSRequestEvent))
	}
}

func TestUDPSessionDoneOnClose(t *testing.T) {
	sink := &fakeSink{}
	s := newUDPSession(t, sink)
	s.DeliverStream(minimalQuery(2), true)
	s.Close()
	if sink.count(events.UDPSessionDoneEvent) != 1 {
		t.Errorf("expected one udp_session_done event, got %d", sink.count(events.UDPSessionDoneEvent))
	}
}

func TestUDPIdleTimeoutEmitsConnectionTimeoutAndSuppressesSessionDone(t *testing.T) {
	sink := &fakeSink{}
	s := newUDPSession(t, sink)
	s.DeliverStream(minimalQuery(3), true)

	expired := s.OnIdleTimeout(time.Now().Add(5 * time.Second))
	if !expired {
		t.Fatal("expected the session to be reported expired")
	}
	if sink.count(events.ConnectionTimeoutEvent) != 1 {
		t.Errorf("expected one connection_timeout event, got %d", sink.count(events.ConnectionTimeoutEvent))
	}

	s.Close()
	if sink.count(events.UDPSessionDoneEvent) != 0 {
		t.Error("expected Close after an idle timeout to not also emit udp_session_done")
	}
}

func TestUDPIdleTimeoutDoesNotFireEarly(t *testing.T) {
	sink := &fakeSink{}
	s := newUDPSession(t, sink)
	s.DeliverStream(minimalQuery(4), true)

	if s.OnIdleTimeout(time.Now()) {
		t.Error("expected no timeout immediately after activity")
	}
}

func TestTCPReassemblyAcrossSegments(t *testing.T) {
	sink := &fakeSink{}
	origAddr := netip.MustParseAddr("198.51.100.1")
	respAddr := netip.MustParseAddr("203.0.113.53")
	s := session.New(session.TransportTCP, origAddr, 40001, respAddr, 53, validConfig(t), sink, nil)

	query := minimalQuery(5)
	framed := append(u16(uint16(len(query))), query...)

	s.DeliverStream(framed[:2], true)
	s.DeliverStream(framed[2:], true)

	if sink.count(events.RequestEvent) != 1 {
		t.Errorf("expected one dns_request event from reassembled TCP stream, got %d", sink.count(events.RequestEvent))
	}
}

func TestTCPCloseFlushesBothDirections(t *testing.T) {
	sink := &fakeSink{}
	origAddr := netip.MustParseAddr("198.51.100.1")
	respAddr := netip.MustParseAddr("203.0.113.53")
	s := session.New(session.TransportTCP, origAddr, 40002, respAddr, 53, validConfig(t), sink, nil)

	query := minimalQuery(6)
	framed := append(u16(uint16(len(query))), query...)
	s.DeliverStream(framed[:len(framed)-2], true) // withhold the last 2 bytes

	s.Close()
	// the partial body is flushed and handed to ParseMessage with role
	// unknown; since it's truncated it should fail to parse, but must not
	// panic and must not emit a spurious dns_request.
	if sink.count(events.RequestEvent) != 0 {
		t.Errorf("expected no dns_request from a truncated flush, got %d", sink.count(events.RequestEvent))
	}
}
