package collector

import (
	"net"
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

func (s *fakeSink) HasHandler(events.ID) bool { return true }
func (s *fakeSink) Emit(id events.ID, args ...any) {
	s.events = append(s.events, recordedEvent{id: id, args: args})
}

func u16(v uint16) []byte { return []byte{byte(v >> 8), byte(v)} }

func minimalQuery(id uint16) []byte {
	b := append([]byte{}, u16(id)...)
	b = append(b, u16(0x0100)...)
	b = append(b, u16(1)...)
	b = append(b, u16(0)...)
	b = append(b, u16(0)...)
	b = append(b, u16(0)...)
	b = append(b, 7, 'e', 'x', 'a', 'm', 'p', 'l', 'e', 3, 'c', 'o', 'm', 0)
	b = append(b, u16(1)...)
	b = append(b, u16(1)...)
	return b
}

func lenPrefixed(msg []byte) []byte {
	return append(u16(uint16(len(msg))), msg...)
}

func validConfig(t *testing.T) config.Config {
	t.Helper()
	cfg := config.Config{SessionTimeout: 2 * time.Second}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() err = %v", err)
	}
	return cfg
}

func TestRelayForwardsBytesAndFeedsSession(t *testing.T) {
	sink := &fakeSink{}
	cfg := validConfig(t)
	sess := session.New(session.TransportTCP,
		netip.MustParseAddr("10.0.0.1"), 40000,
		netip.MustParseAddr("10.0.0.2"), 53,
		cfg, sink, nil)

	srcReader, srcWriter := net.Pipe()
	dstReader, dstWriter := net.Pipe()

	done := make(chan struct{}, 1)
	go relay(srcReader, dstWriter, sess, true, done)

	msg := lenPrefixed(minimalQuery(7))
	go func() {
		_, _ = srcWriter.Write(msg)
		srcWriter.Close()
	}()

	got := make([]byte, len(msg))
	if _, err := readFull(dstReader, got); err != nil {
		t.Fatalf("read from dst: %v", err)
	}
	if string(got) != string(msg) {
		t.Errorf("relayed bytes mismatch: got %x want %x", got, msg)
	}
	dstWriter.Close()
	<-done

	found := false
	for _, e := range sink.events {
		if e.id == events.RequestEvent {
			found = true
		}
	}
	if !found {
		t.Error("expected a dns_request event from the relayed query")
	}
}

func readFull(r net.Conn, buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := r.Read(buf[total:])
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func TestSplitHostPort(t *testing.T) {
	addr := &net.TCPAddr{IP: net.ParseIP("192.0.2.1"), Port: 5300}
	got, port := splitHostPort(addr)
	if got.String() != "192.0.2.1" || port != 5300 {
		t.Errorf("splitHostPort() = %v:%d, want 192.0.2.1:5300", got, port)
	}
}
