// Package session adapts a live transport (UDP datagrams or a reassembled
// TCP byte stream) onto one internal/analyzer.Interpreter, and implements
// the analyzer.Connection collaborator the interpreter reports anomalies
// and role changes to.
package session

import (
	"log/slog"
	"net/netip"
	"time"

	"github.com/dnsglass/passivedns/internal/analyzer"
	"github.com/dnsglass/passivedns/internal/config"
	"github.com/dnsglass/passivedns/internal/events"
	"github.com/dnsglass/passivedns/internal/reassembler"
)

// Transport identifies which framing a Session expects.
type Transport int

const (
	TransportUDP Transport = iota
	TransportTCP
)

// Session is one flow's adapter between the transport and the
// interpreter: it frames TCP bytes (or passes UDP datagrams straight
// through), tracks idle time for the UDP timeout policy, and satisfies
// analyzer.Connection so the interpreter can report anomalies back to it.
// Not safe for concurrent use — one Session per flow.
type Session struct {
	transport      Transport
	sessionTimeout time.Duration
	sink           events.Sink
	logger         *slog.Logger

	origAddr, respAddrField netip.Addr
	origPort, respPortField uint16

	interp *analyzer.Interpreter

	origReasm *reassembler.Reassembler
	respReasm *reassembler.Reassembler

	lastActivity  time.Time
	sessionDone   bool
	protoConfirmed bool
}

// New builds a Session for one flow. origAddr/origPort and
// respAddr/respPort are the flow's endpoints as known when the flow was
// first seen — Connection.FlipRoles swaps them if the first message's
// direction turns out to have been guessed wrong.
func New(transport Transport, origAddr netip.Addr, origPort uint16, respAddr netip.Addr, respPort uint16, cfg config.Config, sink events.Sink, logger *slog.Logger) *Session {
	s := &Session{
		transport:       transport,
		sessionTimeout:  cfg.SessionTimeout,
		sink:            sink,
		logger:          logger,
		origAddr:        origAddr,
		origPort:        origPort,
		respAddrField:   respAddr,
		respPortField:   respPort,
	}
	s.interp = analyzer.NewInterpreter(s, cfg, sink)

	if transport == TransportTCP {
		s.origReasm = reassembler.New(func(msg []byte, complete bool) {
			s.parse(msg, roleFor(analyzer.RoleQuery, complete), true)
		})
		s.respReasm = reassembler.New(func(msg []byte, complete bool) {
			s.parse(msg, roleFor(analyzer.RoleResponse, complete), false)
		})
	}
	return s
}

// DeliverStream feeds newly observed bytes for one direction of the flow.
// For a UDP session each call is one whole datagram and is parsed
// directly; for a TCP session the bytes are fed to that direction's
// length-prefixed framer, which may in turn deliver zero or more complete
// messages to the interpreter.
func (s *Session) DeliverStream(data []byte, isOrig bool) {
	s.lastActivity = time.Now()

	if s.transport == TransportUDP {
		role := analyzer.RoleResponse
		if isOrig {
			role = analyzer.RoleQuery
		}
		s.parse(data, role, isOrig)
		return
	}

	if isOrig {
		s.origReasm.DeliverStream(data)
	} else {
		s.respReasm.DeliverStream(data)
	}
}

// FlushStream delivers whatever partial TCP message is buffered for one
// direction to the interpreter with analyzer.RoleUnknown, since a flushed
// tail never reached a complete record boundary. It is a no-op for UDP
// sessions.
func (s *Session) FlushStream(isOrig bool) {
	if s.transport != TransportTCP {
		return
	}
	if isOrig {
		s.origReasm.FlushStream()
	} else {
		s.respReasm.FlushStream()
	}
}

// Close flushes both TCP directions (their own partial-body delivery
// notifies the interpreter of the cutoff, per the original analyzer's
// ConnectionClosed behavior) or, for UDP, emits udp_session_done if the
// session hadn't already finalized via the idle timeout.
func (s *Session) Close() {
	if s.transport == TransportTCP {
		s.FlushStream(true)
		s.FlushStream(false)
		return
	}
	if !s.sessionDone && s.sink.HasHandler(events.UDPSessionDoneEvent) {
		s.sink.Emit(events.UDPSessionDoneEvent)
	}
	s.sessionDone = true
}

// OnIdleTimeout is called periodically by whatever schedules session
// timers. now is the current time; it returns true when the session has
// gone idle long enough to be torn down, in which case the caller must
// remove it (and must not call OnIdleTimeout again). The 1-second slack
// avoids double-arming the timer for the common single-query/single-reply
// exchange.
func (s *Session) OnIdleTimeout(now time.Time) bool {
	if s.transport != TransportUDP {
		return false
	}
	if now.Sub(s.lastActivity) < s.sessionTimeout-time.Second {
		return false
	}
	if s.sink.HasHandler(events.ConnectionTimeoutEvent) {
		s.sink.Emit(events.ConnectionTimeoutEvent)
	}
	s.sessionDone = true
	return true
}

// roleFor reports the role a reassembler's Deliver callback should pass to
// the interpreter: the direction's normal role for a complete message, or
// analyzer.RoleUnknown for FlushStream's partial tail.
func roleFor(normal analyzer.Role, complete bool) analyzer.Role {
	if !complete {
		return analyzer.RoleUnknown
	}
	return normal
}

// parse hands a fully framed message to the interpreter, emitting
// non_dns_request if the originator side produced bytes the interpreter
// could not parse as DNS at all.
func (s *Session) parse(data []byte, role analyzer.Role, isOrig bool) {
	if ok := s.interp.ParseMessage(data, role); !ok && isOrig {
		if s.sink.HasHandler(events.NonDNSRequestEvent) {
			raw := make([]byte, len(data))
			copy(raw, data)
			s.sink.Emit(events.NonDNSRequestEvent, events.String(s.respAddrField.String()), raw)
		}
	}
}

// RespAddr implements analyzer.Connection.
func (s *Session) RespAddr() netip.Addr { return s.respAddrField }

// RespPort implements analyzer.Connection.
func (s *Session) RespPort() uint16 { return s.respPortField }

// LastActivity implements analyzer.Connection.
func (s *Session) LastActivity() time.Time { return s.lastActivity }

// FlipRoles implements analyzer.Connection: swaps which endpoint this
// Session considers the originator and which it considers the responder.
func (s *Session) FlipRoles() {
	s.origAddr, s.respAddrField = s.respAddrField, s.origAddr
	s.origPort, s.respPortField = s.respPortField, s.origPort
}

// Weird implements analyzer.Connection.
func (s *Session) Weird(name string, detail ...string) {
	if s.sink.HasHandler(events.WeirdEvent) {
		args := make([]any, 0, len(detail)+1)
		args = append(args, events.String(name))
		for _, d := range detail {
			args = append(args, events.String(d))
		}
		s.sink.Emit(events.WeirdEvent, args...)
	}
}

// Internal implements analyzer.Connection: this module's own invariant
// was violated, not a malformed-traffic anomaly, so it goes to the logger
// rather than the event sink.
func (s *Session) Internal(reason string) {
	if s.logger != nil {
		s.logger.Error("dns interpreter internal error", "reason", reason, "responder", s.respAddrField)
	}
}

// ProtocolViolation implements analyzer.Connection.
func (s *Session) ProtocolViolation(tag string) {
	if s.logger != nil {
		s.logger.Warn("dns protocol violation", "tag", tag, "responder", s.respAddrField)
	}
}

// ProtocolConfirmation implements analyzer.Connection: a successfully
// parsed answer section confirms this flow really is DNS.
func (s *Session) ProtocolConfirmation() {
	s.protoConfirmed = true
}

// Confirmed reports whether this flow has ever had a successfully parsed
// answer — useful for a status surface distinguishing confirmed DNS flows
// from ones still only carrying unanswered queries.
func (s *Session) Confirmed() bool { return s.protoConfirmed }
