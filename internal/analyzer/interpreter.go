// Package analyzer implements the interpreter's per-flow message parser:
// the piece that walks a single DNS message's sections, dispatching to
// internal/dnsmsg's record parsers and internal/events' builders, and
// applying the skip-section policy.
package analyzer

import (
	"github.com/dnsglass/passivedns/internal/config"
	"github.com/dnsglass/passivedns/internal/dnsmsg"
	"github.com/dnsglass/passivedns/internal/events"
	"github.com/dnsglass/passivedns/internal/wire"
)

// Interpreter parses DNS messages for one flow. It is not safe for
// concurrent use — one instance per flow, invoked synchronously by
// whatever hands it bytes (internal/session, directly for UDP or via a
// internal/reassembler.Reassembler for TCP).
type Interpreter struct {
	conn Connection
	cfg  config.Config
	sink events.Sink

	sawFirstMessage bool
}

// NewInterpreter builds an Interpreter bound to one flow. cfg must already
// have had Validate called.
func NewInterpreter(conn Connection, cfg config.Config, sink events.Sink) *Interpreter {
	return &Interpreter{conn: conn, cfg: cfg, sink: sink}
}

// ParseMessage parses one complete DNS message. isQuery reflects which
// direction delivered the bytes, as known to the caller — RoleUnknown for
// a TCP stream's flushed partial tail, where the framing layer never saw a
// complete record boundary. ParseMessage returns false if the message
// could not be parsed at all — callers must not assume section events
// were emitted in that case, though a begin event and an end event still
// may have fired (every failure after the header emits the end event).
func (in *Interpreter) ParseMessage(data []byte, isQuery Role) bool {
	if len(data) < dnsmsg.HeaderSize {
		in.conn.Weird("DNS_truncated_len_lt_hdr_len")
		return false
	}

	cur := wire.NewCursor(data)
	hdr, err := dnsmsg.ParseHeader(cur)
	if err != nil {
		in.conn.Weird("DNS_truncated_len_lt_hdr_len")
		return false
	}

	isOrig := in.applyRoleFlip(hdr, isQuery)

	if in.sink.HasHandler(events.MsgEvent) {
		in.emit(events.NewMsgEvent(hdr, isOrig, len(data), events.MsgBegin))
	}

	if in.cfg.MaxQueries > 0 && uint64(hdr.QDCount) > in.cfg.MaxQueries {
		in.conn.ProtocolViolation("DNS_Conn_count_too_large")
		in.conn.Weird("DNS_Conn_count_too_large")
		in.emitEndEvent(hdr, isOrig, len(data))
		return false
	}

	opts := wire.NameOptions{ResponderPort: in.conn.RespPort()}
	weird := in.conn.Weird

	if !in.parseQuestions(data, cur, hdr, opts, weird) {
		in.emitEndEvent(hdr, isOrig, len(data))
		return false
	}

	answerInfo := MsgInfo{IsQuery: isQuery, Section: SectionAnswer}
	if !in.parseRRSection(data, cur, int(hdr.ANCount), answerInfo, opts, weird) {
		in.emitEndEvent(hdr, isOrig, len(data))
		return false
	}
	in.conn.ProtocolConfirmation()

	skipAuth := in.cfg.SkipAllAuth
	skipAddl := in.cfg.SkipAllAddl
	if hdr.ANCount > 0 {
		skipAuth = in.cfg.SkipAllAuth || hdr.NSCount == 0 || in.cfg.AuthSkipTable().Contains(in.conn.RespAddr())
		skipAddl = in.cfg.SkipAllAddl || hdr.ARCount == 0 || in.cfg.AddlSkipTable().Contains(in.conn.RespAddr())
	}
	if hdr.ANCount > 0 && skipAuth && skipAddl {
		in.emitEndEvent(hdr, isOrig, len(data))
		return true
	}

	authInfo := MsgInfo{IsQuery: isQuery, Section: SectionAuthority, SkipEvent: skipAuth}
	if !in.parseRRSection(data, cur, int(hdr.NSCount), authInfo, opts, weird) {
		in.emitEndEvent(hdr, isOrig, len(data))
		return false
	}

	addlInfo := MsgInfo{IsQuery: isQuery, Section: SectionAdditional, SkipEvent: skipAddl}
	if !in.parseRRSection(data, cur, int(hdr.ARCount), addlInfo, opts, weird) {
		in.emitEndEvent(hdr, isOrig, len(data))
		return false
	}

	in.emitEndEvent(hdr, isOrig, len(data))
	return true
}

// applyRoleFlip implements step 2: on the flow's first message only, a
// query-direction packet whose header actually says "response" flips the
// flow's sense of originator/responder, unless the responder address is
// multicast (where query/response direction is not a reliable signal).
// It returns whether this message is, from the flow's perspective, from
// the originator.
func (in *Interpreter) applyRoleFlip(hdr dnsmsg.Header, isQuery Role) bool {
	isOrig := isQuery == RoleQuery
	if !in.sawFirstMessage {
		in.sawFirstMessage = true
		if isQuery == RoleQuery && hdr.IsResponse() && !in.conn.RespAddr().IsMulticast() {
			in.conn.FlipRoles()
			isOrig = false
		}
	}
	return isOrig
}

func (in *Interpreter) emitEndEvent(hdr dnsmsg.Header, isOrig bool, length int) {
	if in.sink.HasHandler(events.MsgEvent) {
		in.emit(events.NewMsgEvent(hdr, isOrig, length, events.MsgEnd))
	}
}

// emit spreads a builder's argument list into the sink's variadic args.
func (in *Interpreter) emit(id events.ID, args []any) {
	in.sink.Emit(id, args...)
}

// parseQuestions implements §4.5: decode qdcount questions, choosing
// dns_request/dns_rejected/dns_query_reply based on the header's QR bit
// and its answer/authority/additional counts. A
// failure to decode any question's name or fixed fields aborts the
// message.
func (in *Interpreter) parseQuestions(msg []byte, cur *wire.Cursor, hdr dnsmsg.Header, opts wire.NameOptions, weird wire.WeirdFunc) bool {
	for i := 0; i < int(hdr.QDCount); i++ {
		q, err := dnsmsg.ParseQuestion(msg, cur, opts, weird)
		if err != nil {
			return false
		}
		id := in.questionEventID(hdr)
		if in.sink.HasHandler(id) {
			in.emit(events.NewQuestionEvent(id, q))
		}
	}
	return true
}

func (in *Interpreter) questionEventID(hdr dnsmsg.Header) events.ID {
	switch {
	case hdr.IsQuery():
		return events.RequestEvent
	case hdr.ANCount == 0 && hdr.NSCount == 0 && hdr.ARCount == 0:
		return events.RejectedEvent
	default:
		return events.QueryReplyEvent
	}
}

// parseRRSection implements §4.6/§4.7 across one section's records. When
// info.SkipEvent is set the typed RDATA is never decoded — only the
// common prefix is parsed and the bytes are skipped — except for OPT and
// TSIG pseudo-records, whose RDATA is still decoded (so its anomalies are
// reported) but which, like every record in a skipped section, produce
// no event.
func (in *Interpreter) parseRRSection(msg []byte, cur *wire.Cursor, count int, info MsgInfo, opts wire.NameOptions, weird wire.WeirdFunc) bool {
	for i := 0; i < count; i++ {
		prefix, err := dnsmsg.ParseRRPrefix(msg, cur, opts, weird)
		if err != nil {
			return false
		}
		info.OwnerName = prefix.Name

		if info.SkipEvent && prefix.Type != dnsmsg.TypeOPT && prefix.Type != dnsmsg.TypeTSIG {
			dnsmsg.SkipRData(cur, prefix)
			continue
		}

		rr, err := dnsmsg.FinishRR(msg, cur, prefix, opts, weird)
		if err != nil {
			return false
		}
		in.emitRR(rr, info)
	}
	return true
}

// emitRR dispatches one fully-decoded RR to the event(s) its type
// warrants. The common dns_answer event fires for every record (subject
// to skip policy and handler presence); type-specific events layer on top
// of it for the types the interpreter understands.
func (in *Interpreter) emitRR(rr dnsmsg.RR, info MsgInfo) {
	if info.SkipEvent {
		return
	}
	if in.sink.HasHandler(events.AnswerEvent) {
		in.emit(events.NewAnswerEvent(rr))
	}

	switch data := rr.Data.(type) {
	case dnsmsg.SOAData:
		if in.sink.HasHandler(events.SOAEvent) {
			in.emit(events.NewSOAEvent(rr, data))
		}
	case dnsmsg.OPTData:
		if in.sink.HasHandler(events.EDNSAdditionalEvent) {
			in.emit(events.NewEDNSEvent(rr, data))
		}
	case dnsmsg.TSIGData:
		if in.sink.HasHandler(events.TSIGAdditionalEvent) {
			in.emit(events.NewTSIGEvent(rr, data))
		}
	case dnsmsg.RRSIGData:
		if in.sink.HasHandler(events.RRSIGEvent) {
			in.emit(events.NewRRSIGEvent(rr, data))
		}
	case dnsmsg.DNSKEYData:
		if in.sink.HasHandler(events.DNSKEYEvent) {
			in.emit(events.NewDNSKEYEvent(rr, data))
		}
	case dnsmsg.NSEC3Data:
		if in.sink.HasHandler(events.NSEC3Event) {
			in.emit(events.NewNSEC3Event(rr, data))
		}
	case dnsmsg.DSData:
		if in.sink.HasHandler(events.DSEvent) {
			in.emit(events.NewDSEvent(rr, data))
		}
	case dnsmsg.OpaqueData:
		if isUnknownOpaqueType(rr.Type) && in.sink.HasHandler(events.UnknownReplyEvent) {
			in.emit(events.NewUnknownReplyEvent(rr, data))
		}
	}
}

// isUnknownOpaqueType reports whether t is a type this package simply
// doesn't recognize, as opposed to one it deliberately parses opaquely
// (HINFO, WKS, NetBIOS NB, or SRV falling back on port 137) — only the
// former warrants a dns_unknown_reply event.
func isUnknownOpaqueType(t dnsmsg.RRType) bool {
	switch t {
	case dnsmsg.TypeHINFO, dnsmsg.TypeWKS, dnsmsg.TypeNB, dnsmsg.TypeSRV:
		return false
	default:
		return true
	}
}
