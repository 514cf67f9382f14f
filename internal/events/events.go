// Package events defines the event values the interpreter hands off to an
// external sink, and the scalar value wrappers used to build them. This
// module has no embedded scripting runtime to hand these values to, so
// they are thin, concretely typed Go structs rather than a generic value
// representation.
package events

import (
	"net/netip"
	"time"
)

// ID names a kind of event. Sinks use it to decide whether they have a
// handler registered before the interpreter does the work of building the
// event's argument list.
type ID string

const (
	MsgEvent            ID = "dns_msg"
	RequestEvent        ID = "dns_request"
	RejectedEvent       ID = "dns_rejected"
	QueryReplyEvent     ID = "dns_query_reply"
	AnswerEvent         ID = "dns_answer"
	SOAEvent            ID = "dns_soa"
	EDNSAdditionalEvent ID = "dns_edns_additional"
	TSIGAdditionalEvent ID = "dns_tsig_additional"
	RRSIGEvent          ID = "dns_rrsig_rr"
	DNSKEYEvent         ID = "dns_dnskey_rr"
	NSEC3Event          ID = "dns_nsec3_rr"
	DSEvent             ID = "dns_ds_rr"
	UnknownReplyEvent    ID = "dns_unknown_reply"
	NonDNSRequestEvent   ID = "non_dns_request"
	UDPSessionDoneEvent  ID = "udp_session_done"
	ConnectionTimeoutEvent ID = "connection_timeout"
	WeirdEvent           ID = "weird"
)

// Sink is the external collaborator the interpreter hands decoded events
// to. It never reads state back into the parser — see internal/store for a
// concrete SQLite-backed implementation used by the reference binaries.
type Sink interface {
	// HasHandler reports whether anything is registered for id. The
	// interpreter calls this before doing the work of constructing an
	// event's arguments, so a sink with no interest in, say, NSEC3
	// records costs nothing beyond the call itself.
	HasHandler(id ID) bool
	// Emit hands a fully built event to the sink. args are already-owned
	// copies; the sink may retain them indefinitely.
	Emit(id ID, args ...any)
}

// MsgPhase distinguishes the begin and end dns_msg events the interpreter
// emits around each message: begin fires once the header is parsed and
// before any section is walked, end fires once every section that will be
// parsed has been.
type MsgPhase int

const (
	MsgBegin MsgPhase = iota
	MsgEnd
)

func (p MsgPhase) String() string {
	if p == MsgEnd {
		return "end"
	}
	return "begin"
}

// Count, Bool, Interval, Addr, and String are typed scalar wrappers used
// when building event argument lists, so a Sink implementation can type-
// switch on them instead of re-deriving Go types from bare interface{}.
type Count uint64
type Bool bool
type Interval time.Duration
type Addr netip.Addr
type String string
