package events

import (
	"time"

	"github.com/dnsglass/passivedns/internal/dnsmsg"
)

// NewMsgEvent builds the dns_msg event's argument list: the parsed
// header, which side of the flow sent it, the message's original length
// on the wire, and whether this call marks the start or the end of
// processing that message.
func NewMsgEvent(h dnsmsg.Header, isOrig bool, length int, phase MsgPhase) (ID, []any) {
	return MsgEvent, []any{h, Bool(isOrig), Count(length), String(phase.String())}
}

// NewQuestionEvent builds one of dns_request/dns_rejected/dns_query_reply,
// chosen by the caller based on the header's QR bit and section counts.
func NewQuestionEvent(id ID, q dnsmsg.Question) (ID, []any) {
	return id, []any{q}
}

// NewAnswerEvent builds the dns_answer event for one resource record's
// common prefix (owner name, type, class, TTL), independent of its typed
// RDATA.
func NewAnswerEvent(rr dnsmsg.RR) (ID, []any) {
	return AnswerEvent, []any{String(rr.Name), rr.Type, rr.Class, Interval(time.Duration(rr.TTL) * time.Second)}
}

// NewSOAEvent builds the dns_soa event.
func NewSOAEvent(rr dnsmsg.RR, soa dnsmsg.SOAData) (ID, []any) {
	return SOAEvent, []any{String(rr.Name), soa}
}

// NewEDNSEvent builds the dns_edns_additional event.
func NewEDNSEvent(rr dnsmsg.RR, opt dnsmsg.OPTData) (ID, []any) {
	return EDNSAdditionalEvent, []any{String(rr.Name), opt}
}

// NewTSIGEvent builds the dns_tsig_additional event.
func NewTSIGEvent(rr dnsmsg.RR, tsig dnsmsg.TSIGData) (ID, []any) {
	return TSIGAdditionalEvent, []any{String(rr.Name), tsig}
}

// NewRRSIGEvent builds the dns_rrsig_rr event.
func NewRRSIGEvent(rr dnsmsg.RR, sig dnsmsg.RRSIGData) (ID, []any) {
	return RRSIGEvent, []any{String(rr.Name), sig}
}

// NewDNSKEYEvent builds the dns_dnskey_rr event.
func NewDNSKEYEvent(rr dnsmsg.RR, key dnsmsg.DNSKEYData) (ID, []any) {
	return DNSKEYEvent, []any{String(rr.Name), key}
}

// NewNSEC3Event builds the dns_nsec3_rr event.
func NewNSEC3Event(rr dnsmsg.RR, n3 dnsmsg.NSEC3Data) (ID, []any) {
	return NSEC3Event, []any{String(rr.Name), n3}
}

// NewDSEvent builds the dns_ds_rr event.
func NewDSEvent(rr dnsmsg.RR, ds dnsmsg.DSData) (ID, []any) {
	return DSEvent, []any{String(rr.Name), ds}
}

// NewUnknownReplyEvent builds the dns_unknown_reply event for a record
// type this package only parses opaquely.
func NewUnknownReplyEvent(rr dnsmsg.RR, opaque dnsmsg.OpaqueData) (ID, []any) {
	return UnknownReplyEvent, []any{String(rr.Name), rr.Type, opaque}
}
