package dnsmsg

import (
	"fmt"

	"github.com/dnsglass/passivedns/internal/wire"
)

// RR is the common prefix of every resource record (RFC 1035 §4.1.3) plus
// its decoded RDATA. Data holds one of the typed payload structs declared
// in this package's per-type files (AData, AAAAData, NameData, SOAData,
// A6Data, MXData, TXTData, CAAData, SRVData, OPTData, TSIGData, RRSIGData,
// DNSKEYData, NSECData, NSEC3Data, DSData) or OpaqueData for any type this
// package does not decode further.
type RR struct {
	Name     string
	Type     RRType
	Class    RRClass
	TTL      uint32
	RDLength uint16
	Data     any
}

// ParseRR reads one resource record starting at cur's current position.
// The owner name, TYPE, CLASS, TTL and RDLENGTH fields are the fixed
// prefix every RR shares; a short read anywhere in that prefix, or an
// RDLENGTH that claims more bytes than remain in the message, is fatal —
// the caller must abandon the whole message, since the record boundary
// itself cannot be trusted.
//
// A typed RDATA parser failure is fatal only when the RDATA is too short
// to hold that type's fixed fields; every other RDATA-level anomaly is
// reported through weird and produces a best-effort, possibly truncated
// Data value, and ParseRR still returns successfully. Whatever the typed
// parser actually consumed, ParseRR repositions the cursor to the
// record's declared end (rdataStart+RDLength) before returning, so a
// parser that under- or over-reads never misaligns the rest of the
// message.
func ParseRR(msg []byte, cur *wire.Cursor, opts wire.NameOptions, weird wire.WeirdFunc) (RR, error) {
	prefix, err := ParseRRPrefix(msg, cur, opts, weird)
	if err != nil {
		return RR{}, err
	}
	return FinishRR(msg, cur, prefix, opts, weird)
}

// RRPrefix is the common, type-independent part of a resource record:
// everything up to (but not including) the RDATA. ParseRRPrefix leaves
// the cursor positioned at the start of RDATA so the caller can decide —
// based on Type, or on policy keyed off the responder's address — whether
// to decode it via FinishRR or skip it via SkipRData.
type RRPrefix struct {
	Name     string
	Type     RRType
	Class    RRClass
	TTL      uint32
	RDLength uint16
}

// ParseRRPrefix reads the owner name, TYPE, CLASS, TTL and RDLENGTH
// fields. Any short read, or an RDLENGTH claiming more bytes than remain
// in the message, is fatal: the record boundary can't be trusted, so the
// caller must abandon the whole message.
func ParseRRPrefix(msg []byte, cur *wire.Cursor, opts wire.NameOptions, weird wire.WeirdFunc) (RRPrefix, error) {
	name, err := wire.DecodeName(msg, cur, opts, weird)
	if err != nil {
		return RRPrefix{}, fmt.Errorf("rr name: %w", err)
	}

	rtype, err := cur.U16()
	if err != nil {
		return RRPrefix{}, fmt.Errorf("rr type: %w", ErrDNSError)
	}
	rclass, err := cur.U16()
	if err != nil {
		return RRPrefix{}, fmt.Errorf("rr class: %w", ErrDNSError)
	}
	ttl, err := cur.U32()
	if err != nil {
		return RRPrefix{}, fmt.Errorf("rr ttl: %w", ErrDNSError)
	}
	rdlen, err := cur.U16()
	if err != nil {
		return RRPrefix{}, fmt.Errorf("rr rdlength: %w", ErrDNSError)
	}
	if cur.Remaining() < int(rdlen) {
		return RRPrefix{}, fmt.Errorf("rr rdlength exceeds remaining message: %w", ErrDNSError)
	}
	return RRPrefix{Name: name, Type: RRType(rtype), Class: RRClass(rclass), TTL: ttl, RDLength: rdlen}, nil
}

// FinishRR decodes the typed RDATA described by prefix and returns the
// completed RR. Whatever the typed parser actually consumed, FinishRR
// repositions the cursor to the record's declared end before returning,
// so a parser that under- or over-reads never misaligns the rest of the
// message — a mismatch between what was consumed and RDLength is reported
// as DNS_RR_length_mismatch first. An error here is fatal only when the
// RDATA is too short to hold that type's fixed fields — every other
// RDATA-level anomaly is reported through weird and produces a
// best-effort Data value instead.
func FinishRR(msg []byte, cur *wire.Cursor, prefix RRPrefix, opts wire.NameOptions, weird wire.WeirdFunc) (RR, error) {
	rdataStart := cur.Pos()
	data, err := parseRData(prefix.Type, msg, cur, int(prefix.RDLength), prefix.Class, prefix.TTL, opts, weird)
	if err != nil {
		return RR{}, fmt.Errorf("rr rdata: %w", err)
	}
	if consumed := cur.Pos() - rdataStart; consumed != int(prefix.RDLength) {
		weird("DNS_RR_length_mismatch", rrTypeName(prefix.Type))
	}
	cur.Seek(rdataStart + int(prefix.RDLength))

	return RR{
		Name:     prefix.Name,
		Type:     prefix.Type,
		Class:    prefix.Class,
		TTL:      prefix.TTL,
		RDLength: prefix.RDLength,
		Data:     data,
	}, nil
}

// SkipRData advances the cursor past the RDATA described by prefix
// without decoding it, for the skip_table policy: records from a
// responder whose address falls in a skip network are parsed only as far
// as their common prefix (see RRPrefix), never their typed RDATA.
func SkipRData(cur *wire.Cursor, prefix RRPrefix) {
	cur.Skip(int(prefix.RDLength))
}

// parseRData dispatches to the typed parser for rt, or produces an
// OpaqueData for any type this package doesn't decode further.
func parseRData(rt RRType, msg []byte, cur *wire.Cursor, rdlen int, class RRClass, ttl uint32, opts wire.NameOptions, weird wire.WeirdFunc) (any, error) {
	switch rt {
	case TypeA, TypeAAAA:
		return parseAddressRData(rt, cur, rdlen)
	case TypeA6:
		return parseA6RData(msg, cur, rdlen, opts, weird)
	case TypeNS, TypeCNAME, TypePTR:
		return parseNameRData(msg, cur, rdlen, opts, weird)
	case TypeSOA:
		return parseSOARData(msg, cur, opts, weird)
	case TypeMX:
		return parseMXRData(msg, cur, opts, weird)
	case TypeTXT, TypeSPF:
		return parseTXTRData(cur, rdlen, weird)
	case TypeCAA:
		return parseCAARData(cur, rdlen, weird)
	case TypeSRV:
		return parseSRVRData(msg, cur, rdlen, opts, weird)
	case TypeOPT:
		return parseOPTRData(cur, rdlen, class, ttl, weird)
	case TypeTSIG:
		return parseTSIGRData(msg, cur, rdlen, opts, weird)
	case TypeRRSIG:
		return parseRRSIGRData(msg, cur, rdlen, opts, weird)
	case TypeDNSKEY:
		return parseDNSKEYRData(cur, rdlen, weird)
	case TypeNSEC:
		return parseNSECRData(msg, cur, rdlen, opts, weird)
	case TypeNSEC3:
		return parseNSEC3RData(cur, rdlen, weird)
	case TypeDS:
		return parseDSRData(cur, rdlen, weird)
	case TypeHINFO, TypeWKS, TypeNB:
		return parseOpaqueRData(cur, rdlen)
	default:
		weird("DNS_RR_unknown_type", rrTypeName(rt))
		return parseOpaqueRData(cur, rdlen)
	}
}

// OpaqueData is the RDATA payload for any record type this package does
// not decode further (HINFO, WKS, NAPTR, SSHFP, TLSA, and anything
// unrecognized). The bytes are copied, never aliased to msg.
type OpaqueData struct {
	Raw []byte
}

func parseOpaqueRData(cur *wire.Cursor, rdlen int) (OpaqueData, error) {
	b, err := cur.BytesN(rdlen)
	if err != nil {
		return OpaqueData{}, err
	}
	out := make([]byte, len(b))
	copy(out, b)
	return OpaqueData{Raw: out}, nil
}
