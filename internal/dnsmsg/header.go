package dnsmsg

import (
	"fmt"

	"github.com/dnsglass/passivedns/internal/wire"
)

// Header is a DNS message header (RFC 1035 §4.1.1): fixed 12 bytes, no
// name compression, no RDATA to speak of.
type Header struct {
	ID      uint16
	Flags   uint16
	QDCount uint16
	ANCount uint16
	NSCount uint16
	ARCount uint16
}

// HeaderSize is the wire size of a DNS header.
const HeaderSize = 12

// ParseHeader reads the fixed 12-byte header from cur's current position.
func ParseHeader(cur *wire.Cursor) (Header, error) {
	var h Header
	var err error
	if h.ID, err = cur.U16(); err != nil {
		return Header{}, fmt.Errorf("header id: %w", ErrDNSError)
	}
	if h.Flags, err = cur.U16(); err != nil {
		return Header{}, fmt.Errorf("header flags: %w", ErrDNSError)
	}
	if h.QDCount, err = cur.U16(); err != nil {
		return Header{}, fmt.Errorf("header qdcount: %w", ErrDNSError)
	}
	if h.ANCount, err = cur.U16(); err != nil {
		return Header{}, fmt.Errorf("header ancount: %w", ErrDNSError)
	}
	if h.NSCount, err = cur.U16(); err != nil {
		return Header{}, fmt.Errorf("header nscount: %w", ErrDNSError)
	}
	if h.ARCount, err = cur.U16(); err != nil {
		return Header{}, fmt.Errorf("header arcount: %w", ErrDNSError)
	}
	return h, nil
}

func (h Header) IsQuery() bool           { return h.Flags&QRFlag == 0 }
func (h Header) IsResponse() bool        { return h.Flags&QRFlag != 0 }
func (h Header) Authoritative() bool     { return h.Flags&AAFlag != 0 }
func (h Header) Truncated() bool         { return h.Flags&TCFlag != 0 }
func (h Header) RecursionDesired() bool  { return h.Flags&RDFlag != 0 }
func (h Header) RecursionAvailable() bool { return h.Flags&RAFlag != 0 }
func (h Header) AuthenticData() bool     { return h.Flags&ADFlag != 0 }
func (h Header) CheckingDisabled() bool  { return h.Flags&CDFlag != 0 }
func (h Header) Opcode() Opcode          { return OpcodeFromFlags(h.Flags) }
func (h Header) RCode() RCode            { return RCodeFromFlags(h.Flags) }
