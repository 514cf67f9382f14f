package dnsmsg

import (
	"github.com/dnsglass/passivedns/internal/wire"
)

// EDNS (RFC 6891) repurposes the RR common prefix: CLASS carries the
// sender's UDP payload size, and TTL is split into an extended RCODE,
// version, and flag bits rather than a cache lifetime.
//
//	+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+
//	|      EXTENDED-RCODE       |        VERSION     |
//	+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+
//	|DO|                Z (reserved)                 |
//	+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+
const (
	ednsDOFlag        = 1 << 15
	ednsOptionHeader  = 4
)

// EDNSOption is a single option from an OPT record's RDATA.
type EDNSOption struct {
	Code uint16
	Data []byte
}

// OPTData is the RDATA of an EDNS OPT pseudo-record, plus the CLASS/TTL
// fields reinterpreted per RFC 6891.
type OPTData struct {
	UDPPayloadSize uint16
	ExtendedRCode  uint8
	Version        uint8
	DNSSECOk       bool
	Options        []EDNSOption
}

func parseOPTRData(cur *wire.Cursor, rdlen int, class RRClass, ttl uint32, weird wire.WeirdFunc) (any, error) {
	d := OPTData{
		UDPPayloadSize: uint16(class),
		ExtendedRCode:  uint8((ttl >> 24) & 0xff),
		Version:        uint8((ttl >> 16) & 0xff),
		DNSSECOk:       ttl&ednsDOFlag != 0,
	}
	if ttl&0x7fff != 0 {
		weird("DNS_EDNS_reserved_bits_set")
	}

	end := cur.Pos() + rdlen
	for cur.Pos()+ednsOptionHeader <= end {
		code, err := cur.U16()
		if err != nil {
			break
		}
		ln, err := cur.U16()
		if err != nil {
			break
		}
		remaining := end - cur.Pos()
		if int(ln) > remaining {
			weird("DNS_EDNS_option_len_gt_rdlen")
			ln = uint16(remaining)
		}
		data, err := cur.BytesN(int(ln))
		if err != nil {
			break
		}
		cp := make([]byte, len(data))
		copy(cp, data)
		d.Options = append(d.Options, EDNSOption{Code: code, Data: cp})
	}
	return d, nil
}
