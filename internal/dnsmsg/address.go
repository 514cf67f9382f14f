package dnsmsg

import (
	"fmt"
	"net/netip"

	"github.com/dnsglass/passivedns/internal/wire"
)

// AData is the RDATA of an A record (RFC 1035 §3.4.1): a 4-byte IPv4
// address.
type AData struct {
	Addr netip.Addr
}

// AAAAData is the RDATA of an AAAA record (RFC 3596): a 16-byte IPv6
// address.
type AAAAData struct {
	Addr netip.Addr
}

func parseAddressRData(rt RRType, cur *wire.Cursor, rdlen int) (any, error) {
	want := 4
	if rt == TypeAAAA {
		want = 16
	}
	if rdlen != want {
		return nil, fmt.Errorf("%s rdlength must be %d, got %d: %w", rrTypeName(rt), want, rdlen, ErrDNSError)
	}
	b, err := cur.BytesN(rdlen)
	if err != nil {
		return nil, err
	}
	if rt == TypeAAAA {
		var a16 [16]byte
		copy(a16[:], b)
		return AAAAData{Addr: netip.AddrFrom16(a16)}, nil
	}
	var a4 [4]byte
	copy(a4[:], b)
	return AData{Addr: netip.AddrFrom4(a4)}, nil
}

func rrTypeName(rt RRType) string {
	switch rt {
	case TypeA:
		return "A"
	case TypeAAAA:
		return "AAAA"
	default:
		return fmt.Sprintf("type %d", rt)
	}
}
