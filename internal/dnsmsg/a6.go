package dnsmsg

import (
	"fmt"
	"net/netip"

	"github.com/dnsglass/passivedns/internal/wire"
)

// A6Data is the RDATA of a (deprecated, RFC 2874) A6 record: a prefix
// length, the address bits not covered by the prefix, and — when the
// prefix length is nonzero — the name of the record holding the prefix
// bits.
type A6Data struct {
	PrefixLen  uint8
	AddrSuffix netip.Addr
	PrefixName string
}

func parseA6RData(msg []byte, cur *wire.Cursor, rdlen int, opts wire.NameOptions, weird wire.WeirdFunc) (any, error) {
	if rdlen < 1 {
		return nil, fmt.Errorf("A6 rdlength must be at least 1, got %d: %w", rdlen, ErrDNSError)
	}
	start := cur.Pos()
	prefixLen, err := cur.U8()
	if err != nil {
		return nil, err
	}
	if prefixLen > 128 {
		weird("DNS_A6_bad_prefix_len")
		prefixLen = 128
	}
	suffixBits := 128 - int(prefixLen)
	suffixBytes := (suffixBits + 7) / 8

	var full [16]byte
	if suffixBytes > 0 {
		b, err := cur.BytesN(suffixBytes)
		if err != nil {
			return nil, err
		}
		copy(full[16-suffixBytes:], b)
	}

	var prefixName string
	if prefixLen > 0 {
		consumedSoFar := cur.Pos() - start
		if consumedSoFar < rdlen {
			prefixName, err = wire.DecodeName(msg, cur, opts, weird)
			if err != nil {
				return nil, err
			}
		}
	}

	return A6Data{
		PrefixLen:  prefixLen,
		AddrSuffix: netip.AddrFrom16(full),
		PrefixName: prefixName,
	}, nil
}
