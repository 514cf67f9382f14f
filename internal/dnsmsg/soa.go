package dnsmsg

import (
	"fmt"

	"github.com/dnsglass/passivedns/internal/wire"
)

// SOAData is the RDATA of a Start of Authority record (RFC 1035 §3.3.13).
type SOAData struct {
	MName   string
	RName   string
	Serial  uint32
	Refresh uint32
	Retry   uint32
	Expire  uint32
	Minimum uint32
}

func parseSOARData(msg []byte, cur *wire.Cursor, opts wire.NameOptions, weird wire.WeirdFunc) (any, error) {
	mname, err := wire.DecodeName(msg, cur, opts, weird)
	if err != nil {
		return nil, err
	}
	rname, err := wire.DecodeName(msg, cur, opts, weird)
	if err != nil {
		return nil, err
	}
	var d SOAData
	d.MName, d.RName = mname, rname
	if d.Serial, err = cur.U32(); err != nil {
		return nil, fmt.Errorf("soa serial: %w", ErrDNSError)
	}
	if d.Refresh, err = cur.U32(); err != nil {
		return nil, fmt.Errorf("soa refresh: %w", ErrDNSError)
	}
	if d.Retry, err = cur.U32(); err != nil {
		return nil, fmt.Errorf("soa retry: %w", ErrDNSError)
	}
	if d.Expire, err = cur.U32(); err != nil {
		return nil, fmt.Errorf("soa expire: %w", ErrDNSError)
	}
	if d.Minimum, err = cur.U32(); err != nil {
		return nil, fmt.Errorf("soa minimum: %w", ErrDNSError)
	}
	return d, nil
}
