package dnsmsg

import (
	"fmt"

	"github.com/dnsglass/passivedns/internal/wire"
)

// SRVData is the RDATA of an SRV record (RFC 2782).
type SRVData struct {
	Priority uint16
	Weight   uint16
	Port     uint16
	Target   string
}

// parseSRVRData decodes SRV RDATA, with one exception: type 33 was
// historically shared between SRV and NetBIOS NBSTAT, and servers
// speaking NetBIOS on port 137 send NBSTAT records that are not
// SRV-shaped. When the responder port is 137 this falls back to an
// opaque decode rather than misreading NBSTAT bytes as a priority,
// weight, port and compressed name.
func parseSRVRData(msg []byte, cur *wire.Cursor, rdlen int, opts wire.NameOptions, weird wire.WeirdFunc) (any, error) {
	if opts.ResponderPort == 137 {
		return parseOpaqueRData(cur, rdlen)
	}
	var d SRVData
	var err error
	if d.Priority, err = cur.U16(); err != nil {
		return nil, fmt.Errorf("srv priority: %w", ErrDNSError)
	}
	if d.Weight, err = cur.U16(); err != nil {
		return nil, fmt.Errorf("srv weight: %w", ErrDNSError)
	}
	if d.Port, err = cur.U16(); err != nil {
		return nil, fmt.Errorf("srv port: %w", ErrDNSError)
	}
	d.Target, err = wire.DecodeName(msg, cur, opts, weird)
	if err != nil {
		return nil, err
	}
	return d, nil
}
