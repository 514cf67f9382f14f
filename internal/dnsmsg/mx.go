package dnsmsg

import (
	"fmt"

	"github.com/dnsglass/passivedns/internal/wire"
)

// MXData is the RDATA of a mail exchange record (RFC 1035 §3.3.9).
type MXData struct {
	Preference uint16
	Exchange   string
}

func parseMXRData(msg []byte, cur *wire.Cursor, opts wire.NameOptions, weird wire.WeirdFunc) (any, error) {
	pref, err := cur.U16()
	if err != nil {
		return nil, fmt.Errorf("mx preference: %w", ErrDNSError)
	}
	exch, err := wire.DecodeName(msg, cur, opts, weird)
	if err != nil {
		return nil, err
	}
	return MXData{Preference: pref, Exchange: exch}, nil
}
