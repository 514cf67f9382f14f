package dnsmsg

import (
	"github.com/dnsglass/passivedns/internal/wire"
)

// NameData is the RDATA shared by NS, CNAME, and PTR records: a single
// (possibly compressed) domain name.
type NameData struct {
	Target string
}

func parseNameRData(msg []byte, cur *wire.Cursor, rdlen int, opts wire.NameOptions, weird wire.WeirdFunc) (any, error) {
	target, err := wire.DecodeName(msg, cur, opts, weird)
	if err != nil {
		return nil, err
	}
	return NameData{Target: target}, nil
}
