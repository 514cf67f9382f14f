package dnsmsg

import (
	"github.com/dnsglass/passivedns/internal/wire"
)

// TXTData is the RDATA of a TXT or SPF record (RFC 1035 §3.3.14, RFC 7208):
// a sequence of length-prefixed character-strings.
type TXTData struct {
	Strings [][]byte
}

func parseTXTRData(cur *wire.Cursor, rdlen int, weird wire.WeirdFunc) (any, error) {
	end := cur.Pos() + rdlen
	var strs [][]byte
	for cur.Pos() < end {
		strLen, err := cur.U8()
		if err != nil {
			break
		}
		remaining := end - cur.Pos()
		if int(strLen) > remaining {
			weird("DNS_TXT_char_str_past_rdlen")
			strLen = byte(remaining)
		}
		b, err := cur.BytesN(int(strLen))
		if err != nil {
			break
		}
		cp := make([]byte, len(b))
		copy(cp, b)
		strs = append(strs, cp)
	}
	return TXTData{Strings: strs}, nil
}
