package dnsmsg

import (
	"github.com/dnsglass/passivedns/internal/wire"
)

// CAAData is the RDATA of a Certification Authority Authorization record
// (RFC 8659 §4).
type CAAData struct {
	Flags uint8
	Tag   string
	Value []byte
}

func parseCAARData(cur *wire.Cursor, rdlen int, weird wire.WeirdFunc) (any, error) {
	end := cur.Pos() + rdlen
	flags, err := cur.U8()
	if err != nil {
		return nil, err
	}
	tagLen, err := cur.U8()
	if err != nil {
		return nil, err
	}
	remaining := end - cur.Pos()
	if int(tagLen) >= remaining {
		weird("DNS_CAA_tag_len_gt_rdlen")
		if int(tagLen) > remaining {
			tagLen = byte(remaining)
		}
	}
	tag, err := cur.BytesN(int(tagLen))
	if err != nil {
		return nil, err
	}
	valueLen := end - cur.Pos()
	if valueLen < 0 {
		valueLen = 0
	}
	value, err := cur.BytesN(valueLen)
	if err != nil {
		return nil, err
	}
	v := make([]byte, len(value))
	copy(v, value)
	return CAAData{Flags: flags, Tag: string(tag), Value: v}, nil
}
