package dnsmsg

import (
	"github.com/dnsglass/passivedns/internal/wire"
)

// NSECData is the RDATA of an NSEC record (RFC 4034 §4).
type NSECData struct {
	NextDomain string
	TypeBitmap []RRType
}

func parseNSECRData(msg []byte, cur *wire.Cursor, rdlen int, opts wire.NameOptions, weird wire.WeirdFunc) (any, error) {
	end := cur.Pos() + rdlen
	next, err := wire.DecodeName(msg, cur, opts, weird)
	if err != nil {
		return nil, err
	}
	if cur.Pos() > end {
		return nil, ErrDNSError
	}
	types, err := decodeTypeBitmap(cur, end, weird)
	if err != nil {
		return nil, err
	}
	return NSECData{NextDomain: next, TypeBitmap: types}, nil
}

// decodeTypeBitmap reads the window-block-encoded type bitmap shared by
// NSEC and NSEC3 (RFC 4034 §4.1.2): each block is a window number, a
// bitmap length, and that many bitmap bytes. A valid bitmap length is
// 1..32; anything outside that range is reported and decoding of the
// remaining blocks stops rather than continuing past a block boundary
// that can no longer be trusted.
func decodeTypeBitmap(cur *wire.Cursor, end int, weird wire.WeirdFunc) ([]RRType, error) {
	var types []RRType
	for cur.Pos() < end {
		window, err := cur.U8()
		if err != nil {
			return nil, err
		}
		bmlen, err := cur.U8()
		if err != nil {
			return nil, err
		}
		if bmlen < 1 || bmlen > 32 {
			weird("DNSSEC_NSEC_bitmapLen0")
			break
		}
		remaining := end - cur.Pos()
		if int(bmlen) > remaining {
			weird("DNSSEC_NSEC_bitmap_len_gt_rdlen")
			bmlen = byte(remaining)
		}
		bits, err := cur.BytesN(int(bmlen))
		if err != nil {
			return nil, err
		}
		for byteIdx, b := range bits {
			for bit := 0; bit < 8; bit++ {
				if b&(0x80>>uint(bit)) == 0 {
					continue
				}
				types = append(types, RRType(int(window)*256+byteIdx*8+bit))
			}
		}
	}
	return types, nil
}
