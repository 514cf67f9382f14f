package dnsmsg

import (
	"fmt"

	"github.com/dnsglass/passivedns/internal/wire"
)

// TSIGData is the RDATA of a TSIG record (RFC 2845 / RFC 8945 §5.2).
//
// TimeSigned is read as a seconds field (u32) followed by a milliseconds
// field (u16) and combined as seconds + milliseconds/1000, matching the
// wire-format reader this package is modeled on rather than RFC 8945's
// single 48-bit unsigned integer. This is a deliberate divergence from the
// RFC, preserved rather than corrected, and noted here for maintainers.
type TSIGData struct {
	AlgorithmName string
	TimeSigned    uint64
	Fudge         uint16
	MAC           []byte
	OriginalID    uint16
	Error         uint16
	OtherData     []byte
}

func parseTSIGRData(msg []byte, cur *wire.Cursor, rdlen int, opts wire.NameOptions, weird wire.WeirdFunc) (any, error) {
	end := cur.Pos() + rdlen

	alg, err := wire.DecodeName(msg, cur, opts, weird)
	if err != nil {
		return nil, err
	}
	if cur.Pos() > end {
		return nil, fmt.Errorf("tsig algorithm name overruns rdlength: %w", ErrDNSError)
	}

	var d TSIGData
	d.AlgorithmName = alg
	timeSec, err := cur.U32()
	if err != nil {
		return nil, fmt.Errorf("tsig time signed seconds: %w", ErrDNSError)
	}
	timeMS, err := cur.U16()
	if err != nil {
		return nil, fmt.Errorf("tsig time signed ms: %w", ErrDNSError)
	}
	d.TimeSigned = uint64(timeSec) + uint64(timeMS)/1000
	if d.Fudge, err = cur.U16(); err != nil {
		return nil, fmt.Errorf("tsig fudge: %w", ErrDNSError)
	}
	macSize, err := cur.U16()
	if err != nil {
		return nil, fmt.Errorf("tsig mac size: %w", ErrDNSError)
	}
	if cur.Pos()+int(macSize) > end {
		return nil, fmt.Errorf("tsig mac overruns rdlength: %w", ErrDNSError)
	}
	mac, err := cur.BytesN(int(macSize))
	if err != nil {
		return nil, err
	}
	d.MAC = append([]byte(nil), mac...)

	if d.OriginalID, err = cur.U16(); err != nil {
		return nil, fmt.Errorf("tsig original id: %w", ErrDNSError)
	}
	if d.Error, err = cur.U16(); err != nil {
		return nil, fmt.Errorf("tsig error: %w", ErrDNSError)
	}
	otherLen, err := cur.U16()
	if err != nil {
		return nil, fmt.Errorf("tsig other len: %w", ErrDNSError)
	}
	remaining := end - cur.Pos()
	if int(otherLen) > remaining {
		weird("DNS_TSIG_other_len_gt_rdlen")
		otherLen = uint16(remaining)
	}
	other, err := cur.BytesN(int(otherLen))
	if err != nil {
		return nil, err
	}
	d.OtherData = append([]byte(nil), other...)

	return d, nil
}
