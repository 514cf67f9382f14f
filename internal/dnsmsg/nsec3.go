package dnsmsg

import (
	"fmt"

	"github.com/dnsglass/passivedns/internal/wire"
)

// NSEC3Data is the RDATA of an NSEC3 record (RFC 5155 §3).
type NSEC3Data struct {
	HashAlgorithm      uint8
	Flags              uint8
	Iterations         uint16
	Salt               []byte
	NextHashedOwner    []byte
	TypeBitmap         []RRType
}

const nsec3FixedLen = 6

func (d NSEC3Data) OptOut() bool { return d.Flags&0x01 != 0 }

func parseNSEC3RData(cur *wire.Cursor, rdlen int, weird wire.WeirdFunc) (any, error) {
	if rdlen < nsec3FixedLen {
		return nil, fmt.Errorf("nsec3 rdlength must be at least %d, got %d: %w", nsec3FixedLen, rdlen, ErrDNSError)
	}
	end := cur.Pos() + rdlen
	var d NSEC3Data
	var err error
	if d.HashAlgorithm, err = cur.U8(); err != nil {
		return nil, fmt.Errorf("nsec3 hash algorithm: %w", ErrDNSError)
	}
	if d.Flags, err = cur.U8(); err != nil {
		return nil, fmt.Errorf("nsec3 flags: %w", ErrDNSError)
	}
	if d.Flags&0xfe != 0 {
		weird("DNSSEC_NSEC3_reserved_flags_set")
	}
	if d.Iterations, err = cur.U16(); err != nil {
		return nil, fmt.Errorf("nsec3 iterations: %w", ErrDNSError)
	}
	saltLen, err := cur.U8()
	if err != nil {
		return nil, fmt.Errorf("nsec3 salt length: %w", ErrDNSError)
	}
	if cur.Pos()+int(saltLen) > end {
		return nil, fmt.Errorf("nsec3 salt overruns rdlength: %w", ErrDNSError)
	}
	salt, err := cur.BytesN(int(saltLen))
	if err != nil {
		return nil, err
	}
	d.Salt = append([]byte(nil), salt...)

	hashLen, err := cur.U8()
	if err != nil {
		return nil, fmt.Errorf("nsec3 hash length: %w", ErrDNSError)
	}
	if cur.Pos()+int(hashLen) > end {
		return nil, fmt.Errorf("nsec3 next hashed owner overruns rdlength: %w", ErrDNSError)
	}
	hash, err := cur.BytesN(int(hashLen))
	if err != nil {
		return nil, err
	}
	d.NextHashedOwner = append([]byte(nil), hash...)

	d.TypeBitmap, err = decodeTypeBitmap(cur, end, weird)
	if err != nil {
		return nil, err
	}
	return d, nil
}
