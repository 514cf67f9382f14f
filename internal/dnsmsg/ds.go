package dnsmsg

import (
	"fmt"

	"github.com/dnsglass/passivedns/internal/wire"
)

// DS digest type numbers (RFC 4034 §5.1.4, IANA registry).
const (
	DigestSHA1   = 1
	DigestSHA256 = 2
	DigestGOST   = 3
	DigestSHA384 = 4
)

// DSData is the RDATA of a DS (Delegation Signer) record (RFC 4034 §5).
type DSData struct {
	KeyTag     uint16
	Algorithm  uint8
	DigestType uint8
	Digest     []byte
}

const dsFixedLen = 4

func parseDSRData(cur *wire.Cursor, rdlen int, weird wire.WeirdFunc) (any, error) {
	if rdlen < dsFixedLen {
		return nil, fmt.Errorf("ds rdlength must be at least %d, got %d: %w", dsFixedLen, rdlen, ErrDNSError)
	}
	var d DSData
	var err error
	if d.KeyTag, err = cur.U16(); err != nil {
		return nil, fmt.Errorf("ds key tag: %w", ErrDNSError)
	}
	// The algorithm field is recorded as-is; unlike RRSIG and DNSKEY, DS
	// carries no per-algorithm classification weird — only its digest
	// type is checked below.
	if d.Algorithm, err = cur.U8(); err != nil {
		return nil, fmt.Errorf("ds algorithm: %w", ErrDNSError)
	}
	if d.DigestType, err = cur.U8(); err != nil {
		return nil, fmt.Errorf("ds digest type: %w", ErrDNSError)
	}
	switch d.DigestType {
	case DigestSHA1, DigestSHA256, DigestGOST, DigestSHA384:
	default:
		weird("DNSSEC_DS_UnknownDigestType")
	}
	digestLen := rdlen - dsFixedLen
	digest, err := cur.BytesN(digestLen)
	if err != nil {
		return nil, err
	}
	d.Digest = append([]byte(nil), digest...)
	return d, nil
}
