package dnsmsg

import (
	"fmt"

	"github.com/dnsglass/passivedns/internal/wire"
)

// DNSSEC algorithm numbers (RFC 4034 Appendix A.1, IANA registry).
const (
	AlgoRSAMD5             = 1
	AlgoDH                 = 2
	AlgoDSA                = 3
	AlgoRSASHA1            = 5
	AlgoDSANSEC3SHA1       = 6
	AlgoRSASHA1NSEC3SHA1   = 7
	AlgoRSASHA256          = 8
	AlgoRSASHA512          = 10
	AlgoECCGOST            = 12
	AlgoECDSAP256SHA256    = 13
	AlgoECDSAP384SHA384    = 14
	AlgoED25519            = 15
	AlgoED448              = 16
	AlgoIndirect           = 252
	AlgoPrivateDNS         = 253
	AlgoPrivateOID         = 254
)

// RRSIGData is the RDATA of an RRSIG record (RFC 4034 §3).
type RRSIGData struct {
	TypeCovered RRType
	Algorithm   uint8
	Labels      uint8
	OriginalTTL uint32
	Expiration  uint32
	Inception   uint32
	KeyTag      uint16
	SignerName  string
	Signature   []byte
}

// rrsigFixedLen is the size of RRSIG's fixed fields before the signer
// name: type covered(2) + algorithm(1) + labels(1) + original ttl(4) +
// expiration(4) + inception(4) + key tag(2).
const rrsigFixedLen = 18

func parseRRSIGRData(msg []byte, cur *wire.Cursor, rdlen int, opts wire.NameOptions, weird wire.WeirdFunc) (any, error) {
	if rdlen < rrsigFixedLen {
		return nil, fmt.Errorf("rrsig rdlength must be at least %d, got %d: %w", rrsigFixedLen, rdlen, ErrDNSError)
	}
	end := cur.Pos() + rdlen

	var d RRSIGData
	var err error
	var typeCovered uint16
	if typeCovered, err = cur.U16(); err != nil {
		return nil, fmt.Errorf("rrsig type covered: %w", ErrDNSError)
	}
	d.TypeCovered = RRType(typeCovered)
	if d.Algorithm, err = cur.U8(); err != nil {
		return nil, fmt.Errorf("rrsig algorithm: %w", ErrDNSError)
	}
	reportRRSIGAlgorithm(d.Algorithm, weird)
	if d.Labels, err = cur.U8(); err != nil {
		return nil, fmt.Errorf("rrsig labels: %w", ErrDNSError)
	}
	if d.OriginalTTL, err = cur.U32(); err != nil {
		return nil, fmt.Errorf("rrsig original ttl: %w", ErrDNSError)
	}
	if d.Expiration, err = cur.U32(); err != nil {
		return nil, fmt.Errorf("rrsig expiration: %w", ErrDNSError)
	}
	if d.Inception, err = cur.U32(); err != nil {
		return nil, fmt.Errorf("rrsig inception: %w", ErrDNSError)
	}
	if d.KeyTag, err = cur.U16(); err != nil {
		return nil, fmt.Errorf("rrsig key tag: %w", ErrDNSError)
	}

	d.SignerName, err = wire.DecodeName(msg, cur, opts, weird)
	if err != nil {
		return nil, err
	}
	if cur.Pos() > end {
		return nil, fmt.Errorf("rrsig signer name overruns rdlength: %w", ErrDNSError)
	}
	sigLen := end - cur.Pos()
	sig, err := cur.BytesN(sigLen)
	if err != nil {
		return nil, err
	}
	d.Signature = append([]byte(nil), sig...)

	return d, nil
}

// reportRRSIGAlgorithm flags zone-signing algorithms that are either
// deprecated or unrecognized. Neither case is fatal — the signature is
// still handed to the sink for the caller to act on.
func reportRRSIGAlgorithm(algo uint8, weird wire.WeirdFunc) {
	switch algo {
	case AlgoRSAMD5, AlgoDSA, AlgoDSANSEC3SHA1:
		weird("DNSSEC_RRSIG_NotRecommended_ZoneSignAlgo")
	case AlgoDH, AlgoRSASHA1, AlgoRSASHA1NSEC3SHA1, AlgoRSASHA256, AlgoRSASHA512,
		AlgoECCGOST, AlgoECDSAP256SHA256, AlgoECDSAP384SHA384, AlgoED25519, AlgoED448:
		// recognized, currently-recommended algorithm.
	case AlgoIndirect:
		weird("DNSSEC_RRSIG_Indirect_ZoneSignAlgo")
	case AlgoPrivateDNS:
		weird("DNSSEC_RRSIG_PrivateDNS_ZoneSignAlgo")
	case AlgoPrivateOID:
		weird("DNSSEC_RRSIG_PrivateOID_ZoneSignAlgo")
	default:
		weird("DNSSEC_RRSIG_UnknownZoneSignAlgo")
	}
}
