package dnsmsg

import (
	"fmt"

	"github.com/dnsglass/passivedns/internal/wire"
)

// DNSKEY flag bits (RFC 4034 §2.1.1, RFC 5011 §7).
const (
	dnskeyZoneFlag    uint16 = 0x0100
	dnskeyRevokeFlag  uint16 = 0x0080
	dnskeySEPFlag     uint16 = 0x0001
	dnskeyKnownFlags  uint16 = dnskeyZoneFlag | dnskeyRevokeFlag | dnskeySEPFlag
	dnskeyReservedMask uint16 = ^dnskeyKnownFlags
)

// DNSKEYData is the RDATA of a DNSKEY record (RFC 4034 §2).
type DNSKEYData struct {
	Flags     uint16
	Protocol  uint8
	Algorithm uint8
	PublicKey []byte
}

const dnskeyFixedLen = 4

func (d DNSKEYData) ZoneKey() bool { return d.Flags&dnskeyZoneFlag != 0 }
func (d DNSKEYData) Revoked() bool { return d.Flags&dnskeyRevokeFlag != 0 }
func (d DNSKEYData) SEP() bool     { return d.Flags&dnskeySEPFlag != 0 }

func parseDNSKEYRData(cur *wire.Cursor, rdlen int, weird wire.WeirdFunc) (any, error) {
	if rdlen < dnskeyFixedLen {
		return nil, fmt.Errorf("dnskey rdlength must be at least %d, got %d: %w", dnskeyFixedLen, rdlen, ErrDNSError)
	}
	var d DNSKEYData
	var err error
	if d.Flags, err = cur.U16(); err != nil {
		return nil, fmt.Errorf("dnskey flags: %w", ErrDNSError)
	}
	if d.Flags&dnskeyReservedMask != 0 {
		weird("DNSSEC_DNSKEY_reserved_flags_set")
	}
	if d.Flags&dnskeyKnownFlags == dnskeyKnownFlags {
		weird("DNSSEC_DNSKEY_revoked_SEP_zone_key")
	}
	if d.Protocol, err = cur.U8(); err != nil {
		return nil, fmt.Errorf("dnskey protocol: %w", ErrDNSError)
	}
	if d.Protocol != 3 {
		weird("DNSSEC_DNSKEY_bad_protocol")
	}
	if d.Algorithm, err = cur.U8(); err != nil {
		return nil, fmt.Errorf("dnskey algorithm: %w", ErrDNSError)
	}
	reportDNSKEYAlgorithm(d.Algorithm, weird)

	keyLen := rdlen - dnskeyFixedLen
	key, err := cur.BytesN(keyLen)
	if err != nil {
		return nil, err
	}
	d.PublicKey = append([]byte(nil), key...)
	return d, nil
}

// reportDNSKEYAlgorithm flags a DNSKEY's zone-signing algorithm the same
// way reportRRSIGAlgorithm does for RRSIG, but under the DNSKEY-specific
// weird names — the two record types are classified separately because
// an operator watching for a deprecated RRSIG algorithm and one watching
// for a deprecated DNSKEY algorithm are asking different questions.
func reportDNSKEYAlgorithm(algo uint8, weird wire.WeirdFunc) {
	switch algo {
	case AlgoRSAMD5, AlgoDSA, AlgoDSANSEC3SHA1:
		weird("DNSSEC_DNSKEY_NotRecommended_ZoneSignAlgo")
	case AlgoDH, AlgoRSASHA1, AlgoRSASHA1NSEC3SHA1, AlgoRSASHA256, AlgoRSASHA512,
		AlgoECCGOST, AlgoECDSAP256SHA256, AlgoECDSAP384SHA384, AlgoED25519, AlgoED448:
		// recognized, currently-recommended algorithm.
	case AlgoIndirect:
		weird("DNSSEC_DNSKEY_Indirect_ZoneSignAlgo")
	case AlgoPrivateDNS:
		weird("DNSSEC_DNSKEY_PrivateDNS_ZoneSignAlgo")
	case AlgoPrivateOID:
		weird("DNSSEC_DNSKEY_PrivateOID_ZoneSignAlgo")
	default:
		weird("DNSSEC_DNSKEY_unknown_ZoneSignAlgo")
	}
}
