// Package dnsmsg parses DNS message headers, questions, and resource
// records out of a wire-format buffer (RFC 1035 and its extensions).
//
// Standards coverage:
//
//   - RFC 1035: Domain Names - Implementation and Specification
//   - RFC 3596: AAAA records
//   - RFC 2782: SRV records
//   - RFC 6891: EDNS0 (OPT pseudo-records)
//   - RFC 2845 / RFC 8945: TSIG
//   - RFC 4033-4035, RFC 5155: DNSSEC (RRSIG, DNSKEY, NSEC, NSEC3, DS)
//   - RFC 8659: CAA records
//
// A record's fixed-format prefix (owner name, type, class, TTL, rdlength)
// always parses independently of its RDATA. A typed-RDATA parser returns
// an error only for a fatal problem (such as RDATA too short for the
// type's fixed fields), and internal/analyzer abandons the whole message
// on such an error; every other RDATA anomaly is reported through weird.
package dnsmsg

import "errors"

// ErrDNSError is the sentinel wrapped by every fatal parse error in this
// package: fmt.Errorf("...: %w", ErrDNSError).
var ErrDNSError = errors.New("dnsmsg: malformed message")
