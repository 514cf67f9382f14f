// Package wire implements the byte-level primitives shared by every DNS
// message parser in this module: a bounds-checked cursor over a wire-format
// buffer and the RFC 1035 §4.1.4 compressed-name decoder.
package wire

import "errors"

// ErrTruncated is returned whenever a read would run past the end of the
// message buffer.
var ErrTruncated = errors.New("wire: truncated")

// ErrMalformedName is returned by DecodeName when a name's own encoding
// cannot be resolved: a compression pointer that does not strictly precede
// itself, a label whose tag bits are reserved, a label that claims more
// bytes than remain in the packet, or a label that would overflow the
// decoded-name buffer. The cursor position is left unspecified in all of
// these cases, so callers must treat it as message-fatal.
var ErrMalformedName = errors.New("wire: malformed name")
