package wire

import "strings"

// maxNameBuf is the hard cap on the number of label bytes (plus one
// separator per label) a decoded name may accumulate before the decoder
// gives up on it as malformed, mirroring the fixed-size decode buffer of
// the interpreter this module is modeled on.
const maxNameBuf = 512

// maxDottedName is the soft cap on the assembled dotted-form length. Once
// crossed, the decoder keeps consuming wire bytes (so the surrounding
// record parses correctly) but stops appending to the returned name and
// reports DNS_NAME_too_long instead of failing outright.
const maxDottedName = 255

// WeirdFunc reports a non-fatal anomaly by name, with optional free-form
// detail fields.
type WeirdFunc func(name string, detail ...string)

// NameOptions configures DecodeName.
type NameOptions struct {
	// ResponderPort exempts labels longer than 63 bytes from the
	// DNS_label_too_long anomaly when the message was seen on NetBIOS's
	// port 137, where overlong "labels" are a normal NetBIOS encoding
	// artifact rather than a malformed DNS name.
	ResponderPort uint16
}

// DecodeName decodes an RFC 1035 §4.1.4 (possibly compressed) domain name
// starting at cur's current position. On success cur is advanced past the
// name's own encoding — either the zero-length terminator or a two-byte
// compression pointer — and DecodeName returns the lowercased, dot-joined
// name with no trailing dot.
//
// A non-nil error means the name's own encoding could not be resolved
// (a forward-or-self compression pointer, reserved label tag bits, or a
// label that overruns the packet or the decode buffer); cur's position is
// then meaningless and the caller must abandon the enclosing message.
func DecodeName(msg []byte, cur *Cursor, opts NameOptions, weird WeirdFunc) (string, error) {
	if weird == nil {
		weird = func(string, ...string) {}
	}
	var labels []string
	totalLen := 0
	truncated := false

	next, err := decodeLabels(msg, cur.Pos(), &labels, &totalLen, &truncated, opts, weird)
	if err != nil {
		return "", err
	}
	cur.Seek(next)

	if truncated {
		weird("DNS_NAME_too_long")
	}
	return strings.Join(labels, "."), nil
}

// decodeLabels reads labels starting at pos, appending to *labels and
// tracking *totalLen against the two length bounds described above. It
// returns the offset immediately following this frame's own encoding: for
// a literal label chain that is the byte after the zero terminator; for a
// pointer it is the byte after the two pointer bytes, regardless of how
// much data the pointer target resolves to (the recursive call below
// consumes the target independently and its own return offset is
// discarded, exactly as with the two-byte pointer in the containing
// frame).
func decodeLabels(msg []byte, pos int, labels *[]string, totalLen *int, truncated *bool, opts NameOptions, weird WeirdFunc) (int, error) {
	for {
		if pos >= len(msg) {
			return pos, ErrTruncated
		}
		tag := msg[pos]
		switch {
		case tag == 0:
			return pos + 1, nil

		case tag&0xc0 == 0xc0:
			if pos+1 >= len(msg) {
				return pos, ErrTruncated
			}
			offset := (int(tag&0x3f) << 8) | int(msg[pos+1])
			if offset >= pos {
				weird("DNS_label_forward_compress_offset")
				return pos, ErrMalformedName
			}
			if _, err := decodeLabels(msg, offset, labels, totalLen, truncated, opts, weird); err != nil {
				return pos, err
			}
			return pos + 2, nil

		case tag&0xc0 != 0:
			weird("DNS_label_reserved_bits")
			return pos, ErrMalformedName

		default:
			labelLen := int(tag)
			remaining := len(msg) - (pos + 1)
			if labelLen > remaining {
				weird("DNS_label_len_gt_pkt")
				return len(msg), ErrMalformedName
			}
			if labelLen > 63 && opts.ResponderPort != 137 {
				weird("DNS_label_too_long")
			}
			if *totalLen+labelLen+1 > maxNameBuf {
				weird("DNS_label_len_gt_name_len")
				return pos, ErrMalformedName
			}
			label := make([]byte, labelLen)
			copy(label, msg[pos+1:pos+1+labelLen])
			lowerASCII(label)

			*totalLen += labelLen + 1
			if *totalLen > maxDottedName {
				*truncated = true
			} else {
				*labels = append(*labels, string(label))
			}
			pos += 1 + labelLen
		}
	}
}

func lowerASCII(b []byte) {
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
}
