package wire

import (
	"encoding/binary"
	"fmt"
)

// Cursor reads big-endian fields out of a DNS message buffer, tracking a
// current position. Every fixed-width read fails closed: it returns
// ErrTruncated and leaves the position unchanged rather than reading past
// the end of msg.
type Cursor struct {
	msg []byte
	pos int
}

// NewCursor returns a Cursor positioned at the start of msg.
func NewCursor(msg []byte) *Cursor {
	return &Cursor{msg: msg}
}

// Pos returns the current absolute offset into the message.
func (c *Cursor) Pos() int { return c.pos }

// Seek repositions the cursor to an absolute offset. It does not validate
// the offset; callers that seek to a name-compression target check bounds
// themselves.
func (c *Cursor) Seek(pos int) { c.pos = pos }

// Remaining reports how many bytes are left between the current position
// and the end of the message.
func (c *Cursor) Remaining() int {
	if c.pos >= len(c.msg) {
		return 0
	}
	return len(c.msg) - c.pos
}

// Len returns the total message length.
func (c *Cursor) Len() int { return len(c.msg) }

// Bytes returns the underlying message buffer.
func (c *Cursor) Bytes() []byte { return c.msg }

// U8 reads one octet.
func (c *Cursor) U8() (byte, error) {
	if c.Remaining() < 1 {
		return 0, fmt.Errorf("%w: u8", ErrTruncated)
	}
	b := c.msg[c.pos]
	c.pos++
	return b, nil
}

// U16 reads a big-endian 16-bit field.
func (c *Cursor) U16() (uint16, error) {
	if c.Remaining() < 2 {
		return 0, fmt.Errorf("%w: u16", ErrTruncated)
	}
	v := binary.BigEndian.Uint16(c.msg[c.pos : c.pos+2])
	c.pos += 2
	return v, nil
}

// U32 reads a big-endian 32-bit field.
func (c *Cursor) U32() (uint32, error) {
	if c.Remaining() < 4 {
		return 0, fmt.Errorf("%w: u32", ErrTruncated)
	}
	v := binary.BigEndian.Uint32(c.msg[c.pos : c.pos+4])
	c.pos += 4
	return v, nil
}

// BytesN reads n raw octets. The returned slice aliases the message buffer;
// callers that need to retain it past the lifetime of the message must
// copy it themselves.
func (c *Cursor) BytesN(n int) ([]byte, error) {
	if n < 0 || c.Remaining() < n {
		return nil, fmt.Errorf("%w: bytes(%d)", ErrTruncated, n)
	}
	b := c.msg[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

// CountedOctets reads a u16 length-prefixed byte string. Unlike the other
// readers it never fails: a length that runs past the end of the buffer is
// silently clamped to whatever remains, and the cursor is left at the end
// of the message. This matches the wire reader's "short reads are never
// undefined" contract for opaque trailing material (TXT strings, RDATA
// tails) where a hard failure would be out of proportion to the anomaly.
func (c *Cursor) CountedOctets() []byte {
	n, err := c.U16()
	if err != nil {
		return nil
	}
	avail := c.Remaining()
	if int(n) > avail {
		n = uint16(avail)
	}
	b := c.msg[c.pos : c.pos+int(n)]
	c.pos += int(n)
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

// Skip advances the cursor by n bytes without reading, clamping to the end
// of the message rather than failing.
func (c *Cursor) Skip(n int) {
	c.pos += n
	if c.pos > len(c.msg) {
		c.pos = len(c.msg)
	}
}
