package dnsmsg

import (
	"fmt"

	"github.com/dnsglass/passivedns/internal/wire"
)

// Question is a single entry from a message's question section.
type Question struct {
	Name  string
	Type  RRType
	Class RRClass
}

// ParseQuestion decodes one question entry starting at cur's current
// position. A non-nil error means the name or the fixed QTYPE/QCLASS
// fields could not be read and the caller must abandon the message.
func ParseQuestion(msg []byte, cur *wire.Cursor, opts wire.NameOptions, weird wire.WeirdFunc) (Question, error) {
	name, err := wire.DecodeName(msg, cur, opts, weird)
	if err != nil {
		return Question{}, fmt.Errorf("question name: %w", err)
	}
	qtype, err := cur.U16()
	if err != nil {
		return Question{}, fmt.Errorf("question qtype: %w", ErrDNSError)
	}
	qclass, err := cur.U16()
	if err != nil {
		return Question{}, fmt.Errorf("question qclass: %w", ErrDNSError)
	}
	return Question{Name: name, Type: RRType(qtype), Class: RRClass(qclass)}, nil
}
