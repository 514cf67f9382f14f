// Package reassembler implements the length-prefixed framing DNS-over-TCP
// uses: each message on the wire is preceded by a 16-bit big-endian
// length, and TCP segmentation can split that prefix, the body, or both
// across arbitrarily many deliveries.
package reassembler

// state is the framer's current position in one length-prefixed message.
type state int

const (
	stateLenHi state = iota
	stateLenLo
	stateBody
)

// Deliver is called once per message a Reassembler hands off. complete is
// true when msg is a fully framed message (len(msg) == the message's
// declared size); it is false when FlushStream hands off whatever partial
// body had been buffered at end of stream, which the caller should treat
// as having no reliable direction/role of its own. The slice is only
// valid for the duration of the call — Reassembler reuses its backing
// buffer for the next message.
type Deliver func(msg []byte, complete bool)

// Reassembler reconstructs DNS-over-TCP's length-prefixed message framing
// from an arbitrarily segmented byte stream. One instance handles one
// direction of one flow; it is not safe for concurrent use.
type Reassembler struct {
	deliver Deliver

	state   state
	msgSize int
	buf     []byte
	filled  int
}

// New builds a Reassembler that calls deliver for each complete message it
// frames.
func New(deliver Deliver) *Reassembler {
	return &Reassembler{deliver: deliver, state: stateLenHi}
}

// DeliverStream feeds newly received bytes for this direction. It may call
// deliver zero, one, or more times depending on how many complete messages
// the accumulated bytes now contain.
func (r *Reassembler) DeliverStream(data []byte) {
	for len(data) > 0 {
		switch r.state {
		case stateLenHi:
			r.msgSize = int(data[0]) << 8
			r.state = stateLenLo
			data = data[1:]

		case stateLenLo:
			r.msgSize |= int(data[0])
			r.state = stateBody
			r.filled = 0
			r.growBuf(r.msgSize)
			data = data[1:]

		case stateBody:
			n := r.msgSize - r.filled
			if n > len(data) {
				n = len(data)
			}
			copy(r.buf[r.filled:], data[:n])
			r.filled += n
			data = data[n:]

			if r.filled == r.msgSize {
				r.deliver(r.buf[:r.msgSize], true)
				r.state = stateLenHi
				r.filled = 0
			}
		}
	}
}

// FlushStream delivers whatever partial message is buffered at end of
// stream and resets the framer to its initial state. It is a no-op if no
// body bytes have been accumulated. The delivery is marked incomplete —
// the caller has no reliable record boundary to report.
func (r *Reassembler) FlushStream() {
	if r.filled > 0 {
		r.deliver(r.buf[:r.filled], false)
	}
	r.state = stateLenHi
	r.msgSize = 0
	r.filled = 0
}

// growBuf ensures the backing buffer can hold n bytes, growing it (never
// shrinking) so repeated messages don't reallocate once the buffer has
// reached its high-water mark.
func (r *Reassembler) growBuf(n int) {
	if cap(r.buf) >= n {
		r.buf = r.buf[:n]
		return
	}
	r.buf = make([]byte, n)
}
