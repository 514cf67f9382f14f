package analyzer

import (
	"net/netip"
	"time"
)

// Role identifies which side of a flow a message claims to have come from,
// as known to whatever delivered the bytes to ParseMessage. RoleUnknown is
// reported for a TCP stream's flushed partial tail at connection teardown,
// where no complete record boundary was ever seen and the direction can't
// be trusted to mean "query" or "response" in the usual sense.
type Role int

const (
	RoleQuery Role = iota
	RoleResponse
	RoleUnknown
)

// Connection is the per-flow collaborator the interpreter reports
// anomalies and role information to. A concrete implementation lives in
// internal/session, wrapping the bookkeeping a live capture needs (socket
// addresses, idle timers); everything in this package only ever sees the
// interface, so it has no notion of sockets, goroutines, or time-since-
// last-packet.
type Connection interface {
	RespAddr() netip.Addr
	RespPort() uint16
	LastActivity() time.Time
	// FlipRoles swaps which side of the flow is considered the
	// originator, used once when the first DNS message observed on a
	// flow turns out to carry the opposite role from what was assumed
	// when the flow was first seen.
	FlipRoles()
	// Weird reports a non-fatal protocol anomaly by name.
	Weird(name string, detail ...string)
	// Internal reports an anomaly in this module itself (not the
	// traffic being parsed) — a programming invariant violated.
	Internal(reason string)
	ProtocolViolation(tag string)
	ProtocolConfirmation()
}
