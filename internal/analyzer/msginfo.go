package analyzer

// Section identifies which part of a DNS message an RR belongs to.
type Section int

const (
	SectionQuestion Section = iota
	SectionAnswer
	SectionAuthority
	SectionAdditional
)

// MsgInfo is the per-message context threaded through one ParseMessage
// call: which section is currently being walked, whether that section's
// records should be skipped past their common prefix, and the owner name
// most recently decoded (useful for logging/weird detail strings). It is
// never persisted across ParseMessage calls — a fresh MsgInfo is built for
// every message.
type MsgInfo struct {
	IsQuery    Role
	Section    Section
	OwnerName  string
	SkipEvent  bool
}
