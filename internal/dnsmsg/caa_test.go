package dnsmsg

import (
	"testing"

	"github.com/dnsglass/passivedns/internal/wire"
)

func TestParseCAARData(t *testing.T) {
	msg := []byte{
		0,                   // flags
		5,                   // tag length
		'i', 's', 's', 'u', 'e',
		'c', 'a', '.', 'e', 'x', 'a', 'm', 'p', 'l', 'e',
	}
	cur := wire.NewCursor(msg)
	var weirds []string
	weird := func(name string, detail ...string) { weirds = append(weirds, name) }

	got, err := parseCAARData(cur, len(msg), weird)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c := got.(CAAData)
	if c.Tag != "issue" {
		t.Errorf("tag = %q, want issue", c.Tag)
	}
	if string(c.Value) != "ca.example" {
		t.Errorf("value = %q, want ca.example", c.Value)
	}
	if len(weirds) != 0 {
		t.Errorf("unexpected weirds for well-formed record: %v", weirds)
	}
}

func TestParseCAATagLenExactlyFillsRData(t *testing.T) {
	// tag_len == rdlength-2: the tag claims every remaining byte, leaving
	// none for the value field — flagged even though nothing overruns.
	msg := []byte{
		0, // flags
		4, // tag length, exactly equal to the 4 remaining bytes
		'i', 's', 's', 'u',
	}
	cur := wire.NewCursor(msg)
	var weirds []string
	weird := func(name string, detail ...string) { weirds = append(weirds, name) }

	got, err := parseCAARData(cur, len(msg), weird)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c := got.(CAAData)
	if c.Tag != "issu" {
		t.Errorf("tag = %q, want issu", c.Tag)
	}
	if len(c.Value) != 0 {
		t.Errorf("value = %q, want empty", c.Value)
	}
	if !containsWeird(weirds, "DNS_CAA_tag_len_gt_rdlen") {
		t.Errorf("weirds = %v, want tag_len_gt_rdlen even when the tag only just fills rdata", weirds)
	}
}

func TestParseCAATagLenExceedsRData(t *testing.T) {
	msg := []byte{
		0,  // flags
		10, // tag length, longer than the 4 remaining bytes
		'i', 's', 's', 'u',
	}
	cur := wire.NewCursor(msg)
	var weirds []string
	weird := func(name string, detail ...string) { weirds = append(weirds, name) }

	got, err := parseCAARData(cur, len(msg), weird)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c := got.(CAAData)
	if c.Tag != "issu" {
		t.Errorf("tag = %q, want issu (clamped to remaining bytes)", c.Tag)
	}
	if !containsWeird(weirds, "DNS_CAA_tag_len_gt_rdlen") {
		t.Errorf("weirds = %v, want tag_len_gt_rdlen", weirds)
	}
}
