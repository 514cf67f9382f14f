package wire

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func collectWeirds() (WeirdFunc, *[]string) {
	var got []string
	return func(name string, detail ...string) {
		got = append(got, name)
	}, &got
}

func TestDecodeNameSimple(t *testing.T) {
	msg := []byte{3, 'f', 'o', 'o', 3, 'c', 'o', 'm', 0}
	cur := NewCursor(msg)
	weird, seen := collectWeirds()

	name, err := DecodeName(msg, cur, NameOptions{}, weird)
	if err != nil {
		t.Fatalf("DecodeName err = %v", err)
	}
	if name != "foo.com" {
		t.Fatalf("name = %q, want foo.com", name)
	}
	if cur.Pos() != len(msg) {
		t.Fatalf("Pos = %d, want %d", cur.Pos(), len(msg))
	}
	if len(*seen) != 0 {
		t.Fatalf("unexpected weirds: %v", *seen)
	}
}

func TestDecodeNameLowercases(t *testing.T) {
	msg := []byte{3, 'F', 'O', 'O', 0}
	cur := NewCursor(msg)
	name, err := DecodeName(msg, cur, NameOptions{}, nil)
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if name != "foo" {
		t.Fatalf("name = %q, want foo", name)
	}
}

func TestDecodeNameValidCompressionPointer(t *testing.T) {
	// offset 0..4: "foo\0"; offset 5..6: pointer back to 0.
	msg := []byte{3, 'f', 'o', 'o', 0, 0xc0, 0x00}
	cur := NewCursor(msg)
	cur.Seek(5)
	name, err := DecodeName(msg, cur, NameOptions{}, nil)
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if name != "foo" {
		t.Fatalf("name = %q, want foo", name)
	}
	if cur.Pos() != 7 {
		t.Fatalf("Pos = %d, want 7 (past the 2-byte pointer only)", cur.Pos())
	}
}

func TestDecodeNameSelfPointerRejected(t *testing.T) {
	msg := []byte{0xc0, 0x00}
	cur := NewCursor(msg)
	weird, seen := collectWeirds()

	_, err := DecodeName(msg, cur, NameOptions{}, weird)
	if !errors.Is(err, ErrMalformedName) {
		t.Fatalf("err = %v, want ErrMalformedName", err)
	}
	if !containsString(*seen, "DNS_label_forward_compress_offset") {
		t.Fatalf("weirds = %v, want forward_compress_offset", *seen)
	}
}

func TestDecodeNameForwardPointerRejected(t *testing.T) {
	// Pointer at offset 0 targets offset 2, which is greater than its own
	// offset (0): strictly forward, must be rejected regardless of what
	// lives at the target.
	msg := []byte{0xc0, 0x02, 0, 0}
	cur := NewCursor(msg)
	weird, seen := collectWeirds()

	_, err := DecodeName(msg, cur, NameOptions{}, weird)
	if !errors.Is(err, ErrMalformedName) {
		t.Fatalf("err = %v, want ErrMalformedName", err)
	}
	if !containsString(*seen, "DNS_label_forward_compress_offset") {
		t.Fatalf("weirds = %v", *seen)
	}
}

func TestDecodeNameCompressionLoopGuardTerminates(t *testing.T) {
	// A chain of pointers each strictly decreasing in target offset must
	// resolve in bounded time and never livelock, even several levels
	// deep.
	msg := []byte{
		3, 'a', 'a', 'a', 0, // 0..4
		0xc0, 0x00, // 5..6 points to 0
		0xc0, 0x05, // 7..8 points to 5
		0xc0, 0x07, // 9..10 points to 7
	}
	cur := NewCursor(msg)
	cur.Seek(9)
	name, err := DecodeName(msg, cur, NameOptions{}, nil)
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if name != "aaa" {
		t.Fatalf("name = %q, want aaa", name)
	}
	if cur.Pos() != 11 {
		t.Fatalf("Pos = %d, want 11", cur.Pos())
	}
}

func TestDecodeNameReservedTagBits(t *testing.T) {
	for _, tag := range []byte{0x40, 0x80} {
		msg := []byte{tag, 0, 0}
		cur := NewCursor(msg)
		weird, seen := collectWeirds()
		_, err := DecodeName(msg, cur, NameOptions{}, weird)
		if !errors.Is(err, ErrMalformedName) {
			t.Fatalf("tag %#x: err = %v, want ErrMalformedName", tag, err)
		}
		if !containsString(*seen, "DNS_label_reserved_bits") {
			t.Fatalf("tag %#x: weirds = %v", tag, *seen)
		}
	}
}

func TestDecodeNameLabelLenExceedsPacket(t *testing.T) {
	msg := []byte{10, 'a', 'b'} // claims 10 bytes, only 2 remain
	cur := NewCursor(msg)
	weird, seen := collectWeirds()
	_, err := DecodeName(msg, cur, NameOptions{}, weird)
	if !errors.Is(err, ErrMalformedName) {
		t.Fatalf("err = %v, want ErrMalformedName", err)
	}
	if !containsString(*seen, "DNS_label_len_gt_pkt") {
		t.Fatalf("weirds = %v", *seen)
	}
}

func TestDecodeNameLabelTooLongReportedNotRejected(t *testing.T) {
	label := bytes.Repeat([]byte{'x'}, 64)
	msg := append([]byte{64}, label...)
	msg = append(msg, 0)
	cur := NewCursor(msg)
	weird, seen := collectWeirds()
	name, err := DecodeName(msg, cur, NameOptions{}, weird)
	if err != nil {
		t.Fatalf("err = %v, want nil — overlong label is non-fatal", err)
	}
	if name != strings.Repeat("x", 64) {
		t.Fatalf("name length = %d, want 64", len(name))
	}
	if !containsString(*seen, "DNS_label_too_long") {
		t.Fatalf("weirds = %v", *seen)
	}
}

func TestDecodeNameLabelTooLongExemptOnNetBIOSPort(t *testing.T) {
	label := bytes.Repeat([]byte{'x'}, 64)
	msg := append([]byte{64}, label...)
	msg = append(msg, 0)
	cur := NewCursor(msg)
	name, err := DecodeName(msg, cur, NameOptions{ResponderPort: 137}, nil)
	if err != nil {
		t.Fatalf("err = %v, want nil on port 137", err)
	}
	if name != strings.Repeat("x", 64) {
		t.Fatalf("name length = %d, want 64", len(name))
	}
}

func TestDecodeNameOverlengthTruncatesButConsumesWire(t *testing.T) {
	var msg []byte
	label := bytes.Repeat([]byte{'a'}, 60)
	for i := 0; i < 5; i++ {
		msg = append(msg, 60)
		msg = append(msg, label...)
	}
	msg = append(msg, 0)

	cur := NewCursor(msg)
	weird, seen := collectWeirds()
	name, err := DecodeName(msg, cur, NameOptions{}, weird)
	if err != nil {
		t.Fatalf("err = %v, want nil (non-fatal overlength)", err)
	}
	if !containsString(*seen, "DNS_NAME_too_long") {
		t.Fatalf("weirds = %v, want DNS_NAME_too_long", *seen)
	}
	if len(name) >= 5*61 {
		t.Fatalf("name not truncated: len = %d", len(name))
	}
	if cur.Pos() != len(msg) {
		t.Fatalf("Pos = %d, want %d (full wire name consumed)", cur.Pos(), len(msg))
	}
}

func containsString(haystack []string, want string) bool {
	for _, s := range haystack {
		if s == want {
			return true
		}
	}
	return false
}
