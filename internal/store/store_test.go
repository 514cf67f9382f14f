package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dnsglass/passivedns/internal/dnsmsg"
	"github.com/dnsglass/passivedns/internal/events"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "events.db")
	s, err := Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func countRows(t *testing.T, s *Store, table string) int {
	t.Helper()
	var n int
	require.NoError(t, s.conn.QueryRow("SELECT count(*) FROM "+table).Scan(&n))
	return n
}

func TestOpenRunsMigrations(t *testing.T) {
	s := openTestStore(t)
	require.Equal(t, 0, countRows(t, s, "messages"))
}

func TestHasHandler(t *testing.T) {
	s := openTestStore(t)
	require.True(t, s.HasHandler(events.MsgEvent))
	require.True(t, s.HasHandler(events.WeirdEvent))
	require.True(t, s.HasHandler(events.NonDNSRequestEvent))
	require.False(t, s.HasHandler(events.AnswerEvent))
}

func TestEmitMsgEventPersists(t *testing.T) {
	s := openTestStore(t)
	hdr := dnsmsg.Header{QDCount: 1, ANCount: 2}
	id, args := events.NewMsgEvent(hdr, true, 64, events.MsgBegin)
	s.Emit(id, args...)

	require.Equal(t, 1, countRows(t, s, "messages"))
}

func TestEmitWeirdPersists(t *testing.T) {
	s := openTestStore(t)
	s.Emit(events.WeirdEvent, events.String("DNS_label_too_long"), events.String("label=63"))

	require.Equal(t, 1, countRows(t, s, "weirds"))
}

func TestEmitNonDNSRequestPersists(t *testing.T) {
	s := openTestStore(t)
	s.Emit(events.NonDNSRequestEvent, events.String("127.0.0.1"), []byte("not dns"))

	require.Equal(t, 1, countRows(t, s, "non_dns_requests"))
}

func TestReopenIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "events.db")

	s1, err := Open(dbPath)
	require.NoError(t, err)
	require.NoError(t, s1.Close())

	s2, err := Open(dbPath)
	require.NoError(t, err)
	require.NoError(t, s2.Close())
}
