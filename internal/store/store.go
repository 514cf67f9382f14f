// Package store is a reference implementation of internal/events.Sink: it
// persists message begin/end events, weird anomalies, and non-DNS-request
// reports to a local SQLite database for offline review. It is a one-way
// log — nothing here is ever read back into the parser.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite"

	"github.com/dnsglass/passivedns/internal/dnsmsg"
	"github.com/dnsglass/passivedns/internal/events"
)

// Store is a SQLite-backed events.Sink. Not safe for concurrent use beyond
// what database/sql itself serializes internally.
type Store struct {
	conn *sql.DB
}

// Open opens or creates the SQLite database at path, migrating its schema
// to the latest version with golang-migrate's embedded iofs source driver.
func Open(path string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL", path)
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	conn.SetMaxOpenConns(1)
	conn.SetConnMaxLifetime(time.Hour)

	if err := migrateSchema(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	return &Store{conn: conn}, nil
}

func migrateSchema(conn *sql.DB) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("open migration source: %w", err)
	}
	dbDriver, err := sqlite3.WithInstance(conn, &sqlite3.Config{})
	if err != nil {
		return fmt.Errorf("build sqlite3 migrate driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite3", dbDriver)
	if err != nil {
		return fmt.Errorf("build migrator: %w", err)
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

// HasHandler reports interest in the event kinds this sink persists:
// message begin/end, weirds, and non-DNS-request reports. Everything else
// — question and answer detail — is dropped; offline review here is about
// anomaly volume and rate, not a name cache.
func (s *Store) HasHandler(id events.ID) bool {
	switch id {
	case events.MsgEvent, events.WeirdEvent, events.NonDNSRequestEvent:
		return true
	default:
		return false
	}
}

// Emit persists one event. Errors are logged to stderr rather than
// propagated — a sink collaborator has no return path in the
// events.Sink interface, and a single failed insert must not abort the
// message the interpreter is in the middle of parsing.
func (s *Store) Emit(id events.ID, args ...any) {
	var err error
	switch id {
	case events.MsgEvent:
		err = s.insertMessage(args)
	case events.WeirdEvent:
		err = s.insertWeird(args)
	case events.NonDNSRequestEvent:
		err = s.insertNonDNSRequest(args)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "store: emit failed:", err)
	}
}

func (s *Store) insertMessage(args []any) error {
	hdr, _ := args[0].(dnsmsg.Header)
	isOrig, _ := args[1].(events.Bool)
	length, _ := args[2].(events.Count)
	phase, _ := args[3].(events.String)

	_, err := s.conn.Exec(
		`INSERT INTO messages (observed_at, responder, is_orig, phase, length, qdcount, ancount, nscount, arcount)
		 VALUES (?, '', ?, ?, ?, ?, ?, ?, ?)`,
		time.Now().UTC(), bool(isOrig), string(phase), int64(length),
		hdr.QDCount, hdr.ANCount, hdr.NSCount, hdr.ARCount,
	)
	return err
}

func (s *Store) insertWeird(args []any) error {
	if len(args) == 0 {
		return nil
	}
	name, _ := args[0].(events.String)
	detail := ""
	if len(args) > 1 {
		if d, ok := args[1].(events.String); ok {
			detail = string(d)
		}
	}
	_, err := s.conn.Exec(
		`INSERT INTO weirds (observed_at, responder, name, detail) VALUES (?, '', ?, ?)`,
		time.Now().UTC(), string(name), detail,
	)
	return err
}

func (s *Store) insertNonDNSRequest(args []any) error {
	if len(args) < 2 {
		return nil
	}
	responder, _ := args[0].(events.String)
	raw, _ := args[1].([]byte)
	_, err := s.conn.Exec(
		`INSERT INTO non_dns_requests (observed_at, responder, length) VALUES (?, ?, ?)`,
		time.Now().UTC(), string(responder), len(raw),
	)
	return err
}
