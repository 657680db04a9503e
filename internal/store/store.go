// Package store keeps encoded messages in a SQLite database, keyed by the
// message type and its id field.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/danmuck/phenopackets/internal/observability"
	"github.com/danmuck/phenopackets/pkg/dynamic"
	"github.com/danmuck/phenopackets/pkg/registry"
	"github.com/danmuck/phenopackets/pkg/wire"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

var (
	ErrNotFound = errors.New("store: not found")
	ErrNoID     = errors.New("store: message has no id")
)

const schema = `CREATE TABLE IF NOT EXISTS messages (
	type       TEXT    NOT NULL,
	id         TEXT    NOT NULL,
	payload    BLOB    NOT NULL,
	updated_at INTEGER NOT NULL,
	PRIMARY KEY (type, id)
)`

// Entry describes one stored message.
type Entry struct {
	Type      string
	ID        string
	Size      int
	UpdatedAt time.Time
}

type Store struct {
	db    *sql.DB
	path  string
	types registry.Types
	opts  wire.UnmarshalOptions
}

// Open opens or creates the database at path. Stored payloads are decoded
// against types.
func Open(path string, types registry.Types, opts wire.UnmarshalOptions) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("store: empty path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create messages table: %w", err)
	}
	logger := observability.Logger("store")
	logger.Debug().Str("path", path).Msg("opened")
	return &Store{db: db, path: path, types: types, opts: opts}, nil
}

func (s *Store) Path() string { return s.path }

func (s *Store) Close() error { return s.db.Close() }

func messageID(m *dynamic.Message) (string, error) {
	desc := m.Descriptor()
	if _, ok := desc.FieldByName("id"); !ok {
		return "", fmt.Errorf("%w: %s declares no id field", ErrNoID, desc.FullName())
	}
	id := strings.TrimSpace(m.GetString("id"))
	if id == "" {
		return "", fmt.Errorf("%w: %s", ErrNoID, desc.FullName())
	}
	return id, nil
}

// Put stores m in the binary wire format, replacing any message of the
// same type and id. It returns the id used.
func (s *Store) Put(ctx context.Context, m *dynamic.Message) (id string, err error) {
	defer func() { observability.RecordStore("put", err) }()
	id, err = messageID(m)
	if err != nil {
		return "", err
	}
	payload, err := wire.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("encode %s %s: %w", m.Descriptor().FullName(), id, err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO messages (type, id, payload, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT (type, id) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		m.Descriptor().FullName(), id, payload, time.Now().UTC().UnixNano())
	if err != nil {
		return "", fmt.Errorf("put %s %s: %w", m.Descriptor().FullName(), id, err)
	}
	logger := observability.Logger("store")
	logger.Debug().
		Str("type", m.Descriptor().FullName()).
		Str("id", id).
		Int("bytes", len(payload)).
		Msg("put")
	return id, nil
}

// Get loads the desc message stored under id.
func (s *Store) Get(ctx context.Context, desc *registry.MessageDescriptor, id string) (m *dynamic.Message, err error) {
	defer func() { observability.RecordStore("get", err) }()
	var payload []byte
	err = s.db.QueryRowContext(ctx,
		`SELECT payload FROM messages WHERE type = ? AND id = ?`,
		desc.FullName(), id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s %s", ErrNotFound, desc.FullName(), id)
	}
	if err != nil {
		return nil, fmt.Errorf("get %s %s: %w", desc.FullName(), id, err)
	}
	m, err = s.opts.Unmarshal(s.types, payload, desc)
	if err != nil {
		return nil, fmt.Errorf("decode %s %s: %w", desc.FullName(), id, err)
	}
	return m, nil
}

// Delete removes the desc message stored under id.
func (s *Store) Delete(ctx context.Context, desc *registry.MessageDescriptor, id string) (err error) {
	defer func() { observability.RecordStore("delete", err) }()
	res, err := s.db.ExecContext(ctx, `DELETE FROM messages WHERE type = ? AND id = ?`, desc.FullName(), id)
	if err != nil {
		return fmt.Errorf("delete %s %s: %w", desc.FullName(), id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s %s", ErrNotFound, desc.FullName(), id)
	}
	return nil
}

// List returns the stored entries ordered by type and id. An empty
// typeName lists every type.
func (s *Store) List(ctx context.Context, typeName string) (entries []Entry, err error) {
	defer func() { observability.RecordStore("list", err) }()
	q := `SELECT type, id, length(payload), updated_at FROM messages`
	var args []any
	if typeName != "" {
		q += ` WHERE type = ?`
		args = append(args, typeName)
	}
	q += ` ORDER BY type, id`
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var e Entry
		var updated int64
		if err := rows.Scan(&e.Type, &e.ID, &e.Size, &updated); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		e.UpdatedAt = time.Unix(0, updated).UTC()
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
