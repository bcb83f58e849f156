// Package persistence provides SQLite-based save slots, prestige metadata
// and an archive of the nation's chronicle.
package persistence

import (
	"bytes"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pierrec/lz4/v4"
	"lukechampine.com/blake3"
	_ "modernc.org/sqlite"

	"github.com/talgya/axinode/internal/realm"
)

// Meta keys.
const (
	metaPrestige = "prestige"
	MetaLastSlot = "last_slot"
	MetaLastSeed = "last_seed"
)

// Store wraps a SQLite connection for game persistence.
type Store struct {
	conn *sqlx.DB
}

// SaveInfo describes one save slot without its payload.
type SaveInfo struct {
	Slot     string `db:"slot" json:"slot"`
	ID       string `db:"id" json:"id"`
	Version  int    `db:"version" json:"version"`
	Day      int    `db:"day" json:"day"`
	Size     int    `db:"size" json:"size"`
	Checksum string `db:"checksum" json:"checksum"`
	SavedAt  string `db:"saved_at" json:"saved_at"`
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*Store, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	st := &Store{conn: conn}
	if err := st.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return st, nil
}

// Close closes the database connection.
func (st *Store) Close() error {
	return st.conn.Close()
}

func (st *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS saves (
		slot TEXT PRIMARY KEY,
		id TEXT NOT NULL,
		version INTEGER NOT NULL,
		day INTEGER NOT NULL,
		size INTEGER NOT NULL,
		checksum TEXT NOT NULL,
		payload BLOB NOT NULL,
		saved_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS log_archive (
		id TEXT PRIMARY KEY,
		slot TEXT NOT NULL,
		day INTEGER NOT NULL,
		time TEXT NOT NULL,
		category TEXT NOT NULL,
		priority TEXT NOT NULL,
		message TEXT NOT NULL,
		archived_at INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS world_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_log_slot_day ON log_archive(slot, day);
	`
	_, err := st.conn.Exec(schema)
	return err
}

// SaveGame writes a snapshot to slot, replacing what was there.
func (st *Store) SaveGame(slot string, s realm.State) error {
	raw, err := Encode(s)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	payload, err := compress(raw)
	if err != nil {
		return fmt.Errorf("compress: %w", err)
	}

	_, err = st.conn.Exec(`INSERT OR REPLACE INTO saves
		(slot, id, version, day, size, checksum, payload, saved_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		slot, uuid.NewString(), SchemaVersion, s.DayNumber(), len(raw), checksum(raw), payload,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("save slot %q: %w", slot, err)
	}
	slog.Debug("game saved", "slot", slot, "day", s.DayNumber(), "bytes", len(payload))
	return nil
}

// LoadGame reads the snapshot in slot. A missing slot or a finished game
// reports found=false; finished games are deleted on the way.
func (st *Store) LoadGame(slot string) (s realm.State, found bool, err error) {
	s, err = st.load(slot)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return realm.State{}, false, nil
	case errors.Is(err, ErrFinished):
		slog.Info("discarding finished game", "slot", slot, "day", s.DayNumber())
		if err := st.DeleteGame(slot); err != nil {
			return realm.State{}, false, err
		}
		return realm.State{}, false, nil
	case err != nil:
		return realm.State{}, false, err
	}
	return s, true, nil
}

func (st *Store) load(slot string) (realm.State, error) {
	var row struct {
		Checksum string `db:"checksum"`
		Payload  []byte `db:"payload"`
	}
	if err := st.conn.Get(&row, "SELECT checksum, payload FROM saves WHERE slot = ?", slot); err != nil {
		return realm.State{}, err
	}

	raw, err := decompress(row.Payload)
	if err != nil {
		return realm.State{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if checksum(raw) != row.Checksum {
		return realm.State{}, fmt.Errorf("slot %q: %w", slot, ErrCorrupt)
	}
	s, err := Decode(raw)
	if err != nil {
		return realm.State{}, fmt.Errorf("slot %q: %w", slot, err)
	}
	if s.Terminal() {
		return s, ErrFinished
	}
	return s, nil
}

// DeleteGame removes a save slot and its archived log.
func (st *Store) DeleteGame(slot string) error {
	tx, err := st.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM saves WHERE slot = ?", slot); err != nil {
		return fmt.Errorf("delete slot %q: %w", slot, err)
	}
	if _, err := tx.Exec("DELETE FROM log_archive WHERE slot = ?", slot); err != nil {
		return fmt.Errorf("delete log of %q: %w", slot, err)
	}
	return tx.Commit()
}

// ListSaves returns every slot, most recently saved first.
func (st *Store) ListSaves() ([]SaveInfo, error) {
	var saves []SaveInfo
	err := st.conn.Select(&saves,
		"SELECT slot, id, version, day, size, checksum, saved_at FROM saves ORDER BY saved_at DESC, slot",
	)
	return saves, err
}

// SaveMeta stores a key-value pair in world metadata.
func (st *Store) SaveMeta(key, value string) error {
	_, err := st.conn.Exec(
		"INSERT OR REPLACE INTO world_meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (st *Store) GetMeta(key string) (string, error) {
	var value string
	err := st.conn.Get(&value, "SELECT value FROM world_meta WHERE key = ?", key)
	return value, err
}

// LoadPrestige returns the cross-game record, empty if none was saved.
func (st *Store) LoadPrestige() (realm.Prestige, error) {
	var p realm.Prestige
	v, err := st.GetMeta(metaPrestige)
	if errors.Is(err, sql.ErrNoRows) {
		return p, nil
	}
	if err != nil {
		return p, fmt.Errorf("load prestige: %w", err)
	}
	if err := json.Unmarshal([]byte(v), &p); err != nil {
		return p, fmt.Errorf("decode prestige: %w", err)
	}
	return p, nil
}

// SavePrestige stores the cross-game record.
func (st *Store) SavePrestige(p realm.Prestige) error {
	v, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode prestige: %w", err)
	}
	return st.SaveMeta(metaPrestige, string(v))
}

// ArchiveLog appends chronicle entries for slot. Entries already archived
// are skipped, so the in-state log can be archived on every save.
func (st *Store) ArchiveLog(slot string, entries []realm.LogEntry) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := st.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Preparex(`INSERT OR IGNORE INTO log_archive
		(id, slot, day, time, category, priority, message, archived_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := time.Now().UnixNano()
	// Oldest first so archived_at orders entries the way they were written.
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		if _, err := stmt.Exec(e.ID, slot, e.Day, e.Time, e.Category, e.Priority, e.Message, now); err != nil {
			return fmt.Errorf("archive log entry %s: %w", e.ID, err)
		}
		now++
	}

	return tx.Commit()
}

// RecentLog returns the most recent archived entries for slot, newest first.
func (st *Store) RecentLog(slot string, limit int) ([]realm.LogEntry, error) {
	var entries []realm.LogEntry
	err := st.conn.Select(&entries,
		`SELECT id, day, time, category, priority, message FROM log_archive
		WHERE slot = ? ORDER BY day DESC, archived_at DESC LIMIT ?`,
		slot, limit,
	)
	return entries, err
}

func compress(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := lz4.NewWriter(&buf)
	if _, err := zw.Write(src); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decompress(src []byte) ([]byte, error) {
	return io.ReadAll(lz4.NewReader(bytes.NewReader(src)))
}

func checksum(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}
