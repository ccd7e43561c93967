package synthcache

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"subforge/internal/services"
	"subforge/internal/timeline"
)

// Entry is one cached synthesis result.
type Entry struct {
	Timeline  timeline.Timeline
	AudioPath string
	Duration  time.Duration
}

// Store manages synthesis cache persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	lock *flock.Flock
	path string
}

// Open initializes or connects to the cache database under dir, acquiring
// the cache lock first so two processes never write concurrently.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}

	lock := flock.New(filepath.Join(dir, "cache.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire cache lock: %w", err)
	}
	if !locked {
		return nil, services.Wrap(services.ErrTransient, "synthcache", "open", "cache is locked by another process", nil)
	}

	dbPath := filepath.Join(dir, "cache.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, lock: lock, path: dbPath}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, err
	}

	return store, nil
}

// Close closes the database connection and releases the cache lock.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	var dbErr error
	if s.db != nil {
		dbErr = s.db.Close()
	}
	if s.lock != nil {
		if err := s.lock.Unlock(); err != nil && dbErr == nil {
			dbErr = err
		}
	}
	return dbErr
}

func (s *Store) applyMigrations(ctx context.Context) error {
	const schema = `CREATE TABLE IF NOT EXISTS chunk_results (
        key TEXT PRIMARY KEY,
        timeline TEXT NOT NULL,
        audio_path TEXT NOT NULL,
        duration_ns INTEGER NOT NULL,
        created_at TEXT NOT NULL
    )`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply cache schema: %w", err)
	}
	return nil
}

// Key derives the cache key for a chunk text under a given synthesizer
// fingerprint.
func Key(text, synthFingerprint string) string {
	h := sha256.New()
	h.Write([]byte(synthFingerprint))
	h.Write([]byte{0})
	h.Write([]byte(text))
	return hex.EncodeToString(h.Sum(nil))
}

// Get returns the cached entry for key. A cached entry whose audio file no
// longer exists is treated as a miss and evicted.
func (s *Store) Get(ctx context.Context, key string) (Entry, bool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT timeline, audio_path, duration_ns FROM chunk_results WHERE key = ?`, key)

	var timelineJSON, audioPath string
	var durationNS int64
	if err := row.Scan(&timelineJSON, &audioPath, &durationNS); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Entry{}, false, nil
		}
		return Entry{}, false, fmt.Errorf("query cache: %w", err)
	}

	if audioPath != "" {
		if _, err := os.Stat(audioPath); err != nil {
			_ = s.Delete(ctx, key)
			return Entry{}, false, nil
		}
	}

	var tl timeline.Timeline
	if err := json.Unmarshal([]byte(timelineJSON), &tl); err != nil {
		_ = s.Delete(ctx, key)
		return Entry{}, false, nil
	}

	return Entry{
		Timeline:  tl,
		AudioPath: audioPath,
		Duration:  time.Duration(durationNS),
	}, true, nil
}

// Put stores or replaces the entry for key.
func (s *Store) Put(ctx context.Context, key string, entry Entry) error {
	timelineJSON, err := json.Marshal(entry.Timeline)
	if err != nil {
		return fmt.Errorf("encode timeline: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO chunk_results (key, timeline, audio_path, duration_ns, created_at)
         VALUES (?, ?, ?, ?, ?)
         ON CONFLICT(key) DO UPDATE SET
             timeline = excluded.timeline,
             audio_path = excluded.audio_path,
             duration_ns = excluded.duration_ns,
             created_at = excluded.created_at`,
		key,
		string(timelineJSON),
		entry.AudioPath,
		entry.Duration.Nanoseconds(),
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert cache entry: %w", err)
	}
	return nil
}

// Delete removes the entry for key, if present.
func (s *Store) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM chunk_results WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete cache entry: %w", err)
	}
	return nil
}
