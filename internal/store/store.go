// Package store implements the event journal using bbolt (embedded B+ tree).
// Every recorded batch of events becomes a session. Sessions live in the
// "sessions" bucket keyed by UUID; events live in the "events" bucket keyed by
// a big-endian sequence number, so a cursor walk yields journal order.
package store

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"

	"github.com/AndreyAkinshin/recenttests/internal/model"
)

// Bucket keys
var (
	bucketSessions = []byte("sessions")
	bucketEvents   = []byte("events")
)

// ErrLocked is returned when another process holds the journal open.
var ErrLocked = errors.New("journal is locked by another process")

// Session describes one recorded batch of events.
type Session struct {
	ID      string    `json:"id"`
	Source  string    `json:"source"`
	Started time.Time `json:"started"`
	Count   int       `json:"count"`
}

// record is the stored form of a journal event.
type record struct {
	Session string      `json:"session"`
	Event   model.Event `json:"event"`
}

// Store is the bbolt-backed event journal.
type Store struct {
	db     *bolt.DB
	logger *slog.Logger
	now    func() time.Time
}

// Open opens (or creates) a journal at the given path, creating parent
// directories as needed.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create journal directory: %w", err)
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if errors.Is(err, bolt.ErrTimeout) {
		return nil, fmt.Errorf("%w: %s", ErrLocked, path)
	}
	if err != nil {
		return nil, fmt.Errorf("bbolt open: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketSessions); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists(bucketEvents)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init journal buckets: %w", err)
	}

	logger.Debug("journal opened", "path", path)
	return &Store{db: db, logger: logger, now: time.Now}, nil
}

// SetClock replaces the clock used to stamp new sessions.
func (s *Store) SetClock(now func() time.Time) {
	s.now = now
}

// Close closes the underlying bbolt database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Append records events as a new session in one transaction.
func (s *Store) Append(source string, events []model.Event) (Session, error) {
	sess := Session{
		ID:      uuid.NewString(),
		Source:  source,
		Started: s.now().UTC(),
		Count:   len(events),
	}

	sessJSON, err := json.Marshal(sess)
	if err != nil {
		return Session{}, fmt.Errorf("marshal session: %w", err)
	}

	err = s.db.Update(func(tx *bolt.Tx) error {
		eb := tx.Bucket(bucketEvents)
		for _, ev := range events {
			seq, err := eb.NextSequence()
			if err != nil {
				return err
			}
			data, err := json.Marshal(record{Session: sess.ID, Event: ev})
			if err != nil {
				return fmt.Errorf("marshal event %q: %w", ev.ID, err)
			}
			if err := eb.Put(seqKey(seq), data); err != nil {
				return err
			}
		}
		return tx.Bucket(bucketSessions).Put([]byte(sess.ID), sessJSON)
	})
	if err != nil {
		return Session{}, fmt.Errorf("append session: %w", err)
	}

	s.logger.Debug("session recorded", "session", sess.ID, "source", source, "events", len(events))
	return sess, nil
}

// Events returns journaled events in the order they were recorded, skipping
// events that occurred before since. A zero since returns everything.
func (s *Store) Events(since time.Time) ([]model.Event, error) {
	var events []model.Event

	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketEvents).ForEach(func(_, v []byte) error {
			var rec record
			if err := json.Unmarshal(v, &rec); err != nil {
				return fmt.Errorf("unmarshal event: %w", err)
			}
			if !since.IsZero() && rec.Event.Time.Before(since) {
				return nil
			}
			events = append(events, rec.Event)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return events, nil
}

// Sessions returns all sessions ordered by start time.
func (s *Store) Sessions() ([]Session, error) {
	var sessions []Session

	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketSessions).ForEach(func(_, v []byte) error {
			var sess Session
			if err := json.Unmarshal(v, &sess); err != nil {
				return fmt.Errorf("unmarshal session: %w", err)
			}
			sessions = append(sessions, sess)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(sessions, func(i, j int) bool {
		if sessions[i].Started.Equal(sessions[j].Started) {
			return sessions[i].ID < sessions[j].ID
		}
		return sessions[i].Started.Before(sessions[j].Started)
	})
	return sessions, nil
}

// Prune deletes sessions started before the cutoff together with their
// events. It returns the number of sessions removed.
func (s *Store) Prune(before time.Time) (int, error) {
	removed := 0

	err := s.db.Update(func(tx *bolt.Tx) error {
		sb := tx.Bucket(bucketSessions)
		stale := make(map[string]bool)
		err := sb.ForEach(func(k, v []byte) error {
			var sess Session
			if err := json.Unmarshal(v, &sess); err != nil {
				return fmt.Errorf("unmarshal session: %w", err)
			}
			if sess.Started.Before(before) {
				stale[string(k)] = true
			}
			return nil
		})
		if err != nil || len(stale) == 0 {
			return err
		}

		// Collect keys first; deleting while a cursor walks the bucket skips entries.
		eb := tx.Bucket(bucketEvents)
		var doomed [][]byte
		err = eb.ForEach(func(k, v []byte) error {
			var rec record
			if err := json.Unmarshal(v, &rec); err != nil {
				return fmt.Errorf("unmarshal event: %w", err)
			}
			if stale[rec.Session] {
				doomed = append(doomed, append([]byte(nil), k...))
			}
			return nil
		})
		if err != nil {
			return err
		}
		for _, k := range doomed {
			if err := eb.Delete(k); err != nil {
				return err
			}
		}

		for id := range stale {
			if err := sb.Delete([]byte(id)); err != nil {
				return err
			}
		}
		removed = len(stale)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("prune journal: %w", err)
	}

	if removed > 0 {
		s.logger.Info("journal pruned", "sessions", removed, "before", before.Format(time.RFC3339))
	}
	return removed, nil
}

func seqKey(seq uint64) []byte {
	k := make([]byte, 8)
	binary.BigEndian.PutUint64(k, seq)
	return k
}
