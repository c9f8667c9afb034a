package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

const (
	keyPrefix        = "session:"
	maxUpdateRetries = 3
)

// BadgerStore keeps sessions in badger with a per-entry TTL.
type BadgerStore struct {
	db       *badger.DB
	ttl      time.Duration
	inMemory bool
	logger   zerolog.Logger
	now      func() time.Time
}

// OpenBadger opens a store at path. An empty path keeps everything in memory.
func OpenBadger(path string, ttl time.Duration, logger zerolog.Logger) (*BadgerStore, error) {
	logger = logger.With().Str("component", "session").Logger()
	opts := badger.DefaultOptions(path).WithLogger(badgerLogger{logger})
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}
	return &BadgerStore{db: db, ttl: ttl, inMemory: path == "", logger: logger, now: time.Now}, nil
}

func key(id string) []byte {
	return []byte(keyPrefix + id)
}

// Get returns the stored state for id.
func (s *BadgerStore) Get(_ context.Context, id string) (State, error) {
	var st State
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		st, err = read(txn, id)
		return err
	})
	return st, err
}

func read(txn *badger.Txn, id string) (State, error) {
	var st State
	item, err := txn.Get(key(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return st, ErrNotFound
	}
	if err != nil {
		return st, fmt.Errorf("get session: %w", err)
	}
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, &st)
	})
	if err != nil {
		return st, fmt.Errorf("decode session: %w", err)
	}
	return st, nil
}

// Update runs fn inside a read-write transaction and refreshes the TTL.
func (s *BadgerStore) Update(ctx context.Context, id string, fn func(*State)) (State, error) {
	var out State
	for attempt := 0; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return State{}, err
		}
		err := s.db.Update(func(txn *badger.Txn) error {
			st, err := read(txn, id)
			now := s.now().UTC()
			switch {
			case errors.Is(err, ErrNotFound):
				st = State{CreatedAt: now}
			case err != nil:
				return err
			}
			fn(&st)
			st.UpdatedAt = now

			data, err := json.Marshal(st)
			if err != nil {
				return fmt.Errorf("encode session: %w", err)
			}
			if err := txn.SetEntry(badger.NewEntry(key(id), data).WithTTL(s.ttl)); err != nil {
				return fmt.Errorf("set session: %w", err)
			}
			out = st
			return nil
		})
		if errors.Is(err, badger.ErrConflict) && attempt < maxUpdateRetries {
			continue
		}
		return out, err
	}
}

// Delete removes a session. Unknown ids are not an error.
func (s *BadgerStore) Delete(_ context.Context, id string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete(key(id)); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("delete session: %w", err)
		}
		return nil
	})
}

// RunGC reclaims value-log space until ctx is done. It returns immediately
// for in-memory stores.
func (s *BadgerStore) RunGC(ctx context.Context, interval time.Duration) {
	if s.inMemory {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for {
				err := s.db.RunValueLogGC(0.5)
				if err != nil {
					if !errors.Is(err, badger.ErrNoRewrite) {
						s.logger.Warn().Err(err).Msg("value log gc")
					}
					break
				}
			}
		}
	}
}

// Close flushes and closes the database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

// badgerLogger routes badger's internal logging through zerolog.
type badgerLogger struct {
	l zerolog.Logger
}

func (b badgerLogger) Errorf(f string, v ...interface{})   { b.l.Error().Msgf(f, v...) }
func (b badgerLogger) Warningf(f string, v ...interface{}) { b.l.Warn().Msgf(f, v...) }
func (b badgerLogger) Infof(f string, v ...interface{})    { b.l.Debug().Msgf(f, v...) }
func (b badgerLogger) Debugf(f string, v ...interface{})   { b.l.Trace().Msgf(f, v...) }
