// Package cache memoizes path lengths in BadgerDB, keyed by grid digest and
// query. Results of the search engine are deterministic for a given grid and
// query, so entries never expire; a changed grid gets a new digest.
package cache

import (
	"encoding/binary"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/elektrokombinacija/gridpath/internal/core"
	"github.com/elektrokombinacija/gridpath/internal/logutil"
	"github.com/elektrokombinacija/gridpath/internal/metrics"
)

const valueLen = 5

// Entry is a memoized search outcome.
type Entry struct {
	Length int
	Found  bool
}

// Cache is safe for concurrent use.
type Cache struct {
	db *badger.DB
}

// Open opens or creates a cache in dir. An empty dir gives an in-memory
// cache.
func Open(dir string) (*Cache, error) {
	opts := badger.DefaultOptions(dir).WithLogger(badgerLogger{logutil.BgLogger().Sugar()})
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrapf(err, "open cache %q", dir)
	}
	return &Cache{db: db}, nil
}

// Key returns the storage key of (digest, q).
func Key(digest string, q core.Query) []byte {
	return []byte(fmt.Sprintf("len/%s/%d,%d/%d,%d", digest, q.Start.X, q.Start.Y, q.Goal.X, q.Goal.Y))
}

func encode(e Entry) []byte {
	v := make([]byte, valueLen)
	binary.BigEndian.PutUint32(v, uint32(int32(e.Length)))
	if e.Found {
		v[4] = 1
	}
	return v
}

func decode(v []byte) (Entry, error) {
	if len(v) != valueLen {
		return Entry{}, errors.Errorf("invalid cached value length: %d", len(v))
	}
	return Entry{
		Length: int(int32(binary.BigEndian.Uint32(v))),
		Found:  v[4] == 1,
	}, nil
}

// Get looks up (digest, q). A miss is (Entry{}, false, nil).
func (c *Cache) Get(digest string, q core.Query) (Entry, bool, error) {
	var e Entry
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(Key(digest, q))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			e, err = decode(val)
			return err
		})
	})
	if err == badger.ErrKeyNotFound {
		metrics.CacheLookups.WithLabelValues(metrics.LookupMiss).Inc()
		return Entry{}, false, nil
	}
	if err != nil {
		metrics.CacheLookups.WithLabelValues(metrics.LookupMiss).Inc()
		return Entry{}, false, errors.Wrapf(err, "cache get %v", q)
	}
	metrics.CacheLookups.WithLabelValues(metrics.LookupHit).Inc()
	return e, true, nil
}

// Put stores e for (digest, q).
func (c *Cache) Put(digest string, q core.Query, e Entry) error {
	err := c.db.Update(func(txn *badger.Txn) error {
		return txn.Set(Key(digest, q), encode(e))
	})
	return errors.Wrapf(err, "cache put %v", q)
}

// Len counts stored entries.
func (c *Cache) Len() (int, error) {
	n := 0
	err := c.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			n++
		}
		return nil
	})
	return n, errors.Wrap(err, "cache len")
}

// Close flushes and closes the database.
func (c *Cache) Close() error {
	if err := c.db.Close(); err != nil {
		logutil.BgLogger().Warn("close cache", zap.Error(err))
		return errors.Wrap(err, "close cache")
	}
	return nil
}

// badgerLogger routes badger's own logging through zap.
type badgerLogger struct {
	s *zap.SugaredLogger
}

func (l badgerLogger) Errorf(f string, v ...interface{})   { l.s.Errorf(f, v...) }
func (l badgerLogger) Warningf(f string, v ...interface{}) { l.s.Warnf(f, v...) }
func (l badgerLogger) Infof(f string, v ...interface{})    { l.s.Debugf(f, v...) }
func (l badgerLogger) Debugf(f string, v ...interface{})   { l.s.Debugf(f, v...) }
