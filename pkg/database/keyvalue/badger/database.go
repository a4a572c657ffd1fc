// Copyright 2025 The Agentry Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

// Package badger implements a Badger-backed key-value store.
package badger

import (
	"os"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"
	"gitlab.com/agentrynetwork/agentry/pkg/database/keyvalue"
	"gitlab.com/agentrynetwork/agentry/pkg/database/keyvalue/memory"
	"gitlab.com/agentrynetwork/agentry/pkg/errors"
)

// Database is a Badger-backed key-value store.
type Database struct {
	badger *badger.DB
	ready  bool
	mu     sync.RWMutex
}

var _ keyvalue.Beginner = (*Database)(nil)

func New(filepath string, logger zerolog.Logger) (*Database, error) {
	err := os.MkdirAll(filepath, 0700)
	if err != nil {
		return nil, errors.UnknownError.WithFormat("open badger: create %q: %w", filepath, err)
	}

	opts := badger.DefaultOptions(filepath)
	opts = opts.WithLogger(badgerLogger{logger.With().Str("module", "badger").Logger()})

	d := new(Database)
	d.ready = true

	d.badger, err = badger.Open(opts)
	if err != nil {
		return nil, errors.UnknownError.WithFormat("open badger: %w", err)
	}
	mDbOpen.Inc()

	// Run GC every hour
	go d.gc()

	return d, nil
}

// Begin begins a change set.
func (d *Database) Begin(writable bool) keyvalue.ChangeSet {
	// Read from a read-only transaction
	rd := d.badger.NewTransaction(false)
	mTxnOpen.Inc()

	get := func(key keyvalue.Key) ([]byte, error) {
		item, err := rd.Get(key[:])
		switch {
		case err == nil:
			// Ok
		case errors.Is(err, badger.ErrKeyNotFound):
			return nil, errors.NotFound.WithFormat("%x not found", key)
		default:
			return nil, errors.UnknownError.WithFormat("get %x: %w", key, err)
		}

		v, err := item.ValueCopy(nil)
		if err != nil {
			return nil, errors.UnknownError.WithFormat("get %x: %w", key, err)
		}
		return v, nil
	}

	// Commit via a write batch to work around Badger's transaction size limit
	var commit memory.CommitFunc
	if writable {
		commit = func(entries map[keyvalue.Key]keyvalue.Entry) error {
			l, err := d.lock(false)
			if err != nil {
				return err
			}
			defer l.Unlock()

			start := time.Now()
			defer func() { mCommitDuration.Set(time.Since(start).Seconds()) }()

			wr := d.badger.NewWriteBatch()
			for _, e := range entries {
				if e.Delete {
					err = wr.Delete(e.Key[:])
				} else {
					err = wr.Set(e.Key[:], e.Value)
				}
				if err != nil {
					return errors.UnknownError.WithFormat("commit: %w", err)
				}
			}
			return wr.Flush()
		}
	}

	discard := func() {
		rd.Discard()
		mTxnOpen.Dec()
	}

	return memory.NewChangeSet(get, commit, discard)
}

// Close closes the underlying database.
func (d *Database) Close() error {
	if l, err := d.lock(true); err != nil {
		return err
	} else {
		defer l.Unlock()
	}

	d.ready = false
	mDbOpen.Dec()
	return d.badger.Close()
}

func (d *Database) gc() {
	for {
		time.Sleep(time.Hour)

		// Still open?
		l, err := d.lock(false)
		if err != nil {
			return
		}

		// Run GC if 50% space could be reclaimed
		start := time.Now()
		err = d.badger.RunValueLogGC(0.5)
		mGcRun.Inc()
		mGcDuration.Set(time.Since(start).Seconds())
		if err != nil && !errors.Is(err, badger.ErrNoRewrite) {
			l.Unlock()
			return
		}

		l.Unlock()
	}
}

// lock acquires the ready mutex and checks for readiness. This prevents race
// conditions between Get/Put and Close, which can cause panics.
func (d *Database) lock(closing bool) (sync.Locker, error) {
	var l sync.Locker = &d.mu
	if !closing {
		l = d.mu.RLocker()
	}

	l.Lock()
	if !d.ready {
		l.Unlock()
		return nil, errors.InternalError.With("database not open")
	}
	return l, nil
}
