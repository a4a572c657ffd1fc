// Copyright 2025 The Agentry Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

// Package database implements the record database over a key-value store.
package database

import (
	"github.com/rs/zerolog"
	"gitlab.com/agentrynetwork/agentry/pkg/database/keyvalue"
	"gitlab.com/agentrynetwork/agentry/pkg/database/keyvalue/memory"
)

// Database is a record database.
type Database struct {
	store  keyvalue.Beginner
	logger zerolog.Logger
}

// New creates a record database over the given key-value store.
func New(store keyvalue.Beginner, logger zerolog.Logger) *Database {
	return &Database{store: store, logger: logger.With().Str("module", "database").Logger()}
}

// OpenInMemory opens an in-memory record database.
func OpenInMemory(logger zerolog.Logger) *Database {
	return New(memory.New(), logger)
}

// Begin begins a batch. Writes are not observable to other batches until
// Commit; Discard abandons them.
func (d *Database) Begin(writable bool) *Batch {
	return &Batch{kv: d.store.Begin(writable), logger: d.logger}
}

// View runs a read-only function within a batch.
func (d *Database) View(fn func(*Batch) error) error {
	batch := d.Begin(false)
	defer batch.Discard()
	return fn(batch)
}

// Update runs a function within a writable batch and commits if it succeeds.
func (d *Database) Update(fn func(*Batch) error) error {
	batch := d.Begin(true)
	defer batch.Discard()
	err := fn(batch)
	if err != nil {
		return err
	}
	return batch.Commit()
}
