// Copyright 2025 The Agentry Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

// Package keyvalue defines the key-value storage abstraction the record
// database is built on.
package keyvalue

// Key is a 32-byte storage key. Record keys are derived addresses.
type Key [32]byte

// Entry is a pending write.
type Entry struct {
	Key    Key
	Value  []byte
	Delete bool
}

// Store reads and writes key-value entries.
type Store interface {
	// Get returns the value for a key, or an errors.NotFound error.
	Get(key Key) ([]byte, error)

	// Put stages a value for a key.
	Put(key Key, value []byte) error

	// Delete stages removal of a key.
	Delete(key Key) error
}

// ChangeSet is a key-value change set. Writes are not visible to other
// change sets until Commit.
type ChangeSet interface {
	Store

	// Commit commits pending changes.
	Commit() error

	// Discard discards pending changes.
	Discard()
}

// A Beginner can begin key-value change sets.
type Beginner interface {
	// Begin begins a change set.
	Begin(writable bool) ChangeSet
}
