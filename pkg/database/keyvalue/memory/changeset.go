// Copyright 2025 The Agentry Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package memory

import (
	"gitlab.com/agentrynetwork/agentry/pkg/database/keyvalue"
	"gitlab.com/agentrynetwork/agentry/pkg/errors"
)

type (
	// GetFunc reads an entry from the underlying store.
	GetFunc func(keyvalue.Key) ([]byte, error)

	// CommitFunc writes staged entries to the underlying store.
	CommitFunc func(map[keyvalue.Key]keyvalue.Entry) error

	// DiscardFunc releases underlying resources.
	DiscardFunc func()
)

// ChangeSet caches entries in a map so Get sees values updated with Put,
// regardless of the underlying store's transaction behavior. Other backends
// reuse it over their own get/commit functions.
type ChangeSet struct {
	entries map[keyvalue.Key]keyvalue.Entry
	done    bool
	get     GetFunc
	commit  CommitFunc
	discard DiscardFunc
}

var _ keyvalue.ChangeSet = (*ChangeSet)(nil)

func NewChangeSet(get GetFunc, commit CommitFunc, discard DiscardFunc) *ChangeSet {
	return &ChangeSet{get: get, commit: commit, discard: discard}
}

func (c *ChangeSet) Get(key keyvalue.Key) ([]byte, error) {
	if c.done {
		return nil, errors.InternalError.With("get: change set is done")
	}
	if e, ok := c.entries[key]; ok {
		if e.Delete {
			return nil, errors.NotFound.WithFormat("%x not found", key)
		}
		return e.Value, nil
	}
	if c.get == nil {
		return nil, errors.NotFound.WithFormat("%x not found", key)
	}
	return c.get(key)
}

func (c *ChangeSet) Put(key keyvalue.Key, value []byte) error {
	if c.done {
		return errors.InternalError.With("put: change set is done")
	}
	if c.commit == nil {
		return errors.InternalError.With("put: change set is not writable")
	}
	if c.entries == nil {
		c.entries = map[keyvalue.Key]keyvalue.Entry{}
	}
	c.entries[key] = keyvalue.Entry{Key: key, Value: value}
	return nil
}

func (c *ChangeSet) Delete(key keyvalue.Key) error {
	if c.done {
		return errors.InternalError.With("delete: change set is done")
	}
	if c.commit == nil {
		return errors.InternalError.With("delete: change set is not writable")
	}
	if c.entries == nil {
		c.entries = map[keyvalue.Key]keyvalue.Entry{}
	}
	c.entries[key] = keyvalue.Entry{Key: key, Delete: true}
	return nil
}

func (c *ChangeSet) Commit() error {
	if c.done {
		return errors.InternalError.With("commit: change set is done")
	}
	defer c.Discard()
	if len(c.entries) == 0 || c.commit == nil {
		return nil
	}
	return c.commit(c.entries)
}

func (c *ChangeSet) Discard() {
	if c.done {
		return
	}
	c.done = true
	c.entries = nil
	if c.discard != nil {
		c.discard()
	}
}
