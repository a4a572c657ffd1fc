// Copyright 2025 The Agentry Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package memory

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gitlab.com/agentrynetwork/agentry/pkg/database/keyvalue"
	"gitlab.com/agentrynetwork/agentry/pkg/errors"
)

func key(b byte) keyvalue.Key { return keyvalue.Key{0: b} }

func TestCommitVisibility(t *testing.T) {
	db := New()

	cs := db.Begin(true)
	require.NoError(t, cs.Put(key(1), []byte("one")))

	// Pending writes are visible within the changeset before commit
	v, err := cs.Get(key(1))
	require.NoError(t, err)
	require.Equal(t, []byte("one"), v)

	// But not to an independent reader
	rd := db.Begin(false)
	_, err = rd.Get(key(1))
	require.ErrorIs(t, err, errors.NotFound)
	rd.Discard()

	require.NoError(t, cs.Commit())

	rd = db.Begin(false)
	defer rd.Discard()
	v, err = rd.Get(key(1))
	require.NoError(t, err)
	require.Equal(t, []byte("one"), v)
}

func TestDiscard(t *testing.T) {
	db := New()

	cs := db.Begin(true)
	require.NoError(t, cs.Put(key(1), []byte("one")))
	cs.Discard()

	rd := db.Begin(false)
	defer rd.Discard()
	_, err := rd.Get(key(1))
	require.ErrorIs(t, err, errors.NotFound)
}

func TestDelete(t *testing.T) {
	db := New()

	cs := db.Begin(true)
	require.NoError(t, cs.Put(key(1), []byte("one")))
	require.NoError(t, cs.Commit())

	cs = db.Begin(true)
	require.NoError(t, cs.Delete(key(1)))

	// The pending delete shadows the committed value
	_, err := cs.Get(key(1))
	require.ErrorIs(t, err, errors.NotFound)
	require.NoError(t, cs.Commit())

	rd := db.Begin(false)
	defer rd.Discard()
	_, err = rd.Get(key(1))
	require.ErrorIs(t, err, errors.NotFound)
}

func TestReadOnlyRejectsWrites(t *testing.T) {
	db := New()

	rd := db.Begin(false)
	defer rd.Discard()
	require.Error(t, rd.Put(key(1), []byte("one")))
}

func TestUseAfterDone(t *testing.T) {
	db := New()

	cs := db.Begin(true)
	require.NoError(t, cs.Commit())
	require.Error(t, cs.Put(key(1), []byte("one")))
	_, err := cs.Get(key(1))
	require.Error(t, err)
}
