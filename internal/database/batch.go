// Copyright 2025 The Agentry Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package database

import (
	"github.com/rs/zerolog"
	"gitlab.com/agentrynetwork/agentry/pkg/address"
	"gitlab.com/agentrynetwork/agentry/pkg/database/keyvalue"
	"gitlab.com/agentrynetwork/agentry/pkg/errors"
	"gitlab.com/agentrynetwork/agentry/protocol"
)

// Batch is an atomic view of the record database. An operation either fully
// applies or fully fails; partial field updates are never observable.
type Batch struct {
	kv     keyvalue.ChangeSet
	logger zerolog.Logger
}

// Commit commits pending changes.
func (b *Batch) Commit() error { return b.kv.Commit() }

// Discard discards pending changes.
func (b *Batch) Discard() { b.kv.Discard() }

// Account loads the record at an address.
func (b *Batch) Account(addr address.Address) (protocol.Account, error) {
	data, err := b.kv.Get(keyvalue.Key(addr))
	if err != nil {
		return nil, err
	}
	account, err := protocol.UnmarshalAccount(data)
	if err != nil {
		return nil, errors.EncodingError.WithFormat("load %v: %w", addr, err)
	}
	return account, nil
}

// AccountExists returns true if a record exists at the address.
func (b *Batch) AccountExists(addr address.Address) (bool, error) {
	_, err := b.kv.Get(keyvalue.Key(addr))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, errors.NotFound):
		return false, nil
	default:
		return false, err
	}
}

// PutAccount stores a record at an address.
func (b *Batch) PutAccount(addr address.Address, account protocol.Account) error {
	data, err := account.MarshalBinary()
	if err != nil {
		return errors.EncodingError.WithFormat("store %v: %w", addr, err)
	}
	return b.kv.Put(keyvalue.Key(addr), data)
}

// DeleteAccount removes the record at an address, making the address
// available for future creation.
func (b *Batch) DeleteAccount(addr address.Address) error {
	return b.kv.Delete(keyvalue.Key(addr))
}

// Agent loads an agent record.
func (b *Batch) Agent(addr address.Address) (*protocol.AgentRecord, error) {
	account, err := b.Account(addr)
	if err != nil {
		return nil, err
	}
	agent, ok := account.(*protocol.AgentRecord)
	if !ok {
		return nil, errors.InternalError.WithFormat("%v is a %v, not an agent record", addr, account.Type())
	}
	return agent, nil
}

// ProgramState loads the configuration singleton.
func (b *Batch) ProgramState() (*protocol.ProgramState, error) {
	addr, _ := address.ForProgramState()
	account, err := b.Account(addr)
	if err != nil {
		return nil, err
	}
	state, ok := account.(*protocol.ProgramState)
	if !ok {
		return nil, errors.InternalError.WithFormat("%v is a %v, not the program state", addr, account.Type())
	}
	return state, nil
}

// StakingPool loads a staking pool record.
func (b *Batch) StakingPool(addr address.Address) (*protocol.StakingPool, error) {
	account, err := b.Account(addr)
	if err != nil {
		return nil, err
	}
	pool, ok := account.(*protocol.StakingPool)
	if !ok {
		return nil, errors.InternalError.WithFormat("%v is a %v, not a staking pool", addr, account.Type())
	}
	return pool, nil
}

// StakeRecord loads a stake record.
func (b *Batch) StakeRecord(addr address.Address) (*protocol.StakeRecord, error) {
	account, err := b.Account(addr)
	if err != nil {
		return nil, err
	}
	stake, ok := account.(*protocol.StakeRecord)
	if !ok {
		return nil, errors.InternalError.WithFormat("%v is a %v, not a stake record", addr, account.Type())
	}
	return stake, nil
}

// TokenAccount loads a token account record.
func (b *Batch) TokenAccount(addr address.Address) (*protocol.TokenAccount, error) {
	account, err := b.Account(addr)
	if err != nil {
		return nil, err
	}
	token, ok := account.(*protocol.TokenAccount)
	if !ok {
		return nil, errors.InternalError.WithFormat("%v is a %v, not a token account", addr, account.Type())
	}
	return token, nil
}
