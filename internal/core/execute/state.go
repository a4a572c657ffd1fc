// Copyright 2025 The Agentry Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package execute

import (
	"time"

	"gitlab.com/agentrynetwork/agentry/internal/database"
	"gitlab.com/agentrynetwork/agentry/internal/token"
	"gitlab.com/agentrynetwork/agentry/pkg/address"
	"gitlab.com/agentrynetwork/agentry/pkg/errors"
	"gitlab.com/agentrynetwork/agentry/protocol"
)

// StateManager is the per-operation execution context.
type StateManager struct {
	batch  *database.Batch
	Ledger token.Ledger

	// Signer is the authenticated identity that submitted the operation.
	Signer address.Address

	// Timestamp is the environment time for this operation.
	Timestamp time.Time
}

// Batch returns the operation's batch.
func (st *StateManager) Batch() *database.Batch { return st.batch }

// Create stores a new record, failing if the address is taken.
func (st *StateManager) Create(addr address.Address, account protocol.Account) error {
	exists, err := st.batch.AccountExists(addr)
	if err != nil {
		return errors.UnknownError.Wrap(err)
	}
	if exists {
		return errors.Conflict.WithFormat("%v already exists at %v", account.Type(), addr)
	}
	return st.batch.PutAccount(addr, account)
}

// Update stores an existing record.
func (st *StateManager) Update(addr address.Address, account protocol.Account) error {
	return st.batch.PutAccount(addr, account)
}

// LoadAgent loads an agent record.
func (st *StateManager) LoadAgent(addr address.Address) (*protocol.AgentRecord, error) {
	agent, err := st.batch.Agent(addr)
	if err != nil {
		return nil, errors.UnknownError.WithFormat("load agent record %v: %w", addr, err)
	}
	return agent, nil
}

// LoadAgentForUpdate loads an agent record and verifies the signer is its
// owner.
func (st *StateManager) LoadAgentForUpdate(addr address.Address) (*protocol.AgentRecord, error) {
	agent, err := st.LoadAgent(addr)
	if err != nil {
		return nil, err
	}
	if agent.Owner != st.Signer {
		return nil, errors.NotAuthorized.With("only the owner can modify an agent record")
	}
	return agent, nil
}

// LoadPool loads the staking pool for an agent record.
func (st *StateManager) LoadPool(agent address.Address) (*protocol.StakingPool, address.Address, error) {
	addr, _ := address.ForStakingPool(agent)
	pool, err := st.batch.StakingPool(addr)
	if err != nil {
		return nil, address.Zero, errors.UnknownError.WithFormat("load staking pool for %v: %w", agent, err)
	}
	return pool, addr, nil
}

// LoadStake loads the signer's stake record for an agent.
func (st *StateManager) LoadStake(agent address.Address) (*protocol.StakeRecord, address.Address, error) {
	addr, _ := address.ForStakeAccount(st.Signer, agent)
	stake, err := st.batch.StakeRecord(addr)
	if err != nil {
		return nil, address.Zero, errors.UnknownError.WithFormat("load stake record for %v: %w", agent, err)
	}
	return stake, addr, nil
}

// debitAuthority verifies the signer owns the token account being debited.
func (st *StateManager) debitAuthority(addr address.Address) error {
	account, err := st.batch.TokenAccount(addr)
	if err != nil {
		return errors.UnknownError.WithFormat("load token account %v: %w", addr, err)
	}
	if account.Owner != st.Signer {
		return errors.NotAuthorized.With("token account is not owned by the signer")
	}
	return nil
}

// creditAuthority verifies the signer owns the token account being credited,
// when it exists. A missing destination is created by the transfer.
func (st *StateManager) creditAuthority(addr address.Address) error {
	account, err := st.batch.TokenAccount(addr)
	switch {
	case errors.Is(err, errors.NotFound):
		return nil
	case err != nil:
		return errors.UnknownError.WithFormat("load token account %v: %w", addr, err)
	}
	if account.Owner != st.Signer && account.Owner != addr {
		return errors.NotAuthorized.With("token account is not owned by the signer")
	}
	return nil
}
