// Copyright 2025 The Agentry Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package execute

import (
	"gitlab.com/agentrynetwork/agentry/pkg/address"
	"gitlab.com/agentrynetwork/agentry/pkg/errors"
	"gitlab.com/agentrynetwork/agentry/protocol"
)

// CreateStakingPool creates the pool and vault for a staking-enabled agent.
// One pool per agent: a second creation fails on the address collision.
type CreateStakingPool struct{}

func (CreateStakingPool) Type() protocol.OperationType {
	return protocol.OperationTypeCreateStakingPool
}

func (CreateStakingPool) Execute(st *StateManager, env *protocol.Envelope) (protocol.Event, error) {
	body, ok := env.Body.(*protocol.CreateStakingPool)
	if !ok {
		return nil, errors.InternalError.WithFormat("invalid payload: want %T, got %T", new(protocol.CreateStakingPool), env.Body)
	}

	pool, _, err := createStakingPool(st, body.Agent, body.TokenMint, body.MinStakeAmount)
	if err != nil {
		return nil, err
	}

	return &protocol.PoolCreated{Agent: pool.Agent, Owner: pool.Owner, MinStakeAmount: pool.MinStakeAmount}, nil
}

// createStakingPool validates and creates a pool plus its vault. The agent's
// HAS_STAKING flag is the sole authority for attaching stake, checked on the
// record itself, not taken from the caller. Shared with the composite
// create-with-pool operation.
func createStakingPool(st *StateManager, agentAddr, mint address.Address, minStake uint64) (*protocol.StakingPool, address.Address, error) {
	if minStake == 0 {
		return nil, address.Zero, errors.InvalidMinStake.With("minimum stake must be greater than zero")
	}

	agent, err := st.LoadAgent(agentAddr)
	if err != nil {
		return nil, address.Zero, err
	}
	if !agent.HasStaking() {
		return nil, address.Zero, errors.StakingNotEnabled.With("the agent record does not allow staking")
	}
	if agent.Owner != st.Signer {
		return nil, address.Zero, errors.NotAuthorized.With("only the agent owner can create the pool")
	}

	poolAddr, poolBump := address.ForStakingPool(agentAddr)
	vaultAddr, _ := address.ForTokenVault(poolAddr)

	pool := new(protocol.StakingPool)
	pool.Agent = agentAddr
	pool.Owner = agent.Owner
	pool.TokenMint = mint
	pool.TokenVault = vaultAddr
	pool.MinStakeAmount = minStake
	pool.CreatedAt = st.Timestamp.Unix()
	pool.Flags = protocol.PoolFlagInitialized
	pool.Bump = poolBump

	err = st.Create(poolAddr, pool)
	if err != nil {
		return nil, address.Zero, err
	}

	err = st.Ledger.CreateAccount(st.Batch(), vaultAddr, poolAddr, mint)
	if err != nil {
		return nil, address.Zero, errors.UnknownError.WithFormat("create vault: %w", err)
	}

	return pool, poolAddr, nil
}

// UpdateMinStake replaces the pool's minimum-stake floor. Existing positions
// are not affected.
type UpdateMinStake struct{}

func (UpdateMinStake) Type() protocol.OperationType { return protocol.OperationTypeUpdateMinStake }

func (UpdateMinStake) Execute(st *StateManager, env *protocol.Envelope) (protocol.Event, error) {
	body, ok := env.Body.(*protocol.UpdateMinStake)
	if !ok {
		return nil, errors.InternalError.WithFormat("invalid payload: want %T, got %T", new(protocol.UpdateMinStake), env.Body)
	}

	if body.MinStakeAmount == 0 {
		return nil, errors.InvalidMinStake.With("minimum stake must be greater than zero")
	}

	pool, poolAddr, err := st.LoadPool(body.Agent)
	if err != nil {
		return nil, err
	}
	if pool.Owner != st.Signer {
		return nil, errors.NotAuthorized.With("only the pool owner can update the minimum stake")
	}

	old := pool.MinStakeAmount
	pool.MinStakeAmount = body.MinStakeAmount

	err = st.Update(poolAddr, pool)
	if err != nil {
		return nil, err
	}

	return &protocol.MinStakeUpdated{Agent: pool.Agent, OldAmount: old, NewAmount: body.MinStakeAmount}, nil
}
