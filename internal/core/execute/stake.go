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

// InitStake creates a zeroed stake record for the (signer, agent) pair. If
// the record already exists this is a no-op, not a mutation.
type InitStake struct{}

func (InitStake) Type() protocol.OperationType { return protocol.OperationTypeInitStake }

func (InitStake) Execute(st *StateManager, env *protocol.Envelope) (protocol.Event, error) {
	body, ok := env.Body.(*protocol.InitStake)
	if !ok {
		return nil, errors.InternalError.WithFormat("invalid payload: want %T, got %T", new(protocol.InitStake), env.Body)
	}

	// The pool must exist before positions can be opened
	_, _, err := st.LoadPool(body.Agent)
	if err != nil {
		return nil, err
	}

	addr, bump := address.ForStakeAccount(st.Signer, body.Agent)
	exists, err := st.Batch().AccountExists(addr)
	if err != nil {
		return nil, err
	}
	if exists {
		return &protocol.StakeInitialized{Staker: st.Signer, Agent: body.Agent}, nil
	}

	stake := new(protocol.StakeRecord)
	stake.Staker = st.Signer
	stake.Agent = body.Agent
	stake.LastUpdatedAt = st.Timestamp.Unix()
	stake.Bump = bump

	err = st.Create(addr, stake)
	if err != nil {
		return nil, err
	}

	return &protocol.StakeInitialized{Staker: st.Signer, Agent: body.Agent}, nil
}

// Stake moves value from the signer's token account into the vault. The
// minimum-stake floor applies only to a fresh position, and a top-up never
// resets the fee clock.
type Stake struct{}

func (Stake) Type() protocol.OperationType { return protocol.OperationTypeStake }

func (Stake) Execute(st *StateManager, env *protocol.Envelope) (protocol.Event, error) {
	body, ok := env.Body.(*protocol.Stake)
	if !ok {
		return nil, errors.InternalError.WithFormat("invalid payload: want %T, got %T", new(protocol.Stake), env.Body)
	}

	if body.Amount == 0 {
		return nil, errors.InvalidAmount.With("stake amount must be greater than zero")
	}

	pool, poolAddr, err := st.LoadPool(body.Agent)
	if err != nil {
		return nil, err
	}

	stake, stakeAddr, err := st.LoadStake(body.Agent)
	if err != nil {
		return nil, err
	}
	if stake.Staker != st.Signer {
		return nil, errors.NotAuthorized.With("stake record belongs to a different staker")
	}

	fresh := stake.StakedAmount == 0
	if fresh {
		if body.Amount < pool.MinStakeAmount {
			return nil, errors.BelowMinimumStake.WithFormat("fresh stake %d is below the pool minimum %d", body.Amount, pool.MinStakeAmount)
		}
		pool.StakerCount++
		// The fee clock starts on the first fresh position and is never
		// reset, so withdrawing and re-staking cannot reclaim the
		// zero-elapsed fee window
		if stake.StakedAt == 0 {
			stake.StakedAt = st.Timestamp.Unix()
		}
	}

	err = st.debitAuthority(body.Source)
	if err != nil {
		return nil, err
	}
	err = st.Ledger.Transfer(st.Batch(), body.Source, pool.TokenVault, body.Amount)
	if err != nil {
		return nil, err
	}

	stake.StakedAmount += body.Amount
	stake.LastUpdatedAt = st.Timestamp.Unix()
	pool.TotalStaked += body.Amount

	err = st.Update(stakeAddr, stake)
	if err != nil {
		return nil, err
	}
	err = st.Update(poolAddr, pool)
	if err != nil {
		return nil, err
	}

	return &protocol.Staked{Staker: stake.Staker, Agent: body.Agent, Amount: body.Amount, Total: stake.StakedAmount}, nil
}

// WithdrawStake returns the signer's full position minus the time-decayed
// fee. The stake record is kept, and its timestamp preserved, so the account
// can be reused without reopening the fee-bypass window.
type WithdrawStake struct{}

func (WithdrawStake) Type() protocol.OperationType { return protocol.OperationTypeWithdrawStake }

func (WithdrawStake) Execute(st *StateManager, env *protocol.Envelope) (protocol.Event, error) {
	body, ok := env.Body.(*protocol.WithdrawStake)
	if !ok {
		return nil, errors.InternalError.WithFormat("invalid payload: want %T, got %T", new(protocol.WithdrawStake), env.Body)
	}

	state, err := st.Batch().ProgramState()
	if err != nil {
		return nil, errors.UnknownError.WithFormat("load program state: %w", err)
	}

	pool, poolAddr, err := st.LoadPool(body.Agent)
	if err != nil {
		return nil, err
	}

	stake, stakeAddr, err := st.LoadStake(body.Agent)
	if err != nil {
		return nil, err
	}
	if stake.Staker != st.Signer {
		return nil, errors.NotAuthorized.With("stake record belongs to a different staker")
	}
	if stake.StakedAmount == 0 {
		return nil, errors.NoStake.With("nothing to withdraw")
	}

	elapsed := st.Timestamp.Unix() - stake.StakedAt
	if elapsed < 0 {
		elapsed = 0
	}

	amount := stake.StakedAmount
	fee, err := state.WithdrawalFee(amount, uint64(elapsed))
	if err != nil {
		return nil, err
	}

	err = st.creditAuthority(body.Destination)
	if err != nil {
		return nil, err
	}

	if fee > 0 {
		err = st.Ledger.Transfer(st.Batch(), pool.TokenVault, state.Treasury, fee)
		if err != nil {
			return nil, errors.UnknownError.WithFormat("pay fee: %w", err)
		}
	}
	err = st.Ledger.Transfer(st.Batch(), pool.TokenVault, body.Destination, amount-fee)
	if err != nil {
		return nil, err
	}

	// Reset the amount but preserve StakedAt
	stake.StakedAmount = 0
	stake.LastUpdatedAt = st.Timestamp.Unix()
	if pool.TotalStaked >= amount {
		pool.TotalStaked -= amount
	} else {
		pool.TotalStaked = 0
	}

	err = st.Update(stakeAddr, stake)
	if err != nil {
		return nil, err
	}
	err = st.Update(poolAddr, pool)
	if err != nil {
		return nil, err
	}

	return &protocol.Withdrawn{Staker: stake.Staker, Agent: body.Agent, Amount: amount, Fee: fee}, nil
}
